package config

// DefaultAddr is the default listen address for the control-channel
// server. All interfaces, because the whole point is reachability from
// a phone on the same network.
const DefaultAddr = "0.0.0.0:5050"

// DefaultWebRoot is the default directory for the bundled web client,
// relative to the working directory.
const DefaultWebRoot = "webapp"
