// Package auth decides whether a connecting device may control the host.
// It holds the three pieces of real state in the system:
//
//   - TrustStore: the durable allow-list of device network addresses that
//     never have to pair again.
//   - PairingAuthority: the single active 4-digit pairing code, created on
//     demand from the host side and consumed by the first correct submission.
//   - SessionRegistry: per-connection authentication state, created at
//     accept time and destroyed on disconnect.
//
// The pairing flow works as follows:
//  1. The operator starts a pairing code (settings panel or `remotepad pair`)
//  2. The phone enters the code over its WebSocket connection
//  3. On a match, the device's address is added to the trust store and the
//     current session is marked authenticated
//  4. Future connections from the same address skip pairing entirely
//
// Known limitations, preserved deliberately from the original design:
//   - Trust is keyed by network address, not a cryptographic credential.
//     Address reuse or spoofing on the same LAN grants trust.
//   - A wrong code does not invalidate the active code and submissions are
//     not throttled, so a code could be brute forced while active. The code
//     space is small (4 digits) and codes exist only while an operator is
//     actively pairing, which bounds the exposure.
package auth
