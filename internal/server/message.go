// Package server provides the WebSocket control channel for remote
// touchpad clients. It accepts browser connections, reports their
// authentication standing, handles pairing-code submissions, and feeds
// input events to the router.
package server

import (
	"encoding/json"
)

// MessageType identifies the kind of message on the control channel.
// Each type has a specific payload structure defined below.
type MessageType string

const (
	// Client -> server event messages.

	// MessageTypeMove moves the cursor by a touch delta.
	// Payload: MovePayload
	MessageTypeMove MessageType = "move"

	// MessageTypeClick performs a left click.
	// Payload: none
	MessageTypeClick MessageType = "click"

	// MessageTypeMouseDown presses and holds the left button (drag start).
	// Payload: none
	MessageTypeMouseDown MessageType = "mousedown"

	// MessageTypeMouseUp releases the left button (drag end).
	// Payload: none
	MessageTypeMouseUp MessageType = "mouseup"

	// MessageTypeScroll scrolls vertically by a touch delta.
	// Payload: ScrollPayload
	MessageTypeScroll MessageType = "scroll"

	// MessageTypeRightClick performs a right click.
	// Payload: none
	MessageTypeRightClick MessageType = "rightclick"

	// MessageTypeType injects text or a discrete key (BACKSPACE, ENTER).
	// Payload: TypePayload
	MessageTypeType MessageType = "type"

	// MessageTypeCheckPin submits a pairing code for verification.
	// This is the only client message handled before authentication.
	// Payload: CheckPinPayload
	MessageTypeCheckPin MessageType = "check_pin"

	// Server -> client messages.

	// MessageTypeAuthStatus reports the connection's authentication
	// standing. Sent once on connect and after every check_pin.
	// Payload: AuthStatusPayload
	MessageTypeAuthStatus MessageType = "auth_status"

	// MessageTypeError reports a rejected message to the client.
	// Payload: ErrorPayload
	MessageTypeError MessageType = "error"
)

// Message is the envelope for all outbound control-channel messages.
type Message struct {
	// Type identifies what kind of message this is.
	Type MessageType `json:"type"`

	// Payload contains the message-specific data.
	// The structure depends on the Type field.
	Payload interface{} `json:"payload"`
}

// incomingMessage is the envelope for inbound messages. The payload is
// kept raw so each handler can decode its own type.
type incomingMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload carries a relative cursor movement in touch units.
// The host applies sensitivity scaling before injecting the motion.
type MovePayload struct {
	// DX is the horizontal delta. Positive moves right.
	DX float64 `json:"dx"`

	// DY is the vertical delta. Positive moves down.
	DY float64 `json:"dy"`
}

// ScrollPayload carries a vertical scroll delta in touch units.
type ScrollPayload struct {
	// DY is the scroll delta. Positive scrolls up.
	DY float64 `json:"dy"`
}

// TypePayload carries keyboard input.
// The tokens BACKSPACE and ENTER request discrete key presses;
// any other text is injected literally.
type TypePayload struct {
	Text string `json:"text"`
}

// CheckPinPayload carries a pairing-code submission.
type CheckPinPayload struct {
	// Pin is the 4-digit code as displayed on the host.
	Pin string `json:"pin"`
}

// AuthStatusPayload reports a connection's authentication standing.
type AuthStatusPayload struct {
	// Trusted is true when the connection may control the host.
	Trusted bool `json:"trusted"`

	// Message is a human-readable status for display on the client.
	// Empty on the initial connect notification.
	Message string `json:"message,omitempty"`
}

// ErrorPayload carries error information to the client.
type ErrorPayload struct {
	// Code is a stable error code (e.g., "server.invalid_message").
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// NewErrorMessage creates an error message to send to clients.
func NewErrorMessage(code, message string) Message {
	return Message{
		Type: MessageTypeError,
		Payload: ErrorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// NewAuthStatusMessage creates an auth status message.
func NewAuthStatusMessage(trusted bool, message string) Message {
	return Message{
		Type: MessageTypeAuthStatus,
		Payload: AuthStatusPayload{
			Trusted: trusted,
			Message: message,
		},
	}
}
