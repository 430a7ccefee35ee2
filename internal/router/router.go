// Package router translates remote touch events into host input actions.
// It sits between the control channel and the input sink: the server decodes
// events off the wire and hands them here, the router gates them on session
// authentication, applies the configured scaling, and drives the sink.
package router

import (
	"log"

	"github.com/remotepad/host/internal/input"
	"github.com/remotepad/host/internal/settings"
)

// scrollStep converts a touch-scroll delta into native scroll units.
// One unit of scaled delta corresponds to 60 scroll units, which feels
// close to one notch of a physical wheel per short swipe.
const scrollStep = 60

// Discrete key tokens accepted by Type. Anything else is literal text.
const (
	tokenBackspace = "BACKSPACE"
	tokenEnter     = "ENTER"
)

// Authorizer answers whether a session may control the host.
// Implemented by auth.SessionRegistry.
type Authorizer interface {
	Authenticated(sessionID string) bool
}

// Router gates and scales input events before they reach the sink.
//
// Events from unauthenticated sessions are dropped without any reply on the
// wire; the client learns its standing from auth status messages, never from
// event feedback. Sink failures are logged and swallowed for the same
// reason: input is fire-and-forget, and one failed action must not take the
// connection down.
type Router struct {
	auth     Authorizer
	settings *settings.Settings
	sink     input.Sink
}

// New creates a router over the given authorizer, scaling settings and sink.
func New(auth Authorizer, s *settings.Settings, sink input.Sink) *Router {
	return &Router{auth: auth, settings: s, sink: sink}
}

// Move moves the cursor by the given touch deltas, scaled by the mouse
// sensitivity setting.
func (r *Router) Move(sessionID string, dx, dy float64) {
	if !r.auth.Authenticated(sessionID) {
		return
	}
	sens := r.settings.MouseSensitivity()
	if err := r.sink.MoveRelative(dx*sens, dy*sens); err != nil {
		log.Printf("router: move failed: %v", err)
	}
}

// Click performs a left click.
func (r *Router) Click(sessionID string) {
	if !r.auth.Authenticated(sessionID) {
		return
	}
	if err := r.sink.Click(input.ButtonLeft); err != nil {
		log.Printf("router: click failed: %v", err)
	}
}

// RightClick performs a right click.
func (r *Router) RightClick(sessionID string) {
	if !r.auth.Authenticated(sessionID) {
		return
	}
	if err := r.sink.Click(input.ButtonRight); err != nil {
		log.Printf("router: right click failed: %v", err)
	}
}

// MouseDown presses and holds the left button (drag start).
func (r *Router) MouseDown(sessionID string) {
	if !r.auth.Authenticated(sessionID) {
		return
	}
	if err := r.sink.ButtonDown(); err != nil {
		log.Printf("router: mouse down failed: %v", err)
	}
}

// MouseUp releases the left button (drag end).
func (r *Router) MouseUp(sessionID string) {
	if !r.auth.Authenticated(sessionID) {
		return
	}
	if err := r.sink.ButtonUp(); err != nil {
		log.Printf("router: mouse up failed: %v", err)
	}
}

// Scroll scrolls vertically by the given touch delta, scaled by the scroll
// sensitivity setting. The scaled delta is multiplied by scrollStep and
// truncated toward zero; deltas too small to reach a whole unit still reach
// the sink as zero, which is a no-op.
func (r *Router) Scroll(sessionID string, dy float64) {
	if !r.auth.Authenticated(sessionID) {
		return
	}
	amount := int(dy * r.settings.ScrollSensitivity() * scrollStep)
	if err := r.sink.Scroll(amount); err != nil {
		log.Printf("router: scroll failed: %v", err)
	}
}

// Type injects text or a discrete key.
// The tokens BACKSPACE and ENTER map to key presses; every other payload is
// literal text, delivered through the clipboard-paste path so non-ASCII
// input survives intact. The token match is exact and case-sensitive: a
// user typing the lowercase word "enter" gets the word, not the key.
func (r *Router) Type(sessionID, text string) {
	if !r.auth.Authenticated(sessionID) {
		return
	}

	switch text {
	case tokenBackspace:
		if err := r.sink.KeyPress(input.KeyBackspace); err != nil {
			log.Printf("router: backspace failed: %v", err)
		}
	case tokenEnter:
		if err := r.sink.KeyPress(input.KeyEnter); err != nil {
			log.Printf("router: enter failed: %v", err)
		}
	default:
		if text == "" {
			return
		}
		if err := r.sink.PasteText(text); err != nil {
			log.Printf("router: type failed: %v", err)
		}
	}
}
