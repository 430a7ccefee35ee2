// Package input abstracts host-level pointer and keyboard injection.
// The router talks to the Sink interface; the real implementation drives
// the OS through robotgo. Tests substitute an in-memory sink.
package input

// Button identifies a mouse button for click/down/up actions.
type Button string

const (
	ButtonLeft  Button = "left"
	ButtonRight Button = "right"
)

// Key identifies a discrete key press.
// Only the keys reachable from the remote keyboard are listed.
type Key string

const (
	KeyBackspace Key = "backspace"
	KeyEnter     Key = "enter"
)

// Sink performs host input actions.
// All operations are fire-and-forget from the caller's perspective: a
// returned error means the action did not happen, never that the sink is
// unusable for subsequent actions.
type Sink interface {
	// MoveRelative moves the cursor by (dx, dy) pixels from its current
	// position. Fractional deltas are resolved by the implementation.
	MoveRelative(dx, dy float64) error

	// Click presses and releases the given button.
	Click(button Button) error

	// ButtonDown presses and holds the left button (drag start).
	ButtonDown() error

	// ButtonUp releases the left button (drag end).
	ButtonUp() error

	// Scroll scrolls vertically by the given amount in scroll units.
	// Positive amounts scroll up.
	Scroll(amount int) error

	// KeyPress taps a single discrete key.
	KeyPress(key Key) error

	// PasteText injects literal text through the clipboard-paste path.
	// Implementations must not fall back to per-character key events:
	// paste is what keeps non-ASCII input intact.
	PasteText(text string) error
}
