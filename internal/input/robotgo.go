package input

import (
	"math"
	"runtime"

	"github.com/atotto/clipboard"
	"github.com/go-vgo/robotgo"

	apperrors "github.com/remotepad/host/internal/errors"
)

// RobotgoSink drives the host's real pointer and keyboard through robotgo.
// It is stateless; every method maps to a single robotgo call.
type RobotgoSink struct{}

// NewRobotgoSink returns the production input sink.
func NewRobotgoSink() *RobotgoSink {
	return &RobotgoSink{}
}

// MoveRelative moves the cursor by the given deltas.
// robotgo works in whole pixels, so fractional deltas are rounded.
// Sub-pixel remainders are small relative to touch-move deltas and are
// not accumulated.
func (s *RobotgoSink) MoveRelative(dx, dy float64) error {
	robotgo.MoveRelative(int(math.Round(dx)), int(math.Round(dy)))
	return nil
}

// Click presses and releases the given button at the current position.
func (s *RobotgoSink) Click(button Button) error {
	robotgo.Click(string(button), false)
	return nil
}

// ButtonDown presses and holds the left button.
func (s *RobotgoSink) ButtonDown() error {
	if err := robotgo.Toggle("left", "down"); err != nil {
		return apperrors.SinkFailed("button_down", err)
	}
	return nil
}

// ButtonUp releases the left button.
func (s *RobotgoSink) ButtonUp() error {
	if err := robotgo.Toggle("left", "up"); err != nil {
		return apperrors.SinkFailed("button_up", err)
	}
	return nil
}

// Scroll scrolls vertically by the given amount.
func (s *RobotgoSink) Scroll(amount int) error {
	robotgo.Scroll(0, amount)
	return nil
}

// KeyPress taps a single discrete key.
func (s *RobotgoSink) KeyPress(key Key) error {
	if err := robotgo.KeyTap(string(key)); err != nil {
		return apperrors.SinkFailed("key_press", err)
	}
	return nil
}

// PasteText copies the text to the system clipboard and sends the paste
// chord. Pasting a whole token at once keeps multi-byte input (accents,
// CJK, emoji) intact where per-character key synthesis would mangle it.
func (s *RobotgoSink) PasteText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return apperrors.SinkFailed("clipboard_copy", err)
	}
	if err := robotgo.KeyTap("v", pasteModifier()); err != nil {
		return apperrors.SinkFailed("paste", err)
	}
	return nil
}

// pasteModifier returns the paste chord modifier for the current OS.
func pasteModifier() string {
	if runtime.GOOS == "darwin" {
		return "cmd"
	}
	return "ctrl"
}
