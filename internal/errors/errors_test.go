package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodedError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *CodedError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CodeAuthInvalidPin, "pairing code did not match"),
			expected: "auth.invalid_pin: pairing code did not match",
		},
		{
			name:     "error with cause",
			err:      Wrap(CodeStorageOpenFailed, "open database", errors.New("disk full")),
			expected: "storage.open_failed: open database (disk full)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCodedError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	err := Wrap(CodeInternal, "wrapped", cause)

	if err.Unwrap() != cause {
		t.Error("Unwrap() should return the original cause")
	}

	if New(CodeAuthRequired, "not authenticated").Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "CodedError",
			err:      New(CodeAuthRequired, "not authenticated"),
			expected: CodeAuthRequired,
		},
		{
			name:     "wrapped CodedError",
			err:      fmt.Errorf("handling event: %w", SinkFailed("click", errors.New("display gone"))),
			expected: CodeInputSinkFailed,
		},
		{
			name:     "plain error",
			err:      errors.New("some error"),
			expected: CodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGetMessage(t *testing.T) {
	if got := GetMessage(New(CodeAuthInvalidPin, "pairing code did not match")); got != "pairing code did not match" {
		t.Errorf("GetMessage() = %q, want coded message", got)
	}
	if got := GetMessage(errors.New("plain failure")); got != "plain failure" {
		t.Errorf("GetMessage() = %q, want Error() string", got)
	}
	if got := GetMessage(nil); got != "" {
		t.Errorf("GetMessage(nil) = %q, want empty", got)
	}
}

func TestIsCode(t *testing.T) {
	err := SinkFailed("paste", errors.New("clipboard unavailable"))

	if !IsCode(err, CodeInputSinkFailed) {
		t.Error("expected IsCode to match the sink failure code")
	}
	if IsCode(err, CodeAuthRequired) {
		t.Error("expected IsCode to reject a different code")
	}
}

func TestSinkFailed(t *testing.T) {
	cause := errors.New("no display")
	err := SinkFailed("button_down", cause)

	if err.Code != CodeInputSinkFailed {
		t.Errorf("Code = %q, want %q", err.Code, CodeInputSinkFailed)
	}
	if !errors.Is(err, cause) {
		t.Error("expected SinkFailed to wrap the cause")
	}
}
