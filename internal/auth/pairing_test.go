package auth

import (
	"strconv"
	"testing"
)

func TestStartGeneratesFourDigitCode(t *testing.T) {
	pa := NewPairingAuthority()

	for i := 0; i < 100; i++ {
		code, err := pa.Start()
		if err != nil {
			t.Fatalf("Start() error: %v", err)
		}
		if len(code) != 4 {
			t.Fatalf("expected 4-digit code, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric", code)
		}
		if n < 1000 || n > 9999 {
			t.Fatalf("code %d outside [1000, 9999]", n)
		}
	}
}

func TestSubmitCorrectCodeConsumesIt(t *testing.T) {
	pa := NewPairingAuthority()

	code, err := pa.Start()
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	if !pa.Submit(code) {
		t.Fatal("expected correct code to be accepted")
	}
	if pa.HasActiveCode() {
		t.Error("expected code to be consumed after acceptance")
	}
	if pa.Submit(code) {
		t.Error("expected consumed code to be rejected on replay")
	}
}

func TestSubmitWrongCodeKeepsCodeActive(t *testing.T) {
	pa := NewPairingAuthority()

	code, err := pa.Start()
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	// "0000" can never be generated, so it is always wrong.
	if pa.Submit("0000") {
		t.Fatal("expected wrong code to be rejected")
	}
	if !pa.HasActiveCode() {
		t.Error("expected code to remain active after a wrong attempt")
	}
	if !pa.Submit(code) {
		t.Error("expected correct code to still work after a wrong attempt")
	}
}

func TestSubmitWithoutActiveCode(t *testing.T) {
	pa := NewPairingAuthority()

	if pa.Submit("1234") {
		t.Error("expected rejection when no code is active")
	}
}

func TestStartReplacesPreviousCode(t *testing.T) {
	pa := NewPairingAuthority()

	first, err := pa.Start()
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	// Regenerate until the code differs; with 9000 possibilities a
	// few attempts suffice.
	var second string
	for i := 0; i < 50; i++ {
		second, err = pa.Start()
		if err != nil {
			t.Fatalf("Start() error: %v", err)
		}
		if second != first {
			break
		}
	}
	if second == first {
		t.Fatal("could not generate a distinct second code")
	}

	if pa.Submit(first) {
		t.Error("expected replaced code to be rejected")
	}
	if !pa.Submit(second) {
		t.Error("expected latest code to be accepted")
	}
}
