package common

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
)

// ---------- MakeRandHexString ----------

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	s, err := MakeRandHexString(ResetTokenSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != ResetTokenSize*2 {
		t.Fatalf("expected hex length %d, got %d", ResetTokenSize*2, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("string is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

func TestMakeRandHexString_Distinct(t *testing.T) {
	a, err := MakeRandHexString(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := MakeRandHexString(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatalf("two reset tokens are identical: %s", a)
	}
}

// ---------- WipeByteArray ----------

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte("pw123")
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

// ---------- ValidationError ----------

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("signup: %w", NewValidationError("Email required"))

	if !errors.Is(err, ErrorValidation) {
		t.Fatalf("expected errors.Is(err, ErrorValidation) for %v", err)
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected errors.As to find *ValidationError in %v", err)
	}
	if ve.Message != "Email required" {
		t.Fatalf("unexpected message %q", ve.Message)
	}
	if ve.Error() != "validation error: Email required" {
		t.Fatalf("unexpected Error() %q", ve.Error())
	}
}
