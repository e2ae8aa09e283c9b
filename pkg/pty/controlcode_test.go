package pty

import (
	"errors"
	"testing"
)

func TestEncodeControlCaret(t *testing.T) {
	b, err := EncodeControl("^C")
	if err != nil {
		t.Fatalf("EncodeControl(^C): %v", err)
	}
	if b != 0x03 {
		t.Errorf("expected 0x03, got 0x%02x", b)
	}
}

func TestEncodeControlBareLetter(t *testing.T) {
	b, err := EncodeControl("D")
	if err != nil {
		t.Fatalf("EncodeControl(D): %v", err)
	}
	if b != 0x04 {
		t.Errorf("expected 0x04 (EOT), got 0x%02x", b)
	}
}

func TestEncodeControlMnemonic(t *testing.T) {
	cases := map[string]byte{
		"ETX":        0x03,
		"eot":        0x04,
		"EndOfText":  0x03,
		"EscApe":     0x1B,
		"DEL":        0x7F,
		"Delete":     0x7F,
	}
	for name, want := range cases {
		got, err := EncodeControl(name)
		if err != nil {
			t.Errorf("EncodeControl(%q): %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("EncodeControl(%q): expected 0x%02x, got 0x%02x", name, want, got)
		}
	}
}

func TestEncodeControlByteAlreadyInRange(t *testing.T) {
	got, err := EncodeControl(byte(0x1B))
	if err != nil {
		t.Fatalf("EncodeControl(0x1B): %v", err)
	}
	if got != 0x1B {
		t.Errorf("expected passthrough 0x1B, got 0x%02x", got)
	}
}

func TestEncodeControlUnknown(t *testing.T) {
	_, err := EncodeControl("not-a-control-code")
	if !errors.Is(err, ErrBadControlCharacter) {
		t.Errorf("expected ErrBadControlCharacter, got %v", err)
	}
}
