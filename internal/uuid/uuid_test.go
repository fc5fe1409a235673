package uuid

import (
	"strings"
	"testing"
)

func TestNewIsVersion7AndOrdered(t *testing.T) {
	a := New()
	b := New()

	if !IsValid(a) || !IsValid(b) {
		t.Fatalf("expected valid UUIDs, got %q and %q", a, b)
	}
	if a[14] != '7' {
		t.Errorf("expected version 7, got %q", a)
	}
	if a == b {
		t.Error("expected distinct IDs")
	}
	if strings.Compare(a[:13], b[:13]) > 0 {
		t.Errorf("expected time-ordered IDs, got %s then %s", a, b)
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("0190B4E8-8F3C-7A2D-9C1E-1234567890AB")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0190b4e8-8f3c-7a2d-9c1e-1234567890ab" {
		t.Errorf("got %q", got)
	}
	if _, err := Parse("not-a-uuid"); err == nil {
		t.Error("expected an error")
	}
}
