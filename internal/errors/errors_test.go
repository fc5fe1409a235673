package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	err := WithMessage(ErrInvalidInput, "age group is required")
	if !stderrors.Is(err, ErrInvalidInput) {
		t.Fatal("expected WithMessage copy to match its sentinel")
	}
	if stderrors.Is(err, ErrUnknownLocation) {
		t.Fatal("expected different codes not to match")
	}

	wrapped := fmt.Errorf("calculate: %w", WithMessagef(ErrUnknownLocation, "unknown city %q", "atlantis"))
	if !stderrors.Is(wrapped, ErrUnknownLocation) {
		t.Fatal("expected wrapped error to match through fmt.Errorf")
	}
}

func TestWrapKeepsInternal(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrInternalServer, cause)

	if err.Message != ErrInternalServer.Message {
		t.Errorf("expected sentinel message, got %q", err.Message)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected Unwrap to expose the internal error")
	}
}
