package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIsMatchesKind(t *testing.T) {
	err := NotFound("node", "n1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("NotFound error should match ErrNotFound")
	}
	if errors.Is(err, ErrConflict) {
		t.Fatal("NotFound error should not match ErrConflict")
	}
	wrapped := fmt.Errorf("session: delete: %w", err)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatal("wrapped error should still match")
	}
}

func TestKindOfAndStatus(t *testing.T) {
	tests := []struct {
		err    error
		kind   Kind
		status int
	}{
		{Validation("bad"), KindValidationFailed, http.StatusBadRequest},
		{New(KindParseFailed, "invalid diagram code: x"), KindParseFailed, http.StatusBadRequest},
		{Unsupported("export format png is not implemented"), KindUnsupportedFormat, http.StatusNotImplemented},
		{NotFound("edge", "e1"), KindNotFound, http.StatusNotFound},
		{ErrConflict, KindConflict, http.StatusConflict},
		{errors.New("boom"), KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.kind {
			t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.kind)
		}
		if got := HTTPStatus(tt.err); got != tt.status {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.status)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("unexpected token")
	err := Wrap(KindParseFailed, cause, "invalid diagram code: %s", cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause should be reachable")
	}
	if err.Error() != "invalid diagram code: unexpected token" {
		t.Errorf("message = %q", err.Error())
	}
}
