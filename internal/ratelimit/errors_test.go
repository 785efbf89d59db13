package ratelimit

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestCodeOf(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeInvalidConfiguration, "window must be positive", nil)
	if CodeOf(err) != CodeInvalidConfiguration {
		t.Fatalf("expected %s got %s", CodeInvalidConfiguration, CodeOf(err))
	}

	wrapped := fmt.Errorf("building limiter: %w", err)
	if CodeOf(wrapped) != CodeInvalidConfiguration {
		t.Fatalf("expected code through wrapping got %s", CodeOf(wrapped))
	}

	if CodeOf(errors.New("plain")) != "" {
		t.Fatalf("expected empty code for plain error")
	}
	if CodeOf(nil) != "" {
		t.Fatalf("expected empty code for nil error")
	}
}

func TestErrInvalidArgument_MatchesWithErrorsIs(t *testing.T) {
	t.Parallel()

	limiter := newTestLimiter(t, 1, time.Second)

	_, err := limiter.Allow("", stamp(1))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument got %v", err)
	}
}

func TestAppError_NilReceiver(t *testing.T) {
	t.Parallel()

	var appErr *AppError
	if appErr.Error() != "" {
		t.Fatalf("expected empty message got %q", appErr.Error())
	}
	if appErr.Unwrap() != nil {
		t.Fatalf("expected nil unwrap")
	}
}
