package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastPolicy(attempts uint) Policy {
	return Policy{
		MaxAttempts:   attempts,
		BaseDelay:     time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		Randomization: 0,
	}
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	attempts := 0
	got, err := Do(context.Background(), fastPolicy(2), func() (string, error) {
		attempts++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || attempts != 1 {
		t.Errorf("got %q after %d attempts, want \"ok\" after 1", got, attempts)
	}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	attempts := 0
	got, err := Do(context.Background(), fastPolicy(3), func() (int, error) {
		attempts++
		if attempts < 2 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 || attempts != 2 {
		t.Errorf("got %d after %d attempts, want 42 after 2", got, attempts)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	attempts := 0
	wantErr := errors.New("still broken")
	_, err := Do(context.Background(), fastPolicy(2), func() (struct{}, error) {
		attempts++
		return struct{}{}, wantErr
	})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestDoStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	_, err := Do(ctx, fastPolicy(5), func() (string, error) {
		attempts++
		return "", errors.New("transient")
	})
	if err == nil {
		t.Fatal("expected error with cancelled context")
	}
	if attempts > 1 {
		t.Errorf("attempts = %d, want at most 1 after cancellation", attempts)
	}
}
