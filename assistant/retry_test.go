package assistant

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithRetry_SucceedsFirstTry(t *testing.T) {
	backend := &MockBackend{Response: "ok"}
	wrapped := WithRetry(backend, 3, time.Millisecond, nil)

	out, err := wrapped.Generate(context.Background(), "s", "u")
	if err != nil {
		t.Fatal(err)
	}
	if out != "ok" {
		t.Errorf("got %q", out)
	}
	if backend.Calls != 1 {
		t.Errorf("got %d calls, want 1", backend.Calls)
	}
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	backend := &MockBackend{Err: errors.New("always down")}
	wrapped := WithRetry(backend, 3, time.Millisecond, nil)

	_, err := wrapped.Generate(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error")
	}
	if backend.Calls != 3 {
		t.Errorf("got %d calls, want 3", backend.Calls)
	}
}

type flakyBackend struct {
	failuresLeft int
	calls        int
}

func (f *flakyBackend) ProviderName() string { return "Flaky" }

func (f *flakyBackend) Generate(_ context.Context, _, _ string) (string, error) {
	f.calls++
	if f.failuresLeft > 0 {
		f.failuresLeft--
		return "", &BackendUnavailableError{Provider: "Flaky", Err: errors.New("transient")}
	}
	return "recovered", nil
}

func TestWithRetry_RecoversAfterTransientFailure(t *testing.T) {
	backend := &flakyBackend{failuresLeft: 2}
	wrapped := WithRetry(backend, 3, time.Millisecond, nil)

	out, err := wrapped.Generate(context.Background(), "s", "u")
	if err != nil {
		t.Fatal(err)
	}
	if out != "recovered" {
		t.Errorf("got %q", out)
	}
	if backend.calls != 3 {
		t.Errorf("got %d calls, want 3", backend.calls)
	}
}

func TestWithRetry_RespectsContextCancellation(t *testing.T) {
	backend := &MockBackend{Err: errors.New("down")}
	wrapped := WithRetry(backend, 5, 10*time.Second, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := wrapped.Generate(ctx, "s", "u")
	if err == nil {
		t.Fatal("expected error")
	}
	var unavailable *BackendUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected BackendUnavailableError, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("retry loop ignored context deadline, took %v", elapsed)
	}
	if backend.Calls != 1 {
		t.Errorf("got %d calls, want 1", backend.Calls)
	}
}

func TestWithRetry_ClampsBadSettings(t *testing.T) {
	backend := &MockBackend{Err: errors.New("down")}
	wrapped := WithRetry(backend, 0, -time.Second, nil)

	_, err := wrapped.Generate(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error")
	}
	if backend.Calls != 1 {
		t.Errorf("got %d calls, want 1 (clamped)", backend.Calls)
	}
}
