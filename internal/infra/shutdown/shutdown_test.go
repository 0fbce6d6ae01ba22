package shutdown

import (
	"context"
	"errors"
	"sync"
	"syscall"
	"testing"
	"time"
)

func TestNewHandler(t *testing.T) {
	h := NewHandler(5 * time.Second)
	if h == nil {
		t.Fatal("NewHandler returned nil")
	}
	if h.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", h.timeout)
	}
	if h.hooks == nil {
		t.Error("hooks should be initialized")
	}
}

func TestHandler_Shutdown_ReverseOrder(t *testing.T) {
	h := NewHandler(5 * time.Second)

	var mu sync.Mutex
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		h.OnShutdown(func(ctx context.Context) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})
	}

	if err := h.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	if len(order) != 3 || order[0] != 3 || order[1] != 2 || order[2] != 1 {
		t.Errorf("hooks called in wrong order: %v, want [3 2 1]", order)
	}

	select {
	case <-h.Done():
	default:
		t.Error("Done channel should be closed after Shutdown")
	}
}

func TestHandler_Shutdown_Once(t *testing.T) {
	h := NewHandler(time.Second)

	calls := 0
	hookErr := errors.New("close failed")
	h.OnShutdown(func(ctx context.Context) error {
		calls++
		return hookErr
	})

	if err := h.Shutdown(); !errors.Is(err, hookErr) {
		t.Errorf("Shutdown() = %v, want %v", err, hookErr)
	}
	if err := h.Shutdown(); !errors.Is(err, hookErr) {
		t.Errorf("second Shutdown() = %v, want %v", err, hookErr)
	}
	if calls != 1 {
		t.Errorf("hook ran %d times, want 1", calls)
	}
}

func TestHandler_Shutdown_HookContextHasDeadline(t *testing.T) {
	h := NewHandler(time.Second)
	h.OnShutdown(func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("hook context should carry the handler timeout")
		}
		return nil
	})
	_ = h.Shutdown()
}

func TestHandler_NotifyContext_Signal(t *testing.T) {
	h := NewHandler(time.Second)

	ran := make(chan struct{})
	h.OnShutdown(func(ctx context.Context) error {
		close(ran)
		return nil
	})

	ctx, stop := h.NotifyContext(context.Background())
	defer stop()

	// Give the signal handler time to register.
	time.Sleep(50 * time.Millisecond)
	syscall.Kill(syscall.Getpid(), syscall.SIGTERM)

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled by the signal")
	}
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown hooks did not run")
	}
}

func TestHandler_NotifyContext_Stop(t *testing.T) {
	h := NewHandler(time.Second)
	ctx, stop := h.NotifyContext(context.Background())
	stop()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("stop should cancel the context")
	}
	select {
	case <-h.Done():
		t.Error("stop alone must not run shutdown hooks")
	default:
	}
}
