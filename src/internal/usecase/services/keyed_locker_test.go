package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestKeyedLockerSerialisesSameKey(t *testing.T) {
	locks := newKeyedLocker()

	release, err := locks.Acquire(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := locks.Acquire(ctx, "c-1"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected second acquire to time out, got %v", err)
	}

	other, err := locks.Acquire(context.Background(), "c-2")
	if err != nil {
		t.Fatalf("expected other key to be free, got %v", err)
	}
	other()

	release()
	release()
	if locks.size() != 0 {
		t.Fatalf("expected locks to be cleaned up, got %d", locks.size())
	}

	again, err := locks.Acquire(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("expected key to be free after release, got %v", err)
	}
	again()
}
