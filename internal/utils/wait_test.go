package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitFor(t *testing.T) {
	original := sleep
	t.Cleanup(func() { sleep = original })

	var slept time.Duration
	sleep = func(d time.Duration) { slept = d }

	if err := WaitFor(context.Background(), 3*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slept != 3*time.Second {
		t.Fatalf("expected to sleep 3s, slept %s", slept)
	}

	slept = 0
	if err := WaitFor(context.Background(), 0); err != nil || slept != 0 {
		t.Fatalf("non-positive duration must return immediately, err=%v slept=%s", err, slept)
	}
}

func TestWaitForCanceled(t *testing.T) {
	original := sleep
	t.Cleanup(func() { sleep = original })

	release := make(chan struct{})
	finished := make(chan struct{})
	sleep = func(time.Duration) {
		<-release
		close(finished)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WaitFor(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	close(release)
	<-finished
}
