package memmonitor

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeShrinkable struct {
	calls int
	err   error
}

func (f *fakeShrinkable) Shrink() error {
	f.calls++
	return f.err
}

func (f *fakeShrinkable) Shrunk() bool { return f.calls > 0 }

func TestMonitorShrinksUnderPressure(t *testing.T) {
	m := New(10*time.Millisecond, 1) // 1 byte threshold: always "over"
	fs := &fakeShrinkable{}
	m.RegisterShrinkable(fs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)
	defer m.Stop()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && fs.calls == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	if fs.calls == 0 {
		t.Fatalf("expected Shrink to be called at least once under pressure")
	}
}

func TestMonitorDoesNotRetryAfterMinimumSize(t *testing.T) {
	m := New(10*time.Millisecond, 1)
	fs := &fakeShrinkable{err: errors.New("runner: bound queue already at minimum size")}
	m.RegisterShrinkable(fs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)
	defer m.Stop()

	time.Sleep(80 * time.Millisecond)
	if fs.calls != 1 {
		t.Fatalf("expected exactly one Shrink attempt per pressure episode, got %d", fs.calls)
	}
}

func TestMonitorDoesNotShrinkUnderThreshold(t *testing.T) {
	m := New(10*time.Millisecond, 1<<62)
	fs := &fakeShrinkable{}
	m.RegisterShrinkable(fs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)
	defer m.Stop()

	time.Sleep(50 * time.Millisecond)
	if fs.calls != 0 {
		t.Fatalf("expected no Shrink calls under threshold, got %d", fs.calls)
	}
}
