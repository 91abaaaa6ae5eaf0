package runner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"chainindexer/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
)

// DebugCount is the snapshot returned by Runner.DebugCount: the number of
// entries waiting in the current buffer, the number of batches in the bound
// queue, and the number of batches in flight. Queued and in-flight work is
// counted in batches, not entries; no combined pending-entry figure is
// computed.
type DebugCount struct {
	Buffered     int
	QueuedBatches int
	InFlight     int
}

// Runner drives a Callback over a buffered, batched, bounded, retrying
// pipeline with cooperative memory shrinking. All mutable state is owned
// exclusively by a single goroutine reached only through the mailbox
// channel, which is what makes the rest of Runner's fields safe to touch
// without a mutex.
type Runner[T comparable] struct {
	cb   Callback[T]
	cfg  Config
	name string
	log  *slog.Logger

	mailbox chan ownerMsg[T]
	wg      sync.WaitGroup
	runCtx  context.Context
	cancel  context.CancelFunc
	started bool

	// Owner-exclusive state. Touched only inside apply() methods running on
	// the owner goroutine — see messages.go.
	currentBuffer []T
	queue         *boundQueue[[]T]
	inFlight      map[uint64][]T
	nextHandle    uint64

	initRunning          bool
	needsShrinkRecovery  bool
	stopping             bool

	flushTimer *time.Timer
	pollTimer  *time.Timer
	sched      pollSchedule

	metrics *metrics
}

// New constructs a Runner. It does not start any goroutines; call Start for
// that.
func New[T comparable](cb Callback[T], cfg Config, reg prometheus.Registerer) (*Runner[T], error) {
	if cb == nil {
		return nil, errConfig("callback must not be nil")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	name := cfg.Metadata["name"]
	r := &Runner[T]{
		cb:       cb,
		cfg:      cfg,
		name:     name,
		log:      logger.Log.With("component", "runner", "runner", name),
		mailbox:  make(chan ownerMsg[T], 64),
		queue:    newBoundQueue[[]T](cfg.MaxQueueSize),
		inFlight: make(map[uint64][]T),
		sched:    pollSchedule{cronExpr: cfg.PollCron, interval: cfg.pollInterval()},
		metrics:  newMetrics(reg, name),
	}
	return r, nil
}

// Start launches the owner goroutine, the init driver, and the flush timer,
// and registers the runner with the configured memory monitor.
func (r *Runner[T]) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	r.runCtx = ctx
	r.cancel = cancel
	r.started = true

	if r.cfg.MemoryMonitor != nil {
		r.cfg.MemoryMonitor.RegisterShrinkable(r)
	}

	r.wg.Add(1)
	go r.ownerLoop(ctx)

	r.runInit(ctx)
}

// Stop tears down the owner loop, then waits for in-flight workers and the
// init goroutine up to ctx's deadline; any still running after that are
// abandoned.
func (r *Runner[T]) Stop(ctx context.Context) {
	if !r.started {
		return
	}
	done := make(chan struct{})
	r.mailbox <- &stopMsg[T]{ctx: ctx, done: done}
	<-done
	r.cancel()

	waited := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-ctx.Done():
	}
}

// Buffer enqueues entries for inclusion in the next flush. It blocks until
// the owner has accepted them, but does not wait for the flush itself.
func (r *Runner[T]) Buffer(entries ...T) {
	if len(entries) == 0 {
		return
	}
	done := make(chan struct{})
	r.mailbox <- &bufferMsg[T]{entries: entries, done: done}
	<-done
}

// Shrink implements Shrinkable.
func (r *Runner[T]) Shrink() error {
	reply := make(chan error, 1)
	r.mailbox <- &shrinkMsg[T]{reply: reply}
	return <-reply
}

// Shrunk implements Shrinkable.
func (r *Runner[T]) Shrunk() bool {
	reply := make(chan bool, 1)
	r.mailbox <- &shrunkMsg[T]{reply: reply}
	return <-reply
}

// DebugCount reports the buffered entry count and the queued and in-flight
// batch counts.
func (r *Runner[T]) DebugCount() DebugCount {
	reply := make(chan DebugCount, 1)
	r.mailbox <- &debugCountMsg[T]{reply: reply}
	return <-reply
}

// ownerLoop is the single-writer select loop. Every mutation to Runner's
// owner-exclusive fields happens inside an apply() call dispatched from
// here, which is what makes the rest of the fields safe to touch without a
// mutex.
func (r *Runner[T]) ownerLoop(ctx context.Context) {
	defer r.wg.Done()

	r.armFlushTimer()

	for {
		var flushC, pollC <-chan time.Time
		if r.flushTimer != nil {
			flushC = r.flushTimer.C
		}
		if r.pollTimer != nil {
			pollC = r.pollTimer.C
		}

		select {
		case msg := <-r.mailbox:
			msg.apply(r)
			if r.stopping {
				return
			}
		case <-flushC:
			(flushTickMsg[T]{}).apply(r)
		case <-pollC:
			(pollTickMsg[T]{}).apply(r)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Runner[T]) computeDebugCount() DebugCount {
	return DebugCount{
		Buffered:      len(r.currentBuffer),
		QueuedBatches: r.queue.Len(),
		InFlight:      len(r.inFlight),
	}
}

func (r *Runner[T]) doStop(ctx context.Context) {
	r.stopping = true
	if r.flushTimer != nil {
		r.flushTimer.Stop()
	}
	if r.pollTimer != nil {
		r.pollTimer.Stop()
	}
	// In-flight workers are independent goroutines reporting back over the
	// mailbox; since the owner is about to exit, results arriving after
	// this point are silently dropped. The workers are not canceled: they
	// run on a background context. doStop itself does not wait for them
	// (the select below returns at once); Stop does the waiting, bounded by
	// its ctx, after the owner has exited.
	if len(r.inFlight) == 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(0):
	}
}
