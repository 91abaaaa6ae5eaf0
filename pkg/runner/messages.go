package runner

import "context"

// ownerMsg is anything the owner goroutine's select loop can apply to its
// exclusively-held state. Every mutation of the runner's state funnels
// through this single type, keeping it single-writer.
type ownerMsg[T comparable] interface {
	apply(r *Runner[T])
}

// bufferMsg appends entries to current_buffer on behalf of Buffer().
type bufferMsg[T comparable] struct {
	entries []T
	done    chan struct{}
}

func (m *bufferMsg[T]) apply(r *Runner[T]) {
	r.currentBuffer = append(r.currentBuffer, m.entries...)
	close(m.done)
}

// pushBackMsg enqueues a completed batch (from the init driver's Batcher)
// into the bound queue, through the Deduper when enabled.
type pushBackMsg[T comparable] struct {
	batch []T
}

func (m *pushBackMsg[T]) apply(r *Runner[T]) {
	r.pushBatch(m.batch)
}

// flushTickMsg promotes current_buffer into the bound queue and re-arms
// the flush timer.
type flushTickMsg[T comparable] struct{}

func (flushTickMsg[T]) apply(r *Runner[T]) {
	r.doFlush()
}

// pollTickMsg fires when it's time to consider re-running Init because the
// runner is idle (poll mode). Shrink recovery does not go through this
// timer; see checkRecovery.
type pollTickMsg[T comparable] struct{}

func (pollTickMsg[T]) apply(r *Runner[T]) {
	r.maybeRerunInit()
}

// workerDoneMsg carries a worker's result back to the owner. crashed is
// true when the worker goroutine recovered from a panic instead of
// returning an outcome.
type workerDoneMsg[T comparable] struct {
	handle  uint64
	outcome RunOutcome[T]
	crashed bool
}

func (m *workerDoneMsg[T]) apply(r *Runner[T]) {
	r.completeWorker(m.handle, m.outcome, m.crashed)
}

// initDoneMsg marks init_task complete, regardless of whether Init
// returned an error.
type initDoneMsg[T comparable] struct {
	err error
}

func (m *initDoneMsg[T]) apply(r *Runner[T]) {
	r.completeInit(m.err)
}

// shrinkMsg asks the owner to shrink the bound queue and report the
// result back over reply.
type shrinkMsg[T comparable] struct {
	reply chan error
}

func (m *shrinkMsg[T]) apply(r *Runner[T]) {
	m.reply <- r.doShrink()
}

// shrunkMsg queries whether the bound queue has ever been shrunk.
type shrunkMsg[T comparable] struct {
	reply chan bool
}

func (m *shrunkMsg[T]) apply(r *Runner[T]) {
	m.reply <- r.queue.shrunk()
}

// debugCountMsg reports the buffered, queued and in-flight counts.
type debugCountMsg[T comparable] struct {
	reply chan DebugCount
}

func (m *debugCountMsg[T]) apply(r *Runner[T]) {
	m.reply <- r.computeDebugCount()
}

// stopMsg drains the owner loop; ctx is used only to bound how long Stop
// waits for in-flight workers before abandoning them.
type stopMsg[T comparable] struct {
	ctx  context.Context
	done chan struct{}
}

func (m *stopMsg[T]) apply(r *Runner[T]) {
	r.doStop(m.ctx)
	close(m.done)
}
