package runner

import "time"

// armFlushTimer (re-)arms the flush timer at FlushInterval. Called once at
// startup and again every time doFlush runs, so the flush cadence is
// self-perpetuating rather than a ticker that could pile up sends while the
// owner is busy.
func (r *Runner[T]) armFlushTimer() {
	if r.flushTimer == nil {
		r.flushTimer = time.NewTimer(r.cfg.FlushInterval)
		return
	}
	r.flushTimer.Reset(r.cfg.FlushInterval)
}

// armPollTimer (re-)arms the poll timer using the configured schedule.
func (r *Runner[T]) armPollTimer() {
	wait := r.sched.next(time.Now())
	if r.pollTimer == nil {
		r.pollTimer = time.NewTimer(wait)
		return
	}
	r.pollTimer.Reset(wait)
}

// doFlush promotes current_buffer into the bound queue as complete batches
// of MaxBatchSize (with one residual partial batch), then re-arms itself.
func (r *Runner[T]) doFlush() {
	defer r.armFlushTimer()

	if len(r.currentBuffer) == 0 {
		return
	}

	b := newBatcher[T](r.cfg.MaxBatchSize, func(batch []T) {
		r.pushBatch(append([]T(nil), batch...))
	})
	for _, e := range r.currentBuffer {
		b.emit(e)
	}
	b.finish()

	r.currentBuffer = r.currentBuffer[:0]
}

// doShrink halves the bound queue's capacity. It always arms shrink
// recovery, not just when the shrink happens to empty the queue
// immediately: a shrink from, say, 100 queued batches down to 50 leaves
// the queue non-empty right away, and only drains to empty later as
// dispatch/completeWorker pop and finish batches over time. checkRecovery
// is the thing that actually fires the Init rerun, and it's re-checked on
// every subsequent dispatch completion (see dispatch.go), so arming the
// flag here is sufficient regardless of when the queue actually empties.
func (r *Runner[T]) doShrink() error {
	if err := r.queue.shrink(); err != nil {
		return err
	}
	r.metrics.shrinkEvents.Inc()
	r.metrics.queueDepth.Set(float64(r.queue.Len()))

	r.needsShrinkRecovery = true
	r.checkRecovery()
	return nil
}
