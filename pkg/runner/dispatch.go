package runner

import (
	"context"
)

// pushBatch is the single insertion point for batches entering the bound
// queue, used uniformly by flush, init pushback, and retry so that dedup
// (when enabled) always runs on the push edge rather than the pop edge.
func (r *Runner[T]) pushBatch(batch []T) {
	if len(batch) == 0 {
		return
	}

	if r.cfg.DedupEntries {
		batch = dedupFilter(batch, r.flattenQueued(), r.inFlight)
		if len(batch) == 0 {
			return
		}
	}

	rejected := r.queue.pushBack([][]T{batch})
	if len(rejected) > 0 {
		dropped := 0
		for _, b := range rejected {
			dropped += len(b)
		}
		r.metrics.dropped.Add(float64(dropped))
		r.log.Warn("dropping entries: bound queue at capacity", "dropped", dropped)
	}
	r.metrics.queueDepth.Set(float64(r.queue.Len()))

	r.dispatch()
}

// flattenQueued returns every entry currently sitting in queued batches, for
// the deduper's "queued" set.
func (r *Runner[T]) flattenQueued() []T {
	var out []T
	for _, batch := range r.queue.all() {
		out = append(out, batch...)
	}
	return out
}

// dispatch spawns worker goroutines for queued batches while concurrency
// headroom remains. It is called any time a batch is pushed or a worker
// finishes.
func (r *Runner[T]) dispatch() {
	for len(r.inFlight) < r.cfg.MaxConcurrency {
		batch, ok := r.queue.popFront()
		if !ok {
			break
		}
		r.metrics.queueDepth.Set(float64(r.queue.Len()))
		handle := r.nextHandle
		r.nextHandle++
		r.inFlight[handle] = batch
		r.metrics.inFlight.Set(float64(len(r.inFlight)))
		r.logBatch("dispatching batch", len(batch))
		r.spawnWorker(handle, batch)
	}
}

// spawnWorker runs the callback's Run for one batch in its own goroutine,
// recovering from panics and reporting the outcome back through the
// mailbox so only the owner ever mutates inFlight/queue.
func (r *Runner[T]) spawnWorker(handle uint64, batch []T) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		// Workers run against a background context rather than the owner's
		// Start context: a canceled Run should still get the chance to
		// report an outcome back through the mailbox.
		ctx := context.Background()

		var outcome RunOutcome[T]
		crashed := false
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					crashed = true
					r.log.Error("worker panic, treating as crash", "panic", rec)
				}
			}()
			outcome = r.cb.Run(ctx, batch)
		}()

		r.mailbox <- &workerDoneMsg[T]{handle: handle, outcome: outcome, crashed: crashed}
	}()
}

// completeWorker retires an in-flight batch and, if the outcome calls for
// it, re-queues it (or its replacement). A crash is treated identically to
// an explicit retry of the original batch.
func (r *Runner[T]) completeWorker(handle uint64, outcome RunOutcome[T], crashed bool) {
	batch, ok := r.inFlight[handle]
	if !ok {
		return
	}
	delete(r.inFlight, handle)
	r.metrics.inFlight.Set(float64(len(r.inFlight)))

	if crashed || outcome.retry {
		requeue := batch
		if outcome.replacement != nil {
			requeue = outcome.replacement
		}
		r.metrics.retries.Inc()
		r.pushBatch(requeue)
	}

	r.dispatch()
	r.checkRecovery()
}
