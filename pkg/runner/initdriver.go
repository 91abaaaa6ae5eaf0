package runner

import "context"

// runInit spawns Init in its own goroutine, wiring emit through a batcher
// so completed batches flow back into the bound queue via pushBackMsg on
// the mailbox — the same insertion point used by flush and retry. Init's
// completion (error or not) is reported back via initDoneMsg. Every call
// site passes r.runCtx (set once in Start) rather than a fresh
// background context, so a callback that blocks on ctx.Done() to return
// is still joined or abandoned by Stop, even on a poll- or
// shrink-triggered rerun.
func (r *Runner[T]) runInit(ctx context.Context) {
	r.initRunning = true

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		b := newBatcher[T](r.cfg.MaxBatchSize, func(batch []T) {
			cp := append([]T(nil), batch...)
			r.mailbox <- &pushBackMsg[T]{batch: cp}
		})

		err := r.cb.Init(ctx, func(entry T) error {
			b.emit(entry)
			return nil
		})
		b.finish()

		r.mailbox <- &initDoneMsg[T]{err: err}
	}()
}

// completeInit marks init_task finished and arms the poll timer if poll
// mode is enabled. Poll-mode reruns are deferred to the schedule, whereas
// shrink-recovery reruns happen immediately once the queue is empty — see
// checkRecovery.
func (r *Runner[T]) completeInit(err error) {
	r.initRunning = false
	if err != nil {
		r.log.Error("init returned an error", "err", err)
	}

	if r.cfg.Poll {
		r.armPollTimer()
	}

	r.checkRecovery()
}

// maybeRerunInit fires when the poll timer elapses. Poll mode reruns Init
// only once the bound queue has actually emptied: while there's still
// backlog to drain, the runner is not idle and a rerun would just pile
// more entries onto an already-busy queue.
func (r *Runner[T]) maybeRerunInit() {
	if r.initRunning || r.stopping {
		return
	}
	if r.queue.Len() != 0 || len(r.inFlight) != 0 {
		// Still draining backlog: not idle yet, so re-arm and check again
		// on the next tick instead of letting the poll timer go dark.
		r.armPollTimer()
		return
	}
	r.metrics.initReruns.Inc()
	r.runInit(r.runCtx)
}

// checkRecovery reruns Init immediately, bypassing the poll schedule, when
// a shrink has emptied the queue and no init is currently running and
// nothing is in flight. This is the "shrink recovery" path, distinguished
// from ordinary poll-mode reruns.
func (r *Runner[T]) checkRecovery() {
	if !r.needsShrinkRecovery || r.initRunning || r.stopping {
		return
	}
	if r.queue.Len() != 0 || len(r.inFlight) != 0 {
		return
	}
	r.needsShrinkRecovery = false
	r.metrics.initReruns.Inc()
	r.runInit(r.runCtx)
}
