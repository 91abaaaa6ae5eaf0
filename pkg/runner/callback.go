package runner

import "context"

// Callback is the sole plug-in surface: a pair of operations the Runner
// drives. Init walks an initial corpus, calling emit for each produced
// entry; Run processes one batch. Both are invoked with the caller's
// opaque state closed over by the Callback implementation itself — the
// Runner never holds or mutates it.
type Callback[T comparable] interface {
	// Init enumerates the initial (and, in poll/shrink-recovery mode,
	// repeated) corpus, calling emit for every entry. Init must eventually
	// terminate; any error it returns is logged and treated identically to
	// a normal return — see completeInit in initdriver.go.
	Init(ctx context.Context, emit func(T) error) error

	// Run processes one batch and reports how the Runner should handle it.
	Run(ctx context.Context, batch []T) RunOutcome[T]
}

// RunOutcome is the result handed back from a worker invocation of Run.
type RunOutcome[T comparable] struct {
	retry       bool
	replacement []T
}

// OK reports the batch as processed successfully.
func OK[T comparable]() RunOutcome[T] { return RunOutcome[T]{} }

// Retry requests that the same batch be re-queued at the back of the
// bound queue.
func Retry[T comparable]() RunOutcome[T] { return RunOutcome[T]{retry: true} }

// RetryWith requests that entries be re-queued as a single batch in place
// of the original. entries must be non-empty; the Runner does not enforce
// entries fitting within MaxBatchSize — callers that violate it will see
// an oversized batch on the next dispatch.
func RetryWith[T comparable](entries []T) RunOutcome[T] {
	return RunOutcome[T]{retry: true, replacement: entries}
}
