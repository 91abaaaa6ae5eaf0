package runner

import (
	"time"

	"github.com/adhocore/gronx"
)

// pollSchedule computes how long to wait before the next poll-mode Init
// rerun. When cronExpr is set it defers to gronx; otherwise it falls back
// to a flat interval.
type pollSchedule struct {
	cronExpr string
	interval time.Duration
}

// next returns the duration to wait from now. A cron parse failure falls
// back to interval so a bad expression degrades gracefully instead of
// stalling poll mode entirely.
func (p pollSchedule) next(now time.Time) time.Duration {
	if p.cronExpr == "" {
		return p.interval
	}
	if !gronx.IsValid(p.cronExpr) {
		return p.interval
	}
	at, err := gronx.NextTickAfter(p.cronExpr, now.UTC(), false)
	if err != nil {
		return p.interval
	}
	wait := at.Sub(now.UTC())
	if wait <= 0 {
		return p.interval
	}
	return wait
}
