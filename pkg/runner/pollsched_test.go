package runner

import (
	"testing"
	"time"
)

func TestPollScheduleFlatInterval(t *testing.T) {
	p := pollSchedule{interval: 3 * time.Second}
	got := p.next(time.Now())
	if got != 3*time.Second {
		t.Fatalf("expected flat interval, got %s", got)
	}
}

func TestPollScheduleInvalidCronFallsBackToInterval(t *testing.T) {
	p := pollSchedule{cronExpr: "not a cron expression", interval: 7 * time.Second}
	got := p.next(time.Now())
	if got != 7*time.Second {
		t.Fatalf("expected fallback to interval on invalid cron, got %s", got)
	}
}

func TestPollScheduleValidCronAdvances(t *testing.T) {
	p := pollSchedule{cronExpr: "* * * * *", interval: time.Minute}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got := p.next(now)
	if got <= 0 || got > time.Minute {
		t.Fatalf("expected a wait within one minute for a minutely cron, got %s", got)
	}
}
