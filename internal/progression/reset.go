package progression

import (
	"time"

	"github.com/osse101/HabitQuest_Go/internal/domain"
)

// PeriodStart returns the start of the period containing t, in t's location.
// Weekly periods follow ISO weeks and start on Monday.
func PeriodStart(f domain.Frequency, t time.Time) time.Time {
	y, m, d := t.Date()
	switch f {
	case domain.FrequencyMonthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	case domain.FrequencyWeekly:
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	}
}

// ResetPeriodicQuests reopens done or started quests whose period has ended.
// Rewards already granted stay. It returns the number of quests reopened.
func (e *Engine) ResetPeriodicQuests(state domain.ProgressState, now time.Time) (domain.ProgressState, Outcome) {
	next := state.Clone()
	reset := 0
	for i := range next.Quests {
		q := &next.Quests[i]
		if !q.Done && q.Progress == 0 {
			continue
		}
		ref := q.CompletedAt
		if ref == nil {
			ref = state.LastPeriodReset
		}
		if ref == nil {
			continue
		}
		current := PeriodStart(q.Frequency, now)
		if !PeriodStart(q.Frequency, ref.In(now.Location())).Before(current) {
			continue
		}
		q.Done = false
		q.Progress = 0
		q.CompletedAt = nil
		reset++
	}

	if reset > 0 || next.LastPeriodReset == nil {
		t := now
		next.LastPeriodReset = &t
	}
	return next, Outcome{ResetCount: reset}
}
