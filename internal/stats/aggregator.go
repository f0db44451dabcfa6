// Package stats computes aggregate statistics over session records.
// All computations are pure: inputs are never mutated, and results are
// deterministic for a fixed input set and reference clock.
package stats

import (
	"sort"
	"time"

	"github.com/xvierd/pomotui/internal/domain"
)

// DailyStats summarizes one calendar day. Only completed sessions count.
type DailyStats struct {
	Date           time.Time
	WorkSessions   int
	BreakSessions  int
	FocusedMinutes int
	TasksWorkedOn  int
}

// PeriodStats summarizes a run of consecutive days, one DailyStats per
// day in chronological order, zero-filled for days with no sessions.
type PeriodStats struct {
	Start          time.Time
	End            time.Time
	Days           []DailyStats
	WorkSessions   int
	BreakSessions  int
	FocusedMinutes int
}

// MostProductiveDay returns the day with the most completed work
// sessions; ties go to the earliest date. ok is false for empty periods.
func (p PeriodStats) MostProductiveDay() (DailyStats, bool) {
	if len(p.Days) == 0 {
		return DailyStats{}, false
	}
	best := p.Days[0]
	for _, d := range p.Days[1:] {
		if d.WorkSessions > best.WorkSessions {
			best = d
		}
	}
	return best, true
}

// TaskStat pairs a task with its completed work session count.
type TaskStat struct {
	Task         *domain.Task
	WorkSessions int
}

// Aggregator computes statistics from session records against an
// injectable reference clock.
type Aggregator struct {
	now func() time.Time
}

// New creates an aggregator using the wall clock.
func New() *Aggregator {
	return &Aggregator{now: time.Now}
}

// NewWithClock creates an aggregator with a fixed reference clock.
func NewWithClock(now func() time.Time) *Aggregator {
	return &Aggregator{now: now}
}

// Daily computes statistics for the calendar day containing date, with the
// day boundary at local midnight in date's location.
func (a *Aggregator) Daily(sessions []*domain.Session, date time.Time) DailyStats {
	dayStart := startOfDay(date)
	dayEnd := dayStart.Add(24 * time.Hour)

	stats := DailyStats{Date: dayStart}
	tasks := make(map[int64]struct{})

	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		if s.StartTime.Before(dayStart) || !s.StartTime.Before(dayEnd) {
			continue
		}
		if s.SessionType.IsBreak() {
			stats.BreakSessions++
			continue
		}
		stats.WorkSessions++
		stats.FocusedMinutes += s.Duration / 60
		if s.TaskID != nil {
			tasks[*s.TaskID] = struct{}{}
		}
	}

	stats.TasksWorkedOn = len(tasks)
	return stats
}

// Today computes statistics for the current day per the reference clock.
func (a *Aggregator) Today(sessions []*domain.Session) DailyStats {
	return a.Daily(sessions, a.now())
}

// Weekly computes statistics for the 7 days ending today per the
// reference clock.
func (a *Aggregator) Weekly(sessions []*domain.Session) PeriodStats {
	return a.trailing(sessions, a.now(), 7)
}

// Monthly computes statistics for the 30 days ending today per the
// reference clock.
func (a *Aggregator) Monthly(sessions []*domain.Session) PeriodStats {
	return a.trailing(sessions, a.now(), 30)
}

// trailing builds a period of n days ending at end, oldest first.
func (a *Aggregator) trailing(sessions []*domain.Session, end time.Time, n int) PeriodStats {
	endDay := startOfDay(end)
	period := PeriodStats{
		Start: endDay.AddDate(0, 0, -(n - 1)),
		End:   endDay,
		Days:  make([]DailyStats, 0, n),
	}

	for i := n - 1; i >= 0; i-- {
		day := a.Daily(sessions, endDay.AddDate(0, 0, -i))
		period.Days = append(period.Days, day)
		period.WorkSessions += day.WorkSessions
		period.BreakSessions += day.BreakSessions
		period.FocusedMinutes += day.FocusedMinutes
	}

	return period
}

// TopTasks returns up to limit tasks ordered by completed work session
// count descending, ties broken by ascending task id. Sessions without a
// task reference are excluded from the breakdown.
func (a *Aggregator) TopTasks(sessions []*domain.Session, tasks []*domain.Task, limit int) []TaskStat {
	counts := make(map[int64]int)
	for _, s := range sessions {
		if !s.Completed || s.SessionType.IsBreak() || s.TaskID == nil {
			continue
		}
		counts[*s.TaskID]++
	}

	result := make([]TaskStat, 0, len(tasks))
	for _, t := range tasks {
		if n, ok := counts[t.ID]; ok && n > 0 {
			result = append(result, TaskStat{Task: t, WorkSessions: n})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].WorkSessions != result[j].WorkSessions {
			return result[i].WorkSessions > result[j].WorkSessions
		}
		return result[i].Task.ID < result[j].Task.ID
	})

	if limit >= 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
