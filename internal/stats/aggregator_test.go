package stats

import (
	"testing"
	"time"

	"github.com/xvierd/pomotui/internal/domain"
)

var testNow = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// session builds a completed session starting at the given offset from
// the reference time.
func session(t domain.SessionType, offset time.Duration, durationSec int, taskID *int64) *domain.Session {
	start := testNow.Add(offset)
	end := start.Add(time.Duration(durationSec) * time.Second)
	return &domain.Session{
		TaskID:      taskID,
		StartTime:   start,
		EndTime:     &end,
		Duration:    durationSec,
		Completed:   true,
		SessionType: t,
	}
}

func taskID(id int64) *int64 { return &id }

func TestAggregator_Daily(t *testing.T) {
	agg := NewWithClock(fixedClock)

	sessions := []*domain.Session{
		session(domain.SessionTypeWork, 0, 1500, taskID(1)),
		session(domain.SessionTypeWork, -time.Hour, 1500, taskID(1)),
		session(domain.SessionTypeWork, -2*time.Hour, 1500, taskID(2)),
		session(domain.SessionTypeShortBreak, -30*time.Minute, 300, nil),
		session(domain.SessionTypeLongBreak, -90*time.Minute, 900, nil),
		// Yesterday, excluded by the day boundary.
		session(domain.SessionTypeWork, -24*time.Hour, 1500, taskID(1)),
		// Abandoned, never counted.
		{
			StartTime:   testNow.Add(-10 * time.Minute),
			Duration:    1500,
			Completed:   false,
			SessionType: domain.SessionTypeWork,
		},
	}

	day := agg.Today(sessions)

	if day.WorkSessions != 3 {
		t.Errorf("WorkSessions = %d, want 3", day.WorkSessions)
	}
	if day.BreakSessions != 2 {
		t.Errorf("BreakSessions = %d, want 2", day.BreakSessions)
	}
	if day.FocusedMinutes != 75 {
		t.Errorf("FocusedMinutes = %d, want 75", day.FocusedMinutes)
	}
	if day.TasksWorkedOn != 2 {
		t.Errorf("TasksWorkedOn = %d, want 2", day.TasksWorkedOn)
	}
	if !day.Date.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v, want local midnight", day.Date)
	}
}

func TestAggregator_DailyIsPure(t *testing.T) {
	agg := NewWithClock(fixedClock)
	s := session(domain.SessionTypeWork, 0, 1500, taskID(1))
	before := *s

	_ = agg.Daily([]*domain.Session{s}, testNow)
	_ = agg.Daily([]*domain.Session{s}, testNow)

	if *s != before {
		t.Error("Daily() mutated its input")
	}
}

func TestAggregator_Weekly(t *testing.T) {
	agg := NewWithClock(fixedClock)

	sessions := []*domain.Session{
		session(domain.SessionTypeWork, 0, 1500, nil),
		session(domain.SessionTypeWork, -48*time.Hour, 1500, nil),
		session(domain.SessionTypeWork, -48*time.Hour, 1500, nil),
		// 8 days back, outside the window.
		session(domain.SessionTypeWork, -8*24*time.Hour, 1500, nil),
	}

	week := agg.Weekly(sessions)

	if len(week.Days) != 7 {
		t.Fatalf("len(Days) = %d, want 7", len(week.Days))
	}
	if week.WorkSessions != 3 {
		t.Errorf("WorkSessions = %d, want 3", week.WorkSessions)
	}
	if week.FocusedMinutes != 75 {
		t.Errorf("FocusedMinutes = %d, want 75", week.FocusedMinutes)
	}

	// Days run oldest to newest and include empty days.
	for i := 1; i < len(week.Days); i++ {
		if !week.Days[i].Date.After(week.Days[i-1].Date) {
			t.Fatalf("Days out of order at %d: %v then %v", i, week.Days[i-1].Date, week.Days[i].Date)
		}
	}
	if week.Days[6].WorkSessions != 1 {
		t.Errorf("today WorkSessions = %d, want 1", week.Days[6].WorkSessions)
	}
	if week.Days[4].WorkSessions != 2 {
		t.Errorf("two days ago WorkSessions = %d, want 2", week.Days[4].WorkSessions)
	}
	if week.Days[0].WorkSessions != 0 {
		t.Errorf("oldest day WorkSessions = %d, want 0", week.Days[0].WorkSessions)
	}

	best, ok := week.MostProductiveDay()
	if !ok {
		t.Fatal("MostProductiveDay() reported empty period")
	}
	if best.WorkSessions != 2 {
		t.Errorf("MostProductiveDay() sessions = %d, want 2", best.WorkSessions)
	}
}

func TestAggregator_Monthly(t *testing.T) {
	agg := NewWithClock(fixedClock)

	week := agg.Monthly(nil)
	if len(week.Days) != 30 {
		t.Fatalf("len(Days) = %d, want 30", len(week.Days))
	}
	if week.WorkSessions != 0 || week.FocusedMinutes != 0 {
		t.Errorf("empty period totals = %d/%d, want zero", week.WorkSessions, week.FocusedMinutes)
	}
}

func TestPeriodStats_MostProductiveDayTies(t *testing.T) {
	period := PeriodStats{
		Days: []DailyStats{
			{Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), WorkSessions: 2},
			{Date: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), WorkSessions: 2},
			{Date: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), WorkSessions: 1},
		},
	}

	best, ok := period.MostProductiveDay()
	if !ok {
		t.Fatal("MostProductiveDay() reported empty period")
	}
	if best.Date.Day() != 10 {
		t.Errorf("tie went to %v, want the earliest day", best.Date)
	}
}

func TestAggregator_TopTasks(t *testing.T) {
	agg := NewWithClock(fixedClock)

	tasks := []*domain.Task{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Beta"},
		{ID: 3, Name: "Gamma"},
		{ID: 4, Name: "Idle"},
	}
	sessions := []*domain.Session{
		session(domain.SessionTypeWork, 0, 1500, taskID(1)),
		session(domain.SessionTypeWork, -time.Hour, 1500, taskID(2)),
		session(domain.SessionTypeWork, -2*time.Hour, 1500, taskID(2)),
		session(domain.SessionTypeWork, -3*time.Hour, 1500, taskID(3)),
		// Breaks and untasked work never enter the breakdown.
		session(domain.SessionTypeShortBreak, -4*time.Hour, 300, taskID(2)),
		session(domain.SessionTypeWork, -5*time.Hour, 1500, nil),
	}

	top := agg.TopTasks(sessions, tasks, 5)

	if len(top) != 3 {
		t.Fatalf("len(top) = %d, want 3", len(top))
	}
	if top[0].Task.ID != 2 || top[0].WorkSessions != 2 {
		t.Errorf("top[0] = task %d (%d), want task 2 (2)", top[0].Task.ID, top[0].WorkSessions)
	}
	// Tie between tasks 1 and 3 breaks by ascending id.
	if top[1].Task.ID != 1 || top[2].Task.ID != 3 {
		t.Errorf("tie order = %d, %d, want 1, 3", top[1].Task.ID, top[2].Task.ID)
	}

	limited := agg.TopTasks(sessions, tasks, 1)
	if len(limited) != 1 || limited[0].Task.ID != 2 {
		t.Errorf("limit 1 returned %d entries", len(limited))
	}
}
