package rotation

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// 2024-09-02 is a Monday.
var monday = date(2024, time.September, 2)

func TestWeekdayMatchesCalendar(t *testing.T) {
	if wd := Weekday(monday); wd != 1 {
		t.Fatalf("expected Monday=1, got %d", wd)
	}
	if wd := Weekday(date(2024, time.September, 8)); wd != 7 {
		t.Fatalf("expected Sunday=7, got %d", wd)
	}
	if wd := Weekday(date(2024, time.September, 5)); wd != 4 {
		t.Fatalf("expected Thursday=4, got %d", wd)
	}
}

func TestCurrentWeekdayConcreteScenario(t *testing.T) {
	// N=2, cycle starts on a Monday in week 1. Ten days later is a
	// Thursday one full week into the cycle, so week 2.
	cycle := CycleConfig{StartDate: monday, StartWeek: 1}

	week, weekday, err := CurrentWeekday(monday.AddDate(0, 0, 10), cycle, nil, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if week != 2 {
		t.Fatalf("expected week 2, got %d", week)
	}
	if weekday != 4 {
		t.Fatalf("expected Thursday (4), got %d", weekday)
	}
}

func TestWraparound(t *testing.T) {
	// N=3 starting in week 3: one week later the cycle wraps to week 1.
	cycle := CycleConfig{StartDate: monday, StartWeek: 3}

	week, _, err := CurrentWeekday(monday.AddDate(0, 0, 7), cycle, nil, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if week != 1 {
		t.Fatalf("expected wrap to week 1, got %d", week)
	}
}

func TestContinuityAcrossSevenDays(t *testing.T) {
	cycle := CycleConfig{StartDate: monday, StartWeek: 1}

	for offset := -30; offset <= 30; offset++ {
		d := monday.AddDate(0, 0, offset)
		w1, _, err := CurrentWeekday(d, cycle, nil, 4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		w2, _, err := CurrentWeekday(d.AddDate(0, 0, 7), cycle, nil, 4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w1 != w2 {
			t.Fatalf("week(%v)=%d but week(+7d)=%d", d, w1, w2)
		}
		if w1 < 1 || w1 > 4 {
			t.Fatalf("week %d outside 1..4 for %v", w1, d)
		}
	}
}

func TestDatesBeforeCycleStart(t *testing.T) {
	cycle := CycleConfig{StartDate: monday, StartWeek: 1}

	// One day before a Monday anchor is the previous week.
	week, weekday, err := CurrentWeekday(monday.AddDate(0, 0, -1), cycle, nil, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if week != 3 {
		t.Fatalf("expected week 3 before the anchor, got %d", week)
	}
	if weekday != 7 {
		t.Fatalf("expected Sunday (7), got %d", weekday)
	}

	week, _, err = CurrentWeekday(monday.AddDate(0, 0, -7), cycle, nil, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if week != 3 {
		t.Fatalf("expected week 3 one week before the anchor, got %d", week)
	}
}

func TestRestartOverride(t *testing.T) {
	cycle := CycleConfig{StartDate: monday, StartWeek: 1}
	restart := monday.AddDate(0, 0, 28) // a Monday four weeks in
	restarts := []RestartPoint{{Date: restart, ResumeWeek: 3}}

	week, _, err := CurrentWeekday(restart, cycle, restarts, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if week != 3 {
		t.Fatalf("expected resume week 3 on the restart date, got %d", week)
	}

	week, _, err = CurrentWeekday(restart.AddDate(0, 0, 7), cycle, restarts, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if week != 4 {
		t.Fatalf("expected week 4 one week after the restart, got %d", week)
	}

	// Before the restart date the original anchor still applies.
	week, _, err = CurrentWeekday(restart.AddDate(0, 0, -7), cycle, restarts, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if week != 4 {
		t.Fatalf("expected week 4 before the restart, got %d", week)
	}
}

func TestLatestRestartWins(t *testing.T) {
	cycle := CycleConfig{StartDate: monday, StartWeek: 1}
	restarts := []RestartPoint{
		{Date: monday.AddDate(0, 0, 14), ResumeWeek: 1},
		{Date: monday.AddDate(0, 0, 28), ResumeWeek: 2},
	}

	week, _, err := CurrentWeekday(monday.AddDate(0, 0, 29), cycle, restarts, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if week != 2 {
		t.Fatalf("expected the later restart to win, got week %d", week)
	}
}

func TestInvalidTotalWeeks(t *testing.T) {
	cycle := CycleConfig{StartDate: monday, StartWeek: 1}

	_, _, err := CurrentWeekday(monday, cycle, nil, 0)
	if !errors.Is(err, ErrInvalidTotalWeeks) {
		t.Fatalf("expected ErrInvalidTotalWeeks, got %v", err)
	}
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2024, time.September, 2, 23, 30, 0, 0, time.UTC)
	b := time.Date(2024, time.September, 3, 0, 15, 0, 0, time.UTC)

	if n := DaysBetween(a, b); n != 1 {
		t.Fatalf("expected 1 day, got %d", n)
	}
	if n := DaysBetween(b, a); n != -1 {
		t.Fatalf("expected -1 day, got %d", n)
	}
}
