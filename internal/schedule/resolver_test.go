package schedule

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"mensa/internal/closure"
	"mensa/internal/menutable"
	"mensa/internal/rotation"
)

// weekdayTable builds an N-week table with rows for Monday..Friday and
// meal names encoding their (week, day) position.
func weekdayTable(t *testing.T, weeks int) *menutable.MenuTable {
	t.Helper()

	var b strings.Builder
	b.WriteString("week_number,week_day,main_course,second_course,side,fruit\n")
	for week := 1; week <= weeks; week++ {
		for day := 1; day <= 5; day++ {
			fmt.Fprintf(&b, "%d,%d,main w%dd%d,second w%dd%d,side w%dd%d,fruit w%dd%d\n",
				week, day, week, day, week, day, week, day, week, day)
		}
	}

	table, err := menutable.Parse(b.String())
	if err != nil {
		t.Fatalf("failed to build test table: %v", err)
	}
	return table
}

// 2024-09-02 is a Monday.
var cycleStart = date(2024, time.September, 2)

func twoWeekSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	return &Snapshot{
		Cycle: rotation.CycleConfig{StartDate: cycleStart, StartWeek: 1},
		Menus: []Menu{
			{ID: "m1", Name: "School Year", EffectiveDate: cycleStart, Table: weekdayTable(t, 2)},
		},
	}
}

func TestResolveDayConcreteScenario(t *testing.T) {
	snap := twoWeekSnapshot(t)

	// Ten days after a Monday start in week 1: week 2, Thursday.
	info, err := ResolveDay(snap, cycleStart.AddDate(0, 0, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info.Week != 2 {
		t.Fatalf("expected week 2, got %d", info.Week)
	}
	if info.Weekday != 4 {
		t.Fatalf("expected Thursday (4), got %d", info.Weekday)
	}
	if !info.HasEntry {
		t.Fatal("expected a menu entry")
	}
	if info.MainCourse.Value != "main w2d4" {
		t.Fatalf("expected the week 2 Thursday row, got %q", info.MainCourse.Value)
	}
	if info.MenuName != "School Year" {
		t.Fatalf("unexpected menu name %q", info.MenuName)
	}
}

func TestResolveDayWeekendHasNoEntry(t *testing.T) {
	snap := twoWeekSnapshot(t)

	info, err := ResolveDay(snap, cycleStart.AddDate(0, 0, 5)) // Saturday
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info.IsClosed {
		t.Fatal("a weekend without rows is not a closure")
	}
	if info.HasEntry {
		t.Fatal("expected no entry for Saturday")
	}
	if info.MainCourse != nil {
		t.Fatal("meals must be absent without an entry")
	}
	if info.Weekday != 6 {
		t.Fatalf("rotation position still reported, expected Saturday (6), got %d", info.Weekday)
	}
}

func TestResolveDayClosed(t *testing.T) {
	snap := twoWeekSnapshot(t)
	p, _ := closure.NewPeriod("xmas", date(2024, time.December, 24), date(2025, time.January, 6))
	snap.Closures = closure.Index{p}

	info, err := ResolveDay(snap, date(2024, time.December, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !info.IsClosed {
		t.Fatal("expected a closed day")
	}
	if info.HasEntry || info.MainCourse != nil {
		t.Fatal("meals must be absent on a closed day")
	}
	if info.Week == 0 || info.Weekday == 0 {
		t.Fatal("rotation position must still be reported on closed days")
	}
}

func TestResolveNextSkipsClosurePeriod(t *testing.T) {
	snap := twoWeekSnapshot(t)
	p, _ := closure.NewPeriod("xmas", date(2024, time.December, 24), date(2025, time.January, 6))
	snap.Closures = closure.Index{p}

	info, err := ResolveNext(snap, date(2024, time.December, 24))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Jan 7 2025 is a Tuesday, the first open weekday after the break.
	want := date(2025, time.January, 7)
	if !info.Date.Equal(want) {
		t.Fatalf("expected %v, got %v", want, info.Date)
	}
	if info.Weekday != 2 {
		t.Fatalf("expected Tuesday (2), got %d", info.Weekday)
	}
	// 127 days after the start Monday: 18 full weeks, so week 1 again.
	if info.Week != 1 {
		t.Fatalf("expected recomputed week 1, got %d", info.Week)
	}
	if info.MainCourse.Value != "main w1d2" {
		t.Fatalf("expected the week 1 Tuesday row, got %q", info.MainCourse.Value)
	}
}

func TestResolveNextSkipsWeekend(t *testing.T) {
	snap := twoWeekSnapshot(t)

	// From Friday of week 1 the next school day is Monday of week 2.
	info, err := ResolveNext(snap, cycleStart.AddDate(0, 0, 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !info.Date.Equal(cycleStart.AddDate(0, 0, 7)) {
		t.Fatalf("expected the following Monday, got %v", info.Date)
	}
	if info.Week != 2 || info.Weekday != 1 {
		t.Fatalf("expected week 2 Monday, got week %d day %d", info.Week, info.Weekday)
	}
}

func TestResolveNextExhaustsBoundedScan(t *testing.T) {
	snap := twoWeekSnapshot(t)

	// Close far more than one full rotation plus slack (7*2+7 days).
	p, _ := closure.NewPeriod("works", cycleStart, cycleStart.AddDate(0, 0, 60))
	snap.Closures = closure.Index{p}

	_, err := ResolveNext(snap, cycleStart)
	if !errors.Is(err, ErrNoValidDay) {
		t.Fatalf("expected ErrNoValidDay, got %v", err)
	}
}

func TestResolveDayPicksActiveMenu(t *testing.T) {
	snap := twoWeekSnapshot(t)
	winter := weekdayTable(t, 1)
	snap.Menus = append(snap.Menus, Menu{
		ID:            "m2",
		Name:          "Winter",
		EffectiveDate: date(2025, time.January, 7),
		Table:         winter,
	})

	info, err := ResolveDay(snap, date(2024, time.December, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.MenuName != "School Year" {
		t.Fatalf("expected the first menu in December, got %q", info.MenuName)
	}

	info, err = ResolveDay(snap, date(2025, time.February, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.MenuName != "Winter" {
		t.Fatalf("expected the winter menu in February, got %q", info.MenuName)
	}
	// The one-week winter menu pins every date to week 1.
	if info.Week != 1 {
		t.Fatalf("expected week 1 under a one-week menu, got %d", info.Week)
	}
}
