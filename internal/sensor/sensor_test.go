package sensor

import (
	"testing"
	"time"

	"mensa/internal/coordinator"
	"mensa/internal/menutable"
	"mensa/internal/rotation"
	"mensa/internal/schedule"
)

const csv = `week_number,week_day,note,main_course,allergens,second_course,side,fruit
1,1,Theme day,Pasta,gluten,Chicken,Salad,Apple
1,2,,Rice,,Fish,Carrots,Banana
`

func projected(t *testing.T, today time.Time) map[string]Value {
	t.Helper()

	table, err := menutable.Parse(csv)
	if err != nil {
		t.Fatalf("failed to parse table: %v", err)
	}

	// 2024-09-02 is a Monday.
	start := time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC)
	snap := &schedule.Snapshot{
		Cycle: rotation.CycleConfig{StartDate: start, StartWeek: 1},
		Menus: []schedule.Menu{
			{ID: "m1", Name: "School Year", EffectiveDate: start, Table: table},
		},
	}

	todayInfo, err := schedule.ResolveDay(snap, today)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	nextInfo, err := schedule.ResolveNext(snap, today)
	if err != nil {
		t.Fatalf("resolve next failed: %v", err)
	}

	return Project(&coordinator.Data{
		Today:      todayInfo,
		Next:       nextInfo,
		TotalWeeks: 1,
		UpdatedAt:  today,
	})
}

func TestProjectSchoolDay(t *testing.T) {
	monday := time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC)
	sensors := projected(t, monday)

	main := sensors["main_course_today"]
	if !main.Available || main.State != "Pasta" {
		t.Fatalf("unexpected main_course_today: %+v", main)
	}
	if main.Attributes["allergens"] != "gluten" {
		t.Fatalf("expected meal attributes merged in, got %+v", main.Attributes)
	}
	if main.Attributes["menu_name"] != "School Year" {
		t.Fatalf("expected menu name attribute, got %+v", main.Attributes)
	}

	day := sensors["day_today"]
	if day.State != "Monday" || !day.Available {
		t.Fatalf("unexpected day_today: %+v", day)
	}
	if day.Attributes["note"] != "Theme day" {
		t.Fatalf("expected day attributes merged in, got %+v", day.Attributes)
	}

	next := sensors["day_next"]
	if next.State != "Tuesday" {
		t.Fatalf("expected Tuesday as next school day, got %+v", next)
	}
	if sensors["fruit_next"].State != "Banana" {
		t.Fatalf("unexpected fruit_next: %+v", sensors["fruit_next"])
	}

	week := sensors["current_week"]
	if week.State != 1 {
		t.Fatalf("unexpected current_week: %+v", week)
	}
}

func TestProjectNextDayDateKey(t *testing.T) {
	monday := time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC)
	sensors := projected(t, monday)

	day := sensors["day_next"]
	if day.Attributes["next_date"] != "2024-09-03" {
		t.Fatalf("expected next_date on day_next, got %+v", day.Attributes)
	}
	if _, ok := day.Attributes["date"]; ok {
		t.Fatalf("next-day sensor must not carry date, got %+v", day.Attributes)
	}

	if sensors["fruit_next"].Attributes["next_date"] != "2024-09-03" {
		t.Fatalf("expected next_date on meal sensors, got %+v", sensors["fruit_next"].Attributes)
	}

	today := sensors["day_today"]
	if today.Attributes["date"] != "2024-09-02" {
		t.Fatalf("expected date on day_today, got %+v", today.Attributes)
	}
}

func TestProjectDayWithoutEntry(t *testing.T) {
	saturday := time.Date(2024, time.September, 7, 0, 0, 0, 0, time.UTC)
	sensors := projected(t, saturday)

	main := sensors["main_course_today"]
	if main.Available || main.State != nil {
		t.Fatalf("expected unavailable meal sensor on Saturday, got %+v", main)
	}
	if main.Attributes["is_closed"] != false {
		t.Fatal("a weekend without rows is not a closure")
	}

	day := sensors["day_today"]
	if day.Available {
		t.Fatal("day sensor must be unavailable without an entry")
	}
	if day.State != "Saturday" {
		t.Fatalf("day name still reported, got %+v", day.State)
	}
}
