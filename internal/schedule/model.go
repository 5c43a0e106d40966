package schedule

import (
	"time"

	"mensa/internal/closure"
	"mensa/internal/menutable"
	"mensa/internal/rotation"
)

// Menu is one parsed menu revision bound to the date from which it
// supersedes earlier revisions.
type Menu struct {
	ID            string
	Name          string
	EffectiveDate time.Time
	Table         *menutable.MenuTable
}

// Snapshot is the immutable configuration a query runs against. The
// configuration layer builds a fresh snapshot on every change and swaps
// it in wholesale; nothing mutates a snapshot once published.
type Snapshot struct {
	Cycle    rotation.CycleConfig
	Menus    []Menu // insertion order, ties on effective date resolved by position
	Closures closure.Index
	Restarts []rotation.RestartPoint // ordered by date
}

// TotalWeeks returns N of the menu active at d, 0 when no menus exist.
func (s *Snapshot) TotalWeeks(d time.Time) int {
	menu, err := ActiveMenu(d, s.Menus)
	if err != nil {
		return 0
	}
	return menu.Table.TotalWeeks()
}

var dayNames = map[int]string{
	1: "Monday",
	2: "Tuesday",
	3: "Wednesday",
	4: "Thursday",
	5: "Friday",
	6: "Saturday",
	7: "Sunday",
}

// DayName returns the English name for an ISO weekday number.
func DayName(weekday int) string {
	if name, ok := dayNames[weekday]; ok {
		return name
	}
	return "Unknown"
}

// DayInfo is the resolved answer for one date: the rotation position
// plus the matched meals, if any. Meals are nil when the school is
// closed or the table has no row for the weekday; IsClosed tells the
// two cases apart.
type DayInfo struct {
	Date         time.Time
	Week         int
	Weekday      int
	DayName      string
	MenuName     string
	IsClosed     bool
	HasEntry     bool
	DayAttrs     *menutable.AttrMap
	MainCourse   *menutable.Meal
	SecondCourse *menutable.Meal
	Side         *menutable.Meal
	Fruit        *menutable.Meal
}
