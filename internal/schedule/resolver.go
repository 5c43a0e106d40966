package schedule

import (
	"errors"
	"time"

	"mensa/internal/rotation"
)

var ErrNoValidDay = errors.New("no upcoming school day found")

// ResolveDay answers "what is served on date d". The rotation position
// and menu name are always filled in; meals are only present when the
// date is not closed and the active menu has a row for that weekday.
func ResolveDay(snap *Snapshot, d time.Time) (*DayInfo, error) {
	menu, err := ActiveMenu(d, snap.Menus)
	if err != nil {
		return nil, err
	}

	week, weekday, err := rotation.CurrentWeekday(d, snap.Cycle, snap.Restarts, menu.Table.TotalWeeks())
	if err != nil {
		return nil, err
	}

	info := &DayInfo{
		Date:     rotation.Date(d),
		Week:     week,
		Weekday:  weekday,
		DayName:  DayName(weekday),
		MenuName: menu.Name,
	}

	if snap.Closures.IsClosed(d) {
		info.IsClosed = true
		return info, nil
	}

	entry, ok := menu.Table.Entry(week, weekday)
	if !ok {
		// No row for this weekday: no school, but not a closure.
		return info, nil
	}

	info.HasEntry = true
	info.DayAttrs = entry.DayAttrs
	info.MainCourse = &entry.MainCourse
	info.SecondCourse = &entry.SecondCourse
	info.Side = &entry.Side
	info.Fruit = &entry.Fruit
	return info, nil
}

// ResolveNext finds the first school day strictly after d that is not
// closed and has a menu entry, recomputing rotation and closure state
// per candidate date. The scan covers one full rotation plus a week of
// slack; exhausting it means every day is closed or has no entry.
func ResolveNext(snap *Snapshot, d time.Time) (*DayInfo, error) {
	limit := 7*maxTotalWeeks(snap.Menus) + 7
	for i := 1; i <= limit; i++ {
		info, err := ResolveDay(snap, d.AddDate(0, 0, i))
		if err != nil {
			return nil, err
		}
		if !info.IsClosed && info.HasEntry {
			return info, nil
		}
	}
	return nil, ErrNoValidDay
}

func maxTotalWeeks(menus []Menu) int {
	max := 0
	for i := range menus {
		if n := menus[i].Table.TotalWeeks(); n > max {
			max = n
		}
	}
	return max
}
