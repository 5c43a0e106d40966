package schedule

import (
	"errors"
	"time"
)

var ErrNoMenus = errors.New("no menus configured")

// ActiveMenu picks the menu that governs date d: the one with the
// latest effective date not after d. When d precedes every effective
// date, the earliest-available menu is returned instead of failing, so
// a query always has an answer. Ties on effective date go to the menu
// added later.
func ActiveMenu(d time.Time, menus []Menu) (*Menu, error) {
	if len(menus) == 0 {
		return nil, ErrNoMenus
	}

	var active *Menu
	for i := range menus {
		m := &menus[i]
		if m.EffectiveDate.After(d) {
			continue
		}
		if active == nil || !m.EffectiveDate.Before(active.EffectiveDate) {
			active = m
		}
	}
	if active != nil {
		return active, nil
	}

	earliest := &menus[0]
	for i := range menus {
		if menus[i].EffectiveDate.Before(earliest.EffectiveDate) {
			earliest = &menus[i]
		}
	}
	return earliest, nil
}
