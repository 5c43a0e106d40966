package closure

import (
	"errors"
	"time"
)

var ErrInvalidPeriod = errors.New("closure period ends before it starts")

// Period is an inclusive [Start, End] range of closed dates.
// A single closed date is stored as a one-day period.
type Period struct {
	ID    string
	Start time.Time
	End   time.Time
}

// NewPeriod builds a validated period; End < Start is rejected.
func NewPeriod(id string, start, end time.Time) (Period, error) {
	start = dateOnly(start)
	end = dateOnly(end)
	if end.Before(start) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{ID: id, Start: start, End: end}, nil
}

func (p Period) Contains(d time.Time) bool {
	d = dateOnly(d)
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p Period) Overlaps(o Period) bool {
	return !p.Start.After(o.End) && !o.Start.After(p.End)
}

// SingleDay reports whether the period covers exactly one date.
func (p Period) SingleDay() bool {
	return p.Start.Equal(p.End)
}

// Index is the set of closure periods. Overlapping entries are allowed
// and act as a union; the set is small and user-curated, so membership
// is a linear scan.
type Index []Period

func (x Index) IsClosed(d time.Time) bool {
	for _, p := range x {
		if p.Contains(d) {
			return true
		}
	}
	return false
}

func dateOnly(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
