package rotation

import (
	"errors"
	"time"
)

var ErrInvalidTotalWeeks = errors.New("total weeks must be at least 1")

// CycleConfig anchors the rotation: on StartDate the cycle is in StartWeek.
// Set once at initial setup; restart points are the mechanism for
// re-anchoring afterwards.
type CycleConfig struct {
	StartDate time.Time
	StartWeek int
}

// RestartPoint forces the rotation to resume at ResumeWeek on Date,
// overriding modular continuation for all dates on or after it until
// the next restart point.
type RestartPoint struct {
	ID         string
	Date       time.Time
	ResumeWeek int
}

// Weekday returns the ISO day of week for d: 1=Monday .. 7=Sunday.
func Weekday(d time.Time) int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// CurrentWeekday computes the rotation position of d: the cycle week in
// 1..totalWeeks and the ISO weekday in 1..7.
//
// The anchor is the latest restart point with Date <= d, falling back to
// the cycle config. Floor division plus the double-mod keep the week in
// range for dates before the anchor as well, without special-casing sign.
// Restarts must be ordered by date.
func CurrentWeekday(d time.Time, cycle CycleConfig, restarts []RestartPoint, totalWeeks int) (int, int, error) {
	if totalWeeks <= 0 {
		return 0, 0, ErrInvalidTotalWeeks
	}

	anchorDate := cycle.StartDate
	anchorWeek := cycle.StartWeek
	for _, rp := range restarts {
		if rp.Date.After(d) {
			break
		}
		anchorDate = rp.Date
		anchorWeek = rp.ResumeWeek
	}

	weeksElapsed := floorDiv(DaysBetween(anchorDate, d), 7)
	week := ((anchorWeek-1+weeksElapsed)%totalWeeks+totalWeeks)%totalWeeks + 1
	return week, Weekday(d), nil
}

// DaysBetween counts whole calendar days from one date to another,
// negative when to precedes from. Times of day and zones are ignored.
func DaysBetween(from, to time.Time) int {
	return int(Date(to).Sub(Date(from)) / (24 * time.Hour))
}

// Date strips d to a plain calendar date at midnight UTC.
func Date(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
