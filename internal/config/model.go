package config

import (
	"errors"
	"time"
)

// Stored records mirror what the repository persists; the service turns
// them into a schedule.Snapshot after every change.

type CycleRecord struct {
	StartDate time.Time
	StartWeek int
}

type MenuRecord struct {
	ID            string
	Name          string
	EffectiveDate time.Time
	RawCSV        string
}

type ClosureRecord struct {
	ID    string
	Start time.Time
	End   time.Time
}

type RestartRecord struct {
	ID         string
	Date       time.Time
	ResumeWeek int
}

var (
	ErrAlreadyConfigured     = errors.New("canteen already configured")
	ErrNotConfigured         = errors.New("canteen not configured yet")
	ErrStartWeekExceedsTotal = errors.New("start week exceeds the menu's total weeks")
	ErrCSVRequired           = errors.New("menu csv is required")
	ErrMenuNotFound          = errors.New("menu not found")
	ErrLastMenu              = errors.New("cannot delete the only menu")
	ErrDuplicateClosureDate  = errors.New("closure date already configured")
	ErrClosureOverlap        = errors.New("closure period overlaps an existing one")
	ErrClosureNotFound       = errors.New("closure not found")
	ErrDuplicateRestartDate  = errors.New("restart date already configured")
	ErrRestartWeekOutOfRange = errors.New("restart week outside the active menu's weeks")
	ErrRestartNotFound       = errors.New("restart point not found")
)
