package config

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mensa/internal/closure"
	"mensa/internal/menutable"
	"mensa/internal/rotation"
	"mensa/internal/schedule"
)

// Archiver stores a copy of each accepted raw menu table. Archival is
// best effort: a failed upload is logged, never rejects the change.
type Archiver interface {
	Upload(ctx context.Context, key string, body io.Reader) (string, error)
}

// Service validates configuration changes, persists them, and republishes
// an immutable schedule.Snapshot after each one. Queries read the
// snapshot; a change either lands completely or leaves the previous
// snapshot in force.
type Service struct {
	repo    Repository
	archive Archiver // may be nil

	setupMu sync.Mutex // serializes Setup's configured-check with its writes

	mu       sync.RWMutex
	snap     *schedule.Snapshot
	onChange []func()
}

func NewService(repo Repository, archive Archiver) *Service {
	return &Service{repo: repo, archive: archive}
}

// OnChange registers a callback fired after every snapshot swap.
func (s *Service) OnChange(fn func()) {
	s.onChange = append(s.onChange, fn)
}

// Snapshot returns the current configuration snapshot, nil before setup.
func (s *Service) Snapshot() *schedule.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Service) Configured() bool {
	return s.Snapshot() != nil
}

// Load hydrates the snapshot from the repository at startup.
func (s *Service) Load(ctx context.Context) error {
	return s.rebuild(ctx, false)
}

// --------------------------------------------------
// Initial setup
// --------------------------------------------------

type SetupInput struct {
	StartDate     time.Time
	StartWeek     int
	MenuName      string
	EffectiveDate time.Time // zero value falls back to StartDate
	MenuCSV       string
}

func (s *Service) Setup(ctx context.Context, in SetupInput) error {
	s.setupMu.Lock()
	defer s.setupMu.Unlock()

	if s.Configured() {
		return ErrAlreadyConfigured
	}
	if strings.TrimSpace(in.MenuCSV) == "" {
		return ErrCSVRequired
	}

	table, err := menutable.Parse(in.MenuCSV)
	if err != nil {
		return err
	}
	if in.StartWeek < 1 || in.StartWeek > table.TotalWeeks() {
		return ErrStartWeekExceedsTotal
	}

	effective := in.EffectiveDate
	if effective.IsZero() {
		effective = in.StartDate
	}

	if err := s.repo.SaveCycle(ctx, CycleRecord{
		StartDate: rotation.Date(in.StartDate),
		StartWeek: in.StartWeek,
	}); err != nil {
		return err
	}

	menu := MenuRecord{
		ID:            uuid.New().String(),
		Name:          in.MenuName,
		EffectiveDate: rotation.Date(effective),
		RawCSV:        in.MenuCSV,
	}
	if err := s.repo.InsertMenu(ctx, menu); err != nil {
		return err
	}

	s.archiveCSV(ctx, menu.ID, in.MenuCSV)
	return s.rebuild(ctx, true)
}

// --------------------------------------------------
// Menus
// --------------------------------------------------

func (s *Service) AddMenu(ctx context.Context, name string, effective time.Time, rawCSV string) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(rawCSV) == "" {
		return "", ErrCSVRequired
	}
	if _, err := menutable.Parse(rawCSV); err != nil {
		return "", err
	}

	menu := MenuRecord{
		ID:            uuid.New().String(),
		Name:          name,
		EffectiveDate: rotation.Date(effective),
		RawCSV:        rawCSV,
	}
	if err := s.repo.InsertMenu(ctx, menu); err != nil {
		return "", err
	}

	s.archiveCSV(ctx, menu.ID, rawCSV)
	return menu.ID, s.rebuild(ctx, true)
}

// EditMenu replaces a menu's name, effective date, and optionally its
// table. An empty rawCSV keeps the stored table unchanged.
func (s *Service) EditMenu(ctx context.Context, id, name string, effective time.Time, rawCSV string) error {
	if !s.Configured() {
		return ErrNotConfigured
	}

	current, err := s.findMenu(ctx, id)
	if err != nil {
		return err
	}

	if strings.TrimSpace(rawCSV) == "" {
		rawCSV = current.RawCSV
	} else {
		if _, err := menutable.Parse(rawCSV); err != nil {
			return err
		}
		s.archiveCSV(ctx, id, rawCSV)
	}

	if err := s.repo.UpdateMenu(ctx, MenuRecord{
		ID:            id,
		Name:          name,
		EffectiveDate: rotation.Date(effective),
		RawCSV:        rawCSV,
	}); err != nil {
		return err
	}
	return s.rebuild(ctx, true)
}

func (s *Service) DeleteMenu(ctx context.Context, id string) error {
	if !s.Configured() {
		return ErrNotConfigured
	}

	menus, err := s.repo.ListMenus(ctx)
	if err != nil {
		return err
	}
	if len(menus) == 1 && menus[0].ID == id {
		return ErrLastMenu
	}

	if err := s.repo.DeleteMenu(ctx, id); err != nil {
		return err
	}
	return s.rebuild(ctx, true)
}

// --------------------------------------------------
// Closures
// --------------------------------------------------

// AddClosureDate stores a single closed date as a one-day period.
func (s *Service) AddClosureDate(ctx context.Context, d time.Time) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	d = rotation.Date(d)

	closures, err := s.repo.ListClosures(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range closures {
		if c.Start.Equal(d) && c.End.Equal(d) {
			return "", ErrDuplicateClosureDate
		}
	}

	rec := ClosureRecord{ID: uuid.New().String(), Start: d, End: d}
	if err := s.repo.InsertClosure(ctx, rec); err != nil {
		return "", err
	}
	return rec.ID, s.rebuild(ctx, true)
}

func (s *Service) AddClosurePeriod(ctx context.Context, start, end time.Time) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	period, err := closure.NewPeriod("", start, end)
	if err != nil {
		return "", err
	}

	closures, err := s.repo.ListClosures(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range closures {
		existing := closure.Period{Start: c.Start, End: c.End}
		if period.Overlaps(existing) {
			return "", ErrClosureOverlap
		}
	}

	rec := ClosureRecord{ID: uuid.New().String(), Start: period.Start, End: period.End}
	if err := s.repo.InsertClosure(ctx, rec); err != nil {
		return "", err
	}
	return rec.ID, s.rebuild(ctx, true)
}

func (s *Service) DeleteClosure(ctx context.Context, id string) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	if err := s.repo.DeleteClosure(ctx, id); err != nil {
		return err
	}
	return s.rebuild(ctx, true)
}

// --------------------------------------------------
// Restart points
// --------------------------------------------------

// AddRestart validates the resume week against the menu active at the
// restart date at creation time. Later menu swaps never invalidate a
// stored restart: the modular rotation formula clamps any out-of-range
// anchor week at query time.
func (s *Service) AddRestart(ctx context.Context, d time.Time, resumeWeek int) (string, error) {
	snap := s.Snapshot()
	if snap == nil {
		return "", ErrNotConfigured
	}
	d = rotation.Date(d)

	restarts, err := s.repo.ListRestarts(ctx)
	if err != nil {
		return "", err
	}
	for _, r := range restarts {
		if r.Date.Equal(d) {
			return "", ErrDuplicateRestartDate
		}
	}

	menu, err := schedule.ActiveMenu(d, snap.Menus)
	if err != nil {
		return "", err
	}
	if resumeWeek < 1 || resumeWeek > menu.Table.TotalWeeks() {
		return "", ErrRestartWeekOutOfRange
	}

	rec := RestartRecord{ID: uuid.New().String(), Date: d, ResumeWeek: resumeWeek}
	if err := s.repo.InsertRestart(ctx, rec); err != nil {
		return "", err
	}
	return rec.ID, s.rebuild(ctx, true)
}

func (s *Service) DeleteRestart(ctx context.Context, id string) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	if err := s.repo.DeleteRestart(ctx, id); err != nil {
		return err
	}
	return s.rebuild(ctx, true)
}

// --------------------------------------------------
// Snapshot building
// --------------------------------------------------

// rebuild loads every record, parses the menu tables, and swaps in a
// brand-new snapshot. Nothing here mutates the previous snapshot.
func (s *Service) rebuild(ctx context.Context, notify bool) error {
	cycle, err := s.repo.LoadCycle(ctx)
	if err != nil {
		return err
	}
	if cycle == nil {
		// Not configured yet.
		return nil
	}

	menuRecords, err := s.repo.ListMenus(ctx)
	if err != nil {
		return err
	}
	closureRecords, err := s.repo.ListClosures(ctx)
	if err != nil {
		return err
	}
	restartRecords, err := s.repo.ListRestarts(ctx)
	if err != nil {
		return err
	}

	snap := &schedule.Snapshot{
		Cycle: rotation.CycleConfig{
			StartDate: cycle.StartDate,
			StartWeek: cycle.StartWeek,
		},
	}

	for _, m := range menuRecords {
		table, err := menutable.Parse(m.RawCSV)
		if err != nil {
			// Tables are validated before they are stored, so this
			// points at corrupted storage.
			return fmt.Errorf("stored menu %s (%s): %w", m.Name, m.ID, err)
		}
		snap.Menus = append(snap.Menus, schedule.Menu{
			ID:            m.ID,
			Name:          m.Name,
			EffectiveDate: m.EffectiveDate,
			Table:         table,
		})
	}

	for _, c := range closureRecords {
		period, err := closure.NewPeriod(c.ID, c.Start, c.End)
		if err != nil {
			return fmt.Errorf("stored closure %s: %w", c.ID, err)
		}
		snap.Closures = append(snap.Closures, period)
	}

	for _, r := range restartRecords {
		snap.Restarts = append(snap.Restarts, rotation.RestartPoint{
			ID:         r.ID,
			Date:       r.Date,
			ResumeWeek: r.ResumeWeek,
		})
	}
	sort.Slice(snap.Restarts, func(i, j int) bool {
		return snap.Restarts[i].Date.Before(snap.Restarts[j].Date)
	})

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	if notify {
		for _, fn := range s.onChange {
			fn()
		}
	}
	return nil
}

func (s *Service) findMenu(ctx context.Context, id string) (*MenuRecord, error) {
	menus, err := s.repo.ListMenus(ctx)
	if err != nil {
		return nil, err
	}
	for i := range menus {
		if menus[i].ID == id {
			return &menus[i], nil
		}
	}
	return nil, ErrMenuNotFound
}

func (s *Service) archiveCSV(ctx context.Context, menuID, rawCSV string) {
	if s.archive == nil {
		return
	}
	key := fmt.Sprintf("menus/%s/%s.csv", menuID, uuid.New().String())
	if _, err := s.archive.Upload(ctx, key, strings.NewReader(rawCSV)); err != nil {
		log.Printf("CSV archive failed key=%s: %v", key, err)
	}
}
