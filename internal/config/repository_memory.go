package config

import (
	"context"
	"sort"
)

// InMemoryRepository backs the service in tests.
type InMemoryRepository struct {
	cycle    *CycleRecord
	menus    []MenuRecord
	closures []ClosureRecord
	restarts []RestartRecord
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) LoadCycle(ctx context.Context) (*CycleRecord, error) {
	if r.cycle == nil {
		return nil, nil
	}
	c := *r.cycle
	return &c, nil
}

func (r *InMemoryRepository) SaveCycle(ctx context.Context, cycle CycleRecord) error {
	r.cycle = &cycle
	return nil
}

func (r *InMemoryRepository) ListMenus(ctx context.Context) ([]MenuRecord, error) {
	return append([]MenuRecord(nil), r.menus...), nil
}

func (r *InMemoryRepository) InsertMenu(ctx context.Context, menu MenuRecord) error {
	r.menus = append(r.menus, menu)
	return nil
}

func (r *InMemoryRepository) UpdateMenu(ctx context.Context, menu MenuRecord) error {
	for i := range r.menus {
		if r.menus[i].ID == menu.ID {
			r.menus[i] = menu
			return nil
		}
	}
	return ErrMenuNotFound
}

func (r *InMemoryRepository) DeleteMenu(ctx context.Context, id string) error {
	for i := range r.menus {
		if r.menus[i].ID == id {
			r.menus = append(r.menus[:i], r.menus[i+1:]...)
			return nil
		}
	}
	return ErrMenuNotFound
}

func (r *InMemoryRepository) ListClosures(ctx context.Context) ([]ClosureRecord, error) {
	return append([]ClosureRecord(nil), r.closures...), nil
}

func (r *InMemoryRepository) InsertClosure(ctx context.Context, c ClosureRecord) error {
	r.closures = append(r.closures, c)
	return nil
}

func (r *InMemoryRepository) DeleteClosure(ctx context.Context, id string) error {
	for i := range r.closures {
		if r.closures[i].ID == id {
			r.closures = append(r.closures[:i], r.closures[i+1:]...)
			return nil
		}
	}
	return ErrClosureNotFound
}

func (r *InMemoryRepository) ListRestarts(ctx context.Context) ([]RestartRecord, error) {
	restarts := append([]RestartRecord(nil), r.restarts...)
	sort.Slice(restarts, func(i, j int) bool {
		return restarts[i].Date.Before(restarts[j].Date)
	})
	return restarts, nil
}

func (r *InMemoryRepository) InsertRestart(ctx context.Context, restart RestartRecord) error {
	r.restarts = append(r.restarts, restart)
	return nil
}

func (r *InMemoryRepository) DeleteRestart(ctx context.Context, id string) error {
	for i := range r.restarts {
		if r.restarts[i].ID == id {
			r.restarts = append(r.restarts[:i], r.restarts[i+1:]...)
			return nil
		}
	}
	return ErrRestartNotFound
}
