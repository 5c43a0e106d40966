package config

import "context"

// Repository defines all persistence operations for the canteen
// configuration. The service depends only on this interface.
type Repository interface {
	// Cycle anchor; LoadCycle returns nil when setup has not run yet.
	LoadCycle(ctx context.Context) (*CycleRecord, error)
	SaveCycle(ctx context.Context, cycle CycleRecord) error

	// Menus, in insertion order.
	ListMenus(ctx context.Context) ([]MenuRecord, error)
	InsertMenu(ctx context.Context, menu MenuRecord) error
	UpdateMenu(ctx context.Context, menu MenuRecord) error
	DeleteMenu(ctx context.Context, id string) error

	ListClosures(ctx context.Context) ([]ClosureRecord, error)
	InsertClosure(ctx context.Context, c ClosureRecord) error
	DeleteClosure(ctx context.Context, id string) error

	// Restart points, ordered by date.
	ListRestarts(ctx context.Context) ([]RestartRecord, error)
	InsertRestart(ctx context.Context, r RestartRecord) error
	DeleteRestart(ctx context.Context, id string) error
}
