package config

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) LoadCycle(ctx context.Context) (*CycleRecord, error) {
	var cycle CycleRecord
	err := r.db.QueryRow(ctx, `
		SELECT start_date, start_week
		FROM cycle_config
		WHERE id = 1
	`).Scan(&cycle.StartDate, &cycle.StartWeek)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cycle.StartDate = dateUTC(cycle.StartDate)
	return &cycle, nil
}

func (r *PostgresRepository) SaveCycle(ctx context.Context, cycle CycleRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO cycle_config (id, start_date, start_week)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET start_date = $1, start_week = $2
	`, cycle.StartDate, cycle.StartWeek)
	return err
}

func (r *PostgresRepository) ListMenus(ctx context.Context) ([]MenuRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, effective_date, raw_csv
		FROM menus
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menus []MenuRecord
	for rows.Next() {
		var m MenuRecord
		if err := rows.Scan(&m.ID, &m.Name, &m.EffectiveDate, &m.RawCSV); err != nil {
			return nil, err
		}
		m.EffectiveDate = dateUTC(m.EffectiveDate)
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

func (r *PostgresRepository) InsertMenu(ctx context.Context, menu MenuRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO menus (id, name, effective_date, raw_csv)
		VALUES ($1, $2, $3, $4)
	`, menu.ID, menu.Name, menu.EffectiveDate, menu.RawCSV)
	return err
}

func (r *PostgresRepository) UpdateMenu(ctx context.Context, menu MenuRecord) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE menus
		SET name = $2, effective_date = $3, raw_csv = $4
		WHERE id = $1
	`, menu.ID, menu.Name, menu.EffectiveDate, menu.RawCSV)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMenuNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteMenu(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMenuNotFound
	}
	return nil
}

func (r *PostgresRepository) ListClosures(ctx context.Context) ([]ClosureRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, start_date, end_date
		FROM closures
		ORDER BY start_date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var closures []ClosureRecord
	for rows.Next() {
		var c ClosureRecord
		if err := rows.Scan(&c.ID, &c.Start, &c.End); err != nil {
			return nil, err
		}
		c.Start = dateUTC(c.Start)
		c.End = dateUTC(c.End)
		closures = append(closures, c)
	}
	return closures, rows.Err()
}

func (r *PostgresRepository) InsertClosure(ctx context.Context, c ClosureRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO closures (id, start_date, end_date)
		VALUES ($1, $2, $3)
	`, c.ID, c.Start, c.End)
	return err
}

func (r *PostgresRepository) DeleteClosure(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM closures WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrClosureNotFound
	}
	return nil
}

func (r *PostgresRepository) ListRestarts(ctx context.Context) ([]RestartRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, restart_date, resume_week
		FROM restarts
		ORDER BY restart_date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restarts []RestartRecord
	for rows.Next() {
		var rec RestartRecord
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.ResumeWeek); err != nil {
			return nil, err
		}
		rec.Date = dateUTC(rec.Date)
		restarts = append(restarts, rec)
	}
	return restarts, rows.Err()
}

func (r *PostgresRepository) InsertRestart(ctx context.Context, rec RestartRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO restarts (id, restart_date, resume_week)
		VALUES ($1, $2, $3)
	`, rec.ID, rec.Date, rec.ResumeWeek)
	return err
}

func (r *PostgresRepository) DeleteRestart(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM restarts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRestartNotFound
	}
	return nil
}

// DATE columns scan with a zero clock already, but the zone depends on
// the session; pin everything to midnight UTC so date comparisons hold.
func dateUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
