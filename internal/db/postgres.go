package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// USERS
	// -------------------------------
	userTableSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'VIEWER',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, userTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// CYCLE CONFIG (singleton row)
	// -------------------------------
	cycleSQL := `
		CREATE TABLE IF NOT EXISTS cycle_config (
			id INT PRIMARY KEY CHECK (id = 1),
			start_date DATE NOT NULL,
			start_week INT NOT NULL
		)
	`
	if _, err := db.Exec(ctx, cycleSQL); err != nil {
		return err
	}

	// -------------------------------
	// MENUS
	// -------------------------------
	menusSQL := `
		CREATE TABLE IF NOT EXISTS menus (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			effective_date DATE NOT NULL,
			raw_csv TEXT NOT NULL,
			position SERIAL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, menusSQL); err != nil {
		return err
	}

	// -------------------------------
	// CLOSURES
	// -------------------------------
	closuresSQL := `
		CREATE TABLE IF NOT EXISTS closures (
			id UUID PRIMARY KEY,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			CHECK (end_date >= start_date)
		)
	`
	if _, err := db.Exec(ctx, closuresSQL); err != nil {
		return err
	}

	// -------------------------------
	// RESTART POINTS
	// -------------------------------
	restartsSQL := `
		CREATE TABLE IF NOT EXISTS restarts (
			id UUID PRIMARY KEY,
			restart_date DATE UNIQUE NOT NULL,
			resume_week INT NOT NULL
		)
	`
	if _, err := db.Exec(ctx, restartsSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
