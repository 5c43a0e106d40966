package main

import (
	"context"
	"log"
	"os"

	"mensa/internal/auth"
	"mensa/internal/config"
	"mensa/internal/coordinator"
	"mensa/internal/db"
	"mensa/internal/router"
	"mensa/internal/schedule"
	"mensa/internal/sensor"
	"mensa/internal/storage"

	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── STORAGE ─────────────────────────
	// CSV archival is optional; the service runs without it.
	var archive config.Archiver
	if os.Getenv("R2_ENDPOINT") != "" {
		r2Client, err := storage.NewR2Client(context.Background())
		if err != nil {
			log.Fatal("❌ R2 init failed:", err)
		}
		archive = r2Client
	}

	// ───────────────────────── AUTH ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService)

	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		if err := authService.EnsureAdmin(email, os.Getenv("ADMIN_PASSWORD")); err != nil {
			log.Fatal("❌ Admin bootstrap failed:", err)
		}
	}

	// ───────────────────────── CONFIG ─────────────────────────
	configRepo := config.NewPostgresRepository(pgDB)
	configService := config.NewService(configRepo, archive)

	if err := configService.Load(context.Background()); err != nil {
		log.Fatal("❌ Failed to load configuration:", err)
	}

	// ───────────────────────── COORDINATOR ─────────────────────────
	coord := coordinator.New(configService)
	configService.OnChange(coord.Refresh)
	go coord.Run(coordinator.DefaultInterval)

	// ───────────────────────── HANDLERS + ROUTES ─────────────────────────
	r := router.New(router.Deps{
		Auth:     authHandler,
		Config:   config.NewHandler(configService),
		Schedule: schedule.NewHandler(configService),
		Sensors:  sensor.NewHandler(coord),
	})

	// ───────────────────────── START ─────────────────────────
	log.Println("🚀 API running at http://localhost:8000")
	r.Run(":8000")
}
