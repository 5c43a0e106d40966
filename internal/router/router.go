package router

import (
	"time"

	"mensa/internal/auth"
	"mensa/internal/config"
	"mensa/internal/middleware"
	"mensa/internal/schedule"
	"mensa/internal/sensor"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Auth     *auth.Handler
	Config   *config.Handler
	Schedule *schedule.Handler
	Sensors  *sensor.Handler
}

// New builds the full route table: public day/sensor queries, auth,
// and admin-only configuration endpoints.
func New(d Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", d.Auth.Register)
		authGroup.POST("/login", d.Auth.Login)
	}

	// ───────────────────────── PUBLIC QUERIES ─────────────────────────
	day := r.Group("/day")
	{
		day.GET("/today", d.Schedule.Today)
		day.GET("/next", d.Schedule.Next)
		day.GET("/:date", d.Schedule.Day)
	}

	r.GET("/sensors", d.Sensors.List)

	// ───────────────────────── ADMIN CONFIG ─────────────────────────
	admin := r.Group("/")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		admin.POST("/setup", d.Config.Setup)
		admin.GET("/config", d.Config.GetConfig)

		admin.POST("/menus", d.Config.AddMenu)
		admin.PUT("/menus/:id", d.Config.EditMenu)
		admin.DELETE("/menus/:id", d.Config.DeleteMenu)

		admin.POST("/closures/date", d.Config.AddClosureDate)
		admin.POST("/closures/period", d.Config.AddClosurePeriod)
		admin.DELETE("/closures/:id", d.Config.DeleteClosure)

		admin.POST("/restarts", d.Config.AddRestart)
		admin.DELETE("/restarts/:id", d.Config.DeleteRestart)
	}

	return r
}
