package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/rashidkhan4067/Rescue-Project/internal/config"
	"github.com/rashidkhan4067/Rescue-Project/internal/handlers"
	"github.com/rashidkhan4067/Rescue-Project/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	reportHandler *handlers.ReportHandler,
) {
	// Stored images are served back as static references under /uploads.
	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth endpoints are public with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// All report routes require auth; visibility scoping happens in the query layer.
	protected := api.Group("/", middleware.JWTProtected(cfg))
	protected.Post("/reports", reportHandler.Create)
	protected.Get("/reports/:id", reportHandler.Details)
	protected.Get("/search", reportHandler.Search)
	protected.Get("/filter", reportHandler.Filter)
	protected.Post("/filter_reports", reportHandler.FilterReports)
	protected.Get("/dashboard", reportHandler.Dashboard)
	protected.Get("/alerts", reportHandler.Alerts)
	protected.Post("/feedback", reportHandler.Feedback)
}
