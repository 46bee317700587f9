// Package api wires the HTTP surface: routes, middleware, validation, error
// mapping and the Prometheus/Swagger endpoints.
package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/telemedpro/booking-api/docs"
	"github.com/telemedpro/booking-api/internal/api/handler"
	"github.com/telemedpro/booking-api/internal/api/middleware"
	"github.com/telemedpro/booking-api/internal/core/service"
	"github.com/telemedpro/booking-api/internal/infrastructure/config"
	"github.com/telemedpro/booking-api/internal/infrastructure/db/postgres"
	redisstore "github.com/telemedpro/booking-api/internal/infrastructure/db/redis"
	"github.com/telemedpro/booking-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.BodyLimit("64K"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("telemed"))

	// --- Dependencies ---
	accountRepo := postgres.NewAccountRepository(pool)
	appointmentRepo := postgres.NewAppointmentRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	doctorRepo := postgres.NewDoctorRepository(pool)
	sessionStore := redisstore.NewSessionStore(rdb, cfg.Session.TTL)

	authService := service.NewAuthService(accountRepo, sessionStore, log)
	schedulerService := service.NewSchedulerService(appointmentRepo, log)
	contactService := service.NewContactService(contactRepo, log)

	authHandler := handler.NewAuthHandler(authService, cfg.Session.TTL, cfg.Session.CookieSecure)
	appointmentHandler := handler.NewAppointmentHandler(schedulerService)
	contactHandler := handler.NewContactHandler(contactService)
	doctorHandler := handler.NewDoctorHandler(doctorRepo)
	healthHandler := handler.NewHealthHandler(pool, rdb)

	session := middleware.Session(sessionStore)

	// --- API routes ---
	apiGroup := e.Group("/api", session)

	auth := apiGroup.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, middleware.RequireSession())
	auth.GET("/status", authHandler.Status)

	appointments := apiGroup.Group("/appointments")
	appointments.POST("/book", appointmentHandler.Book)
	appointments.GET("/my-appointments", appointmentHandler.MyAppointments, middleware.RequireSession())
	appointments.PUT("/cancel/:id", appointmentHandler.Cancel, middleware.RequireSession())
	appointments.GET("/available-slots/:date", appointmentHandler.AvailableSlots)

	contact := apiGroup.Group("/contact")
	contact.POST("/submit", contactHandler.Submit)
	contact.GET("/messages", contactHandler.Messages)

	apiGroup.GET("/doctors", doctorHandler.List)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness)     // readiness – are dependencies up?

	return e
}
