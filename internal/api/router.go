package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/Misterious0572/CognifyzInternshipProject/docs"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/api/handler"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/api/middleware"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/ports"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Auth    ports.AuthService
	Weather ports.WeatherService
	// Checks are pinged by the readiness check.
	Checks []handler.Pinger
	Cookie handler.CookieConfig
	// RateLimitRPS and RateLimitBurst throttle the auth API per client IP.
	// Zero RPS disables throttling.
	RateLimitRPS   float64
	RateLimitBurst int
	// Registerer and Gatherer back the HTTP metrics and /metrics. Nil
	// means the default Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.Secure())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "userreg",
		Registerer: deps.Registerer,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Cookie)
	weatherHandler := handler.NewWeatherHandler(deps.Weather)
	requireSession := middleware.RequireSession(deps.Auth, deps.Cookie.Name)
	requireSessionPage := middleware.RequireSessionOrRedirect(deps.Auth, deps.Cookie.Name)

	// --- Auth routes ---
	api := e.Group("/api")
	if deps.RateLimitRPS > 0 {
		api.Use(middleware.RateLimit(deps.RateLimitRPS, deps.RateLimitBurst))
	}
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/forgot-password", authHandler.ForgotPassword)
	api.POST("/reset-password", authHandler.ResetPassword)
	api.GET("/session", authHandler.Session, requireSession)
	api.GET("/user-weather", weatherHandler.Current, requireSession)

	e.GET("/reset-password/:token", authHandler.CheckResetToken)
	e.POST("/logout", authHandler.Logout)
	e.GET("/dashboard", weatherHandler.Dashboard, requireSessionPage)

	// --- Health checks (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks...)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: deps.Gatherer,
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
