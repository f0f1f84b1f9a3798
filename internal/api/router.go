package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/clinicnavigator/clinic-portal/docs"
	"github.com/clinicnavigator/clinic-portal/internal/api/handler"
	"github.com/clinicnavigator/clinic-portal/internal/api/middleware"
	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
	"github.com/clinicnavigator/clinic-portal/internal/infrastructure/http/handlers"
)

// Dependencies are the services and stores the routes are wired to.
type Dependencies struct {
	Auth      ports.AuthService
	Profiles  ports.ProfileService
	Registrar ports.RegistrarService
	Visits    ports.VisitService
	Sessions  ports.SessionStore
	// Readiness lists the checks behind /health/ready, keyed by dependency name.
	Readiness map[string]handlers.Checker
}

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	LoginRate      rate.Limit
	LoginBurst     int
	// TrustProxy reads the client IP from X-Forwarded-For set by a proxy on
	// a private or loopback address. Otherwise the peer address is used.
	TrustProxy bool
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// default Prometheus registry.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)
	e.IPExtractor = echo.ExtractIPDirect()
	if opts.TrustProxy {
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	}

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           12 * 60 * 60,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "clinic",
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	profileHandler := handler.NewProfileHandler(deps.Profiles)
	patientHandler := handler.NewPatientHandler(deps.Registrar, deps.Profiles)
	visitHandler := handler.NewVisitHandler(deps.Visits)

	authMiddleware := middleware.Auth(opts.JWTSecret, deps.Sessions, opts.Log)
	loginLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  opts.LoginRate,
		Burst: opts.LoginBurst,
	}).Middleware()

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login, loginLimiter)
	e.POST("/auth/register", authHandler.Register, loginLimiter)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/session", authHandler.Session)
	v1.GET("/profile", profileHandler.Get)
	v1.PUT("/profile", profileHandler.Update)

	frontDesk := middleware.RBAC(domain.RoleReceptionist, domain.RoleAdmin)
	v1.GET("/doctors", patientHandler.ListDoctors, frontDesk)
	v1.POST("/patients", patientHandler.Register, frontDesk)
	v1.GET("/patients", patientHandler.ListAssigned, middleware.RBAC(domain.RoleDoctor))

	v1.GET("/patients/:id/visits", visitHandler.List,
		middleware.RBAC(domain.RoleDoctor, domain.RoleNurse, domain.RoleAdmin, domain.RolePatient))
	v1.POST("/patients/:id/visits", visitHandler.Record, middleware.RBAC(domain.RoleDoctor))

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
