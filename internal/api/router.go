package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/invoice-dashboard/docs"
	"github.com/99minutos/invoice-dashboard/internal/api/handler"
	"github.com/99minutos/invoice-dashboard/internal/api/middleware"
	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Accounts  ports.AccountService
	Auth      ports.AuthService
	Invoices  ports.InvoiceService
	Customers ports.CustomerService
	Dashboard ports.DashboardService
	Audit     ports.AuditRepository

	// Probes are checked by /health/ready, keyed by dependency name.
	Probes map[string]handler.Probe

	JWTSecret string
	Logger    zerolog.Logger
	// Registerer receives the HTTP request metrics. Defaults to the
	// Prometheus default registerer.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "dashboard",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Ops ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Probes)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/auth/login", authHandler.Login)

	v1 := e.Group("/v1", middleware.Auth(deps.JWTSecret))
	v1.GET("/me", authHandler.Me)

	// --- Invoices ---
	invoiceHandler := handler.NewInvoiceHandler(deps.Invoices)
	v1.GET("/invoices", invoiceHandler.List)
	v1.POST("/invoices", invoiceHandler.Create)
	v1.GET("/invoices/:id", invoiceHandler.Get)
	v1.PUT("/invoices/:id", invoiceHandler.Update)
	v1.DELETE("/invoices/:id", invoiceHandler.Delete)

	// --- Customers ---
	customerHandler := handler.NewCustomerHandler(deps.Customers)
	v1.GET("/customers", customerHandler.List)
	v1.GET("/customers/summary", customerHandler.Summary)

	// --- Dashboard ---
	dashboardHandler := handler.NewDashboardHandler(deps.Dashboard)
	v1.GET("/dashboard/revenue", dashboardHandler.Revenue)
	v1.GET("/dashboard/latest-invoices", dashboardHandler.LatestInvoices)
	v1.GET("/dashboard/cards", dashboardHandler.Cards)

	// --- Admin ---
	// The role is re-read from the store so demoted admins lose access immediately.
	adminOnly := []echo.MiddlewareFunc{
		middleware.CurrentRole(deps.Accounts),
		middleware.RBAC(domain.RoleAdmin),
	}

	accountHandler := handler.NewAccountHandler(deps.Accounts)
	v1.GET("/accounts", accountHandler.List, adminOnly...)
	v1.POST("/accounts", accountHandler.Create, adminOnly...)
	v1.GET("/accounts/:id", accountHandler.Get, adminOnly...)
	v1.PATCH("/accounts/:id", accountHandler.Update, adminOnly...)
	v1.PUT("/accounts/:id/role", accountHandler.ChangeRole, adminOnly...)
	v1.DELETE("/accounts/:id", accountHandler.Delete, adminOnly...)

	auditHandler := handler.NewAuditHandler(deps.Audit)
	v1.GET("/audit", auditHandler.Recent, adminOnly...)

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= 500 {
				event = log.Error()
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
