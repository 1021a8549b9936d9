package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/memberhub/membership-api/internal/api/handler"
	"github.com/memberhub/membership-api/internal/api/middleware"
	"github.com/memberhub/membership-api/internal/core/domain"
	"github.com/memberhub/membership-api/internal/core/service"
	mongorepo "github.com/memberhub/membership-api/internal/infrastructure/db/mongo"
	redisrepo "github.com/memberhub/membership-api/internal/infrastructure/db/redis"
	"github.com/memberhub/membership-api/internal/infrastructure/email"
	"github.com/memberhub/membership-api/internal/infrastructure/gateway/paystack"
	"github.com/memberhub/membership-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("membership"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	adminRepo := mongorepo.NewAdminRepository(db)
	sessionRepo := mongorepo.NewSessionRepository(db)
	settingsRepo := mongorepo.NewSettingsRepository(db)
	paymentDedup := redisrepo.NewPaymentDedup(rdb)

	// --- External collaborators ---
	gateway := paystack.NewClient(cfg.Paystack.SecretKey, cfg.Paystack.BaseURL)
	mailer := email.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, log)

	// --- Services ---
	sessionService := service.NewSessionService(sessionRepo, userRepo, adminRepo, log)
	authService := service.NewAuthService(userRepo, adminRepo, sessionService, log)
	settingsService := service.NewSettingsService(settingsRepo, log)
	adminService := service.NewAdminService(adminRepo, log)
	registrationService := service.NewRegistrationService(
		userRepo, settingsService, gateway, paymentDedup, mailer,
		cfg.JWTSecret, cfg.BaseURL, log,
	)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.Production())
	sessionHandler := handler.NewSessionHandler(sessionService)
	registrationHandler := handler.NewRegistrationHandler(registrationService, settingsService)
	adminHandler := handler.NewAdminHandler(adminService, settingsService, cfg.DeveloperToken)

	userSession := middleware.Session(sessionService, domain.KindUser)
	adminSession := middleware.Session(sessionService, domain.KindAdmin)

	// --- Public routes ---
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/logout", authHandler.Logout)
	e.POST("/api/register", registrationHandler.Register)
	e.POST("/api/verify-email", registrationHandler.VerifyEmail)
	e.GET("/api/registration-fee", registrationHandler.RegistrationFee)
	e.POST("/api/payments/initialize", registrationHandler.InitializePayment)
	e.POST("/api/payments/verify", registrationHandler.ConfirmPayment)

	// --- Session endpoints (server-side flows) ---
	e.POST("/api/session/create", sessionHandler.Create)
	e.POST("/api/session/validate", sessionHandler.Validate)

	// --- Member area ---
	e.GET("/api/member", sessionHandler.Me, userSession)

	// --- Admin routes ---
	// Account creation is developer-token gated inside the handler; every
	// dashboard is single-role, checked against the freshly validated admin.
	e.POST("/api/admin/accounts", adminHandler.CreateAccount)

	admin := e.Group("/api/admin", adminSession)
	admin.GET("/dashboard/account-manager", adminHandler.Dashboard, middleware.RequireRole(domain.RoleAccountManager))
	admin.GET("/dashboard/customer-service", adminHandler.Dashboard, middleware.RequireRole(domain.RoleCustomerService))
	admin.GET("/dashboard/executives", adminHandler.Dashboard, middleware.RequireRole(domain.RoleExecutive))
	admin.GET("/registration-fee", adminHandler.GetRegistrationFee, middleware.RequireRole(domain.RoleExecutive))
	admin.PUT("/registration-fee", adminHandler.SetRegistrationFee, middleware.RequireRole(domain.RoleExecutive))

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
