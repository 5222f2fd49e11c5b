package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/salesbridge/dashboard-api/docs"
	"github.com/salesbridge/dashboard-api/internal/api/handler"
	"github.com/salesbridge/dashboard-api/internal/api/middleware"
	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
	"github.com/salesbridge/dashboard-api/internal/core/service"
	"github.com/salesbridge/dashboard-api/internal/infrastructure/config"
	mongodb "github.com/salesbridge/dashboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/salesbridge/dashboard-api/internal/infrastructure/db/redis"
	"github.com/salesbridge/dashboard-api/internal/infrastructure/mailer"
	"github.com/salesbridge/dashboard-api/internal/pkg/secrets"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit sink is passed in because its worker lifecycle belongs to main.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditSink, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("dashboard"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	planRepo := mongodb.NewPlanRepository(db)
	licenseRepo := mongodb.NewLicenseRepository(db)
	assignmentRepo := mongodb.NewAssignmentRepository(db)
	invoiceRepo := mongodb.NewInvoiceRepository(db)
	updateRepo := mongodb.NewUpdateRepository(db)
	reportRepo := mongodb.NewReportRepository(db)
	noteRepo := mongodb.NewNoteRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)
	contractRepo := mongodb.NewContractRepository(db)

	fileStore, err := mongodb.NewFileStore(db)
	if err != nil {
		return nil, err
	}
	calendarCache := redisdb.NewCalendarCache(rdb, log)

	// --- Services ---
	tokenService := service.NewTokenService(cfg.JWTSecret)
	box := secrets.NewBox(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, tokenService, box, log)
	clientService := service.NewClientService(clientRepo, planRepo, log)
	planService := service.NewPlanService(planRepo, clientRepo, log)
	licenseService := service.NewLicenseService(licenseRepo, clientRepo, assignmentRepo, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, userRepo, clientRepo, licenseRepo, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, clientRepo, fileStore, calendarCache, mongodb.ValidRef, log)
	billingService := service.NewBillingService(invoiceRepo, calendarCache, log)
	updateService := service.NewUpdateService(updateRepo, assignmentRepo, userRepo, notificationRepo, mailer.NewLogMailer(log), log)
	reportService := service.NewReportService(reportRepo, clientRepo, licenseRepo)
	recordsService := service.NewRecordsService(noteRepo, notificationRepo, contractRepo, auditRepo, clientRepo)

	// --- Handlers ---
	validRef := handler.RefValidator(mongodb.ValidRef)
	authHandler := handler.NewAuthHandler(authService, service.SessionTTL, cfg.IsProduction(), cfg.RegistrationEnabled)
	userHandler := handler.NewUserHandler(authService, audit, validRef)
	clientHandler := handler.NewClientHandler(clientService, audit, validRef)
	planHandler := handler.NewPlanHandler(planService, audit, validRef)
	licenseHandler := handler.NewLicenseHandler(licenseService, audit, validRef)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, billingService, audit, validRef)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, audit, validRef)
	sdrHandler := handler.NewSdrHandler(assignmentService, clientService, licenseService, updateService, reportService, validRef)
	reportHandler := handler.NewReportHandler(reportService, updateService, validRef)
	portalHandler := handler.NewPortalHandler(clientService, licenseService, invoiceService, reportService, updateService, validRef)
	recordsHandler := handler.NewRecordsHandler(recordsService, validRef)
	notificationHandler := handler.NewNotificationHandler(recordsService, validRef)

	auth := middleware.Auth(tokenService)

	// --- Auth routes ---
	authGroup := e.Group("/auth")
	authGroup.POST("/login", authHandler.Login, middleware.RateLimit(middleware.LoginLimit))
	authGroup.POST("/register", authHandler.Register, middleware.RateLimit(middleware.LoginLimit))
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, auth)

	// --- Admin routes ---
	admin := e.Group("/admin", auth, middleware.RBAC(domain.RoleAdmin))
	read := middleware.RateLimit(middleware.ReadLimit)
	write := middleware.RateLimit(middleware.WriteLimit)

	admin.GET("/users", userHandler.List, read)
	admin.POST("/users", userHandler.Create, write)
	admin.GET("/users/:id", userHandler.Get, read)
	admin.PUT("/users/:id", userHandler.Update, write)
	admin.PUT("/users/:id/active", userHandler.SetActive, write)
	admin.GET("/users/:id/password", userHandler.RevealPassword, read)

	admin.GET("/clients", clientHandler.List, read)
	admin.POST("/clients", clientHandler.Create, write)
	admin.GET("/clients/export", clientHandler.Export, read)
	admin.GET("/clients/:id", clientHandler.Get, read)
	admin.PUT("/clients/:id", clientHandler.Update, write)

	admin.GET("/plans", planHandler.List, read)
	admin.POST("/plans", planHandler.Create, write)
	admin.GET("/plans/:id", planHandler.Get, read)
	admin.PUT("/plans/:id", planHandler.Update, write)
	admin.POST("/plans/:id/deactivate", planHandler.Deactivate, write)
	admin.POST("/plans/:id/activate", planHandler.Activate, write)

	admin.GET("/clients/:id/licenses", licenseHandler.ListByClient, read)
	admin.POST("/clients/:id/licenses/generate", licenseHandler.Generate, write)
	admin.POST("/licenses/:id/pause", licenseHandler.Pause, write)
	admin.POST("/licenses/:id/resume", licenseHandler.Resume, write)
	admin.DELETE("/licenses/:id", licenseHandler.Delete, write)

	admin.POST("/invoices", invoiceHandler.Create, write)
	admin.GET("/invoices/:id", invoiceHandler.Get, read)
	admin.PUT("/invoices/:id", invoiceHandler.Update, write)
	admin.POST("/invoices/:id/pay", invoiceHandler.MarkPaid, write)
	admin.POST("/invoices/bulk-pay", invoiceHandler.BulkMarkPaid, write)
	admin.GET("/clients/:id/invoices", invoiceHandler.ListByClient, read)
	admin.GET("/billing/calendar", invoiceHandler.Calendar, read)
	admin.POST("/invoices/:id/file", invoiceHandler.UploadFile, write)
	admin.GET("/invoices/:id/file", invoiceHandler.DownloadFile, read)

	admin.POST("/assignments", assignmentHandler.Create, write)
	admin.GET("/assignments/:id", assignmentHandler.Get, read)
	admin.PUT("/assignments/:id/licenses", assignmentHandler.SetLicenses, write)
	admin.DELETE("/assignments/:id", assignmentHandler.Remove, write)
	admin.GET("/sdrs/:id/assignments", assignmentHandler.ListBySdr, read)
	admin.GET("/clients/:id/assignments", assignmentHandler.ListByClient, read)

	admin.GET("/reports/:id", reportHandler.Get, read)
	admin.GET("/clients/:id/reports", reportHandler.ListByClient, read)
	admin.GET("/clients/:id/updates", reportHandler.ClientUpdates, read)

	admin.GET("/clients/:id/notes", recordsHandler.ListNotes, read)
	admin.POST("/clients/:id/notes", recordsHandler.CreateNote, write)
	admin.DELETE("/notes/:id", recordsHandler.DeleteNote, write)

	admin.POST("/contracts", recordsHandler.CreateContract, write)
	admin.GET("/contracts/:id", recordsHandler.GetContract, read)
	admin.PUT("/contracts/:id/status", recordsHandler.SetContractStatus, write)
	admin.GET("/clients/:id/contracts", recordsHandler.ListContracts, read)

	admin.GET("/audit", recordsHandler.ListAudit, read)
	admin.GET("/notifications", notificationHandler.List, read)
	admin.POST("/notifications/:id/read", notificationHandler.MarkRead, write)

	// --- SDR routes ---
	sdr := e.Group("/sdr", auth, middleware.RBAC(domain.RoleSDR))

	sdr.GET("/clients", sdrHandler.Clients, read)
	sdr.GET("/clients/:id", sdrHandler.Client, read)
	sdr.GET("/clients/:id/licenses", sdrHandler.ClientLicenses, read)
	sdr.GET("/clients/:id/reports", sdrHandler.ClientReports, read)
	sdr.POST("/clients/:id/updates", sdrHandler.CreateUpdate, write)
	sdr.GET("/updates", sdrHandler.Updates, read)
	sdr.POST("/reports", sdrHandler.CreateReport, write)
	sdr.PUT("/clients/:id/chat", sdrHandler.SetChat, write)
	sdr.GET("/notifications", notificationHandler.List, read)
	sdr.POST("/notifications/:id/read", notificationHandler.MarkRead, write)

	// --- Client portal routes ---
	portal := e.Group("/client", auth, middleware.RBAC(domain.RoleClient))

	portal.GET("/profile", portalHandler.Profile, read)
	portal.GET("/licenses", portalHandler.Licenses, read)
	portal.GET("/invoices", portalHandler.Invoices, read)
	portal.GET("/invoices/:id", portalHandler.Invoice, read)
	portal.GET("/invoices/:id/file", portalHandler.InvoiceFile, read)
	portal.GET("/reports", portalHandler.Reports, read)
	portal.GET("/updates", portalHandler.Updates, read)
	portal.POST("/updates/:id/read", portalHandler.MarkUpdateRead, write)
	portal.GET("/notifications", notificationHandler.List, read)
	portal.POST("/notifications/:id/read", notificationHandler.MarkRead, write)

	// --- Observability and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
