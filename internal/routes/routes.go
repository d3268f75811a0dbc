package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucBooking "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/booking"
)

type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Logger   *zap.Logger
	Redis    *redis.Client // nil disables the catalog cache
	Notifier notification.Dispatcher
	Audit    audit.Recorder
}

func RegisterRoutes(r *gin.Engine, deps Deps) error {
	cfg := deps.Config
	showDetails := !cfg.IsProduction()

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(deps.DB, deps.Logger)
	catalogRepo := infraRepo.NewCatalogGormRepository(deps.DB)
	contactRepo := infraRepo.NewContactGormRepository(deps.DB)
	statsRepo := infraRepo.NewStatsGormRepository(deps.DB)
	auditLogRepo := infraRepo.NewAuditLogGormRepository(deps.DB)

	catalogCache := cache.NewCatalogCache(catalogRepo, deps.Redis, cfg.CatalogCacheTTL, deps.Logger)

	loc := timezone.Location(cfg.ClinicTimezone)

	validator, err := domain.NewValidator(domain.ValidatorConfig{
		PhonePattern:     cfg.PhonePattern,
		PhoneCountryCode: cfg.PhoneCountryCode,
		Location:         loc,
	})
	if err != nil {
		return fmt.Errorf("booking validator: %w", err)
	}

	sqlDB, err := deps.DB.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	// ======================================================
	// USE CASES - BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		validator,
		catalogCache,
		bookingRepo,
		deps.Notifier,
		deps.Audit,
		ucBooking.ClinicInfo{
			Name:               cfg.ClinicName,
			ContactPhone:       cfg.ClinicContactPhone,
			ConfirmationPrefix: cfg.ConfirmationPrefix,
			DefaultCapacity:    cfg.DefaultCapacity,
		},
		deps.Logger,
	)

	availabilityUC := ucBooking.NewGetAvailability(catalogCache, bookingRepo, cfg.DefaultCapacity, loc)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo, cfg.ConfirmationPrefix)
	getBookingUC := ucBooking.NewGetBooking(bookingRepo, cfg.ConfirmationPrefix)
	deleteBookingUC := ucBooking.NewDeleteBooking(bookingRepo, deps.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(createBookingUC, availabilityUC, showDetails)
	catalogHandler := handlers.NewCatalogHandler(
		catalogCache,
		catalogRepo,
		catalogCache,
		deps.Audit,
		cfg.DefaultCapacity,
		showDetails,
		deps.Logger,
	)
	contactHandler := handlers.NewContactHandler(contactRepo, deps.Audit, showDetails)

	adminAuthHandler := handlers.NewAdminAuthHandler(handlers.AdminCredentials{
		Email:        cfg.AdminEmail,
		PasswordHash: cfg.AdminPasswordHash,
		JWTSecret:    cfg.JWTSecret,
	}, deps.Audit)
	adminBookingHandler := handlers.NewAdminBookingHandler(listBookingsUC, getBookingUC, deleteBookingUC, showDetails)
	statsHandler := handlers.NewStatsHandler(statsRepo, cfg.ClinicTimezone, showDetails)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogRepo, showDetails)
	healthHandler := handlers.NewHealthHandler(sqlDB)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitBurst, deps.Logger)

	r.GET("/health", healthHandler.Get)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/bookings", limiter.Middleware(), bookingHandler.Create)
		api.GET("/availability", bookingHandler.Availability)
		api.GET("/services", catalogHandler.ListServices)
		api.GET("/time-slots", catalogHandler.TimeSlots)
		api.POST("/contact", limiter.Middleware(), contactHandler.Create)

		// ------------------------------
		// ADMIN AUTH
		// ------------------------------
		api.POST("/admin/login", limiter.Middleware(), adminAuthHandler.Login)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(cfg.JWTSecret))
		{
			admin.GET("/bookings", adminBookingHandler.List)
			admin.GET("/bookings/:id", adminBookingHandler.Get)
			admin.DELETE("/bookings/:id", adminBookingHandler.Delete)

			admin.GET("/contacts", contactHandler.List)
			admin.DELETE("/contacts/:id", contactHandler.Delete)

			admin.GET("/services", catalogHandler.AdminList)
			admin.POST("/services", catalogHandler.Create)
			admin.PATCH("/services/:id", catalogHandler.Update)
			admin.DELETE("/services/:id", catalogHandler.Delete)

			admin.GET("/stats", statsHandler.Get)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return nil
}
