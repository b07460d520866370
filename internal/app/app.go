// Package app builds the HTTP router and wires every module to its dependencies.
package app

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"shesafe/internal/config"
	"shesafe/internal/domain"
	"shesafe/internal/middleware"
	"shesafe/internal/modules/admin"
	"shesafe/internal/modules/auth"
	"shesafe/internal/modules/booking"
	"shesafe/internal/modules/dashboard"
	"shesafe/internal/modules/feedback"
	"shesafe/internal/modules/notification"
	"shesafe/internal/modules/vendor"
	"shesafe/internal/pkg/jwt"
	"shesafe/internal/pkg/metrics"
	"shesafe/internal/pkg/response"
	"shesafe/internal/repository"
	"shesafe/internal/storage"
)

//go:embed static
var staticFiles embed.FS

type App struct {
	Router *gin.Engine
	Hub    *notification.Hub
}

func New(cfg *config.Config, db *gorm.DB) (*App, error) {
	metrics.Init()

	store, err := storage.NewDiskStore(cfg.UploadDir, cfg.MediaURLBase, cfg.MaxUploadBytes)
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, err
	}

	tokens := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	userRepo := repository.NewUserRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	hub := notification.NewHub()
	notifier := notification.NewNotifier(hub)

	authService := auth.NewService(userRepo, vendorRepo, tokens, cfg.JWTTTL)
	vendorService := vendor.NewService(vendorRepo, store, notifier, cfg.MaxUploadBytes)
	bookingService := booking.NewService(bookingRepo, vendorRepo, notifier)
	feedbackService := feedback.NewService(feedbackRepo, bookingRepo, vendorRepo, notifier)
	adminService := admin.NewService(userRepo, vendorRepo, bookingRepo, feedbackRepo, notifier)
	dashboardService := dashboard.NewService(bookingRepo, vendorRepo, adminService)

	authHandler := auth.NewHandler(authService)
	vendorHandler := vendor.NewHandler(vendorService, cfg.MaxRequestBytes)
	bookingHandler := booking.NewHandler(bookingService)
	feedbackHandler := feedback.NewHandler(feedbackService)
	adminHandler := admin.NewHandler(adminService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	notificationHandler := notification.NewHandler(hub, cfg.CORSOrigins)

	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes
	r.Use(
		middleware.RequestLogger(),
		middleware.ErrorLogger(),
		middleware.CORS(cfg.CORSOrigins),
		middleware.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is not reachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static(cfg.MediaURLBase, store.Dir())
	r.StaticFS("/static", http.FS(static))

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		vendorHandler.RegisterPublicRoutes(v1)
		feedbackHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("", middleware.JWTAuth(tokens))
		{
			authHandler.RegisterProtectedRoutes(protected)
			dashboardHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			feedbackHandler.RegisterRoutes(protected)

			vendorHandler.RegisterVendorRoutes(protected.Group("/vendor", middleware.RequireRole(domain.RoleVendor)))
			adminHandler.RegisterRoutes(protected.Group("/admin", middleware.AdminOnly()))
		}

		notificationHandler.RegisterRoutes(v1.Group("", middleware.QueryTokenAuth(tokens)))
	}

	return &App{Router: r, Hub: hub}, nil
}
