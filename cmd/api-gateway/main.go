package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/booking-api/api/swagger"
	"github.com/noah-isme/booking-api/internal/handler"
	"github.com/noah-isme/booking-api/internal/middleware"
	"github.com/noah-isme/booking-api/internal/models"
	"github.com/noah-isme/booking-api/internal/repository"
	"github.com/noah-isme/booking-api/internal/service"
	"github.com/noah-isme/booking-api/pkg/backend"
	"github.com/noah-isme/booking-api/pkg/cache"
	"github.com/noah-isme/booking-api/pkg/config"
	"github.com/noah-isme/booking-api/pkg/database"
	"github.com/noah-isme/booking-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/booking-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/booking-api/pkg/middleware/requestid"
)

// @title Booking API
// @version 1.0.0
// @description Scheduling rules, slot aggregation and appointment submission for the booking pages
// @BasePath /api/v1
// @schemes http https

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		logr.Fatal("failed to apply schema", zap.Error(err))
	}

	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, slot cache disabled", zap.Error(err))
		} else {
			redisClient = client
		}
	}

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	cacheRepo := repository.NewCacheRepository(redisClient, "booking", logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Slots.CacheTTL, logr, cfg.Slots.CacheEnabled && redisClient != nil)

	backendClient := backend.NewClient(cfg.Backend, logr, metricsSvc)
	calendarRepo := repository.NewCalendarRepository(db)

	authSvc := service.NewAuthService(logr, service.AuthConfig{AccessTokenSecret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})
	calendarSvc := service.NewCalendarService(calendarRepo, validate, logr)
	slotSvc := service.NewSlotService(backendClient, cacheSvc, metricsSvc, cfg.Slots.CacheTTL, logr)
	availabilitySvc := service.NewAvailabilityService(calendarSvc)
	exportSvc := service.NewExportService(calendarSvc, slotSvc, logr, nil, nil)
	subscriptionSvc := service.NewSubscriptionService(backendClient, validate, logr)

	sessions := service.NewSessionStore(slotSvc, service.SubmissionDeps{
		Store:          backendClient,
		Calendars:      calendarSvc,
		Slots:          slotSvc,
		Validator:      service.NewAppointmentValidator(),
		Metrics:        metricsSvc,
		Logger:         logr,
		CancelRedirect: cfg.Booking.CancelRedirect,
	}, metricsSvc, cfg.Sessions.TTL, logr)
	go sessions.StartJanitor(ctx, cfg.Sessions.SweepInterval)

	bookingHandler := handler.NewBookingHandler(availabilitySvc, time.Local)
	calendarHandler := handler.NewCalendarHandler(calendarSvc, exportSvc)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, map[string]handler.ReadinessCheck{
		"postgres": db.PingContext,
		"redis": func(ctx context.Context) error {
			if redisClient == nil {
				return nil
			}
			return redisClient.Ping(ctx).Err()
		},
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())

	limiter := middleware.NewRateLimiterStore(cfg.Booking.RateLimitPerMin, cfg.Booking.RateLimitBurst)
	public := api.Group("", middleware.RateLimit(limiter))
	public.GET("/availability/check", bookingHandler.CheckAvailability)
	public.GET("/subscriptions/payment-return", subscriptionHandler.PaymentReturn)

	booking := public.Group("", middleware.Session(sessions))
	booking.GET("/slots/:date", bookingHandler.ListSlots)
	booking.POST("/appointments", bookingHandler.CreateAppointment)
	booking.GET("/appointments/cancel", bookingHandler.CancelAppointment)
	booking.GET("/notifications", bookingHandler.Notifications)

	admin := api.Group("/calendar", middleware.JWT(authSvc))
	admin.GET("/config/:userId", middleware.RBAC(string(models.RoleAdmin), middleware.RoleSelf), calendarHandler.GetConfig)
	admin.PUT("/config/:userId", middleware.RBAC(string(models.RoleAdmin), middleware.RoleSelf), calendarHandler.UpsertConfig)

	staff := admin.Group("", middleware.RequireRoles(models.RoleAdmin, models.RoleProvider))
	staff.GET("/special-dates", calendarHandler.ListSpecialDates)
	staff.POST("/special-dates", calendarHandler.CreateSpecialDate)
	staff.DELETE("/special-dates/:id", calendarHandler.DeleteSpecialDate)
	staff.GET("/agenda/:date/export", calendarHandler.ExportAgenda)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
