package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"surgery-reservation-system/config"
	deliveryHttp "surgery-reservation-system/internal/delivery/http"
	"surgery-reservation-system/internal/delivery/http/handler"
	"surgery-reservation-system/internal/delivery/http/middleware"
	"surgery-reservation-system/internal/infrastructure/cache"
	"surgery-reservation-system/internal/infrastructure/database"
	"surgery-reservation-system/internal/repository"
	"surgery-reservation-system/internal/service"
	"surgery-reservation-system/internal/usecase"
	"surgery-reservation-system/pkg/clock"
	"surgery-reservation-system/pkg/jwt"
	"surgery-reservation-system/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Scheduler   *service.SchedulerService
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply database migrations
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, scheduler := initializeServer(cfg, db, redisClient)
	app.Server = server
	app.Scheduler = scheduler

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server and scheduler
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *service.SchedulerService) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	roomRepo := repository.NewOperatingRoomRepository()
	bedRepo := repository.NewOperatingBedRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	notificationRepo := repository.NewNotificationRepository()
	cancellationRepo := repository.NewCancellationRecordRepository()
	blacklistRepo := repository.NewBlacklistRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize logger and clock
	log := logrus.StandardLogger()
	clk := clock.System()

	// Initialize services
	notificationSink := service.NewNotificationService(db, log, notificationRepo)
	patientEffects := service.NewPatientEffects(patientRepo)
	auditService := service.NewAuditService(db, log, auditLogRepo)
	scheduler := service.NewSchedulerService(
		db, log, clk, appointmentRepo, notificationSink,
		cfg.Scheduler.StatusSweepInterval, cfg.Scheduler.OverdueSweepInterval,
	)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, patientRepo, jwtService, redisClient)
	appointmentUsecase := usecase.NewAppointmentUsecase(
		db, log, clk,
		appointmentRepo, patientRepo, userRepo, roomRepo, bedRepo,
		cancellationRepo, blacklistRepo, notificationRepo,
		notificationSink, patientEffects, auditService,
	)
	notificationUsecase := usecase.NewNotificationUsecase(db, log, notificationRepo)
	roomUsecase := usecase.NewRoomUsecase(db, log, roomRepo, bedRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	notificationHandler := handler.NewNotificationHandler(notificationUsecase)
	roomHandler := handler.NewRoomHandler(roomUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, appointmentHandler, notificationHandler, roomHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, scheduler
}

// Run starts the scheduler and HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start background sweeps
	app.Scheduler.Start()

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Stop background sweeps before closing connections
	app.Scheduler.Stop()

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
