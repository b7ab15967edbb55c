package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"adlicense.backend/internal/config"
	"adlicense.backend/internal/infrastructure/jobs"
	"adlicense.backend/internal/infrastructure/notifications"
	"adlicense.backend/internal/infrastructure/repositories"
	"adlicense.backend/internal/infrastructure/storage"
	"adlicense.backend/internal/interfaces/http/handlers"
	"adlicense.backend/internal/interfaces/http/middleware"
	"adlicense.backend/internal/usecases"
	"adlicense.backend/pkg/googleauth"
	"adlicense.backend/pkg/jwt"
	"adlicense.backend/pkg/logger"
	"adlicense.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			TranslateError: true,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "failed to initialize redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(context.Background(), "database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(context.Background(), "connected to postgres")
	}

	// Initialize shared services
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)
	verifier := googleauth.NewVerifier(cfg.Google.Issuer, cfg.Google.Audience)

	store, err := storage.NewLocalStorage(cfg.Upload)
	if err != nil {
		return fmt.Errorf("failed to initialize upload storage: %w", err)
	}

	mailer := notifications.NewMailer(cfg.SMTP)
	telegram := notifications.NewTelegramClient(cfg.Telegram)
	notifier := notifications.NewNotifier(mailer, telegram)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	adminRepo := repositories.NewAdminUserRepository(db)
	kycRepo := repositories.NewKYCRepository(db)
	pricingRepo := repositories.NewPricingRepository(db)
	discountRepo := repositories.NewDiscountRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	licenseRepo := repositories.NewLicenseRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, adminRepo, verifier, jwtService, notifier)
	userUsecase := usecases.NewUserUsecase(userRepo, licenseRepo, paymentRepo)
	kycUsecase := usecases.NewKYCUsecase(kycRepo, userRepo, uow, notifier)
	pricingUsecase := usecases.NewPricingUsecase(pricingRepo, discountRepo)
	paymentUsecase := usecases.NewPaymentUsecase(paymentRepo, pricingRepo, discountRepo, licenseRepo, userRepo, uow, notifier, cfg.Payment)
	licenseUsecase := usecases.NewLicenseUsecase(licenseRepo)
	adminUsecase := usecases.NewAdminUsecase(userRepo, kycRepo, paymentRepo, licenseRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	userHandler := handlers.NewUserHandler(userUsecase)
	kycHandler := handlers.NewKYCHandler(kycUsecase, store)
	pricingHandler := handlers.NewPricingHandler(pricingUsecase)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase, store)
	licenseHandler := handlers.NewLicenseHandler(licenseUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase, kycUsecase, paymentUsecase, licenseUsecase, pricingUsecase)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryJob := jobs.NewLicenseExpiryJob(licenseRepo, cfg.License.SweepInterval)
	go expiryJob.Start(ctx)

	reminderJob := jobs.NewLicenseReminderJob(licenseRepo, notifier, cfg.License.ReminderDays, cfg.License.ReminderInterval)
	go reminderJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.Frontend.UserURL, cfg.Frontend.AdminURL)
	registerHealthRoute(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", store.Dir())

	registerAPIV1Routes(r, routeDeps{
		authHandler:    authHandler,
		userHandler:    userHandler,
		kycHandler:     kycHandler,
		pricingHandler: pricingHandler,
		paymentHandler: paymentHandler,
		licenseHandler: licenseHandler,
		adminHandler:   adminHandler,
		authMiddleware: middleware.AuthMiddleware(jwtService),
		requireProfile: middleware.RequireCompletedProfile(userRepo),
		requireKYC:     middleware.RequireVerifiedKYC(userRepo),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(context.Background(), "shutting down server")
		expiryJob.Stop()
		reminderJob.Stop()
		cancel()
	}()

	logger.Info(context.Background(), "server starting", zap.String("port", cfg.Server.Port))

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
