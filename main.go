// Package main provides the main entry point for the MassEnergize carbon calculator backend
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/massenergize/carbon-backend/app/handlers"
	"github.com/massenergize/carbon-backend/app/middleware"
	"github.com/massenergize/carbon-backend/app/router"
	"github.com/massenergize/carbon-backend/app/services"
	businessflow "github.com/massenergize/carbon-backend/business_flow"
	"github.com/massenergize/carbon-backend/calculator"
	"github.com/massenergize/carbon-backend/config"
	_ "github.com/massenergize/carbon-backend/docs"
	"github.com/massenergize/carbon-backend/models"
	"github.com/massenergize/carbon-backend/repository"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	mintAdminID := flag.Uint("mint-admin-token", 0, "print an admin token pair for the given admin id and exit")
	flag.Parse()

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Admin tokens are minted out of band; there is no login endpoint.
	if *mintAdminID != 0 {
		if err := mintAdminTokens(cfg, uint(*mintAdminID)); err != nil {
			log.Fatalf("Failed to mint admin tokens: %v", err)
		}
		return
	}

	log.Println("Starting carbon backend...")

	config.SetupLogging(cfg.Logging)

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pooling
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// migrateDatabase creates or updates the calculator tables
func migrateDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.ConstantEntry{},
		&models.ActionDefinition{},
		&models.QuestionDefinition{},
		&models.CalculatorVersion{},
		&models.EstimateRecord{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// initializeCache initializes the Cache client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled || cfg.Provider != "redis" {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisURL, cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

func newTokenService(cfg *config.ProductionConfig) (services.TokenService, error) {
	return services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
	)
}

// mintAdminTokens prints a fresh access/refresh pair for operators wiring
// up the admin API.
func mintAdminTokens(cfg *config.ProductionConfig, adminID uint) error {
	tokenService, err := newTokenService(cfg)
	if err != nil {
		return err
	}
	access, refresh, err := tokenService.GenerateAdminTokens(adminID)
	if err != nil {
		return err
	}
	fmt.Printf("access_token=%s\nrefresh_token=%s\n", access, refresh)
	return nil
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := migrateDatabase(db); err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	if rc != nil {
		cancel := startCacheHealthMonitor(context.Background(), rc, cfg.Cache.CleanupInterval)
		stopFuncs = append(stopFuncs, cancel)
	}

	// Initialize repositories
	constantRepo := repository.NewConstantEntryRepository(db)
	actionRepo := repository.NewActionDefinitionRepository(db)
	questionRepo := repository.NewQuestionDefinitionRepository(db)
	versionRepo := repository.NewCalculatorVersionRepository(db)
	estimateRepo := repository.NewEstimateRecordRepository(db)

	// Initialize the calculator engine
	resolver := calculator.NewResolver(constantRepo)
	importer := calculator.NewImporter(constantRepo, actionRepo, questionRepo, resolver)
	facade := calculator.NewFacade(resolver, importer, actionRepo, questionRepo, versionRepo, calculator.Sources{
		DefaultsPath:  cfg.Calculator.DefaultsPath,
		ActionsPath:   cfg.Calculator.ActionsPath,
		QuestionsPath: cfg.Calculator.QuestionsPath,
	})

	// Bring the constants and action tables in line with the seed files
	if cfg.Calculator.SyncOnStart {
		syncCtx, syncCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer syncCancel()
		if err := facade.EnsureCurrent(syncCtx); err != nil {
			return nil, fmt.Errorf("failed to sync calculator tables: %w", err)
		}
		log.Printf("Calculator tables are current at version %s", calculator.Version)
	}

	// Initialize token service
	tokenService, err := newTokenService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	log.Printf("Token service initialized with issuer: %s, audience: %s", cfg.JWT.Issuer, cfg.JWT.Audience)

	// Initialize flows
	calculatorFlow := businessflow.NewCalculatorFlow(facade, estimateRepo, rc, &cfg.Cache)
	adminFlow := businessflow.NewCalculatorAdminFlow(facade, constantRepo, estimateRepo, db, rc, &cfg.Cache)

	// Initialize handlers
	calculatorHandler := handlers.NewCalculatorHandler(calculatorFlow)
	adminHandler := handlers.NewCalculatorAdminHandler(adminFlow)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Initialize router
	appRouter := router.NewFiberRouter(calculatorHandler, adminHandler, authMiddleware, config.AccessLogWriter(cfg.Logging))

	fiberRouter := appRouter.(*router.FiberRouter)
	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}
