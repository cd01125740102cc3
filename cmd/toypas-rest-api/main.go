// cmd/toypas-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/MGTheTrain/toypas/internal/api/rest/v1"
	"github.com/MGTheTrain/toypas/internal/app"
	"github.com/MGTheTrain/toypas/internal/domain/runs"
	"github.com/MGTheTrain/toypas/internal/infrastructure/codegen"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter"
	"github.com/MGTheTrain/toypas/internal/infrastructure/numeric"
	"github.com/MGTheTrain/toypas/internal/infrastructure/persistence"
	"github.com/MGTheTrain/toypas/internal/pkg/config"
	"github.com/MGTheTrain/toypas/internal/pkg/logger"
	"github.com/MGTheTrain/toypas/internal/pkg/metrics"
	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := persistence.CloseDB(deps.db); err != nil {
			log.Error("failed to close database: ", err)
		}
	}()

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db                 *gorm.DB
	executionService   runs.ExecutionService
	runMetadataService runs.RunMetadataService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	runRepo, err := persistence.NewGormRunRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create run repository: %w", err)
	}

	// Initialize engines
	calculator, err := numeric.NewLeibnizCalculator(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create pi calculator: %w", err)
	}

	generator, err := codegen.NewProcedureChainGenerator(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create procedure chain generator: %w", err)
	}

	interp, err := interpreter.NewTreeWalkingInterpreter(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create interpreter: %w", err)
	}

	// Initialize services
	executionService, err := app.NewExecutionService(calculator, generator, interp, runRepo, cfg.Execution, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create execution service: %w", err)
	}

	runMetadataService, err := app.NewRunMetadataService(runRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create run metadata service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appDependencies{
		db:                 db,
		executionService:   executionService,
		runMetadataService: runMetadataService,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()
	r.Use(metrics.GinMiddleware())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Run-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	executionTimeout := time.Duration(cfg.Execution.ExecutionTimeoutMS) * time.Millisecond
	v1.SetupRoutes(r, deps.executionService, deps.runMetadataService, executionTimeout)

	r.GET("/metrics", gin.WrapH(metrics.PrometheusHandler()))

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info(fmt.Sprintf("Received signal %v, initiating graceful shutdown", sig))
	}

	// Graceful shutdown waits for running executions up to their own timeout
	ctx, cancel := context.WithTimeout(context.Background(), executionTimeout+5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
