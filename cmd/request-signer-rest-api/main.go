// cmd/request-signer-rest-api/main.go
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

	v1 "github.com/MGTheTrain/request-signer/internal/api/rest/v1"
	"github.com/MGTheTrain/request-signer/internal/app"
	"github.com/MGTheTrain/request-signer/internal/domain/canonical"
	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/MGTheTrain/request-signer/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/request-signer/internal/infrastructure/keyformat"
	"github.com/MGTheTrain/request-signer/internal/infrastructure/persistence"
	"github.com/MGTheTrain/request-signer/internal/pkg/config"
	"github.com/MGTheTrain/request-signer/internal/pkg/logger"
	"github.com/gin-contrib/cors"
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
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
	defer deps.close(log)

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db      *gorm.DB
	signing signing.SigningService
	keys    signing.KeyService
	records signing.SignatureRecordService
}

// closeDB is swapped in tests to observe connection cleanup.
var closeDB = persistence.CloseDB

func (d *appDependencies) close(log logger.Logger) {
	if d.db == nil {
		return
	}
	if err := closeDB(d.db); err != nil {
		log.Warn("Failed to close database: ", err)
	}
	d.db = nil
}

// initializeDependencies sets up all application components. A partially
// built set is closed before the error is returned.
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	deps := &appDependencies{}
	if err := deps.wire(cfg, log); err != nil {
		deps.close(log)
		return nil, err
	}
	log.Info("Application services initialized successfully")
	return deps, nil
}

func (d *appDependencies) wire(cfg *config.RestConfig, log logger.Logger) error {
	// The audit store is optional; without it nothing is recorded and the record routes are absent.
	var recordRepo signing.SignatureRecordRepository
	if cfg.Database.Enabled() {
		db, err := persistence.NewDBConnection(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to create db connection: %w", err)
		}
		d.db = db

		if err := persistence.Migrate(db); err != nil {
			return err
		}
		log.Info("Database migrations completed successfully")

		repo, err := persistence.NewGormSignatureRecordRepository(db, log)
		if err != nil {
			return fmt.Errorf("failed to create signature record repository: %w", err)
		}
		recordRepo = repo

		d.records, err = app.NewSignatureRecordService(repo, log)
		if err != nil {
			return fmt.Errorf("failed to create signature record service: %w", err)
		}
	} else {
		log.Info("No database configured, signature records are disabled")
	}

	primitive, err := cryptography.NewRSAPrimitive(log)
	if err != nil {
		return fmt.Errorf("failed to create RSA primitive: %w", err)
	}

	builder, err := canonical.NewBuilder(primitive, canonical.Mode(cfg.Signing.CanonicalMode))
	if err != nil {
		return fmt.Errorf("failed to create canonical builder: %w", err)
	}

	adapter, err := keyformat.NewAdapter(primitive, log)
	if err != nil {
		return fmt.Errorf("failed to create key format adapter: %w", err)
	}

	d.signing, err = app.NewSigningService(primitive, builder, adapter, recordRepo, log)
	if err != nil {
		return fmt.Errorf("failed to create signing service: %w", err)
	}

	d.keys, err = app.NewKeyService(primitive, cfg.Signing.ModulusBits, log)
	if err != nil {
		return fmt.Errorf("failed to create key service: %w", err)
	}
	return nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r, deps.signing, deps.keys, deps.records, log)

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
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
