package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sass-calc/internal/calculator/handlers"
	"sass-calc/internal/calculator/history"
	"sass-calc/internal/calculator/repository"
	"sass-calc/internal/calculator/service"
	"sass-calc/internal/common/config"
	"sass-calc/internal/common/logging"
	"sass-calc/internal/common/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"
)

// ============================================================
// Calculator Service
// ============================================================

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := serve(ctx, cfg, logger); err != nil {
		logger.Error("fatal error", zap.Error(err))
		return 1
	}
	return 0
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	store, closeStore, err := openHistoryStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("history store: %w", err)
	}
	defer closeStore()

	ledger := history.NewLedger(
		history.WithStore(store),
		history.WithCapacity(cfg.HistoryLimit),
	)

	session, err := service.NewSession(cfg.Settings, cfg.Conversion, ledger, logger)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	handler := handlers.New(session, logger)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Sass Calculator",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog())
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Health Check & Docs Routes
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handler.ReadinessProbe)
	app.Get("/docs", handlers.DocsUI)
	app.Get("/docs/openapi.yaml", handlers.OpenAPISpec)

	// ============================================================
	// API Routes
	// ============================================================

	handler.Register(app.Group("/api/v1"))

	// ============================================================
	// Server Start
	// ============================================================

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting calculator service",
		zap.String("addr", cfg.Addr()),
		zap.String("history_store", cfg.HistoryStore),
		zap.Int("history_limit", cfg.HistoryLimit),
	)

	if err := app.Listen(cfg.Addr()); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	logger.Info("calculator service stopped")
	return nil
}

// openHistoryStore выбирает хранилище журнала. Оба варианта живут только в памяти.
func openHistoryStore(ctx context.Context, cfg *config.Config) (history.Store, func(), error) {
	if cfg.HistoryStore != config.HistoryStoreSQLite {
		return history.NewMemoryStore(), func() {}, nil
	}

	db, err := repository.OpenInMemory()
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := repository.New(db)
	if err := store.Init(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("init sqlite: %w", err)
	}
	return store, func() { _ = db.Close() }, nil
}
