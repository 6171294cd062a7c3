// @title        Movies API
// @version      1.0
// @description  電影目錄、聯絡訊息與帳號管理的後端 API 文件
// @host         localhost:5000
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moviesgo/internal/api"
	"moviesgo/internal/apperror"
	"moviesgo/internal/cache"
	"moviesgo/internal/config"
	"moviesgo/internal/database"
	"moviesgo/internal/logging"
	"moviesgo/internal/media"
	"moviesgo/internal/metrics"
	"moviesgo/internal/router"
	"moviesgo/internal/service"
	"moviesgo/internal/store"
	"moviesgo/internal/store/memstore"
	"moviesgo/internal/store/mongostore"
	"moviesgo/internal/store/pgstore"
	"moviesgo/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	_ "moviesgo/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// bucketUploader 啟動時需要先確認 bucket 的媒體服務
type bucketUploader interface {
	media.Uploader
	EnsureBucket(ctx context.Context) error
	Folder() string
}

var (
	loadConfig      = config.Load
	newMongoStore   = func(uri, db string) (store.Backend, error) { return mongostore.NewStore(uri, db) }
	newPgxPool      = database.NewPgxPool
	runMigrationsFn = database.RunMigrations
	rollbackAllFn   = database.RollbackAll
	newRedisClient  = cache.NewRedisClient
	newUploader     = func(cfg config.MinIOConfig, logger *slog.Logger) (bucketUploader, error) {
		return media.NewMinIOUploader(cfg, logger)
	}
	setupRoutes    = router.Setup
	startServer    = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	exitFunc       = os.Exit
)

const shutdownTimeout = 10 * time.Second

// openStore 依 driver 建立儲存後端
func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (store.Backend, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		return newMongoStore(cfg.MongoURI, cfg.MongoDatabase)
	case config.DriverPostgres:
		db, err := newPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("DB 連線失敗: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.Ping(pingCtx); err != nil {
			db.Close()
			return nil, fmt.Errorf("DB ping 失敗: %w", err)
		}
		if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
			db.Close()
			return nil, fmt.Errorf("Migration 執行失敗: %w", err)
		}
		return pgstore.New(db), nil
	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func newEcho(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = apperror.HTTPErrorHandler(logger)
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(middleware.BodyLimit("6M"))
	e.Use(logging.RequestLogger(logger))
	e.Use(m.Middleware())
	return e
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("service", flag.ContinueOnError)
	migrateDown := fs.Bool("migrate-down", false, "退回所有 Postgres migration 後結束")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	logger := logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if *migrateDown {
		if cfg.Store.Driver != config.DriverPostgres {
			return fmt.Errorf("-migrate-down requires STORE_DRIVER=%s", config.DriverPostgres)
		}
		if err := rollbackAllFn(cfg.Store.DatabaseURL); err != nil {
			return fmt.Errorf("RollbackAll 失敗: %w", err)
		}
		logger.Info("migrations rolled back")
		return nil
	}

	backend, err := openStore(ctx, cfg.Store, logging.WithComponent(logger, "store"))
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warn("關閉資料庫連線失敗", "error", err)
		}
	}()

	// Redis 為選用，只用於登入節流與健康檢查
	var rdb cache.Cache
	if cfg.Redis.Addr != "" {
		rdb, err = newRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %w", err)
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Warn("關閉 Redis 連線失敗", "error", err)
			}
		}()
	}
	limiter := service.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window,
		logging.WithComponent(logger, "limiter"))

	uploader, err := newUploader(cfg.MinIO, logging.WithComponent(logger, "media"))
	if err != nil {
		return fmt.Errorf("媒體服務初始化失敗: %w", err)
	}
	if err := uploader.EnsureBucket(ctx); err != nil {
		return fmt.Errorf("媒體 bucket 檢查失敗: %w", err)
	}

	// 背景清理在伺服器關閉後、連線關閉前排空
	cleanup := worker.NewPool(cfg.CleanupWorkers, logging.WithComponent(logger, "cleanup"))
	defer cleanup.Stop()

	m := metrics.New(prometheus.NewRegistry())
	e := newEcho(cfg, logger, m)

	// Folder 取自 uploader，與實際物件鍵的前綴一致
	setupRoutes(e, router.Deps{
		Store:   backend,
		Cache:   rdb,
		Tokens:  service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		Limiter: limiter,
		Media:   m.InstrumentUploader(uploader),
		Folder:  uploader.Folder(),
		Cleanup: cleanup,
		Logger:  logger,
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "store", cfg.Store.Driver)
		errCh <- startServer(e, ":"+cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownServer(sctx, e); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("service exited", "error", err)
		exitFunc(1)
	}
}
