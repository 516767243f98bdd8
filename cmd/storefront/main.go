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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/cache"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/service"
	httptransport "github.com/nikolayk812/storefront/internal/transport/http"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("newLogger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("db.Migrate: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool.Ping: %w", err)
	}

	reportCache, closeCache, err := newReportCache(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("newReportCache: %w", err)
	}
	defer closeCache()

	var (
		orders    = repository.NewOrder(pool)
		carts     = repository.NewCart(pool)
		catalog   = repository.NewCatalog(pool)
		addresses = repository.NewAddress(pool)
		reports   = repository.NewReport(pool)
		tx        = repository.NewTransactor(pool)
	)

	handler := httptransport.NewHandler(httptransport.Deps{
		Checkout:  service.NewCheckoutService(orders, carts, tx, reportCache, cfg.CheckoutMode, logger.Named("checkout")),
		Lifecycle: service.NewLifecycleService(orders, reportCache, cfg.Currency, cfg.Location, logger.Named("lifecycle")),
		Reports:   service.NewReportService(reports, catalog, reportCache, cfg.Location, cfg.StockAlertThreshold, logger.Named("reports")),
		Catalog:   catalog,
		Carts:     carts,
		Addresses: addresses,
		Currency:  cfg.Currency,
		Logger:    logger.Named("http"),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httptransport.NewRouter(handler, cfg.RequestTimeout),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.Stringer("checkout_mode", cfg.CheckoutMode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}

	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newReportCache falls back to no caching when Redis is not configured.
func newReportCache(ctx context.Context, cfg config.Config, logger *zap.Logger) (cache.VendorReportCache, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info("vendor report cache disabled")
		return cache.Nop{}, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("client.Ping: %w", err)
	}

	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close redis client", zap.Error(err))
		}
	}

	return cache.NewRedisCache(client, cfg.ReportCacheTTL), closeFn, nil
}
