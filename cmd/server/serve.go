package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"stock_dashboard/internal/app/di"
	"stock_dashboard/internal/app/router"
	stockshandler "stock_dashboard/internal/feature/stocks/transport/handler"
	stocksusecase "stock_dashboard/internal/feature/stocks/usecase"
	watchlistadapters "stock_dashboard/internal/feature/watchlist/adapters"
	watchlisthandler "stock_dashboard/internal/feature/watchlist/transport/handler"
	watchlistusecase "stock_dashboard/internal/feature/watchlist/usecase"
	"stock_dashboard/internal/platform/db"
	"stock_dashboard/internal/platform/http/handler"
	"stock_dashboard/internal/platform/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := di.OpenDB(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	// Redis（任意）
	rdb := di.NewRedis(ctx, cfg.Redis)
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Warn("failed to close redis client", "error", err)
			}
		}()
	}

	// Cache / Engine
	store := di.NewCacheStore(cfg.DB.Driver, gdb, rdb)
	engine := di.NewEngine(store, cfg.Cache)

	// Usecase
	stocksUC := stocksusecase.NewStocksUsecase(engine, di.NewMarket(cfg.Yahoo))
	watchlistUC := watchlistusecase.NewWatchlistUsecase(watchlistadapters.NewStockRepository(gdb), stocksUC)

	// インメモリDBは毎回空なのでデフォルト銘柄を入れる
	if cfg.DB.Driver == "memory" {
		if _, err := watchlistUC.SeedDefaults(ctx); err != nil {
			return fmt.Errorf("seed watchlist: %w", err)
		}
	}

	// Handler
	checks := map[string]handler.Pinger{
		"db": handler.PingFunc(func(ctx context.Context) error { return db.Ping(ctx, gdb) }),
	}
	if rdb != nil {
		checks["redis"] = handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}
	r := router.NewRouter(
		router.Options{CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins},
		handler.NewHealthHandler(checks),
		stockshandler.NewStocksHandler(stocksUC),
		watchlisthandler.NewWatchlistHandler(watchlistUC),
	)

	// Scheduler（任意）
	if cfg.Cache.PruneSchedule != "" {
		var opts []scheduler.Option
		if cfg.Cache.WarmWatchlist {
			opts = append(opts, scheduler.WithWarmup(watchlistUC, func(ctx context.Context, symbol string) {
				stocksUC.GetQuote(ctx, symbol)
			}))
		}
		s := scheduler.NewScheduler(ctx, engine, cfg.Cache.PruneGrace, opts...)
		if err := s.Register(cfg.Cache.PruneSchedule); err != nil {
			return err
		}
		s.Start()
		defer s.Stop()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Server.Addr, "db_driver", cfg.DB.Driver, "redis", rdb != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
