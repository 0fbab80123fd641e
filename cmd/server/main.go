package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Bhandariq/MOVIE-REVIEW/internal/config"
	httpserver "github.com/Bhandariq/MOVIE-REVIEW/internal/http"
	"github.com/Bhandariq/MOVIE-REVIEW/internal/posters"
	"github.com/Bhandariq/MOVIE-REVIEW/internal/repository"
	"github.com/Bhandariq/MOVIE-REVIEW/internal/service"
	"github.com/Bhandariq/MOVIE-REVIEW/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env is a local-dev convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.New(os.Stdout, "[movie-review] ", log.LstdFlags|log.Lshortfile)

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	storeOpts := store.Options{
		MaxConns:               int32(cfg.DBMaxConns),
		MinConns:               int32(cfg.DBMinConns),
		MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		StatementCacheCapacity: cfg.DBStatementCache,
		Logger:                 logger,
	}

	st, err := store.New(dbCtx, cfg.DBURL, storeOpts)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer st.Close()

	var postersClient posters.Client
	if cfg.PostersURL != "" {
		client, err := posters.NewHTTPClient(cfg.PostersURL, cfg.PostersAPIKey, time.Duration(cfg.PostersTimeoutSecs)*time.Second, logger)
		if err != nil {
			log.Fatalf("init posters client: %v", err)
		}
		postersClient = client
	}

	repo := repository.New(st)
	aggregator := service.NewAggregator(repo, logger)
	catalog := service.NewCatalogService(repo, logger)
	reviews := service.NewReviewService(repo, aggregator, logger)
	reconciler := service.NewReconciler(repo, aggregator, logger)

	if cfg.ReconcileIntervalSecs > 0 {
		go runReconcileLoop(ctx, reconciler, time.Duration(cfg.ReconcileIntervalSecs)*time.Second, logger)
	}

	server := httpserver.New(cfg, st, catalog, reviews, postersClient, logger)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			log.Printf("server error: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func runReconcileLoop(ctx context.Context, reconciler *service.Reconciler, interval time.Duration, logger *log.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := reconciler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Printf("reconcile sweep failed: %v", err)
			}
		}
	}
}
