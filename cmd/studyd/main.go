// studyd serves chess studies over HTTP: move trees with a cursor, built up
// move by move, annotated, drilled and persisted to memory or Redis.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/lgbarn/movetree-go/internal/config"
	"github.com/lgbarn/movetree-go/internal/delivery"
	"github.com/lgbarn/movetree-go/internal/notation"
	"github.com/lgbarn/movetree-go/internal/study"
)

var (
	configFile = flag.String("config", "", "Configuration file (yaml, json or toml)")
	addr       = flag.String("addr", "", "Listen address (overrides server.addr)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(2)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger, err := cfg.Log.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync() //nolint:errcheck // stderr sync fails on some platforms

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	if err := serve(ctx, cfg, logger); err != nil {
		logger.Errorw("server stopped", "error", err)
		os.Exit(1)
	}
}

// serve runs the HTTP server until ctx is cancelled, then drains it.
func serve(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) error {
	store, closeStore, err := newStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	registry := study.NewRegistry(store, logger,
		notation.WithMaxLineLength(int(cfg.Output.MaxLineLength)),
		notation.WithComments(cfg.Output.KeepComments),
		notation.WithGlyphs(cfg.Output.KeepGlyphs),
		notation.WithVariations(cfg.Output.KeepVariations),
	)
	handler := delivery.NewStudyHandler(registry, logger, cfg.Import.MaxDepth)
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: delivery.NewRouter(handler, logger, cfg.Server.RequestTimeout),
	}

	errs := make(chan error, 1)
	go func() {
		logger.Infof("Server is running on %s", cfg.Server.Addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// newStore opens the configured snapshot store.
func newStore(ctx context.Context, cfg *config.StoreConfig, logger *zap.SugaredLogger) (study.Store, func(), error) {
	switch cfg.Backend {
	case config.StoreRedis:
		client, err := study.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		logger.Infow("snapshots in redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB, "ttl", cfg.TTL)
		return study.NewRedisStore(client, cfg.KeyPrefix, cfg.TTL), func() {
			if err := client.Close(); err != nil {
				logger.Warnw("closing redis", "error", err)
			}
		}, nil
	default:
		logger.Info("snapshots in memory")
		return study.NewMemoryStore(), func() {}, nil
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	log.Infow("shutting down", "signal", sig.String())
	cancelFunc()
}
