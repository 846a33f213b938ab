// Command waylogd runs the Waylog travel journal server.
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

	"github.com/sirupsen/logrus"

	"github.com/waylog/waylog/internal/api"
	"github.com/waylog/waylog/internal/config"
	"github.com/waylog/waylog/internal/crypto"
	"github.com/waylog/waylog/internal/db"
	"github.com/waylog/waylog/internal/db/migrations"
	"github.com/waylog/waylog/internal/dbpool"
	"github.com/waylog/waylog/internal/service"
	"github.com/waylog/waylog/internal/store"
	"github.com/waylog/waylog/internal/ws"
)

const shutdownTimeout = 15 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("server exited with error")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	log.WithFields(logrus.Fields{
		"version":        config.Version,
		"schema_version": db.SchemaVersion(),
	}).Info("waylogd starting")

	keys, err := newKeyProvider(cfg)
	if err != nil {
		return fmt.Errorf("initialising encryption: %w", err)
	}

	base := store.Base{
		Pool:   pool,
		Log:    log,
		Crypto: crypto.NewService(keys),
	}

	hub := ws.NewHub(log)
	go hub.Run(ctx)

	bridge := db.NewNotifyBridge(log, pool, hub)
	if err := bridge.Start(ctx); err != nil {
		return fmt.Errorf("starting notify bridge: %w", err)
	}

	deps := &api.RouterDeps{
		Log:  log,
		Pool: pool,
		Hub:  hub,
		Backup: service.NewBackupService(
			store.NewExportStore(base),
			store.NewRestoreStore(base),
			log,
		),
		Trips:       service.NewTripService(store.NewTripStore(base)),
		Tags:        service.NewTagService(store.NewTagStore(base)),
		Companions:  service.NewCompanionService(store.NewCompanionStore(base)),
		Users:       service.NewUserService(store.NewUserStore(base)),
		UserLookup:  &base,
		CORSOrigins: cfg.CORSOrigins,
		Version:     config.Version,
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(ctx, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr()).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	log.Info("waylogd stopped")

	return nil
}

// newKeyProvider selects the encryption key source from config.
func newKeyProvider(cfg *config.Config) (crypto.KeyProvider, error) {
	switch cfg.EncryptionProvider {
	case "vault":
		return crypto.NewVaultProvider(cfg.VaultAddr, cfg.VaultToken.Value()), nil
	default:
		return crypto.NewStaticProvider(cfg.EncryptionKey.Value())
	}
}
