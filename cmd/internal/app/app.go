// Package app wires the todo server runtime: config, logging, storage,
// HTTP routes, and graceful shutdown.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	authapi "todo/cmd/internal/auth/api"
	"todo/cmd/internal/auth/session"
	"todo/cmd/internal/content"
	"todo/cmd/internal/docstore"
	"todo/cmd/internal/tasks"
	"todo/cmd/security/token"
)

// App is the todo server runtime: it owns the HTTP wiring and, when
// configured, the database pool lifecycle.
type App struct {
	cfg Config
	log Logger

	dbPool    *pgxpool.Pool
	dbEnabled bool

	tokens *token.Manager
	auth   *authapi.Handler
	todos  *tasks.Handler
	cont   *content.Handler
}

// New constructs a fully wired App instance from config and logger.
func New(cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel)
	}

	tokens, err := token.NewManager([]byte(cfg.SecretKey), cfg.TokenIssuer, cfg.AccessTTL)
	if err != nil {
		return nil, err
	}

	store, dbPool, dbEnabled, err := newStore(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewService(store, tokens)
	if err != nil {
		if dbPool != nil {
			dbPool.Close()
		}
		return nil, err
	}

	maxBody := int64(cfg.MaxBodyBytes)

	return &App{
		cfg:       cfg,
		log:       log,
		dbPool:    dbPool,
		dbEnabled: dbEnabled,
		tokens:    tokens,
		auth:      authapi.NewHandler(log, sessions, maxBody),
		todos:     tasks.NewHandler(log, store, maxBody),
		cont: content.NewHandler(log, content.Config{
			QuoteURL:          cfg.QuoteURL,
			ImageURL:          cfg.ImageURL,
			UnsplashAccessKey: cfg.UnsplashAccessKey,
			Timeout:           cfg.UpstreamTimeout,
		}),
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or
// fatal server error.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()

	gate := func(next http.Handler) http.Handler {
		return authapi.RequireAuth(a.log, a.tokens, next)
	}
	registerHTTP(mux, a.log, a.cfg, a.dbPool, a.dbEnabled, a.auth, a.todos, a.cont, gate)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           WithRequestLogging(WithMetrics(mux), a.log),
		ReadHeaderTimeout: nonZeroDuration(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZeroDuration(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZeroDuration(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZeroDuration(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZeroInt(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr, "db_enabled", a.dbEnabled)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	if a.dbPool != nil {
		a.dbPool.Close()
	}

	a.log.Info("server.stopped")
	return nil
}

func nonZeroDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func nonZeroInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// newStore decides between Postgres-backed persistence and the in-memory
// dev store. With Postgres, migrations run before the pool opens.
func newStore(ctx context.Context, cfg Config, log Logger) (docstore.Store, *pgxpool.Pool, bool, error) {
	if cfg.DatabaseURL == "" {
		log.Info("db.disabled.inmemory_store")
		return docstore.NewMemoryStore(), nil, false, nil
	}

	if err := RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		return nil, nil, false, err
	}

	pool, err := NewDBPool(ctx, cfg)
	if err != nil {
		return nil, nil, false, err
	}

	store, err := docstore.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return nil, nil, false, err
	}

	log.Info("db.enabled.postgres_store")
	return store, pool, true, nil
}
