package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"example.com/scoreboard/internal/auth"
	"example.com/scoreboard/internal/config"
	"example.com/scoreboard/internal/httpapi"
	"example.com/scoreboard/internal/migrate"
	"example.com/scoreboard/internal/scoreboard"
	"example.com/scoreboard/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const pingTimeout = 10 * time.Second

type App struct {
	cfg config.Config
	log *slog.Logger

	db  *pgxpool.Pool // nil when DATABASE_URL is empty
	rdb *redis.Client // nil when REDIS_ADDR is empty

	board *scoreboard.Service
	srv   *http.Server
}

func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	a := &App{cfg: cfg, log: log}

	opts := scoreboard.Options{Log: log, FeedBuffer: cfg.Feed.Buffer}

	// --- Postgres (result archive) ---
	var results httpapi.ResultsLister
	if cfg.Postgres.URL != "" {
		if cfg.Postgres.RunMigrations {
			if _, err := migrate.Up(ctx, cfg.Postgres.URL, cfg.Postgres.MigrationsDir, log); err != nil {
				return nil, err
			}
		}

		dbpool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("pgxpool: %w", err)
		}
		a.db = dbpool

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := dbpool.Ping(pingCtx); err != nil {
			_ = a.Close(ctx)
			return nil, fmt.Errorf("postgres ping: %w", err)
		}

		rs := store.NewResultsStore(dbpool)
		opts.Archive = rs
		results = rs
	} else {
		log.Warn("DATABASE_URL not set, finished matches are not archived")
	}

	// --- Redis (board snapshot) ---
	if cfg.Redis.Addr != "" {
		a.rdb = redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := a.rdb.Ping(pingCtx).Err(); err != nil {
			_ = a.Close(ctx)
			return nil, fmt.Errorf("redis ping (%s db=%d): %w", cfg.Redis.Addr, cfg.Redis.DB, err)
		}
		opts.Persist = scoreboard.NewRedisSnapshotStore(a.rdb, cfg.Redis.SnapshotKey, cfg.Redis.SnapshotTTL)
	} else {
		log.Warn("REDIS_ADDR not set, scoreboard lives in memory only")
	}

	// --- Scoreboard ---
	a.board = scoreboard.NewService(opts)
	if err := a.board.Restore(ctx); err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("restore scoreboard: %w", err)
	}

	h := &httpapi.ScoreboardHandler{
		Board:        a.board,
		Results:      results,
		Log:          log,
		PingInterval: cfg.Feed.PingInterval,
	}
	authSvc := auth.NewService([]byte(cfg.Auth.Secret))

	a.srv = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpapi.NewRouter(h, authSvc, log),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	return a, nil
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.srv.Handler
}

func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	a.log.Info("http server starting", "addr", a.cfg.HTTP.Addr)

	g.Go(func() error {
		err := a.srv.ListenAndServe()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		a.log.Info("http server shutting down")
		if err := a.srv.Shutdown(shutdownCtx); err != nil {
			a.log.Warn("http shutdown", "err", err)
		}
		return nil
	})

	err := g.Wait()
	_ = a.Close(context.Background())
	return err
}

func (a *App) Close(ctx context.Context) error {
	// best-effort
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
		a.rdb = nil
	}
	return nil
}
