package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/antologia/internal/auth"
	"github.com/geocoder89/antologia/internal/config"
	"github.com/geocoder89/antologia/internal/db"
	"github.com/geocoder89/antologia/internal/directory"
	httpx "github.com/geocoder89/antologia/internal/http"
	"github.com/geocoder89/antologia/internal/http/handlers"
	"github.com/geocoder89/antologia/internal/observability"
	"github.com/geocoder89/antologia/internal/repo/postgres"
	"github.com/geocoder89/antologia/internal/repo/sqlite"
	"github.com/geocoder89/antologia/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// stores is whichever backend DB_DRIVER picked.
type stores struct {
	users      directory.UserStore
	authors    handlers.AuthorReader
	articles   handlers.ArticleStore
	categories handlers.CategoryStore
	ping       func(ctx context.Context) error
	close      func()
}

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "err", err)
		os.Exit(1)
	}

	shutdownTracer, err := observability.InitTracer(context.Background(), "antologia", cfg.Env, cfg.OtelEndpoint)
	if err != nil {
		log.Error("tracer init failed", "err", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	st, err := openStores(cfg, prom)
	if err != nil {
		log.Error("storage init failed", "driver", cfg.DBDriver, "err", err)
		os.Exit(1)
	}
	defer st.close()

	seedCtx, cancelSeed := config.WithTimeout(5 * time.Second)
	created, err := db.EnsureAdminUser(seedCtx, st.users, cfg)
	cancelSeed()
	if err != nil {
		log.Error("admin seed failed", "err", err)
		os.Exit(1)
	}
	if created {
		log.Info("admin user created", "username", cfg.AdminUsername)
	}

	sessions, sessionsPing, closeSessions, err := openSessions(cfg, log)
	if err != nil {
		log.Error("session store init failed", "err", err)
		os.Exit(1)
	}
	defer closeSessions()

	tokens := auth.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	dir := directory.NewService(st.users, sessions, tokens, cfg.SessionTTL, prom)

	// set up routers with the log
	router := httpx.NewRouter(httpx.Deps{
		Log:        log,
		Cfg:        cfg,
		Users:      st.authors,
		Articles:   st.articles,
		Categories: st.categories,
		Sessions:   dir,
		Ping: func(ctx context.Context) error {
			if err := st.ping(ctx); err != nil {
				return err
			}
			return sessionsPing(ctx)
		},
		Prom:    prom,
		Metrics: reg,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "base_path", cfg.BasePath, "driver", cfg.DBDriver)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

func openStores(cfg config.Config, prom *observability.Prom) (stores, error) {
	ctx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	switch cfg.DBDriver {
	case config.DriverSQLite:
		sdb, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return stores{}, err
		}

		users := sqlite.NewUsersRepo(sdb, prom)
		return stores{
			users:      users,
			authors:    users,
			articles:   sqlite.NewArticlesRepo(sdb, prom),
			categories: sqlite.NewCategoriesRepo(sdb, prom),
			ping:       sdb.PingContext,
			close:      func() { _ = sdb.Close() },
		}, nil

	default:
		pool, err := db.NewPool(ctx, cfg.DBURL)
		if err != nil {
			return stores{}, err
		}

		if err := db.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return stores{}, err
		}

		users := postgres.NewUsersRepo(pool, prom)
		return stores{
			users:      users,
			authors:    users,
			articles:   postgres.NewArticlesRepo(pool, prom),
			categories: postgres.NewCategoriesRepo(pool, prom),
			ping:       pool.Ping,
			close:      pool.Close,
		}, nil
	}
}

// openSessions uses Redis when REDIS_ADDR is set. Without it sessions live in
// process memory and are lost on restart.
func openSessions(cfg config.Config, log *slog.Logger) (session.Store, func(context.Context) error, func(), error) {
	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set, using in-memory sessions")
		noop := func(context.Context) error { return nil }
		return session.NewMemoryStore(), noop, func() {}, nil
	}

	ctx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()

	rdb, err := session.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, nil, err
	}

	store := session.NewRedisStore(rdb)
	return store, store.Ping, func() { _ = rdb.Close() }, nil
}
