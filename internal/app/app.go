package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yungbote/movies-backend/internal/config"
	"github.com/yungbote/movies-backend/internal/data/db"
	apphttp "github.com/yungbote/movies-backend/internal/http"
	"github.com/yungbote/movies-backend/internal/observability"
	"github.com/yungbote/movies-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      *config.Config
	DB       *db.Service
	Metrics  *observability.Metrics
	Repos    Repos
	Clients  Clients
	Hubs     *Hubs
	Services Services
	Server   *apphttp.Server

	shutdownOTel func(context.Context) error
}

// New loads configuration for role and wires every dependency that role needs.
func New(ctx context.Context, role config.Role) (*App, error) {
	cfg, err := config.Load(role)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(ctx, cfg)
}

func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log = log.With("role", string(cfg.Role))

	a := &App{Log: log, Cfg: cfg}
	serviceName := "movies-" + string(cfg.Role)
	a.shutdownOTel = observability.InitOTel(ctx, log, observability.OtelConfigFromEnv(serviceName))
	a.Metrics = observability.Init(log)

	if cfg.NeedsStore() {
		log.Info("Opening store...", "driver", cfg.Store.Driver)
		a.DB, err = db.Open(log, db.Options{
			Driver:        cfg.Store.Driver,
			DSN:           cfg.Store.DSN,
			SlowThreshold: cfg.Store.SlowThreshold,
			MaxOpenConns:  cfg.Store.MaxOpenConns,
			MaxIdleConns:  cfg.Store.MaxIdleConns,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("init store: %w", err)
		}
		if err := migrate(a.DB, cfg.Role); err != nil {
			a.Close()
			return nil, err
		}
	}

	a.Hubs, err = wireHubs(ctx, log, cfg, a.Metrics)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Repos = wireRepos(a.DB, log, cfg.Role)
	a.Clients, err = wireClients(log, cfg, a.Metrics)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Services = wireServices(a.DB, log, a.Repos, a.Clients, a.Hubs)

	handlers := wireHandlers(log, cfg, a.Services, a.Hubs, a.DB)
	a.Server = apphttp.NewServer(log, apphttp.ServerOptions{
		Addr:            cfg.HTTP.Addr,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}, wireRouter(serviceName, log, cfg, a.Metrics, handlers))
	a.Server.OnShutdown(a.Hubs.Close)

	return a, nil
}

// Run serves until ctx is done. Stream subscribers are released as soon as
// shutdown begins so the server can drain.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Metrics.StartServer(ctx, a.Log, a.Cfg.Metrics.Addr)
	if err := a.Hubs.Start(ctx); err != nil {
		return err
	}
	return a.Server.Run(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	var errs []error
	if a.Hubs != nil {
		a.Hubs.Close()
		errs = append(errs, a.Hubs.CloseBus())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if a.shutdownOTel != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, a.shutdownOTel(ctx))
		cancel()
	}
	if err := errors.Join(errs...); err != nil && a.Log != nil {
		a.Log.Warn("shutdown completed with errors", "error", err)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

func migrate(store *db.Service, role config.Role) error {
	switch role {
	case config.RoleMovieInfo:
		return db.AutoMigrateMovieInfo(store.DB())
	case config.RoleReviews:
		return db.AutoMigrateReviews(store.DB())
	}
	return nil
}
