// Package app wires the conversational front-end: command handlers,
// link classification, format menus and the delivery flow.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	coretelegram "github.com/clipfetch/clipfetch/core/telegram"
	"github.com/clipfetch/clipfetch/core/telegram/router"
	"github.com/clipfetch/clipfetch/internal/delivery"
	"github.com/clipfetch/clipfetch/internal/extractor"
	"github.com/clipfetch/clipfetch/internal/health"
	"github.com/clipfetch/clipfetch/internal/session"
)

// App composes the bot's components behind the TelegramApp contract.
type App struct {
	cfg *Config
	db  *sqlx.DB

	sessions     session.Store
	extractor    *extractor.Client
	orchestrator *delivery.Orchestrator
	health       *health.Server
	registry     *coretelegram.Registry
}

// New builds the application. db may be nil unless the postgres session
// backend is configured.
func New(cfg *Config, db *sqlx.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}

	sessions, err := buildSessionStore(cfg, db)
	if err != nil {
		return nil, err
	}

	client := extractor.NewClient(cfg.Extractor)

	a := &App{
		cfg:          cfg,
		db:           db,
		sessions:     sessions,
		extractor:    client,
		orchestrator: delivery.NewOrchestrator(sessions, client),
	}
	if cfg.Health.Enabled {
		a.health = health.NewServer(cfg.Health)
	}

	a.registry = a.buildRegistry()
	return a, nil
}

func buildSessionStore(cfg *Config, db *sqlx.DB) (session.Store, error) {
	switch cfg.Session.Backend {
	case SessionBackendPostgres:
		if db == nil {
			return nil, fmt.Errorf("app: postgres session backend requires a database connection")
		}
		return session.NewPostgresStore(db), nil
	case SessionBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		ttl := time.Duration(cfg.Session.TTLSeconds) * time.Second
		return session.NewRedisStore(client, ttl), nil
	default:
		return session.NewMemoryStore(), nil
	}
}

// TelegramRunOptions assembles the bot runtime configuration.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	core := a.cfg.CoreConfig()

	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminID: core.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoute(a.registry, router.TextOptions{}))
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{}))

	return coretelegram.RunOptions{
		Config:      core,
		Registry:    a.registry,
		Middlewares: coretelegram.DefaultMiddlewares(core, nil),
		Routes:      routes,
		OnStart: func(context.Context, coretelegram.Runtime) error {
			if a.health != nil {
				a.health.Start()
			}
			return nil
		},
		OnStop: func(ctx context.Context, _ coretelegram.Runtime) error {
			if a.health != nil {
				stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
				defer cancel()
				if err := a.health.Stop(stopCtx); err != nil {
					return err
				}
			}
			if a.db != nil {
				return a.db.Close()
			}
			return nil
		},
	}, nil
}
