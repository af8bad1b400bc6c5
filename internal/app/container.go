package app

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"staffhub/internal/config"
	"staffhub/internal/database"
	"staffhub/internal/database/migration"
	dbpostgres "staffhub/internal/database/postgres"
	"staffhub/internal/infrastructure/cache"
	"staffhub/internal/ws"
)

// Container holds every process-wide dependency. It is built once at
// startup and torn down on shutdown.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.RunMigrations {
		if err := runMigrations(ctx, db, cfg.Database.MigrationsDir); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	redis := cache.NewRedis(cache.Options{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)

	hub := ws.NewHub(logger)
	go hub.Run()

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  redis,
		Hub:    hub,
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

func runMigrations(ctx context.Context, db database.DB, dir string) error {
	type sqlDBProvider interface {
		SQLDB() *sql.DB
	}

	p, ok := db.(sqlDBProvider)
	if !ok || p.SQLDB() == nil {
		return errors.New("database does not expose a sql.DB for migrations")
	}

	return migration.Runner{Dir: dir}.Run(ctx, p.SQLDB())
}
