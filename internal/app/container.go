package app

import (
	"context"
	"log"
	"time"

	"career-compass/internal/auth"
	"career-compass/internal/config"
	"career-compass/internal/database/migration"
	dbpostgres "career-compass/internal/database/postgres"
	"career-compass/internal/infrastructure/cache"
	"career-compass/internal/session"
	"career-compass/internal/storage"
	"career-compass/internal/storage/memory"
	storagepostgres "career-compass/internal/storage/postgres"
	ucanalytics "career-compass/internal/usecase/analytics"
	ucauth "career-compass/internal/usecase/auth"
	ucresume "career-compass/internal/usecase/resume"
	ucwebinar "career-compass/internal/usecase/webinar"
	"career-compass/internal/ws"
)

type Container struct {
	Config config.Config
	Logger *log.Logger

	Store    storage.Store
	Cache    *cache.Redis
	Sessions *session.Manager
	Hub      *ws.Hub

	Auth      *ucauth.Service
	Resume    *ucresume.Service
	Webinar   *ucwebinar.Service
	Analytics *ucanalytics.Service
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	store, err := newStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	redisCache := cache.NewRedis(logger)
	sessions := session.NewManager(store)
	hub := ws.NewHub(logger)

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Cache:     redisCache,
		Sessions:  sessions,
		Hub:       hub,
		Auth:      ucauth.NewService(store, auth.NewScryptHasher(), sessions),
		Resume:    ucresume.NewService(store),
		Webinar:   ucwebinar.NewService(store),
		Analytics: ucanalytics.NewService(store, redisCache),
	}
	return c, nil
}

// newStore is the startup-time backend factory: a configured DATABASE_URL
// selects postgres, anything else falls back to the in-memory store. The
// choice is never revisited at request time.
func newStore(cfg config.Config, logger *log.Logger) (storage.Store, error) {
	if cfg.Database.URL == "" {
		logger.Printf("DATABASE_URL not set, using in-memory storage")
		return memory.NewStore(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{}).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Printf("connected to postgres storage")
	return storagepostgres.NewStore(db), nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.Store == nil {
		return nil
	}
	return c.Store.Close()
}
