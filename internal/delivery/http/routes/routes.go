package routes

import (
	"log"

	"staffhub/internal/config"
	"staffhub/internal/database"
	"staffhub/internal/delivery/http/handler"
	v1 "staffhub/internal/delivery/http/routes/v1"
	"staffhub/internal/infrastructure/cache"
	"staffhub/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg    config.Config
	db     database.DB
	cache  *cache.Redis
	hub    *ws.Hub
	logger *log.Logger
}

func NewRegistry(cfg config.Config, db database.DB, redis *cache.Redis, hub *ws.Hub, logger *log.Logger) *Registry {
	return &Registry{cfg: cfg, db: db, cache: redis, hub: hub, logger: logger}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	handler.NewHealthHandler(r.db).RegisterRoutes(app)

	wsHandler := ws.NewHandler(r.hub, r.logger)
	app.Get("/ws/events", wsHandler.HandleEventsWS)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.cfg, r.db, r.cache, r.hub)
}
