package v1

import (
	"staffhub/internal/config"
	"staffhub/internal/database"
	"staffhub/internal/delivery/http/handler"
	"staffhub/internal/delivery/http/middleware"
	"staffhub/internal/domain/matching"
	"staffhub/internal/infrastructure/cache"
	"staffhub/internal/pkg/jwt"
	"staffhub/internal/repository"
	"staffhub/internal/usecase"
	"staffhub/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Register wires repositories, usecases and handlers under /api/v1. Auth
// routes are open; everything else requires a valid access token.
func Register(r fiber.Router, cfg config.Config, db database.DB, redis *cache.Redis, hub *ws.Hub) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	personnelRepo := repository.NewPostgresPersonnelRepository(db)
	skillRepo := repository.NewPostgresSkillRepository(db)
	projectRepo := repository.NewPostgresProjectRepository(db)
	assignmentRepo := repository.NewPostgresAssignmentRepository(db)
	ratingRepo := repository.NewPostgresRatingRepository(db)
	dashboardRepo := repository.NewPostgresDashboardRepository(db)

	notifier := ws.NewNotifier(hub)
	var matchCache usecase.MatchCache
	if redis != nil {
		matchCache = redis
	}

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	personnelUC := usecase.NewPersonnelUsecase(personnelRepo, skillRepo, matchCache)
	skillUC := usecase.NewSkillUsecase(skillRepo, matchCache)
	projectUC := usecase.NewProjectUsecase(projectRepo, personnelRepo, assignmentRepo, ratingRepo, skillRepo, matchCache, notifier)
	matchingUC := usecase.NewMatchingUsecase(projectRepo, personnelRepo, assignmentRepo, ratingRepo, matchCache, cfg.Redis.TTL, matching.DefaultConfig())
	dashboardUC := usecase.NewDashboardUsecase(dashboardRepo)

	handler.NewAuthHandler(authUC).RegisterRoutes(r.Group("/auth"))

	protected := r.Group("", authMw.Middleware())
	handler.NewPersonnelHandler(personnelUC).RegisterRoutes(protected.Group("/personnel"))
	handler.NewSkillHandler(skillUC).RegisterRoutes(protected.Group("/skills"))
	handler.NewProjectHandler(projectUC, matchingUC).RegisterRoutes(protected.Group("/projects"))
	handler.NewDashboardHandler(dashboardUC).RegisterRoutes(protected.Group("/dashboard"))
}
