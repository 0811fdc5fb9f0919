package api

import (
	"os"

	"ground-experiment/groundlink/internal/common"
	"ground-experiment/groundlink/internal/db"
	"ground-experiment/groundlink/internal/db/repositories"
	"ground-experiment/groundlink/internal/logging"
	"ground-experiment/groundlink/internal/metrics"
	"ground-experiment/groundlink/internal/services"
	"ground-experiment/groundlink/internal/ws"
)

type Repositories struct {
	Request  *repositories.RequestRepository
	Chat     *repositories.ChatRepository
	UserGorm *repositories.UserRepositoryGORM
	Airports *repositories.AirportRepository
}

type Services struct {
	Request  *services.RequestService
	Chat     *services.ChatService
	Airports *services.AirportService
	User     *services.UserService
	Cache    common.CacheInterface
	Session  *common.SessionService
	Signer   *common.TokenSignerService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Hub      *ws.Hub
	Metrics  *metrics.MetricsRegistry
}

func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Request:  repositories.NewRequestRepository(db.DB),
		Chat:     repositories.NewChatRepository(db.DB),
		UserGorm: repositories.NewUserRepositoryGORM(db.PgDB),
		Airports: repositories.NewAirportRepository(db.PgDB),
	}

	// Cache backend is env-selected; the in-memory cache is the default
	var cacheSvc common.CacheInterface
	var sessionSvc *common.SessionService
	if os.Getenv("CACHE_BACKEND") == "redis" {
		redisCache, err := common.NewRedisCacheService()
		if err != nil {
			return nil, err
		}
		cacheSvc = redisCache
		sessionSvc = common.NewSessionService(common.NewRedisClient())
	} else {
		cacheSvc = common.NewCacheService(600, 600)
		logging.Warn("Running with in-memory cache; sessions will not be revocable")
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "groundlink-dev-secret"
		logging.Warn("SESSION_SECRET not set, using development secret")
	}
	signer := common.NewTokenSignerService([]byte(secret))

	hub := ws.NewHub(metricsReg)

	svcs := &Services{
		Request:  services.NewRequestService(repos.Request, hub),
		Chat:     services.NewChatService(repos.Chat, repos.Request, hub),
		Airports: services.NewAirportService(repos.Airports, cacheSvc),
		User:     services.NewUserService(repos.UserGorm),
		Cache:    cacheSvc,
		Session:  sessionSvc,
		Signer:   signer,
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Hub:      hub,
		Metrics:  metricsReg,
	}, nil

}
