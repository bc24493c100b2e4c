// internal/app/app.go
package app

import (
	"referral-network-api/config"
	"referral-network-api/internal/ai"
	"referral-network-api/internal/api/middleware"
	"referral-network-api/internal/cache"
	"referral-network-api/internal/realtime"
	"referral-network-api/internal/services"
	"referral-network-api/internal/storage/blob"
	"referral-network-api/internal/storage/postgres"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Services groups the business services the routes depend on.
type Services struct {
	Profiles    services.ProfileService
	Dev         services.DevService
	Jobs        services.JobService
	Referrals   services.ReferralService
	Matches     services.MatchService
	Suggestions services.SuggestionService
	Resumes     services.ResumeService
	Dashboard   services.DashboardService
}

// Application holds core application dependencies.
type Application struct {
	Config      *config.Config
	DBPool      *pgxpool.Pool
	RedisClient *redis.Client // nil when Redis is unreachable
	Validator   *validator.Validate
	Hub         *realtime.Hub
	Sessions    *middleware.SessionVerifier
	Services    Services
}

// New wires repositories and services on top of the infrastructure clients.
func New(
	cfg *config.Config,
	pool *pgxpool.Pool,
	redisClient *redis.Client,
	completer ai.Completer,
	blobs blob.Store,
	hub *realtime.Hub,
) *Application {
	profileRepo := postgres.NewProfileRepo(pool)
	jobRepo := postgres.NewJobRepo(pool)
	referralRepo := postgres.NewReferralRepo(pool)
	analysisRepo := postgres.NewMatchAnalysisRepo(pool)
	suggestionRepo := postgres.NewSuggestionRepo(pool)
	uploadRepo := postgres.NewResumeUploadRepo(pool)
	dashboardRepo := postgres.NewDashboardRepo(pool)

	dashboardCache := cache.NewRedis(redisClient)

	return &Application{
		Config:      cfg,
		DBPool:      pool,
		RedisClient: redisClient,
		Validator:   validator.New(),
		Hub:         hub,
		Sessions:    middleware.NewSessionVerifier(cfg.Auth),
		Services: Services{
			Profiles:    services.NewProfileService(profileRepo),
			Dev:         services.NewDevService(profileRepo, cfg.Server, cfg.Dev),
			Jobs:        services.NewJobService(jobRepo, pool),
			Referrals:   services.NewReferralService(referralRepo, jobRepo, uploadRepo, dashboardCache, hub),
			Matches:     services.NewMatchService(jobRepo, analysisRepo, completer),
			Suggestions: services.NewSuggestionService(jobRepo, profileRepo, suggestionRepo, completer, hub),
			Resumes:     services.NewResumeService(uploadRepo, blobs, cfg.Storage, cfg.Scheduler),
			Dashboard:   services.NewDashboardService(dashboardRepo, dashboardCache, cfg.Redis.DashboardTTL),
		},
	}
}
