package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mentor-collab/internal/config"
	"mentor-collab/internal/db"
	"mentor-collab/internal/email"
	"mentor-collab/internal/repository"
	"mentor-collab/internal/service"
)

// App agrupa los servicios ya cableados segun la configuracion. La comparten
// el servidor HTTP y el CLI.
type App struct {
	Suggestions    *service.SuggestionService
	Requests       *service.RequestService
	Collaborations *service.CollaborationService
	JWT            *service.JWTService

	Pool   *pgxpool.Pool
	Memory *repository.MemoryStore

	seeder  Seeder
	closers []func()
}

type storage struct {
	mentorships    repository.MentorshipRepository
	ratings        repository.EvaluationRepository
	requests       repository.RequestRepository
	collaborations repository.CollaborationRepository
	seeder         Seeder
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{}

	var st storage
	switch cfg.StorageDriver {
	case config.StorageMemory:
		store := repository.NewMemoryStore()
		a.Memory = store
		st = storage{mentorships: store, ratings: store, requests: store, collaborations: store, seeder: memorySeeder{store}}
	default:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		a.Pool = pool
		a.closers = append(a.closers, pool.Close)
		if cfg.DBAutoMigrate {
			if err := db.Migrate(ctx, pool); err != nil {
				a.Close()
				return nil, err
			}
			logger.Info("schema applied")
		}
		mentorships := repository.NewPgMentorshipRepository(pool)
		ratings := repository.NewPgEvaluationRepository(pool)
		st = storage{
			mentorships:    mentorships,
			ratings:        ratings,
			requests:       repository.NewPgRequestRepository(pool),
			collaborations: repository.NewPgCollaborationRepository(pool),
			seeder:         pgSeeder{mentorships: mentorships, ratings: ratings},
		}
	}
	a.seeder = st.seeder

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var limiter service.RequestRateLimiter
	if cfg.RequestRateMax > 0 {
		limiter = service.NewMemoryRateLimiter(cfg.RequestRateWindow, cfg.RequestRateMax)
		if cfg.RedisAddr != "" {
			redisClient := redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			})
			ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
			if err := redisClient.Ping(ctxPing).Err(); err != nil {
				logger.Warn("redis ping failed, using in-memory rate limiter", zap.Error(err))
				_ = redisClient.Close()
			} else {
				limiter = service.NewRedisRateLimiter(redisClient, cfg.RequestRateWindow, cfg.RequestRateMax)
				a.closers = append(a.closers, func() { _ = redisClient.Close() })
			}
			cancel()
		}
	}

	a.JWT = service.NewJWTService(cfg.JWTSecret, 15*time.Minute)
	if !a.JWT.Enabled() {
		logger.Warn("jwt secret not configured, actor checks disabled")
	}

	a.Suggestions = service.NewSuggestionService(logger, st.mentorships, st.ratings, st.collaborations, cfg.MatchingConfig())
	coordinator := service.NewAcceptCoordinator(logger, st.collaborations, a.Suggestions, cfg.RevalidateOnAccept)
	a.Requests = service.NewRequestService(logger, a.Suggestions, st.mentorships, st.requests, coordinator, emailSender, limiter)
	a.Collaborations = service.NewCollaborationService(logger, st.mentorships, st.collaborations)
	return a, nil
}

// Health verifica la conectividad del almacenamiento.
func (a *App) Health(ctx context.Context) error {
	if a.Pool == nil {
		return nil
	}
	return db.Ping(ctx, a.Pool)
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
