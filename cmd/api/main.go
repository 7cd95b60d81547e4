package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/hrprojector/jobboard/internal/api"
	"github.com/hrprojector/jobboard/internal/api/middleware"
	"github.com/hrprojector/jobboard/internal/core/service"
	"github.com/hrprojector/jobboard/internal/infrastructure/config"
	"github.com/hrprojector/jobboard/internal/infrastructure/db/mongo"
	"github.com/hrprojector/jobboard/internal/infrastructure/db/postgres"
	"github.com/hrprojector/jobboard/internal/infrastructure/db/redis"
	"github.com/hrprojector/jobboard/internal/infrastructure/http/handlers"
	"github.com/hrprojector/jobboard/internal/infrastructure/queue"
	"github.com/hrprojector/jobboard/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "jobboard",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Relational store ---
	if cfg.Postgres.MigrateOnStart {
		if err := postgres.MigrateUp(cfg.Postgres.URL); err != nil {
			return err
		}
		log.Info().Msg("migrations applied")
	}

	db, err := postgres.Connect(ctx, postgres.Config{
		URL:             cfg.Postgres.URL,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}, logger.Component("postgres"))
	if err != nil {
		return err
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			log.Warn().Err(err).Msg("failed to close postgres pool")
		}
	}()

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	readiness := handlers.NewHealthDependenciesHandler().
		Add("postgres", sqlDB.PingContext)

	// --- Audit store ---
	mongoClient, mongoDB, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongo.Disconnect(mongoClient); err != nil {
			log.Warn().Err(err).Msg("failed to disconnect mongo")
		}
	}()
	readiness.Add("mongo", func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) })

	events := mongo.NewEventRepository(mongoDB)
	if err := events.EnsureIndexes(ctx); err != nil {
		return err
	}

	// --- Redis (optional) ---
	var (
		dedup       service.DedupChecker
		authLimiter middleware.Limiter
	)
	if cfg.Redis.Addr != "" {
		redisClient, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer redisClient.Close()
		readiness.Add("redis", func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })

		dedup = redis.NewDedupChecker(redisClient)
		authLimiter = redis.NewLimiter(redisClient, "auth", cfg.Auth.Limit, cfg.Auth.Window)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, using in-process rate limiter and no audit dedup")
		local := middleware.NewLocalLimiter(cfg.Auth.Limit, cfg.Auth.Window)
		defer local.Stop()
		authLimiter = local
	}

	// --- Audit pipeline ---
	audit := service.NewAuditService(events, dedup, logger.Component("audit"))
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, audit, logger.Component("dispatcher"))
	dispatcher.Start(context.WithoutCancel(ctx))
	defer dispatcher.Close()

	// --- Services ---
	tx := postgres.NewTransactor(db)
	departments := postgres.NewDepartmentRepository(db)
	users := postgres.NewUserRepository(db)
	skills := postgres.NewSkillRepository(db)
	resumes := postgres.NewResumeRepository(db)
	vacancies := postgres.NewVacancyRepository(db)
	responses := postgres.NewVacancyResponseRepository(db)

	e := api.NewRouter(api.Deps{
		Auth:        service.NewAuthService(users, departments, cfg.JWTSecret, cfg.JWTTTL),
		Departments: service.NewDepartmentService(departments),
		Resumes:     service.NewResumeService(tx, resumes, skills, dispatcher, logger.Component("resume")),
		Vacancies:   service.NewVacancyService(tx, vacancies, users, dispatcher, logger.Component("vacancy")),
		Responses:   service.NewResponseService(tx, vacancies, resumes, responses, users, logger.Component("response")),
		Applicants:  service.NewApplicantService(users),
		AuthLimiter: authLimiter,
		Readiness:   readiness,
		Log:         logger.Component("api"),
	})

	// --- Serve ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
