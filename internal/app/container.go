package app

import (
	"context"
	"log"
	"time"

	"talentflow/internal/assessment"
	"talentflow/internal/config"
	"talentflow/internal/database"
	"talentflow/internal/database/migration"
	dbpostgres "talentflow/internal/database/postgres"
	"talentflow/internal/infrastructure/cache"
	"talentflow/internal/repository"
	"talentflow/internal/usecase"
	"talentflow/internal/ws"
)

// Container owns every long-lived dependency and the usecases wired on
// top of them.
type Container struct {
	Config config.Config
	Logger *log.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub

	Jobs        *usecase.Jobs
	Candidates  *usecase.Candidates
	Pipeline    *usecase.Pipeline
	Assessments *usecase.Assessments
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

	if err := (migration.Runner{}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(logger)
	hub := ws.NewHub(logger)
	notifier := ws.NewNotifier(hub)

	jobRepo := repository.NewPostgresJobRepository(db)
	candidateRepo := repository.NewPostgresCandidateRepository(db)
	timelineRepo := repository.NewPostgresTimelineRepository(db)
	bankRepo := repository.NewPostgresQuestionBankRepository(db)
	assessmentRepo := repository.NewPostgresAssessmentRepository(db)

	generator := assessment.NewGenerator(bankRepo)

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redisCache,
		Hub:    hub,

		Jobs:        usecase.NewJobUsecase(jobRepo, redisCache, logger),
		Candidates:  usecase.NewCandidateUsecase(candidateRepo, jobRepo, timelineRepo, redisCache, logger),
		Pipeline:    usecase.NewPipelineUsecase(candidateRepo, timelineRepo, notifier, redisCache, logger),
		Assessments: usecase.NewAssessmentUsecase(assessmentRepo, candidateRepo, jobRepo, generator, logger),
	}
	return c, nil
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
