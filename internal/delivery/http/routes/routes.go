package routes

import (
	"talentflow/internal/delivery/http/handler"
	"talentflow/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health      *handler.HealthHandler
	jobs        *handler.JobsHandler
	candidates  *handler.CandidatesHandler
	assessments *handler.AssessmentsHandler
	pipelineWS  *ws.Handler
}

func NewRegistry(
	health *handler.HealthHandler,
	jobs *handler.JobsHandler,
	candidates *handler.CandidatesHandler,
	assessments *handler.AssessmentsHandler,
	pipelineWS *ws.Handler,
) *Registry {
	return &Registry{
		health:      health,
		jobs:        jobs,
		candidates:  candidates,
		assessments: assessments,
		pipelineWS:  pipelineWS,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	jobs := v1.Group("/jobs")
	r.jobs.RegisterRoutes(jobs)

	// Assessment routes hang off a single job.
	r.assessments.RegisterRoutes(v1.Group("/jobs/:jobId"))

	candidates := v1.Group("/candidates")
	r.candidates.RegisterRoutes(candidates)

	if r.pipelineWS != nil {
		app.Get("/ws/pipeline", r.pipelineWS.HandlePipelineWS)
	}
}
