package handler

import (
	"talentflow/internal/delivery/http/dto"
	"talentflow/internal/delivery/http/middleware"
	"talentflow/internal/domain"
	"talentflow/internal/pkg/response"
	"talentflow/internal/repository"
	"talentflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CandidatesHandler struct {
	uc       usecase.CandidateUsecase
	pipeline usecase.PipelineUsecase
}

func NewCandidatesHandler(uc usecase.CandidateUsecase, pipeline usecase.PipelineUsecase) *CandidatesHandler {
	return &CandidatesHandler{uc: uc, pipeline: pipeline}
}

func (h *CandidatesHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/:id", h.HandleGet)
	r.Get("/:id/timeline", h.HandleTimeline)
	r.Patch("/:id/stage", h.HandleMoveStage)
}

func (h *CandidatesHandler) HandleList(c fiber.Ctx) error {
	page, err := parseQueryIntStrict(c, "page", 1)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	pageSize, err := parseQueryIntStrict(c, "pageSize", 50)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	jobID, err := parseQueryIntStrict(c, "jobId", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	result, err := h.uc.ListCandidates(c.Context(), repository.CandidateFilter{
		Search:   c.Query("search"),
		Stage:    domain.Stage(c.Query("stage")),
		JobID:    int64(jobID),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Paged(c, "success", result.Items, response.Pagination{
		Page:     result.Page,
		PageSize: result.PageSize,
		Total:    result.Total,
	})
}

func (h *CandidatesHandler) HandleGet(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	candidate, err := h.uc.GetCandidate(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", candidate)
}

func (h *CandidatesHandler) HandleCreate(c fiber.Ctx) error {
	var req dto.CreateCandidateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	candidate, err := h.uc.CreateCandidate(c.Context(), req.Name, req.Email, req.JobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "created", candidate)
}

func (h *CandidatesHandler) HandleTimeline(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	entries, err := h.uc.GetTimeline(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", entries)
}

func (h *CandidatesHandler) HandleMoveStage(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.MoveStageRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	candidate, err := h.pipeline.RequestMove(c.Context(), id, domain.Stage(req.Stage), req.Notes)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", candidate)
}
