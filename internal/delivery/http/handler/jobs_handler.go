package handler

import (
	"strconv"

	"talentflow/internal/delivery/http/dto"
	"talentflow/internal/delivery/http/middleware"
	"talentflow/internal/domain"
	"talentflow/internal/pkg/response"
	"talentflow/internal/repository"
	"talentflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.JobUsecase
}

func NewJobsHandler(uc usecase.JobUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/:id", h.HandleGet)
	r.Patch("/:id", h.HandleUpdate)
	r.Patch("/:id/reorder", h.HandleReorder)
}

func (h *JobsHandler) HandleList(c fiber.Ctx) error {
	page, err := parseQueryIntStrict(c, "page", 1)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	pageSize, err := parseQueryIntStrict(c, "pageSize", 10)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	result, err := h.uc.ListJobs(c.Context(), repository.JobFilter{
		Search:   c.Query("search"),
		Status:   domain.JobStatus(c.Query("status")),
		Tag:      c.Query("tag"),
		Sort:     c.Query("sort"),
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

func (h *JobsHandler) HandleGet(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	job, err := h.uc.GetJob(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", job)
}

func (h *JobsHandler) HandleCreate(c fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	job, err := h.uc.CreateJob(c.Context(), req.Title, req.Tags)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "created", job)
}

func (h *JobsHandler) HandleUpdate(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.UpdateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	job, err := h.uc.UpdateJob(c.Context(), id, usecase.JobUpdateInput{
		Title:  req.Title,
		Status: req.Status,
		Tags:   req.Tags,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", job)
}

func (h *JobsHandler) HandleReorder(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.ReorderJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	job, err := h.uc.ReorderJob(c.Context(), id, req.ToOrder)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", job)
}

func parseIDParam(c fiber.Ctx, key string) (int64, error) {
	return strconv.ParseInt(c.Params(key), 10, 64)
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}
