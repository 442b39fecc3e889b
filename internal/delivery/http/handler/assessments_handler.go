package handler

import (
	"talentflow/internal/delivery/http/dto"
	"talentflow/internal/delivery/http/middleware"
	"talentflow/internal/domain"
	"talentflow/internal/pkg/response"
	"talentflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AssessmentsHandler struct {
	uc usecase.AssessmentUsecase
}

func NewAssessmentsHandler(uc usecase.AssessmentUsecase) *AssessmentsHandler {
	return &AssessmentsHandler{uc: uc}
}

// RegisterRoutes mounts the assessment surface under a job group; the
// :jobId param comes from the enclosing route.
func (h *AssessmentsHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/assessments", h.HandleList)
	r.Get("/assessments/:stage", h.HandleGet)
	r.Put("/assessments/:stage", h.HandleSave)
	r.Delete("/assessments/:stage", h.HandleDelete)
	r.Post("/assessments/:stage/generate", h.HandleGenerate)
	r.Post("/assessments/:stage/submit", h.HandleSubmit)
	r.Put("/assessments/:stage/draft", h.HandleSaveDraft)
	r.Get("/assessments/:stage/responses/:candidateId", h.HandleGetResponse)
	r.Get("/builder-state", h.HandleGetBuilderState)
	r.Put("/builder-state", h.HandleSaveBuilderState)
}

func (h *AssessmentsHandler) HandleList(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "jobId")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	out, err := h.uc.ListAssessments(c.Context(), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", out)
}

func (h *AssessmentsHandler) HandleGet(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "jobId")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	a, err := h.uc.GetAssessment(c.Context(), jobID, domain.Stage(c.Params("stage")))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", a)
}

func (h *AssessmentsHandler) HandleGenerate(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "jobId")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	a, err := h.uc.GenerateAssessment(c.Context(), jobID, domain.Stage(c.Params("stage")))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "created", a)
}

func (h *AssessmentsHandler) HandleSave(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "jobId")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.SaveAssessmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	a, err := h.uc.SaveAssessment(c.Context(), domain.Assessment{
		JobID:    jobID,
		Stage:    domain.Stage(c.Params("stage")),
		Title:    req.Title,
		Sections: req.Sections,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", a)
}

func (h *AssessmentsHandler) HandleDelete(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "jobId")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.DeleteAssessment(c.Context(), jobID, domain.Stage(c.Params("stage"))); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "deleted", nil)
}

func (h *AssessmentsHandler) HandleSubmit(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "jobId")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.SubmitResponseRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	saved, err := h.uc.SubmitResponse(c.Context(), req.CandidateID, jobID, domain.Stage(c.Params("stage")), req.Responses)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "submitted", saved)
}

func (h *AssessmentsHandler) HandleSaveDraft(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "jobId")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.SubmitResponseRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	saved, err := h.uc.SaveDraft(c.Context(), req.CandidateID, jobID, domain.Stage(c.Params("stage")), req.Responses)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "draft saved", saved)
}

func (h *AssessmentsHandler) HandleGetResponse(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "jobId")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	candidateID, err := parseIDParam(c, "candidateId")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	resp, err := h.uc.GetResponse(c.Context(), candidateID, jobID, domain.Stage(c.Params("stage")))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", resp)
}

func (h *AssessmentsHandler) HandleGetBuilderState(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "jobId")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	s, err := h.uc.GetBuilderState(c.Context(), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", s)
}

func (h *AssessmentsHandler) HandleSaveBuilderState(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "jobId")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.SaveBuilderStateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	s, err := h.uc.SaveBuilderState(c.Context(), jobID, req.State)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", s)
}
