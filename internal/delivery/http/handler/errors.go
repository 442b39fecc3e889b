package handler

import (
	"errors"

	"talentflow/internal/delivery/http/middleware"
	"talentflow/internal/pkg/response"
	"talentflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// mapUsecaseError translates usecase errors into HTTP error responses.
// Validation failures carry the per-question violations as the response
// data payload.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Validation failed", verr.Violations, err)
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrIllegalTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Illegal stage transition", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
