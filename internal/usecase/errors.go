package usecase

import (
	"errors"
	"fmt"

	"talentflow/internal/assessment"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrIllegalTransition = errors.New("illegal stage transition")
	ErrInternal          = errors.New("internal error")
)

// ValidationError carries every per-question violation from a single
// submission attempt.
type ValidationError struct {
	Violations []assessment.Violation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d question(s)", len(e.Violations))
}
