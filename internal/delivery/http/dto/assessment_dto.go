package dto

import (
	"encoding/json"

	"talentflow/internal/domain"
)

type SaveAssessmentRequest struct {
	Title    string           `json:"title"`
	Sections []domain.Section `json:"sections"`
}

type SubmitResponseRequest struct {
	CandidateID int64              `json:"candidateId"`
	Responses   domain.ResponseSet `json:"responses"`
}

type SaveBuilderStateRequest struct {
	State json.RawMessage `json:"state"`
}
