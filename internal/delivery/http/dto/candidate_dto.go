package dto

type CreateCandidateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	JobID int64  `json:"jobId"`
}

type MoveStageRequest struct {
	Stage string `json:"stage"`
	Notes string `json:"notes"`
}
