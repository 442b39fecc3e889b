package domain

import "time"

type Candidate struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Stage     Stage     `json:"stage"`
	JobID     int64     `json:"jobId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TimelineEntry records a candidate entering a stage. Entries are
// append-only and never mutated after creation.
type TimelineEntry struct {
	ID          int64     `json:"id"`
	CandidateID int64     `json:"candidateId"`
	Stage       Stage     `json:"stage"`
	OccurredAt  time.Time `json:"timestamp"`
	Notes       string    `json:"notes"`
}
