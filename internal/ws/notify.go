package ws

import (
	"encoding/json"
	"time"

	"talentflow/internal/domain"
)

type StageMovedEvent struct {
	Type        string `json:"type"`
	CandidateID int64  `json:"candidateId"`
	JobID       int64  `json:"jobId"`
	From        string `json:"from"`
	To          string `json:"to"`
	Timestamp   string `json:"timestamp"`
}

// Notifier publishes pipeline events to connected websocket clients.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) StageMoved(candidateID, jobID int64, from, to domain.Stage) {
	if n == nil || n.hub == nil {
		return
	}

	evt := StageMovedEvent{
		Type:        "stage_moved",
		CandidateID: candidateID,
		JobID:       jobID,
		From:        string(from),
		To:          string(to),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
