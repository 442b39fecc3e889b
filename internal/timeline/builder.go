// Package timeline derives candidate stage histories: synthetic ones for
// seed data, and single live entries appended on real stage moves.
package timeline

import (
	"fmt"
	"math/rand/v2"
	"time"

	"talentflow/internal/domain"
)

const day = 24 * time.Hour

// Rand is the randomness the builder draws day offsets and
// rejected-after stages from. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type Builder struct {
	rnd Rand
}

func NewBuilder(rnd Rand) *Builder {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Builder{rnd: rnd}
}

// rejectionReasons is keyed by the stage the candidate was rejected from.
var rejectionReasons = map[domain.Stage]string{
	domain.StageApplied: "Application rejected - Did not meet basic requirements",
	domain.StageScreen:  "Rejected after initial screening - Not a good fit for the role",
	domain.StageTech:    "Rejected after technical interview - Technical skills did not meet expectations",
	domain.StageOffer:   "Rejected after offer stage - Candidate declined the offer or failed background check",
}

var inProgressNotes = map[domain.Stage]string{
	domain.StageScreen: "Initial screening in progress",
	domain.StageTech:   "Technical interview scheduled",
	domain.StageOffer:  "Offer being prepared",
}

var clearedNotes = map[domain.Stage]string{
	domain.StageScreen: "Successfully cleared initial screening",
	domain.StageTech:   "Technical interview completed successfully",
	domain.StageOffer:  "Offer extended and accepted",
	domain.StageHired:  "Successfully onboarded and hired",
}

const appliedNote = "Application submitted successfully"

// RejectionReason returns the canned note for a candidate rejected from the
// given stage.
func RejectionReason(after domain.Stage) string {
	if msg, ok := rejectionReasons[after]; ok {
		return msg
	}
	return "Application rejected"
}

// DefaultMoveNote is the note used when a stage move supplies none.
func DefaultMoveNote(to domain.Stage) string {
	return fmt.Sprintf("Moved to %s", to)
}

// LiveEntry builds the single timeline entry appended for a real stage
// move. An empty notes falls back to the default move note.
func LiveEntry(candidateID int64, to domain.Stage, at time.Time, notes string) domain.TimelineEntry {
	if notes == "" {
		notes = DefaultMoveNote(to)
	}
	return domain.TimelineEntry{
		CandidateID: candidateID,
		Stage:       to,
		OccurredAt:  at,
		Notes:       notes,
	}
}

// Synthesize walks the stage sequence from applied up to the candidate's
// current stage and emits one plausible historical entry per stage, each
// 1-3 days after the previous. For rejected candidates the walk stops at a
// randomly chosen pre-rejection stage and a final rejection entry follows
// 1-2 days later. The rejected-after stage is uniform seed-data
// convenience, not a rejection-likelihood model.
func (b *Builder) Synthesize(candidateID int64, current domain.Stage, createdAt time.Time) []domain.TimelineEntry {
	if current == domain.StageRejected {
		return b.synthesizeRejected(candidateID, createdAt)
	}

	idx := domain.StageIndex(current)
	if idx < 0 {
		return nil
	}

	entries := make([]domain.TimelineEntry, 0, idx+1)
	at := createdAt
	for i, stage := range domain.StageOrder()[:idx+1] {
		if i > 0 {
			at = at.Add(time.Duration(b.rnd.IntN(3)+1) * day)
		}

		var notes string
		switch {
		case i == 0:
			notes = appliedNote
		case i == idx && current != domain.StageHired:
			notes = inProgressNotes[stage]
			if notes == "" {
				notes = fmt.Sprintf("Currently in %s stage", stage)
			}
		default:
			notes = clearedNotes[stage]
			if notes == "" {
				notes = fmt.Sprintf("Successfully cleared %s stage", stage)
			}
		}

		entries = append(entries, domain.TimelineEntry{
			CandidateID: candidateID,
			Stage:       stage,
			OccurredAt:  at,
			Notes:       notes,
		})
	}
	return entries
}

func (b *Builder) synthesizeRejected(candidateID int64, createdAt time.Time) []domain.TimelineEntry {
	// Rejection can follow any stage short of hired.
	preRejection := []domain.Stage{domain.StageApplied, domain.StageScreen, domain.StageTech, domain.StageOffer}
	after := preRejection[b.rnd.IntN(len(preRejection))]
	idx := domain.StageIndex(after)

	entries := make([]domain.TimelineEntry, 0, idx+2)
	at := createdAt
	for i, stage := range domain.StageOrder()[:idx+1] {
		if i > 0 {
			at = at.Add(time.Duration(b.rnd.IntN(3)+1) * day)
		}

		var notes string
		switch {
		case i == 0:
			notes = appliedNote
		case i == idx:
			notes = fmt.Sprintf("Started %s process", stage)
		default:
			notes = clearedNotes[stage]
			if notes == "" {
				notes = fmt.Sprintf("Successfully cleared %s stage", stage)
			}
		}

		entries = append(entries, domain.TimelineEntry{
			CandidateID: candidateID,
			Stage:       stage,
			OccurredAt:  at,
			Notes:       notes,
		})
	}

	at = at.Add(time.Duration(b.rnd.IntN(2)+1) * day)
	entries = append(entries, domain.TimelineEntry{
		CandidateID: candidateID,
		Stage:       domain.StageRejected,
		OccurredAt:  at,
		Notes:       RejectionReason(after),
	})
	return entries
}
