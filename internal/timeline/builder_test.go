package timeline

import (
	"math/rand/v2"
	"testing"
	"time"

	"talentflow/internal/domain"
)

func fixedRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 7))
}

func TestSynthesize_Progression(t *testing.T) {
	b := NewBuilder(fixedRand())
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	entries := b.Synthesize(11, domain.StageTech, created)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries (applied, screen, tech), got %d", len(entries))
	}

	wantStages := []domain.Stage{domain.StageApplied, domain.StageScreen, domain.StageTech}
	for i, e := range entries {
		if e.Stage != wantStages[i] {
			t.Errorf("entry %d stage = %s, want %s", i, e.Stage, wantStages[i])
		}
		if e.CandidateID != 11 {
			t.Errorf("entry %d candidate id = %d, want 11", i, e.CandidateID)
		}
	}

	if entries[0].Notes != "Application submitted successfully" {
		t.Errorf("unexpected first note: %q", entries[0].Notes)
	}
	if entries[1].Notes != "Successfully cleared initial screening" {
		t.Errorf("unexpected cleared note: %q", entries[1].Notes)
	}
	if entries[2].Notes != "Technical interview scheduled" {
		t.Errorf("unexpected in-progress note: %q", entries[2].Notes)
	}

	if !entries[0].OccurredAt.Equal(created) {
		t.Errorf("first entry must carry the creation time")
	}
	for i := 1; i < len(entries); i++ {
		gap := entries[i].OccurredAt.Sub(entries[i-1].OccurredAt)
		if gap < day || gap > 3*day {
			t.Errorf("gap between entries %d and %d = %s, want 1-3 days", i-1, i, gap)
		}
	}
}

func TestSynthesize_Hired(t *testing.T) {
	b := NewBuilder(fixedRand())
	entries := b.Synthesize(1, domain.StageHired, time.Now())
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	last := entries[len(entries)-1]
	if last.Stage != domain.StageHired {
		t.Fatalf("expected final stage hired, got %s", last.Stage)
	}
	if last.Notes != "Successfully onboarded and hired" {
		t.Errorf("unexpected hired note: %q", last.Notes)
	}
}

func TestSynthesize_Rejected(t *testing.T) {
	b := NewBuilder(fixedRand())
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		entries := b.Synthesize(int64(i), domain.StageRejected, created)
		if len(entries) < 2 {
			t.Fatalf("rejected timeline needs at least applied + rejection, got %d", len(entries))
		}
		last := entries[len(entries)-1]
		if last.Stage != domain.StageRejected {
			t.Fatalf("last entry stage = %s, want rejected", last.Stage)
		}
		after := entries[len(entries)-2].Stage
		if last.Notes != RejectionReason(after) {
			t.Errorf("rejection note %q does not match reason table for %s", last.Notes, after)
		}

		// The entries before the rejection must form a legal forward path.
		for j := 1; j < len(entries)-1; j++ {
			if !domain.IsLegalTransition(entries[j-1].Stage, entries[j].Stage) {
				t.Errorf("illegal synthetic path: %s -> %s", entries[j-1].Stage, entries[j].Stage)
			}
		}
		if !entries[len(entries)-1].OccurredAt.After(entries[len(entries)-2].OccurredAt) {
			t.Errorf("rejection entry must come after the stage it follows")
		}
	}
}

func TestRejectionReason_OfferTable(t *testing.T) {
	got := RejectionReason(domain.StageOffer)
	want := "Rejected after offer stage - Candidate declined the offer or failed background check"
	if got != want {
		t.Fatalf("RejectionReason(offer) = %q, want %q", got, want)
	}
}

func TestLiveEntry_DefaultNote(t *testing.T) {
	at := time.Now()
	e := LiveEntry(5, domain.StageOffer, at, "")
	if e.Notes != "Moved to offer" {
		t.Fatalf("unexpected default note: %q", e.Notes)
	}
	e = LiveEntry(5, domain.StageOffer, at, "strong interview")
	if e.Notes != "strong interview" {
		t.Fatalf("caller note must win, got %q", e.Notes)
	}
}
