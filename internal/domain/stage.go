package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Stage is one of the fixed pipeline states a candidate occupies.
type Stage string

const (
	StageApplied  Stage = "applied"
	StageScreen   Stage = "screen"
	StageTech     Stage = "tech"
	StageOffer    Stage = "offer"
	StageHired    Stage = "hired"
	StageRejected Stage = "rejected"
)

// stageOrder is the forward progression; rejected sits outside it as a
// terminal absorbing state.
var stageOrder = []Stage{StageApplied, StageScreen, StageTech, StageOffer, StageHired}

var ErrUnknownStage = errors.New("unknown stage")

func ParseStage(s string) (Stage, error) {
	st := Stage(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStage, s)
}

// StageOrder returns the forward stage sequence, applied through hired.
func StageOrder() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// StageIndex returns the position of s in the forward sequence, or -1 for
// rejected and unknown stages.
func StageIndex(s Stage) int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// IsLegalTransition reports whether a candidate may move from one stage to
// another. Rejection is reachable from every stage except hired; otherwise
// only strictly forward moves are allowed, with any forward distance legal.
// Backward moves and no-op moves are not.
func IsLegalTransition(from, to Stage) bool {
	if to == StageRejected {
		return from != StageHired
	}
	fi := StageIndex(from)
	ti := StageIndex(to)
	if fi < 0 || ti < 0 {
		return false
	}
	return ti > fi
}
