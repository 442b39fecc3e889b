// Package assessment generates per-job, per-stage assessments from the
// question bank and validates candidate responses against them.
package assessment

import "talentflow/internal/domain"

// Linear-congruential generator constants. The generator is deliberately
// not cryptographic: the contract is that the same seed always yields the
// same permutation, so regenerating an assessment is reproducible.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

type lcg struct {
	state int64
}

func newLCG(seed int64) *lcg {
	s := seed % lcgModulus
	if s < 0 {
		s += lcgModulus
	}
	return &lcg{state: s}
}

// next returns a pseudorandom float in [0, 1).
func (l *lcg) next() float64 {
	l.state = (l.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(l.state) / lcgModulus
}

// Shuffle returns a seeded Fisher-Yates permutation of items. The input
// slice is not modified.
func Shuffle[T any](items []T, seed int64) []T {
	out := make([]T, len(items))
	copy(out, items)
	rng := newLCG(seed)
	for i := len(out) - 1; i > 0; i-- {
		j := int(rng.next() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// SeedFor is the documented pure function from (job, stage) to a shuffle
// seed. Determinism of generated assessments is a stated contract, so the
// derivation lives here rather than as incidental arithmetic at call sites.
func SeedFor(jobID int64, stage domain.Stage) int64 {
	return jobID*1000 + int64(len(stage))
}
