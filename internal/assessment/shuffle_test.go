package assessment

import (
	"testing"

	"talentflow/internal/domain"
)

func TestShuffle_Deterministic(t *testing.T) {
	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}

	a := Shuffle(items, 12345)
	b := Shuffle(items, 12345)
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different permutations at %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestShuffle_DifferentSeeds(t *testing.T) {
	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}

	a := Shuffle(items, 1)
	b := Shuffle(items, 2)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seeds produced identical permutations")
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	got := Shuffle(items, 99)

	seen := map[int]int{}
	for _, v := range got {
		seen[v]++
	}
	for _, v := range items {
		if seen[v] != 1 {
			t.Fatalf("value %d appears %d times after shuffle", v, seen[v])
		}
	}
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	_ = Shuffle(items, 7)
	for i, v := range []int{1, 2, 3, 4, 5} {
		if items[i] != v {
			t.Fatalf("input slice was mutated at %d", i)
		}
	}
}

func TestSeedFor(t *testing.T) {
	if got := SeedFor(6, domain.StageApplied); got != 6007 {
		t.Fatalf("SeedFor(6, applied) = %d, want 6007", got)
	}
	if got := SeedFor(6, domain.StageTech); got != 6004 {
		t.Fatalf("SeedFor(6, tech) = %d, want 6004", got)
	}
	if SeedFor(1, domain.StageApplied) == SeedFor(2, domain.StageApplied) {
		t.Fatalf("different jobs must derive different seeds")
	}
}
