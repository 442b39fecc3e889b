package domain

import "testing"

func TestIsLegalTransition_ForwardOnly(t *testing.T) {
	order := StageOrder()
	for i, from := range order {
		for j, to := range order {
			got := IsLegalTransition(from, to)
			want := j > i
			if got != want {
				t.Errorf("IsLegalTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestIsLegalTransition_Rejection(t *testing.T) {
	for _, from := range []Stage{StageApplied, StageScreen, StageTech, StageOffer} {
		if !IsLegalTransition(from, StageRejected) {
			t.Errorf("expected %s -> rejected to be legal", from)
		}
	}
	if IsLegalTransition(StageHired, StageRejected) {
		t.Errorf("hired -> rejected must be illegal")
	}
}

func TestIsLegalTransition_SkipAhead(t *testing.T) {
	if !IsLegalTransition(StageApplied, StageTech) {
		t.Fatalf("applied -> tech must be legal (forward skip)")
	}
	if !IsLegalTransition(StageApplied, StageHired) {
		t.Fatalf("applied -> hired must be legal (forward skip)")
	}
}

func TestIsLegalTransition_Backward(t *testing.T) {
	if IsLegalTransition(StageTech, StageScreen) {
		t.Fatalf("tech -> screen must be illegal")
	}
	if IsLegalTransition(StageHired, StageApplied) {
		t.Fatalf("hired -> applied must be illegal")
	}
}

func TestIsLegalTransition_NoOp(t *testing.T) {
	for _, s := range StageOrder() {
		if IsLegalTransition(s, s) {
			t.Errorf("%s -> %s must be illegal (no-op)", s, s)
		}
	}
}

func TestIsLegalTransition_OutOfRejected(t *testing.T) {
	for _, to := range StageOrder() {
		if IsLegalTransition(StageRejected, to) {
			t.Errorf("rejected -> %s must be illegal", to)
		}
	}
}

func TestParseStage(t *testing.T) {
	s, err := ParseStage(" Tech ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s != StageTech {
		t.Fatalf("expected tech, got %s", s)
	}
	if _, err := ParseStage("interviewing"); err == nil {
		t.Fatalf("expected error for unknown stage")
	}
}
