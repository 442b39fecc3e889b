package assessment

import (
	"testing"

	"talentflow/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func singleSectionAssessment(questions ...domain.Question) domain.Assessment {
	return domain.Assessment{
		Sections: []domain.Section{{ID: 1, Title: "Test", Questions: questions}},
	}
}

func TestValidateResponses_NumericOutOfRange(t *testing.T) {
	a := singleSectionAssessment(domain.NumericQuestion{
		QuestionBase: domain.QuestionBase{ID: "years", Prompt: "Years of experience", Required: true},
		Min:          floatPtr(0),
		Max:          floatPtr(50),
	})

	violations := ValidateResponses(a, domain.ResponseSet{"years": "60"})
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(violations))
	}
	if violations[0].QuestionID != "years" {
		t.Fatalf("unexpected question id: %s", violations[0].QuestionID)
	}
	if violations[0].Problems[0] != "Maximum value is 50" {
		t.Fatalf("unexpected problem: %q", violations[0].Problems[0])
	}
}

func TestValidateResponses_NumericNotANumber(t *testing.T) {
	a := singleSectionAssessment(domain.NumericQuestion{
		QuestionBase: domain.QuestionBase{ID: "years", Required: true},
	})

	violations := ValidateResponses(a, domain.ResponseSet{"years": "ten"})
	if len(violations) != 1 || violations[0].Problems[0] != "Must be a valid number" {
		t.Fatalf("expected number-parse violation, got %v", violations)
	}
}

func TestValidateResponses_RequiredEmpty(t *testing.T) {
	a := singleSectionAssessment(
		domain.ShortTextQuestion{QuestionBase: domain.QuestionBase{ID: "name", Required: true}, MaxLength: 100},
		domain.ShortTextQuestion{QuestionBase: domain.QuestionBase{ID: "nickname"}, MaxLength: 100},
	)

	violations := ValidateResponses(a, domain.ResponseSet{})
	if len(violations) != 1 {
		t.Fatalf("expected only the required question to fail, got %v", violations)
	}
	if violations[0].QuestionID != "name" || violations[0].Problems[0] != "This field is required" {
		t.Fatalf("unexpected violation: %v", violations[0])
	}
}

func TestValidateResponses_MaxLength(t *testing.T) {
	a := singleSectionAssessment(domain.LongTextQuestion{
		QuestionBase: domain.QuestionBase{ID: "bio", Required: true},
		MaxLength:    5,
	})

	violations := ValidateResponses(a, domain.ResponseSet{"bio": "this is far too long"})
	if len(violations) != 1 || violations[0].Problems[0] != "Maximum 5 characters allowed" {
		t.Fatalf("expected max-length violation, got %v", violations)
	}
}

func TestValidateResponses_CollectsAllProblems(t *testing.T) {
	a := singleSectionAssessment(
		domain.ShortTextQuestion{QuestionBase: domain.QuestionBase{ID: "a", Required: true}, MaxLength: 3},
		domain.NumericQuestion{QuestionBase: domain.QuestionBase{ID: "b", Required: true}, Max: floatPtr(10)},
	)

	violations := ValidateResponses(a, domain.ResponseSet{"a": "toolong", "b": "11"})
	if len(violations) != 2 {
		t.Fatalf("validation must not stop at the first failing question, got %v", violations)
	}
}

func TestValidateResponses_FileExtension(t *testing.T) {
	a := singleSectionAssessment(domain.FileUploadQuestion{
		QuestionBase: domain.QuestionBase{ID: "resume-upload", Required: true},
		AllowedTypes: []string{".pdf", ".doc", ".docx"},
	})

	if v := ValidateResponses(a, domain.ResponseSet{"resume-upload": "cv.pdf"}); len(v) != 0 {
		t.Fatalf("pdf must pass, got %v", v)
	}
	if v := ValidateResponses(a, domain.ResponseSet{"resume-upload": "cv.exe"}); len(v) != 1 {
		t.Fatalf("exe must fail, got %v", v)
	}
}

func TestShouldShow_Conditional(t *testing.T) {
	q := domain.ShortTextQuestion{QuestionBase: domain.QuestionBase{
		ID: "details",
		Conditional: &domain.Conditional{
			DependsOn: "experience-field",
			Operator:  domain.CondEquals,
			Value:     "Yes",
		},
	}}

	if ShouldShow(q, domain.ResponseSet{"experience-field": "No"}) {
		t.Fatalf("question must stay hidden when condition unmet")
	}
	if !ShouldShow(q, domain.ResponseSet{"experience-field": "Yes"}) {
		t.Fatalf("question must show when condition met")
	}
}

func TestShouldShow_Contains(t *testing.T) {
	q := domain.ShortTextQuestion{QuestionBase: domain.QuestionBase{
		ID: "k8s-details",
		Conditional: &domain.Conditional{
			DependsOn: "tools",
			Operator:  domain.CondContains,
			Value:     "Kubernetes",
		},
	}}

	if !ShouldShow(q, domain.ResponseSet{"tools": []any{"Docker", "Kubernetes"}}) {
		t.Fatalf("contains condition must match multi-choice answers")
	}
	if ShouldShow(q, domain.ResponseSet{"tools": []any{"Docker"}}) {
		t.Fatalf("contains condition must fail when value absent")
	}
}

func TestValidateResponses_SkipsHiddenQuestions(t *testing.T) {
	a := singleSectionAssessment(
		domain.SingleChoiceQuestion{
			QuestionBase: domain.QuestionBase{ID: "experience-field", Required: true},
			Options:      []string{"Yes", "No"},
		},
		domain.ShortTextQuestion{QuestionBase: domain.QuestionBase{
			ID:       "details",
			Required: true,
			Conditional: &domain.Conditional{
				DependsOn: "experience-field",
				Operator:  domain.CondEquals,
				Value:     "Yes",
			},
		}},
	)

	violations := ValidateResponses(a, domain.ResponseSet{"experience-field": "No"})
	if len(violations) != 0 {
		t.Fatalf("hidden required question must not be validated, got %v", violations)
	}
}
