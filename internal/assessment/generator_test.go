package assessment

import (
	"context"
	"reflect"
	"testing"

	"talentflow/internal/domain"
)

type stubBank struct {
	byCategory map[domain.QuestionCategory][]domain.BankQuestion
}

func (s stubBank) ListByCategory(_ context.Context, category domain.QuestionCategory) ([]domain.BankQuestion, error) {
	return s.byCategory[category], nil
}

func bankQuestions(category domain.QuestionCategory, tag string, fromID, count int) []domain.BankQuestion {
	out := make([]domain.BankQuestion, 0, count)
	for i := 0; i < count; i++ {
		q := domain.BankQuestion{
			ID:       int64(fromID + i),
			Type:     domain.QuestionSingleChoice,
			Category: category,
			Question: "q",
			Options:  []string{"A", "B", "C", "D"},
		}
		if tag != "" {
			q.RoleTags = []string{tag}
		}
		out = append(out, q)
	}
	return out
}

func testBank(roleTagged, generic int) stubBank {
	technical := bankQuestions(domain.CategoryTechnical, "Frontend Developer", 100, roleTagged)
	technical = append(technical, bankQuestions(domain.CategoryTechnical, "general", 200, generic)...)
	return stubBank{byCategory: map[domain.QuestionCategory][]domain.BankQuestion{
		domain.CategoryAptitude:   bankQuestions(domain.CategoryAptitude, "", 1, 15),
		domain.CategoryTechnical:  technical,
		domain.CategoryManagement: bankQuestions(domain.CategoryManagement, "management", 300, 14),
	}}
}

func frontendJob() domain.Job {
	return domain.Job{ID: 6, Title: "Frontend Developer"}
}

func TestGenerate_SectionShape(t *testing.T) {
	g := NewGenerator(testBank(25, 20))
	a, err := g.Generate(context.Background(), frontendJob(), domain.StageApplied, SeedFor(6, domain.StageApplied))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(a.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(a.Sections))
	}
	wantTitles := []string{"Aptitude", "Technical", "Management", "Experience"}
	wantCounts := []int{10, 20, 7, 2}
	for i, s := range a.Sections {
		if s.Title != wantTitles[i] {
			t.Errorf("section %d title = %q, want %q", i, s.Title, wantTitles[i])
		}
		if len(s.Questions) != wantCounts[i] {
			t.Errorf("section %q has %d questions, want %d", s.Title, len(s.Questions), wantCounts[i])
		}
	}
	if a.Title != "Frontend Developer Assessment" {
		t.Errorf("unexpected title: %q", a.Title)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	g := NewGenerator(testBank(25, 20))
	seed := SeedFor(6, domain.StageApplied)

	a, err := g.Generate(context.Background(), frontendJob(), domain.StageApplied, seed)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	b, err := g.Generate(context.Background(), frontendJob(), domain.StageApplied, seed)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if !reflect.DeepEqual(a.QuestionIDs(), b.QuestionIDs()) {
		t.Fatalf("same seed produced different question sequences:\n%v\n%v", a.QuestionIDs(), b.QuestionIDs())
	}
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	g := NewGenerator(testBank(25, 20))

	a, _ := g.Generate(context.Background(), frontendJob(), domain.StageApplied, 1)
	b, _ := g.Generate(context.Background(), frontendJob(), domain.StageApplied, 99)
	if reflect.DeepEqual(a.QuestionIDs(), b.QuestionIDs()) {
		t.Fatalf("expected different seeds to select differently")
	}
}

func TestGenerate_NoDuplicateQuestionIDs(t *testing.T) {
	g := NewGenerator(testBank(25, 20))
	a, err := g.Generate(context.Background(), frontendJob(), domain.StageTech, SeedFor(6, domain.StageTech))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	seen := map[string]struct{}{}
	for _, id := range a.QuestionIDs() {
		if _, ok := seen[id]; ok {
			t.Fatalf("question id %q appears twice", id)
		}
		seen[id] = struct{}{}
	}
}

func TestGenerate_TechnicalPrefersRoleTag(t *testing.T) {
	bank := testBank(25, 20)
	g := NewGenerator(bank)
	a, err := g.Generate(context.Background(), frontendJob(), domain.StageApplied, 42)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// With >= 20 role-tagged entries every sampled technical question must
	// carry the job title tag; tagged ids start at 100, generic at 200.
	for _, q := range a.Sections[1].Questions {
		id := q.Base().ID
		if id >= "q200" && id < "q300" {
			t.Errorf("generic question %s sampled despite sufficient role-tagged pool", id)
		}
	}
}

func TestGenerate_TechnicalTopsUpFromGenericPool(t *testing.T) {
	g := NewGenerator(testBank(5, 20))
	a, err := g.Generate(context.Background(), frontendJob(), domain.StageApplied, 42)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	tech := a.Sections[1].Questions
	if len(tech) != 20 {
		t.Fatalf("technical section must reach fixed size 20, got %d", len(tech))
	}
}

func TestGenerate_ExperienceSectionFixed(t *testing.T) {
	g := NewGenerator(testBank(25, 20))
	a, err := g.Generate(context.Background(), frontendJob(), domain.StageApplied, 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	exp := a.Sections[3].Questions
	if exp[0].Base().ID != "experience-field" || exp[1].Base().ID != "resume-upload" {
		t.Fatalf("experience section must be the fixed pair, got %v", a.Sections[3])
	}
	upload, ok := exp[1].(domain.FileUploadQuestion)
	if !ok {
		t.Fatalf("resume question must be a file upload, got %T", exp[1])
	}
	if len(upload.AllowedTypes) == 0 {
		t.Fatalf("resume upload must restrict file types")
	}
}
