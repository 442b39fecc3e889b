package assessment

import (
	"context"
	"fmt"
	"time"

	"talentflow/internal/domain"
)

// Section sample sizes. The technical section prefers questions tagged
// with the job's exact title and tops up from the generic pool when the
// role-specific supply runs short of the section size.
const (
	aptitudeCount  = 10
	technicalCount = 20
	managementCount = 7

	// genericRoleTag marks technical questions usable for any role.
	genericRoleTag = "general"
)

// QuestionBank is the read side of the static question pool.
type QuestionBank interface {
	ListByCategory(ctx context.Context, category domain.QuestionCategory) ([]domain.BankQuestion, error)
}

type Generator struct {
	bank QuestionBank
	now  func() time.Time
}

func NewGenerator(bank QuestionBank) *Generator {
	return &Generator{bank: bank, now: time.Now}
}

// Generate produces the four-section assessment for a job and stage. The
// same seed against the same bank contents always yields the same section
// contents and ordering; repositories return bank entries in id order so
// the shuffle input is stable.
func (g *Generator) Generate(ctx context.Context, job domain.Job, stage domain.Stage, seed int64) (domain.Assessment, error) {
	aptitude, err := g.sampleCategory(ctx, domain.CategoryAptitude, seed, aptitudeCount)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("aptitude section: %w", err)
	}

	technical, err := g.sampleTechnical(ctx, job.Title, seed+1)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("technical section: %w", err)
	}

	management, err := g.sampleCategory(ctx, domain.CategoryManagement, seed+2, managementCount)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("management section: %w", err)
	}

	sections := []domain.Section{
		{ID: 1, Title: "Aptitude", Questions: aptitude},
		{ID: 2, Title: "Technical", Questions: technical},
		{ID: 3, Title: "Management", Questions: management},
		{ID: 4, Title: "Experience", Questions: experienceQuestions()},
	}

	if err := checkUniqueQuestionIDs(sections); err != nil {
		return domain.Assessment{}, err
	}

	now := g.now().UTC()
	return domain.Assessment{
		JobID:     job.ID,
		Stage:     stage,
		Title:     fmt.Sprintf("%s Assessment", job.Title),
		Sections:  sections,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (g *Generator) sampleCategory(ctx context.Context, category domain.QuestionCategory, seed int64, count int) (domain.QuestionList, error) {
	pool, err := g.bank.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return toQuestions(sample(pool, seed, count)), nil
}

func (g *Generator) sampleTechnical(ctx context.Context, roleTitle string, seed int64) (domain.QuestionList, error) {
	pool, err := g.bank.ListByCategory(ctx, domain.CategoryTechnical)
	if err != nil {
		return nil, err
	}

	tagged := filterByRoleTag(pool, roleTitle)
	if len(tagged) >= technicalCount {
		return toQuestions(sample(tagged, seed, technicalCount)), nil
	}

	// Too few role-specific questions: widen to the generic pool and
	// sample the combined set so the section still reaches its fixed size.
	combined := dedupeByID(append(tagged, filterByRoleTag(pool, genericRoleTag)...))
	return toQuestions(sample(combined, seed, technicalCount)), nil
}

func sample(pool []domain.BankQuestion, seed int64, count int) []domain.BankQuestion {
	shuffled := Shuffle(pool, seed)
	if len(shuffled) > count {
		shuffled = shuffled[:count]
	}
	return shuffled
}

func filterByRoleTag(pool []domain.BankQuestion, tag string) []domain.BankQuestion {
	out := make([]domain.BankQuestion, 0, len(pool))
	for _, q := range pool {
		for _, t := range q.RoleTags {
			if t == tag {
				out = append(out, q)
				break
			}
		}
	}
	return out
}

func dedupeByID(pool []domain.BankQuestion) []domain.BankQuestion {
	seen := make(map[int64]struct{}, len(pool))
	out := make([]domain.BankQuestion, 0, len(pool))
	for _, q := range pool {
		if _, ok := seen[q.ID]; ok {
			continue
		}
		seen[q.ID] = struct{}{}
		out = append(out, q)
	}
	return out
}

// BankQuestionID is the assessment-local id of a sampled bank question.
func BankQuestionID(bankID int64) string {
	return fmt.Sprintf("q%d", bankID)
}

func toQuestions(pool []domain.BankQuestion) domain.QuestionList {
	out := make(domain.QuestionList, 0, len(pool))
	for _, bq := range pool {
		base := domain.QuestionBase{
			ID:       BankQuestionID(bq.ID),
			Prompt:   bq.Question,
			Required: true,
		}
		switch bq.Type {
		case domain.QuestionMultiChoice:
			out = append(out, domain.MultiChoiceQuestion{QuestionBase: base, Options: bq.Options})
		default:
			out = append(out, domain.SingleChoiceQuestion{QuestionBase: base, Options: bq.Options})
		}
	}
	return out
}

// experienceQuestions is the fixed pair every assessment ends with; it is
// included verbatim, never sampled.
func experienceQuestions() domain.QuestionList {
	return domain.QuestionList{
		domain.SingleChoiceQuestion{
			QuestionBase: domain.QuestionBase{
				ID:       "experience-field",
				Prompt:   "Do you have experience in this field?",
				Required: true,
			},
			Options: []string{"Yes", "No"},
		},
		domain.FileUploadQuestion{
			QuestionBase: domain.QuestionBase{
				ID:       "resume-upload",
				Prompt:   "Please upload your resume",
				Required: true,
			},
			AllowedTypes: []string{".pdf", ".doc", ".docx"},
		},
	}
}

func checkUniqueQuestionIDs(sections []domain.Section) error {
	seen := make(map[string]struct{})
	for _, s := range sections {
		for _, q := range s.Questions {
			id := q.Base().ID
			if _, ok := seen[id]; ok {
				return fmt.Errorf("duplicate question id %q across sections", id)
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}
