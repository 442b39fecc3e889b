package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type QuestionType string

const (
	QuestionSingleChoice QuestionType = "single-choice"
	QuestionMultiChoice  QuestionType = "multi-choice"
	QuestionShortText    QuestionType = "short-text"
	QuestionLongText     QuestionType = "long-text"
	QuestionNumeric      QuestionType = "numeric"
	QuestionFileUpload   QuestionType = "file-upload"
)

type QuestionCategory string

const (
	CategoryAptitude   QuestionCategory = "aptitude"
	CategoryTechnical  QuestionCategory = "technical"
	CategoryManagement QuestionCategory = "management"
	CategoryExperience QuestionCategory = "experience"
)

// BankQuestion is a static question-bank entry. Bank entries are reference
// data and are never mutated at runtime.
type BankQuestion struct {
	ID            int64            `json:"id"`
	Type          QuestionType     `json:"type"`
	Category      QuestionCategory `json:"category"`
	RoleTags      []string         `json:"tags"`
	Difficulty    string           `json:"difficulty"`
	Question      string           `json:"question"`
	Options       []string         `json:"options"`
	CorrectAnswer []string         `json:"correctAnswer,omitempty"`
}

type ConditionOp string

const (
	CondEquals    ConditionOp = "equals"
	CondNotEquals ConditionOp = "not_equals"
	CondContains  ConditionOp = "contains"
)

// Conditional hides a question until another question's response satisfies
// the rule.
type Conditional struct {
	DependsOn string      `json:"dependsOn"`
	Operator  ConditionOp `json:"condition"`
	Value     string      `json:"value"`
}

// QuestionBase carries the fields shared by every question variant.
type QuestionBase struct {
	ID          string       `json:"id"`
	Prompt      string       `json:"question"`
	Required    bool         `json:"required"`
	Conditional *Conditional `json:"conditional,omitempty"`
}

// Question is a tagged variant keyed by question type; each variant carries
// only the fields its type needs.
type Question interface {
	Type() QuestionType
	Base() QuestionBase
}

type SingleChoiceQuestion struct {
	QuestionBase
	Options []string
}

type MultiChoiceQuestion struct {
	QuestionBase
	Options []string
}

type ShortTextQuestion struct {
	QuestionBase
	MaxLength int
}

type LongTextQuestion struct {
	QuestionBase
	MaxLength int
}

type NumericQuestion struct {
	QuestionBase
	Min *float64
	Max *float64
}

type FileUploadQuestion struct {
	QuestionBase
	AllowedTypes []string
}

func (q SingleChoiceQuestion) Type() QuestionType { return QuestionSingleChoice }
func (q MultiChoiceQuestion) Type() QuestionType  { return QuestionMultiChoice }
func (q ShortTextQuestion) Type() QuestionType    { return QuestionShortText }
func (q LongTextQuestion) Type() QuestionType     { return QuestionLongText }
func (q NumericQuestion) Type() QuestionType      { return QuestionNumeric }
func (q FileUploadQuestion) Type() QuestionType   { return QuestionFileUpload }

func (b QuestionBase) Base() QuestionBase { return b }

// questionEnvelope is the wire/storage shape shared by all variants.
type questionEnvelope struct {
	Type        QuestionType        `json:"type"`
	ID          string              `json:"id"`
	Question    string              `json:"question"`
	Required    bool                `json:"required"`
	Conditional *Conditional        `json:"conditional,omitempty"`
	Options     []string            `json:"options,omitempty"`
	Validation  *validationEnvelope `json:"validation,omitempty"`
}

type validationEnvelope struct {
	MaxLength    *int     `json:"maxLength,omitempty"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	AllowedTypes []string `json:"allowedTypes,omitempty"`
}

func envelope(q Question) questionEnvelope {
	b := q.Base()
	env := questionEnvelope{
		Type:        q.Type(),
		ID:          b.ID,
		Question:    b.Prompt,
		Required:    b.Required,
		Conditional: b.Conditional,
	}
	switch v := q.(type) {
	case SingleChoiceQuestion:
		env.Options = v.Options
	case MultiChoiceQuestion:
		env.Options = v.Options
	case ShortTextQuestion:
		if v.MaxLength > 0 {
			env.Validation = &validationEnvelope{MaxLength: &v.MaxLength}
		}
	case LongTextQuestion:
		if v.MaxLength > 0 {
			env.Validation = &validationEnvelope{MaxLength: &v.MaxLength}
		}
	case NumericQuestion:
		if v.Min != nil || v.Max != nil {
			env.Validation = &validationEnvelope{Min: v.Min, Max: v.Max}
		}
	case FileUploadQuestion:
		if len(v.AllowedTypes) > 0 {
			env.Validation = &validationEnvelope{AllowedTypes: v.AllowedTypes}
		}
	}
	return env
}

func (e questionEnvelope) question() (Question, error) {
	base := QuestionBase{ID: e.ID, Prompt: e.Question, Required: e.Required, Conditional: e.Conditional}
	switch e.Type {
	case QuestionSingleChoice:
		return SingleChoiceQuestion{QuestionBase: base, Options: e.Options}, nil
	case QuestionMultiChoice:
		return MultiChoiceQuestion{QuestionBase: base, Options: e.Options}, nil
	case QuestionShortText:
		q := ShortTextQuestion{QuestionBase: base}
		if e.Validation != nil && e.Validation.MaxLength != nil {
			q.MaxLength = *e.Validation.MaxLength
		}
		return q, nil
	case QuestionLongText:
		q := LongTextQuestion{QuestionBase: base}
		if e.Validation != nil && e.Validation.MaxLength != nil {
			q.MaxLength = *e.Validation.MaxLength
		}
		return q, nil
	case QuestionNumeric:
		q := NumericQuestion{QuestionBase: base}
		if e.Validation != nil {
			q.Min = e.Validation.Min
			q.Max = e.Validation.Max
		}
		return q, nil
	case QuestionFileUpload:
		q := FileUploadQuestion{QuestionBase: base}
		if e.Validation != nil {
			q.AllowedTypes = e.Validation.AllowedTypes
		}
		return q, nil
	}
	return nil, fmt.Errorf("unknown question type: %q", e.Type)
}

func (q SingleChoiceQuestion) MarshalJSON() ([]byte, error) { return json.Marshal(envelope(q)) }
func (q MultiChoiceQuestion) MarshalJSON() ([]byte, error)  { return json.Marshal(envelope(q)) }
func (q ShortTextQuestion) MarshalJSON() ([]byte, error)    { return json.Marshal(envelope(q)) }
func (q LongTextQuestion) MarshalJSON() ([]byte, error)     { return json.Marshal(envelope(q)) }
func (q NumericQuestion) MarshalJSON() ([]byte, error)      { return json.Marshal(envelope(q)) }
func (q FileUploadQuestion) MarshalJSON() ([]byte, error)   { return json.Marshal(envelope(q)) }

// QuestionList decodes a heterogeneous question array into the right
// variants by the type tag.
type QuestionList []Question

func (l *QuestionList) UnmarshalJSON(data []byte) error {
	var envs []questionEnvelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return err
	}
	out := make(QuestionList, 0, len(envs))
	for _, e := range envs {
		q, err := e.question()
		if err != nil {
			return err
		}
		out = append(out, q)
	}
	*l = out
	return nil
}

type Section struct {
	ID        int          `json:"id"`
	Title     string       `json:"title"`
	Questions QuestionList `json:"questions"`
}

// Assessment is the per-job, per-stage question set presented to a
// candidate. Exactly one assessment exists per (job, stage) pair.
type Assessment struct {
	ID        int64     `json:"id"`
	JobID     int64     `json:"jobId"`
	Stage     Stage     `json:"stage"`
	Title     string    `json:"title"`
	Sections  []Section `json:"sections"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// QuestionIDs returns every question id across all sections in order.
func (a Assessment) QuestionIDs() []string {
	var ids []string
	for _, s := range a.Sections {
		for _, q := range s.Questions {
			ids = append(ids, q.Base().ID)
		}
	}
	return ids
}

// ResponseSet maps question ids to submitted answers. Values are the
// decoded JSON forms: string for text/choice/numeric/file answers, []any of
// strings for multi-choice.
type ResponseSet map[string]any

type AssessmentResponse struct {
	ID           int64       `json:"id"`
	CandidateID  int64       `json:"candidateId"`
	JobID        int64       `json:"jobId"`
	Stage        Stage       `json:"stage"`
	AssessmentID int64       `json:"assessmentId"`
	Responses    ResponseSet `json:"responses"`
	SubmittedAt  *time.Time  `json:"submittedAt,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// BuilderState is the saved working state of the assessment builder for a
// job, persisted so an unfinished draft survives reloads.
type BuilderState struct {
	ID           int64           `json:"id"`
	JobID        int64           `json:"jobId"`
	State        json.RawMessage `json:"state"`
	LastModified time.Time       `json:"lastModified"`
}
