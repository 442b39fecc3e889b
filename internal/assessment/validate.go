package assessment

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"talentflow/internal/domain"
)

// Violation collects every rule a single question's response breaks.
// Validation is not fail-fast: the caller gets all problems at once so the
// whole form can be corrected before resubmission.
type Violation struct {
	QuestionID string   `json:"questionId"`
	Problems   []string `json:"problems"`
}

// ValidateResponses checks every visible question of the assessment against
// the response set and returns the collected violations, empty when the
// submission is clean.
func ValidateResponses(a domain.Assessment, responses domain.ResponseSet) []Violation {
	var out []Violation
	for _, section := range a.Sections {
		for _, q := range section.Questions {
			if !ShouldShow(q, responses) {
				continue
			}
			problems := validateOne(q, responses[q.Base().ID])
			if len(problems) > 0 {
				out = append(out, Violation{QuestionID: q.Base().ID, Problems: problems})
			}
		}
	}
	return out
}

func validateOne(q domain.Question, response any) []string {
	var problems []string

	empty := isEmpty(response)
	if q.Base().Required && empty {
		problems = append(problems, "This field is required")
	}
	if empty {
		return problems
	}

	switch v := q.(type) {
	case domain.ShortTextQuestion:
		problems = append(problems, checkMaxLength(response, v.MaxLength)...)
	case domain.LongTextQuestion:
		problems = append(problems, checkMaxLength(response, v.MaxLength)...)
	case domain.NumericQuestion:
		problems = append(problems, checkNumeric(response, v.Min, v.Max)...)
	case domain.FileUploadQuestion:
		problems = append(problems, checkFileType(response, v.AllowedTypes)...)
	}
	return problems
}

func checkMaxLength(response any, maxLength int) []string {
	if maxLength <= 0 {
		return nil
	}
	s, ok := asString(response)
	if !ok {
		return nil
	}
	if len(s) > maxLength {
		return []string{fmt.Sprintf("Maximum %d characters allowed", maxLength)}
	}
	return nil
}

func checkNumeric(response any, min, max *float64) []string {
	var s string
	switch v := response.(type) {
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		s = strings.TrimSpace(v)
	default:
		return []string{"Must be a valid number"}
	}

	num, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return []string{"Must be a valid number"}
	}

	var problems []string
	if min != nil && num < *min {
		problems = append(problems, fmt.Sprintf("Minimum value is %s", formatBound(*min)))
	}
	if max != nil && num > *max {
		problems = append(problems, fmt.Sprintf("Maximum value is %s", formatBound(*max)))
	}
	return problems
}

func checkFileType(response any, allowed []string) []string {
	if len(allowed) == 0 {
		return nil
	}
	name, ok := asString(response)
	if !ok {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range allowed {
		if strings.ToLower(a) == ext {
			return nil
		}
	}
	return []string{fmt.Sprintf("Allowed file types: %s", strings.Join(allowed, ", "))}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ShouldShow evaluates a question's conditional-visibility rule against the
// responses collected so far. Questions without a rule are always visible.
func ShouldShow(q domain.Question, responses domain.ResponseSet) bool {
	cond := q.Base().Conditional
	if cond == nil {
		return true
	}

	dep := responses[cond.DependsOn]
	switch cond.Operator {
	case domain.CondEquals:
		s, _ := asString(dep)
		return s == cond.Value
	case domain.CondNotEquals:
		s, _ := asString(dep)
		return s != cond.Value
	case domain.CondContains:
		for _, item := range asStrings(dep) {
			if item == cond.Value {
				return true
			}
		}
		return false
	}
	return true
}

func isEmpty(response any) bool {
	switch v := response.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	}
	return false
}

func asString(response any) (string, bool) {
	s, ok := response.(string)
	return s, ok
}

func asStrings(response any) []string {
	switch v := response.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
