package analyze

import "github.com/janisto/skinai/internal/skincare"

// AnalyzeOutput carries the generated routine.
type AnalyzeOutput struct {
	Body skincare.AnalysisResult
}

// Vocabulary lists the answers accepted for each questionnaire field.
type Vocabulary struct {
	Genders     []string          `json:"genders"`
	Concerns    []string          `json:"concerns"`
	Routines    []string          `json:"routines"`
	Budgets     []string          `json:"budgets"`
	BudgetLabel map[string]string `json:"budgetLabels"`
	Preferences []string          `json:"preferences"`
}

// QuestionnaireOutput wraps the vocabulary.
type QuestionnaireOutput struct {
	Body Vocabulary
}
