// Package skincare holds the questionnaire and routine types shared by the server, the request bridge and the
// terminal wizard.
package skincare

import (
	"errors"
	"fmt"
	"slices"
)

// Answer vocabularies offered by the questionnaire.
var (
	Genders     = []string{"Male", "Female"}
	Concerns    = []string{"Dryness", "Acne/Pimples", "Dark Spots", "Oily", "Sensitive", "Uneven Tone"}
	Routines    = []string{"Nothing really", "Just wash my face", "Have some products"}
	Budgets     = []string{"$", "$$", "$$$"}
	Preferences = []string{"Fragrance-free", "Natural/Clean", "Vegan", "Cruelty-free"}
)

// RoutineNone is the routine answer of a user without any skincare habit.
const RoutineNone = "Nothing really"

// BudgetLabels describes each budget tier.
var BudgetLabels = map[string]string{
	"$":   "Under $50",
	"$$":  "$50-150",
	"$$$": "$150+",
}

// ErrIncomplete is returned when gender or concerns are missing.
var ErrIncomplete = errors.New("Gender and at least one concern are required") //nolint:staticcheck // user-facing message

// Questionnaire is the user's answers. Gender and at least one concern are required before submission.
type Questionnaire struct {
	Gender         string   `json:"gender,omitempty"         doc:"Male or Female"               required:"false"`
	Concerns       []string `json:"concerns,omitempty"       doc:"One or more skin concerns"    required:"false"`
	CurrentRoutine string   `json:"currentRoutine,omitempty" doc:"Current routine familiarity" required:"false"`
	Budget         string   `json:"budget,omitempty"         doc:"Budget tier: $, $$ or $$$"    required:"false"`
	Preferences    []string `json:"preferences,omitempty"    doc:"Product preferences"          required:"false"`
}

// Ready reports whether the questionnaire can be submitted.
func (q Questionnaire) Ready() bool {
	return q.Gender != "" && len(q.Concerns) > 0
}

// Validate checks the required answers and then rejects values outside the vocabularies.
// Empty routine and budget are allowed.
func (q Questionnaire) Validate() error {
	if !q.Ready() {
		return ErrIncomplete
	}
	if !slices.Contains(Genders, q.Gender) {
		return fmt.Errorf("invalid gender: %s", q.Gender)
	}
	for _, c := range q.Concerns {
		if !slices.Contains(Concerns, c) {
			return fmt.Errorf("invalid concern: %s", c)
		}
	}
	if q.CurrentRoutine != "" && !slices.Contains(Routines, q.CurrentRoutine) {
		return fmt.Errorf("invalid current routine: %s", q.CurrentRoutine)
	}
	if q.Budget != "" && !slices.Contains(Budgets, q.Budget) {
		return fmt.Errorf("invalid budget: %s", q.Budget)
	}
	for _, p := range q.Preferences {
		if !slices.Contains(Preferences, p) {
			return fmt.Errorf("invalid preference: %s", p)
		}
	}
	return nil
}

// SetGender returns a copy with gender set. Unknown values leave q unchanged.
func (q Questionnaire) SetGender(v string) Questionnaire {
	if slices.Contains(Genders, v) {
		q.Gender = v
	}
	return q
}

// SetRoutine returns a copy with the current routine set. Unknown values leave q unchanged.
func (q Questionnaire) SetRoutine(v string) Questionnaire {
	if slices.Contains(Routines, v) {
		q.CurrentRoutine = v
	}
	return q
}

// SetBudget returns a copy with the budget set. Unknown values leave q unchanged.
func (q Questionnaire) SetBudget(v string) Questionnaire {
	if slices.Contains(Budgets, v) {
		q.Budget = v
	}
	return q
}

// ToggleConcern adds v when absent and removes it when present.
func (q Questionnaire) ToggleConcern(v string) Questionnaire {
	if slices.Contains(Concerns, v) {
		q.Concerns = toggle(q.Concerns, v)
	}
	return q
}

// TogglePreference adds v when absent and removes it when present.
func (q Questionnaire) TogglePreference(v string) Questionnaire {
	if slices.Contains(Preferences, v) {
		q.Preferences = toggle(q.Preferences, v)
	}
	return q
}

// toggle never mutates the backing array of in, so copies of a Questionnaire stay independent.
func toggle(in []string, v string) []string {
	if i := slices.Index(in, v); i >= 0 {
		out := make([]string, 0, len(in)-1)
		out = append(out, in[:i]...)
		return append(out, in[i+1:]...)
	}
	out := make([]string, 0, len(in)+1)
	out = append(out, in...)
	return append(out, v)
}
