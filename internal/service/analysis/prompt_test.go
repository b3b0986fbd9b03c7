package analysis

import (
	"strings"
	"testing"

	"github.com/janisto/skinai/internal/skincare"
)

func TestBuildPromptEmbedsAnswers(t *testing.T) {
	p := BuildPrompt(skincare.Questionnaire{
		Gender:         "Female",
		Concerns:       []string{"Dryness", "Dark Spots"},
		CurrentRoutine: "Just wash my face",
		Budget:         "$$",
		Preferences:    []string{"Vegan", "Fragrance-free"},
	})

	for _, want := range []string{
		"- Gender: Female",
		"- Primary Concerns: Dryness, Dark Spots",
		"- Current Routine: Just wash my face",
		"- Budget: $$ ($50-150)",
		"- Preferences: Vegan, Fragrance-free",
		"Return ONLY a JSON object",
		`"howToUse"`,
		`"whereToBuy"`,
		`"beginnerGuide"`,
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(p, "you MUST include the beginnerGuide") {
		t.Error("beginner guide should only be demanded for users without a routine")
	}
}

func TestBuildPromptSentinels(t *testing.T) {
	p := BuildPrompt(skincare.Questionnaire{Gender: "Male", Concerns: []string{"Oily"}})

	if !strings.Contains(p, "- Preferences: None specified") {
		t.Error("expected None specified for empty preferences")
	}
	if !strings.Contains(p, "- Current Routine: Not specified") || !strings.Contains(p, "- Budget: Not specified") {
		t.Error("expected Not specified for unset routine and budget")
	}
}

func TestBuildPromptTotal(t *testing.T) {
	p := BuildPrompt(skincare.Questionnaire{})
	if !strings.Contains(p, "- Gender: Not specified") {
		t.Fatalf("expected prompt for empty questionnaire, got %q", p)
	}
}

func TestBuildPromptBeginner(t *testing.T) {
	p := BuildPrompt(skincare.Questionnaire{Gender: "Male", Concerns: []string{"Oily"}, CurrentRoutine: skincare.RoutineNone})
	if !strings.Contains(p, "you MUST include the beginnerGuide") {
		t.Fatal("expected beginner guide instruction")
	}
}
