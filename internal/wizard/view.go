package wizard

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/janisto/skinai/internal/skincare"
)

// Render writes the current screen to w.
func Render(w io.Writer, s State) error {
	var b strings.Builder
	switch s.Step {
	case StepWelcome:
		renderWelcome(&b)
	case StepCamera:
		renderCamera(&b, s)
	case StepQuestions:
		renderQuestions(&b, s)
	case StepResults:
		renderResults(&b, s)
	}
	if s.Err != "" {
		b.WriteString("\n! " + s.Err + "  (type \"dismiss\" to hide)\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func renderWelcome(b *strings.Builder) {
	b.WriteString("SkinAI\n\n")
	b.WriteString("Get a personalized skincare routine in 60 seconds. Scan your face, answer a few questions, done.\n\n")
	b.WriteString("  start  Start Analysis\n\n")
	b.WriteString("100% private • No account needed • Data deleted after viewing\n")
}

func renderCamera(b *strings.Builder, s State) {
	b.WriteString("Step 1 of 2: Take a selfie\n\n")
	b.WriteString("Use natural light, remove makeup and glasses, and face the camera directly.\n\n")
	if s.Image != "" {
		b.WriteString("Photo ready.\n")
		b.WriteString("  retake    take another photo\n")
		b.WriteString("  continue  answer the questions\n")
	} else {
		b.WriteString("  photo <path>  load a selfie from a file\n")
	}
	b.WriteString("  back          return to the start\n")
}

func renderQuestions(b *strings.Builder, s State) {
	b.WriteString("Step 2 of 2: A few quick questions\n\n")
	single(b, "Gender", "gender", skincare.Genders, s.Form.Gender, nil)
	multi(b, "Main skin concerns (select all that apply)", "concern", skincare.Concerns, s.Form.Concerns)
	single(b, "Current routine", "routine", skincare.Routines, s.Form.CurrentRoutine, nil)
	single(b, "Budget", "budget", skincare.Budgets, s.Form.Budget, skincare.BudgetLabels)
	multi(b, "Preferences (optional)", "pref", skincare.Preferences, s.Form.Preferences)

	switch {
	case s.Loading:
		b.WriteString("Analyzing your skin...\n")
	case CanSubmit(s):
		b.WriteString("  submit  Get My Routine\n")
	default:
		b.WriteString("Select a gender and at least one concern to continue.\n")
	}
	b.WriteString("  back    retake the photo\n")
}

func single(b *strings.Builder, title, cmd string, options []string, selected string, labels map[string]string) {
	fmt.Fprintf(b, "%s  (%s <n>)\n", title, cmd)
	for i, opt := range options {
		label := opt
		if l, ok := labels[opt]; ok {
			label += " " + l
		}
		fmt.Fprintf(b, "  %s %d. %s\n", mark(opt == selected), i+1, label)
	}
	b.WriteString("\n")
}

func multi(b *strings.Builder, title, cmd string, options, selected []string) {
	fmt.Fprintf(b, "%s  (%s <n>)\n", title, cmd)
	for i, opt := range options {
		fmt.Fprintf(b, "  %s %d. %s\n", mark(slices.Contains(selected, opt)), i+1, opt)
	}
	b.WriteString("\n")
}

func mark(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func renderResults(b *strings.Builder, s State) {
	r := s.Result
	if r == nil {
		return
	}
	b.WriteString("Your Routine\n\n")
	b.WriteString("Analysis: " + r.Analysis + "\n\n")

	if g := r.BeginnerGuide; g != nil {
		b.WriteString("New to skincare? Start here\n")
		b.WriteString("  Morning: " + g.MorningTime + "   Evening: " + g.EveningTime + "\n")
		b.WriteString("  Pro tips:\n")
		for _, t := range g.Tips {
			b.WriteString("    • " + t + "\n")
		}
		b.WriteString("  Avoid these mistakes:\n")
		for _, m := range g.Mistakes {
			b.WriteString("    • " + m + "\n")
		}
		b.WriteString("\n")
	}

	routine(b, "Morning", false, r.Morning, s.Expanded)
	routine(b, "Evening", true, r.Evening, s.Expanded)

	b.WriteString("Total: " + r.TotalCost + "\n\n")
	b.WriteString("  detail <key>     show or hide how to use a product\n")
	b.WriteString("  copy             print a short summary to paste\n")
	b.WriteString("  download [path]  save the full routine (" + TranscriptFileName + ")\n")
	b.WriteString("  reset            start a new analysis\n")
}

func routine(b *strings.Builder, title string, evening bool, steps []skincare.RoutineStep, expanded string) {
	b.WriteString(title + "\n")
	for _, st := range steps {
		key := DetailKey(evening, st.Step)
		fmt.Fprintf(b, "  %d. %s  %s\n", st.Step, st.Product, st.Price)
		b.WriteString("     " + st.Why + "\n")
		if key != expanded {
			fmt.Fprintf(b, "     ▶ How to use (detail %s)\n", key)
			continue
		}
		fmt.Fprintf(b, "     ▼ Hide details (detail %s)\n", key)
		b.WriteString("       Amount: " + st.Amount + "\n")
		b.WriteString("       How to apply: " + st.HowToUse + "\n")
		if st.Application != "" {
			b.WriteString("       Technique: " + st.Application + "\n")
		}
		if st.WaitTime != "" {
			b.WriteString("       Wait time: " + st.WaitTime + "\n")
		}
		if len(st.WhereToBuy) > 0 {
			b.WriteString("       Where to buy:\n")
			for _, w := range st.WhereToBuy {
				line := "         " + w.Store + " " + w.Price
				if w.Link != "" {
					line += "  " + w.Link
				}
				b.WriteString(line + "\n")
			}
		}
	}
	b.WriteString("\n")
}
