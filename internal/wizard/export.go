package wizard

import (
	"strconv"
	"strings"

	"github.com/janisto/skinai/internal/skincare"
)

// TranscriptFileName is the file name used when the routine is downloaded.
const TranscriptFileName = "my-skincare-routine.txt"

const transcriptFooter = "Generated by SkinAI - 100% private, no data stored."

// Summary is the condensed routine placed on the clipboard: product, amount, how to use and wait time per step.
func Summary(r skincare.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("My Skincare Routine\n\n")
	if g := r.BeginnerGuide; g != nil {
		b.WriteString("⏱️ Morning: " + g.MorningTime + " | Evening: " + g.EveningTime + "\n\n")
	}
	b.WriteString("MORNING ROUTINE:\n")
	writeSummarySteps(&b, r.Morning)
	b.WriteString("\n\nEVENING ROUTINE:\n")
	writeSummarySteps(&b, r.Evening)
	return b.String()
}

func writeSummarySteps(b *strings.Builder, steps []skincare.RoutineStep) {
	for i, s := range steps {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strconv.Itoa(s.Step) + ". " + s.Product + " - " + s.Amount + "\n   " + s.HowToUse)
		if s.WaitTime != "" {
			b.WriteString("\n   " + s.WaitTime)
		}
	}
}

// Transcript is the full routine written to TranscriptFileName.
func Transcript(r skincare.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("SkinAI - Your Personalized Skincare Routine\n\n")
	b.WriteString("SKIN ANALYSIS:\n" + r.Analysis + "\n\n")

	if g := r.BeginnerGuide; g != nil {
		b.WriteString("NEW TO SKINCARE? START HERE\n")
		b.WriteString("Morning Time: " + g.MorningTime + "\n")
		b.WriteString("Evening Time: " + g.EveningTime + "\n\n")
		b.WriteString("PRO TIPS:\n" + bullets(g.Tips, "• ") + "\n\n")
		b.WriteString("AVOID THESE MISTAKES:\n" + bullets(g.Mistakes, "• ") + "\n\n")
	}

	b.WriteString("MORNING ROUTINE:\n")
	writeTranscriptSteps(&b, r.Morning)
	b.WriteString("\n\nEVENING ROUTINE:\n")
	writeTranscriptSteps(&b, r.Evening)

	b.WriteString("\n\nTOTAL INVESTMENT: " + r.TotalCost + "\n\n")
	b.WriteString(transcriptFooter)
	return b.String()
}

func writeTranscriptSteps(b *strings.Builder, steps []skincare.RoutineStep) {
	for i, s := range steps {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strconv.Itoa(s.Step) + ". " + s.Product + " (" + s.Price + ")\n")
		b.WriteString("   Why: " + s.Why + "\n")
		b.WriteString("   Amount: " + s.Amount + "\n")
		b.WriteString("   How to Use: " + s.HowToUse + "\n")
		if s.Application != "" {
			b.WriteString("   Application: " + s.Application + "\n")
		}
		if s.WaitTime != "" {
			b.WriteString("   Wait Time: " + s.WaitTime + "\n")
		}
		if len(s.WhereToBuy) > 0 {
			b.WriteString("   Where to Buy:\n")
			lines := make([]string, 0, len(s.WhereToBuy))
			for _, w := range s.WhereToBuy {
				line := "      • " + w.Store + ": " + w.Price
				if w.Link != "" {
					line += " (" + w.Link + ")"
				}
				lines = append(lines, line)
			}
			b.WriteString(strings.Join(lines, "\n"))
		}
	}
}

func bullets(items []string, mark string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = mark + it
	}
	return strings.Join(lines, "\n")
}
