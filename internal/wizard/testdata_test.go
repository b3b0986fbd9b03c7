package wizard

import "github.com/janisto/skinai/internal/skincare"

func sampleResult() *skincare.AnalysisResult {
	return &skincare.AnalysisResult{
		Analysis: "Combination skin with mild hyperpigmentation.",
		Morning: []skincare.RoutineStep{
			{
				Step: 1, Product: "CeraVe Foaming Cleanser", Why: "Removes excess oil", Price: "$16",
				HowToUse: "Lather on damp skin, rinse", Amount: "Pea-sized", Application: "Circular motions",
				WhereToBuy: []skincare.WhereToBuy{{Store: "Target", Price: "$15.49", Link: "https://target.example/cerave"}},
			},
			{
				Step: 2, Product: "Black Girl Sunscreen SPF 30", Why: "No white cast", Price: "$19",
				HowToUse: "Apply last", Amount: "Two finger lengths", Application: "Pat in", WaitTime: "Wait 15 minutes before makeup",
			},
		},
		Evening: []skincare.RoutineStep{
			{
				Step: 1, Product: "Paula's Choice 2% BHA", Why: "Unclogs pores", Price: "$35",
				HowToUse: "Swipe with a cotton pad", Amount: "A few drops", Application: "Avoid the eye area",
				WhereToBuy: []skincare.WhereToBuy{{Store: "Sephora", Price: "$35"}},
			},
		},
		TotalCost: "$70 (will last 3 months)",
		BeginnerGuide: &skincare.BeginnerGuide{
			MorningTime: "2 minutes",
			EveningTime: "3 minutes",
			Tips:        []string{"Introduce one product at a time"},
			Mistakes:    []string{"Over-exfoliating"},
		},
	}
}
