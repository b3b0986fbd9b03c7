package analysis

import (
	"strings"

	"github.com/janisto/skinai/internal/skincare"
)

const (
	noPreferences = "None specified"
	notSpecified  = "Not specified"
)

// BuildPrompt renders the questionnaire and the output contract into the model instruction.
// It is pure and total: every questionnaire produces a prompt.
func BuildPrompt(q skincare.Questionnaire) string {
	var b strings.Builder
	b.WriteString("You are a professional skincare consultant analyzing a client's skin and creating a personalized routine.\n\n")

	b.WriteString("CLIENT INFORMATION:\n")
	b.WriteString("- Gender: " + orNotSpecified(q.Gender) + "\n")
	b.WriteString("- Primary Concerns: " + orNotSpecified(strings.Join(q.Concerns, ", ")) + "\n")
	b.WriteString("- Current Routine: " + orNotSpecified(q.CurrentRoutine) + "\n")
	b.WriteString("- Budget: " + budgetLine(q.Budget) + "\n")
	prefs := noPreferences
	if len(q.Preferences) > 0 {
		prefs = strings.Join(q.Preferences, ", ")
	}
	b.WriteString("- Preferences: " + prefs + "\n\n")
	b.WriteString("[Image of their face is attached]\n\n")

	b.WriteString(instructions)
	if q.CurrentRoutine == skincare.RoutineNone {
		b.WriteString("\nThe client has no current routine: you MUST include the beginnerGuide object.\n")
	}
	return b.String()
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}

func budgetLine(tier string) string {
	if label, ok := skincare.BudgetLabels[tier]; ok {
		return tier + " (" + label + ")"
	}
	return orNotSpecified(tier)
}

const instructions = `INSTRUCTIONS:
1. Analyze the attached face photo for:
   - Skin texture (dry, oily, combination)
   - Visible concerns (acne, dark spots, uneven tone, etc.)
   - Overall skin health indicators
   - Pay special attention to melanin-rich skin characteristics if applicable

2. Create a complete skincare routine with SPECIFIC product recommendations:
   - Give actual product names (e.g., "CeraVe Hydrating Facial Cleanser", not "a gentle cleanser")
   - Include approximate prices
   - Explain WHY each product addresses their specific concerns
   - Explain exactly how much to use, how to apply it and how long to wait before the next step
   - List where to buy each product with the store price
   - Keep within their stated budget
   - Respect their preferences (fragrance-free, natural, etc.)
   - Focus on beginner-friendly products if they have no current routine

3. Structure the routine as:
   - MORNING: 3-4 steps (cleanser, treatment, moisturizer, SPF)
   - EVENING: 3-5 steps (cleanser, treatment/exfoliant, serum, moisturizer)

4. For Black skin specifically:
   - Avoid products that cause ashy appearance
   - Recommend sunscreens without white cast
   - Address hyperpigmentation/dark spots if relevant
   - Focus on moisture retention

5. Return ONLY a JSON object in this exact format:
{
  "analysis": "2-3 sentence skin analysis based on photo and answers",
  "morning": [
    {
      "step": 1,
      "product": "Exact Product Name",
      "why": "Why this helps their specific concerns",
      "price": "$XX",
      "howToUse": "Step-by-step instructions",
      "amount": "Pea-sized amount",
      "application": "Gently massage in upward circular motions",
      "waitTime": "Wait 1 minute before the next step",
      "whereToBuy": [
        {"store": "Target", "price": "$XX", "link": "https://..."}
      ]
    }
  ],
  "evening": [
    {
      "step": 1,
      "product": "Exact Product Name",
      "why": "Why this helps their specific concerns",
      "price": "$XX",
      "howToUse": "Step-by-step instructions",
      "amount": "Pea-sized amount",
      "application": "Gently massage in upward circular motions",
      "waitTime": "Wait 1 minute before the next step",
      "whereToBuy": [
        {"store": "Ulta", "price": "$XX", "link": "https://..."}
      ]
    }
  ],
  "totalCost": "$XXX (will last X months)",
  "beginnerGuide": {
    "morningTime": "5 minutes",
    "eveningTime": "10 minutes",
    "tips": ["Tip for a first-time routine"],
    "mistakes": ["Common beginner mistake to avoid"]
  }
}

Include "beginnerGuide" only when the client has no current routine; otherwise omit it.
Be practical, specific, and focus on products that are widely available (drugstore + Sephora/Ulta).`
