package analysis

import (
	"context"
	"sync"
)

// MockModel implements Model for unit tests. It returns Text, or Err when set, and records each call.
type MockModel struct {
	Text string
	Err  error
	// NoCredential makes the model report a missing API key.
	NoCredential bool

	mu      sync.Mutex
	calls   int
	prompts []string
	images  []Image
}

// NewMockModel returns a MockModel answering with text.
func NewMockModel(text string) *MockModel {
	return &MockModel{Text: text}
}

func (m *MockModel) Name() string { return "mock" }

func (m *MockModel) HasCredential() bool { return !m.NoCredential }

func (m *MockModel) Generate(_ context.Context, img Image, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.prompts = append(m.prompts, prompt)
	m.images = append(m.images, img)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

// Calls returns the number of Generate invocations.
func (m *MockModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt returns the prompt of the most recent call, or "".
func (m *MockModel) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// LastImage returns the image of the most recent call.
func (m *MockModel) LastImage() Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.images) == 0 {
		return Image{}
	}
	return m.images[len(m.images)-1]
}

// SampleResponse is a model answer with prose around a complete routine, including a beginner guide.
const SampleResponse = `Here is the routine you asked for:
{
  "analysis": "Your skin shows mild dehydration around the cheeks with some congestion on the forehead.",
  "morning": [
    {"step": 1, "product": "CeraVe Hydrating Facial Cleanser", "why": "Cleans without stripping", "price": "$15",
     "howToUse": "Massage onto damp skin for 30 seconds, then rinse", "amount": "Dime-sized",
     "application": "Circular motions", "whereToBuy": [{"store": "Target", "price": "$14.99", "link": "https://www.target.com/cerave"}]},
    {"step": 2, "product": "The Ordinary Niacinamide 10% + Zinc 1%", "why": "Reduces oil and evens tone", "price": "$6",
     "howToUse": "Pat onto dry skin", "amount": "2-3 drops", "application": "Press in with fingertips", "waitTime": "Wait 1 minute"},
    {"step": 5, "product": "Black Girl Sunscreen SPF 30", "why": "No white cast", "price": "$16",
     "howToUse": "Apply as the last step", "amount": "Two finger lengths", "application": "Spread evenly"}
  ],
  "evening": [
    {"step": 1, "product": "CeraVe Hydrating Facial Cleanser", "why": "Removes sunscreen", "price": "$15",
     "howToUse": "Massage onto damp skin", "amount": "Dime-sized", "application": "Circular motions"},
    {"step": 2, "product": "Vanicream Moisturizing Cream", "why": "Locks in moisture", "price": "$13",
     "howToUse": "Apply to slightly damp skin", "amount": "Nickel-sized", "application": "Upward strokes"}
  ],
  "totalCost": "$50 (will last 3 months)",
  "beginnerGuide": {
    "morningTime": "3 minutes",
    "eveningTime": "2 minutes",
    "tips": ["Start with one new product a week"],
    "mistakes": ["Skipping sunscreen on cloudy days"]
  }
}
Let me know if you need anything else.`

var _ Model = (*MockModel)(nil)
