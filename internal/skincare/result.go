package skincare

// AnalysisRequest is the body of POST /api/analyze.
type AnalysisRequest struct {
	Image    string        `json:"image"    doc:"Data URI of the selfie" required:"false"`
	FormData Questionnaire `json:"formData" doc:"Questionnaire answers"  required:"false"`
}

// WhereToBuy is one retailer offer for a product.
type WhereToBuy struct {
	Store string `json:"store"`
	Price string `json:"price"`
	Link  string `json:"link,omitempty" required:"false"`
}

// RoutineStep is one product of the morning or evening routine. Steps are numbered from 1.
type RoutineStep struct {
	Step        int          `json:"step"`
	Product     string       `json:"product"`
	Why         string       `json:"why"`
	Price       string       `json:"price"`
	HowToUse    string       `json:"howToUse"`
	Amount      string       `json:"amount"`
	Application string       `json:"application"`
	WaitTime    string       `json:"waitTime,omitempty"   required:"false"`
	WhereToBuy  []WhereToBuy `json:"whereToBuy,omitempty" required:"false"`
}

// BeginnerGuide is included for users without an existing routine.
type BeginnerGuide struct {
	MorningTime string   `json:"morningTime"`
	EveningTime string   `json:"eveningTime"`
	Tips        []string `json:"tips"`
	Mistakes    []string `json:"mistakes"`
}

// AnalysisResult is the structured recommendation returned by the model.
type AnalysisResult struct {
	Analysis      string         `json:"analysis"`
	Morning       []RoutineStep  `json:"morning"`
	Evening       []RoutineStep  `json:"evening"`
	TotalCost     string         `json:"totalCost"`
	BeginnerGuide *BeginnerGuide `json:"beginnerGuide,omitempty" required:"false"`
}
