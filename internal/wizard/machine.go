// Package wizard drives the welcome, camera, questions and results screens of the terminal client.
package wizard

import (
	"strconv"

	"github.com/janisto/skinai/internal/skincare"
)

// Step is a wizard screen.
type Step string

const (
	StepWelcome   Step = "welcome"
	StepCamera    Step = "camera"
	StepQuestions Step = "questions"
	StepResults   Step = "results"
)

// State is everything the screens render from. The zero value is not valid; use Initial.
type State struct {
	Step   Step
	Image  string // normalized data URI, "" until captured
	Form   skincare.Questionnaire
	Result *skincare.AnalysisResult
	Err    string
	// Expanded is the detail key of the open routine step ("m<n>" or "e<n>"), or "".
	Expanded string
	Loading  bool
}

// Initial returns the welcome screen with an empty questionnaire.
func Initial() State {
	return State{Step: StepWelcome}
}

// Event is an input to Transition.
type Event interface {
	isEvent()
}

type (
	Start         struct{}
	Back          struct{}
	ImageCaptured struct{ DataURI string }
	CaptureFailed struct{ Message string }
	Retake        struct{}
	Continue      struct{}

	SetGender        struct{ Value string }
	ToggleConcern    struct{ Value string }
	SetRoutine       struct{ Value string }
	SetBudget        struct{ Value string }
	TogglePreference struct{ Value string }
	Submit           struct{}

	AnalysisSucceeded struct{ Result *skincare.AnalysisResult }
	AnalysisFailed    struct{ Message string }

	ToggleDetail struct{ Key string }
	DismissError struct{}
	Reset        struct{}
)

func (Start) isEvent()             {}
func (Back) isEvent()              {}
func (ImageCaptured) isEvent()     {}
func (CaptureFailed) isEvent()     {}
func (Retake) isEvent()            {}
func (Continue) isEvent()          {}
func (SetGender) isEvent()         {}
func (ToggleConcern) isEvent()     {}
func (SetRoutine) isEvent()        {}
func (SetBudget) isEvent()         {}
func (TogglePreference) isEvent()  {}
func (Submit) isEvent()            {}
func (AnalysisSucceeded) isEvent() {}
func (AnalysisFailed) isEvent()    {}
func (ToggleDetail) isEvent()      {}
func (DismissError) isEvent()      {}
func (Reset) isEvent()             {}

const msgNeedImage = "Please take or upload a photo first"

// Transition returns the state after ev. Events that do not apply to the current screen
// leave s unchanged. While an analysis is loading only its outcome is accepted.
func Transition(s State, ev Event) State {
	if s.Loading {
		switch e := ev.(type) {
		case AnalysisSucceeded:
			if e.Result == nil {
				return s
			}
			s.Loading = false
			s.Result = e.Result
			s.Err = ""
			s.Step = StepResults
		case AnalysisFailed:
			s.Loading = false
			s.Err = e.Message
		}
		return s
	}

	switch e := ev.(type) {
	case DismissError:
		s.Err = ""
		return s
	case Start:
		if s.Step == StepWelcome {
			s.Step = StepCamera
			s.Err = ""
		}
	case Back:
		switch s.Step {
		case StepCamera:
			s.Step = StepWelcome
			s.Err = ""
		case StepQuestions:
			s.Step = StepCamera
			s.Err = ""
		}
	case ImageCaptured:
		if s.Step == StepCamera && e.DataURI != "" {
			s.Image = e.DataURI
			s.Err = ""
			s.Step = StepQuestions
		}
	case CaptureFailed:
		if s.Step == StepCamera {
			s.Err = e.Message
		}
	case Retake:
		if s.Step == StepCamera {
			s.Image = ""
			s.Err = ""
		}
	case Continue:
		if s.Step == StepCamera {
			if s.Image == "" {
				s.Err = msgNeedImage
			} else {
				s.Err = ""
				s.Step = StepQuestions
			}
		}
	case SetGender:
		if s.Step == StepQuestions {
			s.Form = s.Form.SetGender(e.Value)
		}
	case ToggleConcern:
		if s.Step == StepQuestions {
			s.Form = s.Form.ToggleConcern(e.Value)
		}
	case SetRoutine:
		if s.Step == StepQuestions {
			s.Form = s.Form.SetRoutine(e.Value)
		}
	case SetBudget:
		if s.Step == StepQuestions {
			s.Form = s.Form.SetBudget(e.Value)
		}
	case TogglePreference:
		if s.Step == StepQuestions {
			s.Form = s.Form.TogglePreference(e.Value)
		}
	case Submit:
		if s.Step == StepQuestions && s.Form.Ready() && s.Image != "" {
			s.Loading = true
			s.Err = ""
		}
	case ToggleDetail:
		if s.Step == StepResults && validDetailKey(s.Result, e.Key) {
			if s.Expanded == e.Key {
				s.Expanded = ""
			} else {
				s.Expanded = e.Key
			}
		}
	case Reset:
		if s.Step == StepResults {
			return Initial()
		}
	}

	if s.Step != StepResults {
		s.Expanded = ""
	}
	return s
}

// CanSubmit reports whether Submit would start an analysis.
func CanSubmit(s State) bool {
	return s.Step == StepQuestions && !s.Loading && s.Image != "" && s.Form.Ready()
}

// DetailKey names the detail panel of a routine step.
func DetailKey(evening bool, step int) string {
	prefix := "m"
	if evening {
		prefix = "e"
	}
	return prefix + strconv.Itoa(step)
}

func validDetailKey(r *skincare.AnalysisResult, key string) bool {
	_, ok := findStep(r, key)
	return ok
}

func findStep(r *skincare.AnalysisResult, key string) (skincare.RoutineStep, bool) {
	if r == nil {
		return skincare.RoutineStep{}, false
	}
	for _, s := range r.Morning {
		if DetailKey(false, s.Step) == key {
			return s, true
		}
	}
	for _, s := range r.Evening {
		if DetailKey(true, s.Step) == key {
			return s, true
		}
	}
	return skincare.RoutineStep{}, false
}
