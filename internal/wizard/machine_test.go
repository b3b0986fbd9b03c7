package wizard

import (
	"testing"
)

func run(s State, events ...Event) State {
	for _, ev := range events {
		s = Transition(s, ev)
	}
	return s
}

func TestHappyPath(t *testing.T) {
	s := run(Initial(),
		Start{},
		ImageCaptured{DataURI: "data:image/jpeg;base64,AAAA"},
		SetGender{Value: "Female"},
		ToggleConcern{Value: "Oily"},
		SetRoutine{Value: "Nothing really"},
		SetBudget{Value: "$"},
		TogglePreference{Value: "Vegan"},
		Submit{},
	)
	if !s.Loading || s.Step != StepQuestions {
		t.Fatalf("expected loading questions screen, got %+v", s)
	}

	s = Transition(s, AnalysisSucceeded{Result: sampleResult()})
	if s.Step != StepResults || s.Loading || s.Result == nil {
		t.Fatalf("expected results, got %+v", s)
	}

	s = Transition(s, Reset{})
	if s.Step != StepWelcome || s.Image != "" || s.Result != nil || s.Form.Gender != "" || len(s.Form.Concerns) != 0 {
		t.Fatalf("expected empty welcome state, got %+v", s)
	}
}

func TestSubmitRequiresGenderAndConcern(t *testing.T) {
	base := run(Initial(), Start{}, ImageCaptured{DataURI: "data:image/jpeg;base64,AAAA"})

	if s := run(base, Submit{}); s.Loading {
		t.Fatal("submit without answers must not start loading")
	}
	if s := run(base, SetGender{Value: "Male"}, Submit{}); s.Loading {
		t.Fatal("submit without concerns must not start loading")
	}
	if s := run(base, ToggleConcern{Value: "Oily"}, Submit{}); s.Loading {
		t.Fatal("submit without gender must not start loading")
	}
	if s := run(base, SetGender{Value: "Male"}, ToggleConcern{Value: "Oily"}, ToggleConcern{Value: "Oily"}, Submit{}); s.Loading {
		t.Fatal("submit after deselecting the only concern must not start loading")
	}
}

func TestLoadingIgnoresOtherEvents(t *testing.T) {
	s := run(Initial(), Start{}, ImageCaptured{DataURI: "x"}, SetGender{Value: "Male"}, ToggleConcern{Value: "Oily"}, Submit{})

	for _, ev := range []Event{Submit{}, Back{}, SetGender{Value: "Female"}, DismissError{}} {
		if got := Transition(s, ev); got.Step != s.Step || got.Form.Gender != "Male" || !got.Loading {
			t.Fatalf("event %T changed loading state: %+v", ev, got)
		}
	}

	failed := Transition(s, AnalysisFailed{Message: "AI service error: Overloaded"})
	if failed.Loading || failed.Step != StepQuestions || failed.Err != "AI service error: Overloaded" {
		t.Fatalf("unexpected failed state %+v", failed)
	}
	if got := Transition(failed, DismissError{}); got.Err != "" {
		t.Fatal("expected error dismissed")
	}
}

func TestCameraTransitions(t *testing.T) {
	s := run(Initial(), Start{}, Continue{})
	if s.Step != StepCamera || s.Err == "" {
		t.Fatalf("continue without image should error, got %+v", s)
	}

	s = run(s, CaptureFailed{Message: "Failed to load image. Please try another file."})
	if s.Err != "Failed to load image. Please try another file." {
		t.Fatalf("unexpected error %q", s.Err)
	}

	s = run(s, ImageCaptured{DataURI: "img"}, Back{})
	if s.Step != StepCamera || s.Image != "img" || s.Err != "" {
		t.Fatalf("back from questions should keep image, got %+v", s)
	}
	s = run(s, Retake{})
	if s.Image != "" {
		t.Fatal("retake should clear the image")
	}
	s = run(s, Back{})
	if s.Step != StepWelcome {
		t.Fatalf("expected welcome, got %s", s.Step)
	}
}

func TestInvalidEventsLeaveStateUnchanged(t *testing.T) {
	s := Initial()
	for _, ev := range []Event{Back{}, Continue{}, Retake{}, SetGender{Value: "Male"}, Submit{}, ToggleDetail{Key: "m1"}, Reset{}, AnalysisSucceeded{Result: sampleResult()}} {
		if got := Transition(s, ev); got.Step != StepWelcome || got.Form.Gender != "" || got.Result != nil {
			t.Fatalf("event %T changed welcome state: %+v", ev, got)
		}
	}

	q := run(Initial(), Start{}, ImageCaptured{DataURI: "img"}, SetGender{Value: "Other"}, ToggleConcern{Value: "Wrinkles"})
	if q.Form.Gender != "" || len(q.Form.Concerns) != 0 {
		t.Fatalf("unknown answers should be ignored, got %+v", q.Form)
	}
}

func TestToggleDetail(t *testing.T) {
	s := run(Initial(), Start{}, ImageCaptured{DataURI: "img"}, SetGender{Value: "Male"}, ToggleConcern{Value: "Oily"}, Submit{},
		AnalysisSucceeded{Result: sampleResult()})

	s = Transition(s, ToggleDetail{Key: "m1"})
	if s.Expanded != "m1" {
		t.Fatalf("expected m1 expanded, got %q", s.Expanded)
	}
	s = Transition(s, ToggleDetail{Key: "e1"})
	if s.Expanded != "e1" {
		t.Fatalf("expected single expanded key e1, got %q", s.Expanded)
	}
	s = Transition(s, ToggleDetail{Key: "e1"})
	if s.Expanded != "" {
		t.Fatalf("expected collapse, got %q", s.Expanded)
	}
	if got := Transition(s, ToggleDetail{Key: "e9"}); got.Expanded != "" {
		t.Fatalf("unknown key should be ignored, got %q", got.Expanded)
	}

	s = Transition(s, ToggleDetail{Key: "m2"})
	if got := Transition(s, Reset{}); got.Expanded != "" {
		t.Fatal("leaving results should collapse details")
	}
}

func TestDetailKey(t *testing.T) {
	if DetailKey(false, 3) != "m3" || DetailKey(true, 1) != "e1" {
		t.Fatal("unexpected detail keys")
	}
}
