package wizard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/janisto/skinai/internal/client"
	"github.com/janisto/skinai/internal/imagenorm"
	"github.com/janisto/skinai/internal/skincare"
)

// Analyzer submits one analysis. *client.Client implements it.
type Analyzer interface {
	Analyze(ctx context.Context, image string, form skincare.Questionnaire) (*skincare.AnalysisResult, error)
}

// Session is a line-oriented wizard over a reader and writer.
type Session struct {
	In       io.Reader
	Out      io.Writer
	Analyzer Analyzer
	// LoadImage turns a path into a normalized data URI. Defaults to imagenorm.NormalizeFile.
	LoadImage func(path string) (string, error)
	// WriteFile saves downloads. Defaults to os.WriteFile.
	WriteFile func(name string, data []byte, perm os.FileMode) error

	state State
}

// State returns the current wizard state.
func (s *Session) State() State { return s.state }

// Run reads commands until "quit" or end of input.
func (s *Session) Run(ctx context.Context) error {
	if s.LoadImage == nil {
		s.LoadImage = imagenorm.NormalizeFile
	}
	if s.WriteFile == nil {
		s.WriteFile = os.WriteFile
	}
	s.state = Initial()

	if err := s.render(); err != nil {
		return err
	}
	sc := bufio.NewScanner(s.In)
	for {
		if _, err := io.WriteString(s.Out, "> "); err != nil {
			return err
		}
		if !sc.Scan() {
			return sc.Err()
		}
		quit, err := s.handle(ctx, strings.TrimSpace(sc.Text()))
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (s *Session) render() error {
	return Render(s.Out, s.state)
}

func (s *Session) apply(ev Event) {
	s.state = Transition(s.state, ev)
}

func (s *Session) handle(ctx context.Context, line string) (bool, error) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help":
		return false, s.render()
	case "start":
		s.apply(Start{})
	case "back":
		s.apply(Back{})
	case "photo":
		s.loadPhoto(arg)
	case "retake":
		s.apply(Retake{})
	case "continue":
		s.apply(Continue{})
	case "gender":
		s.apply(SetGender{Value: pick(skincare.Genders, arg)})
	case "concern":
		s.apply(ToggleConcern{Value: pick(skincare.Concerns, arg)})
	case "routine":
		s.apply(SetRoutine{Value: pick(skincare.Routines, arg)})
	case "budget":
		s.apply(SetBudget{Value: pick(skincare.Budgets, arg)})
	case "pref":
		s.apply(TogglePreference{Value: pick(skincare.Preferences, arg)})
	case "submit":
		s.submit(ctx)
	case "detail":
		s.apply(ToggleDetail{Key: strings.ToLower(arg)})
	case "dismiss":
		s.apply(DismissError{})
	case "copy":
		return false, s.copySummary()
	case "download":
		return false, s.download(arg)
	case "reset":
		s.apply(Reset{})
	default:
		_, err := fmt.Fprintf(s.Out, "unknown command %q, type \"help\" to see the screen again\n", cmd)
		return false, err
	}
	return false, s.render()
}

const msgRetakeFirst = `A photo is already set. Type "retake" to replace it or "continue" to keep it`

func (s *Session) loadPhoto(path string) {
	if s.state.Step != StepCamera {
		return
	}
	if s.state.Image != "" {
		s.apply(CaptureFailed{Message: msgRetakeFirst})
		return
	}
	if path == "" {
		s.apply(CaptureFailed{Message: imagenorm.ErrInvalidInput.Error()})
		return
	}
	uri, err := s.LoadImage(path)
	if err != nil {
		s.apply(CaptureFailed{Message: captureMessage(err)})
		return
	}
	s.apply(ImageCaptured{DataURI: uri})
}

func captureMessage(err error) string {
	for _, sentinel := range []error{imagenorm.ErrInvalidInput, imagenorm.ErrDecode, imagenorm.ErrEncode} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "Failed to read image file"
}

func (s *Session) submit(ctx context.Context) {
	before := s.state
	s.apply(Submit{})
	if !s.state.Loading {
		if before.Step == StepQuestions && !before.Form.Ready() {
			s.state.Err = skincare.ErrIncomplete.Error()
		}
		return
	}

	res, err := s.Analyzer.Analyze(ctx, s.state.Image, s.state.Form)
	if err != nil {
		s.apply(AnalysisFailed{Message: failureMessage(err)})
		return
	}
	s.apply(AnalysisSucceeded{Result: res})
}

func failureMessage(err error) string {
	var re *client.RequestError
	switch {
	case errors.As(err, &re):
		return re.Message
	case errors.Is(err, client.ErrValidation):
		return skincare.ErrIncomplete.Error()
	case errors.Is(err, client.ErrInFlight):
		return client.ErrInFlight.Error()
	default:
		return "An error occurred"
	}
}

func (s *Session) copySummary() error {
	if s.state.Result == nil {
		_, err := io.WriteString(s.Out, "nothing to copy yet\n")
		return err
	}
	_, err := io.WriteString(s.Out, Summary(*s.state.Result)+"\n")
	return err
}

func (s *Session) download(path string) error {
	if s.state.Result == nil {
		_, err := io.WriteString(s.Out, "nothing to download yet\n")
		return err
	}
	if path == "" {
		path = TranscriptFileName
	}
	if err := s.WriteFile(path, []byte(Transcript(*s.state.Result)), 0o644); err != nil {
		_, werr := fmt.Fprintf(s.Out, "could not save %s: %v\n", path, err)
		return werr
	}
	_, err := fmt.Fprintf(s.Out, "saved %s\n", path)
	return err
}

// pick resolves a 1-based option number or a case-insensitive option name. Unknown input returns "".
func pick(options []string, arg string) string {
	if n, err := strconv.Atoi(arg); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1]
		}
		return ""
	}
	for _, o := range options {
		if strings.EqualFold(o, arg) {
			return o
		}
	}
	return ""
}
