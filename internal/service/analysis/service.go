package analysis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/janisto/skinai/internal/platform/logging"
	"github.com/janisto/skinai/internal/skincare"
)

const (
	msgImageRequired = "Image is required"
	msgMissingAPIKey = "Server configuration error: API key not set"
	outcomeSuccess   = "success"
	outcomeFailure   = "failure"
)

// Service defines skin analysis operations.
type Service interface {
	Analyze(ctx context.Context, req skincare.AnalysisRequest) (*skincare.AnalysisResult, error)
}

// Analyzer implements Service with a single Model round trip per request.
type Analyzer struct {
	model Model
	now   func() time.Time
}

// NewAnalyzer creates an Analyzer backed by model.
func NewAnalyzer(model Model) *Analyzer {
	return &Analyzer{model: model, now: time.Now}
}

// Analyze validates the request, then sends the image and rendered prompt to the model and
// extracts the routine from its answer. Validation and credential failures never reach the model.
func (a *Analyzer) Analyze(ctx context.Context, req skincare.AnalysisRequest) (*skincare.AnalysisResult, error) {
	start := a.now()
	result, err := a.analyze(ctx, req)

	provider, model, _ := strings.Cut(a.model.Name(), "/")
	ev := logging.AnalysisEvent{
		Provider: provider,
		Model:    model,
		Outcome:  outcomeSuccess,
		Duration: a.now().Sub(start),
	}
	if err != nil {
		ev.Outcome = outcomeFailure
		ev.ErrorKind = string(KindOf(err))
	} else {
		ev.MorningSteps = len(result.Morning)
		ev.EveningSteps = len(result.Evening)
		ev.BeginnerGuide = result.BeginnerGuide != nil
	}
	logging.LogAnalysisEvent(ctx, ev)
	return result, err
}

func (a *Analyzer) analyze(ctx context.Context, req skincare.AnalysisRequest) (*skincare.AnalysisResult, error) {
	if req.Image == "" {
		return nil, ValidationError(msgImageRequired)
	}
	if err := req.FormData.Validate(); err != nil {
		return nil, ValidationError(err.Error())
	}
	if c, ok := a.model.(credentialed); ok && !c.HasCredential() {
		return nil, ConfigurationError(msgMissingAPIKey)
	}

	img, err := ParseImage(req.Image)
	if err != nil {
		return nil, err
	}

	text, err := a.model.Generate(ctx, img, BuildPrompt(req.FormData))
	if err != nil {
		var ae *Error
		if errors.As(err, &ae) {
			return nil, err
		}
		return nil, UpstreamError(0, "API request failed", err)
	}
	return ExtractResult(text)
}

var _ Service = (*Analyzer)(nil)
