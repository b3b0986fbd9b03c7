package analyze

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/janisto/skinai/internal/platform/logging"
	"github.com/janisto/skinai/internal/service/analysis"
	"github.com/janisto/skinai/internal/skincare"
)

// Register wires the analysis routes. maxBodyBytes bounds the request body, which carries a base64 image.
func Register(api huma.API, svc analysis.Service, maxBodyBytes int64) {
	huma.Register(api, huma.Operation{
		OperationID:  "analyze-skin",
		Method:       http.MethodPost,
		Path:         "/api/analyze",
		Summary:      "Analyze a selfie",
		Description:  "Sends the selfie and questionnaire to the configured model and returns a morning and evening routine.",
		Tags:         []string{"Analysis"},
		MaxBodyBytes: maxBodyBytes,
		Errors:       []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, func(ctx context.Context, input *AnalyzeInput) (*AnalyzeOutput, error) {
		result, err := svc.Analyze(ctx, input.Body)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &AnalyzeOutput{Body: *result}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-questionnaire",
		Method:      http.MethodGet,
		Path:        "/api/questionnaire",
		Summary:     "Get questionnaire answers",
		Description: "Returns the accepted values for each questionnaire field.",
		Tags:        []string{"Analysis"},
	}, func(_ context.Context, _ *struct{}) (*QuestionnaireOutput, error) {
		return &QuestionnaireOutput{Body: Vocabulary{
			Genders:     skincare.Genders,
			Concerns:    skincare.Concerns,
			Routines:    skincare.Routines,
			Budgets:     skincare.Budgets,
			BudgetLabel: skincare.BudgetLabels,
			Preferences: skincare.Preferences,
		}}, nil
	})
}

// mapServiceError turns analysis errors into {error} responses. Causes are logged, never returned.
func mapServiceError(ctx context.Context, err error) error {
	var ae *analysis.Error
	if !errors.As(err, &ae) {
		logging.LogError(ctx, "analysis failed", err)
		return huma.Error500InternalServerError("Failed to analyze skin: internal error")
	}

	switch ae.Kind {
	case analysis.KindValidation, analysis.KindImageFormat:
		return huma.Error400BadRequest(ae.Message)
	case analysis.KindConfiguration:
		return huma.Error500InternalServerError(ae.Message)
	case analysis.KindUpstream:
		logging.LogWarn(ctx, "model provider call failed", zap.Error(err), zap.Int("upstream_status", ae.Status))
		status := ae.Status
		if status < 400 || status > 599 {
			status = http.StatusInternalServerError
		}
		return huma.NewError(status, "AI service error: "+ae.Message)
	default:
		logging.LogWarn(ctx, "model response rejected", zap.Error(err), zap.String("kind", string(ae.Kind)))
		return huma.Error500InternalServerError("Failed to analyze skin: " + ae.Message)
	}
}
