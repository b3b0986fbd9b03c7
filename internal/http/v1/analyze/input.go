package analyze

import "github.com/janisto/skinai/internal/skincare"

// AnalyzeInput is the request of POST /api/analyze.
type AnalyzeInput struct {
	Body skincare.AnalysisRequest
}
