package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Data is the payload for the health endpoint.
type Data struct {
	Status   string `json:"status"   example:"healthy"   doc:"Service health"`
	Provider string `json:"provider" example:"anthropic" doc:"Configured model provider"`
}

// Output wraps the health payload.
type Output struct {
	Body Data
}

// Register adds GET /health. provider is reported as configured, without checking credentials.
func Register(api huma.API, provider string) {
	huma.Register(api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Reports that the server is up and which model provider it is configured for.",
		Tags:        []string{"Health"},
	}, func(_ context.Context, _ *struct{}) (*Output, error) {
		return &Output{Body: Data{Status: "healthy", Provider: provider}}, nil
	})
}
