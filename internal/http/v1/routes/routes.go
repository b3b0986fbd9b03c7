package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/skinai/internal/http/health"
	"github.com/janisto/skinai/internal/http/v1/analyze"
	"github.com/janisto/skinai/internal/service/analysis"
)

// Deps are the services and limits the routes need.
type Deps struct {
	Analysis     analysis.Service
	Provider     string
	MaxBodyBytes int64
}

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, deps Deps) {
	health.Register(api, deps.Provider)
	analyze.Register(api, deps.Analysis, deps.MaxBodyBytes)
}
