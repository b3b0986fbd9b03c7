package analysis

import "context"

// Fixed sampling parameters shared by every provider.
const (
	MaxOutputTokens = 3000
	Temperature     = 0.3
)

// Model sends one image and one prompt to a multimodal model and returns its text answer.
type Model interface {
	// Name identifies the provider and model for logs.
	Name() string
	Generate(ctx context.Context, img Image, prompt string) (string, error)
}

// credentialed is implemented by models that need an API key.
type credentialed interface {
	HasCredential() bool
}
