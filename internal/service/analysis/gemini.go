package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultGeminiModel is used when no model override is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// Gemini implements Model using the Google Generative AI SDK. A client is created per call.
type Gemini struct {
	apiKey  string
	model   string
	timeout time.Duration
	opts    []option.ClientOption
}

// NewGemini creates a Gemini model. An empty model selects DefaultGeminiModel.
// timeout bounds each Generate call; zero leaves only the caller's deadline.
// Extra client options are appended after the API key.
func NewGemini(apiKey, model string, timeout time.Duration, opts ...option.ClientOption) *Gemini {
	if strings.TrimSpace(model) == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{apiKey: apiKey, model: model, timeout: timeout, opts: opts}
}

func (g *Gemini) Name() string { return "gemini/" + g.model }

// HasCredential reports whether an API key is configured.
func (g *Gemini) HasCredential() bool { return g.apiKey != "" }

func (g *Gemini) Generate(ctx context.Context, img Image, prompt string) (string, error) {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	opts := append([]option.ClientOption{option.WithAPIKey(g.apiKey)}, g.opts...)
	cl, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", UpstreamError(0, "API request failed", fmt.Errorf("creating gemini client: %w", err))
	}
	defer func() { _ = cl.Close() }()

	m := cl.GenerativeModel(g.model)
	m.SetTemperature(Temperature)
	m.SetMaxOutputTokens(MaxOutputTokens)

	resp, err := m.GenerateContent(ctx,
		&genai.Blob{MIMEType: img.MediaType, Data: img.Data},
		genai.Text(prompt),
	)
	if err != nil {
		return "", geminiError(err)
	}
	txt := firstText(resp)
	if txt == "" {
		return "", ResponseShapeError("no text response from model", nil)
	}
	return txt, nil
}

func (g *Gemini) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok && t != "" {
				return string(t)
			}
		}
	}
	return ""
}

// geminiError converts SDK errors into analysis errors with an HTTP status.
func geminiError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return ResponseShapeError("no text response from model", err)
	}
	code, msg := upstreamStatus(err)
	return UpstreamError(code, msg, err)
}

// upstreamStatus extracts an HTTP status and message from REST or gRPC errors. status is 0 when unknown.
func upstreamStatus(err error) (int, string) {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		msg := gerr.Message
		if msg == "" {
			msg = http.StatusText(gerr.Code)
		}
		return gerr.Code, msg
	}
	if ae, ok := apierror.FromError(err); ok {
		if code := ae.HTTPCode(); code > 0 {
			return code, apiErrorMessage(ae)
		}
		if st := ae.GRPCStatus(); st != nil {
			return httpStatusFromCode(st.Code()), apiErrorMessage(ae)
		}
	}
	if st, ok := status.FromError(err); ok && st.Code() != codes.Unknown {
		return httpStatusFromCode(st.Code()), st.Message()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, "request timed out"
	}
	return 0, "API request failed"
}

func apiErrorMessage(ae *apierror.APIError) string {
	if st := ae.GRPCStatus(); st != nil && st.Message() != "" {
		return st.Message()
	}
	if d := ae.Details().ErrorInfo; d != nil && d.GetReason() != "" {
		return d.GetReason()
	}
	return ae.Reason()
}

func httpStatusFromCode(c codes.Code) int {
	switch c {
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists, codes.Aborted:
		return http.StatusConflict
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unimplemented:
		return http.StatusNotImplemented
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

var _ Model = (*Gemini)(nil)
