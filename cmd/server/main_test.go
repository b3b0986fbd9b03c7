package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/janisto/skinai/internal/http/health"
	"github.com/janisto/skinai/internal/platform/config"
	"github.com/janisto/skinai/internal/platform/respond"
	"github.com/janisto/skinai/internal/service/analysis"
	"github.com/janisto/skinai/internal/skincare"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.FromLookup(func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func testServer(t *testing.T, model analysis.Model) http.Handler {
	t.Helper()
	return newRouter(testConfig(t), analysis.NewAnalyzer(model))
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) respond.ErrorBody {
	t.Helper()
	var body respond.ErrorBody
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal error body %q: %v", resp.Body.String(), err)
	}
	return body
}

func TestHealth(t *testing.T) {
	srv := testServer(t, &analysis.MockModel{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "test-health-req")
	req.Header.Set("Accept", "application/json")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 got %d", resp.Code)
	}
	var data health.Data
	if err := json.Unmarshal(resp.Body.Bytes(), &data); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if data.Status != "healthy" || data.Provider != config.ProviderAnthropic {
		t.Fatalf("unexpected health payload %+v", data)
	}
	if resp.Header().Get("Cache-Control") != "no-store" {
		t.Fatal("expected security headers on API responses")
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	model := &analysis.MockModel{Text: analysis.SampleResponse}
	srv := testServer(t, model)

	body, _ := json.Marshal(skincare.AnalysisRequest{
		Image:    "data:image/png;base64,aGVsbG8=",
		FormData: skincare.Questionnaire{Gender: "Female", Concerns: []string{"Dryness"}, CurrentRoutine: skincare.RoutineNone},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var result skincare.AnalysisResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal result: %v", err)
	}
	if len(result.Morning) == 0 || result.BeginnerGuide == nil {
		t.Fatalf("unexpected result %+v", result)
	}
	if model.Calls() != 1 {
		t.Fatalf("expected one model call, got %d", model.Calls())
	}
}

func TestAnalyzeMissingKeyReturns500(t *testing.T) {
	srv := testServer(t, &analysis.MockModel{NoCredential: true})

	body := `{"image":"data:image/png;base64,aGVsbG8=","formData":{"gender":"Male","concerns":["Oily"]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
	if got := decodeError(t, resp).Message; got != "Server configuration error: API key not set" {
		t.Fatalf("unexpected error %q", got)
	}
}

func TestNotFoundReturnsErrorBody(t *testing.T) {
	srv := testServer(t, &analysis.MockModel{})
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "test-404-req")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if got := decodeError(t, resp).Message; got != "resource not found" {
		t.Fatalf("unexpected error: %s", got)
	}
}

func TestMethodNotAllowedReturnsErrorBody(t *testing.T) {
	srv := testServer(t, &analysis.MockModel{})
	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "test-405-req")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", resp.Code)
	}
	if allow := resp.Header().Get("Allow"); !strings.Contains(allow, http.MethodPost) {
		t.Fatalf("expected Allow header to list POST, got %q", allow)
	}
	if got := decodeError(t, resp).Message; got != "method not allowed" {
		t.Fatalf("unexpected error: %s", got)
	}
}

func TestRequestSizeLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxBodyBytes = 128
	srv := newRouter(cfg, analysis.NewAnalyzer(&analysis.MockModel{Text: analysis.SampleResponse}))

	body := `{"image":"data:image/png;base64,` + strings.Repeat("A", 512) + `","formData":{"gender":"Male","concerns":["Oily"]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 got %d", resp.Code)
	}
}

func TestWildcardAcceptReturnsJSON(t *testing.T) {
	srv := testServer(t, &analysis.MockModel{})
	tests := []struct {
		name   string
		accept string
	}{
		{"wildcard all", "*/*"},
		{"application wildcard", "application/*"},
		{"unsupported type", "text/plain"},
		{"no accept header", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			resp := httptest.NewRecorder()
			srv.ServeHTTP(resp, req)

			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", resp.Code)
			}
			if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("expected application/json, got %q", ct)
			}
		})
	}
}

func TestCBORAcceptHeader(t *testing.T) {
	srv := testServer(t, &analysis.MockModel{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Accept", "application/cbor")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/cbor" {
		t.Fatalf("expected application/cbor content type, got %q", ct)
	}
}

func TestOpenAPICBORContentTypes(t *testing.T) {
	api := humachi.New(chi.NewRouter(), huma.DefaultConfig("Test API", "1.0.0"))
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation, addCBORContent)

	type TestInput struct {
		Body struct {
			Name string `json:"name"`
		}
	}
	type TestOutput struct {
		Body struct {
			Message string `json:"message"`
		}
	}
	huma.Post(api, "/test", func(_ context.Context, input *TestInput) (*TestOutput, error) {
		out := &TestOutput{}
		out.Body.Message = "Hello, " + input.Body.Name
		return out, nil
	})
	huma.Get(api, "/no-body", func(_ context.Context, _ *struct{}) (*struct{}, error) {
		return nil, nil
	})

	op := api.OpenAPI().Paths["/test"].Post
	if _, ok := op.RequestBody.Content["application/cbor"]; !ok {
		t.Fatal("expected application/cbor in request body content")
	}
	if _, ok := op.Responses["200"].Content["application/cbor"]; !ok {
		t.Fatal("expected application/cbor in 200 response content")
	}
	if api.OpenAPI().Paths["/no-body"].Get.RequestBody != nil {
		t.Fatal("expected no request body for GET")
	}
}

func TestNewModelSelectsProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.AnthropicAPIKey = "sk-test"
	if got := newModel(cfg).Name(); got != "anthropic/"+analysis.DefaultAnthropicModel {
		t.Fatalf("unexpected model %q", got)
	}

	cfg.Provider = config.ProviderGemini
	cfg.ModelID = "gemini-2.5-pro"
	if got := newModel(cfg).Name(); got != "gemini/gemini-2.5-pro" {
		t.Fatalf("unexpected model %q", got)
	}
}

func TestServerShutdownOnSignal(t *testing.T) {
	srv := &http.Server{
		Addr:              ":0", // random available port
		Handler:           testServer(t, &analysis.MockModel{}),
		ReadHeaderTimeout: time.Second,
	}

	listenErr := make(chan error, 1)
	started := make(chan struct{})

	go func() {
		ln, err := net.Listen("tcp", srv.Addr)
		if err != nil {
			listenErr <- err
			return
		}
		close(started)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case <-started:
	case err := <-listenErr:
		t.Fatalf("server failed to start: %v", err)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for server to start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}

	select {
	case err := <-listenErr:
		t.Fatalf("unexpected listen error after shutdown: %v", err)
	default:
	}
}

func TestVersionVariable(t *testing.T) {
	if Version != "dev" {
		t.Errorf("expected default Version 'dev', got %q", Version)
	}
}
