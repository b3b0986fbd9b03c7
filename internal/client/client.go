// Package client is the request bridge between the wizard and the analysis API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/fxamacker/cbor/v2"

	"github.com/janisto/skinai/internal/skincare"
)

const (
	defaultBaseURL    = "http://localhost:8080"
	analyzePath       = "/api/analyze"
	fallbackMessage   = "Failed to analyze skin"
	contentTypeJSON   = "application/json"
	contentTypeCBOR   = "application/cbor"
	maxErrorBodyBytes = 64 << 10
)

var (
	// ErrValidation is returned without any network call when the request is incomplete.
	ErrValidation = errors.New("request is incomplete")
	// ErrInFlight is returned when Analyze is called while another call is outstanding.
	ErrInFlight = errors.New("an analysis is already in progress")
)

// ErrorClass separates caller mistakes from server failures.
type ErrorClass string

const (
	ClassClient ErrorClass = "client"
	ClassServer ErrorClass = "server"
)

// RequestError is a non-2xx answer from the API.
type RequestError struct {
	Status  int
	Class   ErrorClass
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// Client calls POST /api/analyze. At most one call runs at a time.
type Client struct {
	httpClient *http.Client
	baseURL    string
	useCBOR    bool
	busy       atomic.Bool
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithCBOR sends the request as CBOR and asks for a CBOR response.
func WithCBOR(enabled bool) Option {
	return func(c *Client) {
		c.useCBOR = enabled
	}
}

// New creates a Client. No timeout is applied beyond the one configured on httpClient.
func New(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{httpClient: httpClient, baseURL: defaultBaseURL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Analyze submits the image and questionnaire and returns the generated routine.
func (c *Client) Analyze(ctx context.Context, image string, form skincare.Questionnaire) (*skincare.AnalysisResult, error) {
	if image == "" {
		return nil, fmt.Errorf("%w: image is required", ErrValidation)
	}
	if !form.Ready() {
		return nil, fmt.Errorf("%w: %s", ErrValidation, skincare.ErrIncomplete.Error())
	}
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer c.busy.Store(false)

	body, err := c.marshal(skincare.AnalysisRequest{Image: image, FormData: form})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	resp, err := c.doRequest(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("calling analysis API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.requestError(resp)
	}

	var result skincare.AnalysisResult
	if err := c.decode(resp, &result); err != nil {
		return nil, fmt.Errorf("decoding analysis result: %w", err)
	}
	return &result, nil
}

func (c *Client) doRequest(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	ct := contentTypeJSON
	if c.useCBOR {
		ct = contentTypeCBOR
	}
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Accept", ct)
	return c.httpClient.Do(req)
}

func (c *Client) marshal(v any) ([]byte, error) {
	if c.useCBOR {
		return cbor.Marshal(v)
	}
	return json.Marshal(v)
}

func (c *Client) decode(resp *http.Response, v any) error {
	if isCBOR(resp) {
		return cbor.NewDecoder(resp.Body).Decode(v)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func (c *Client) requestError(resp *http.Response) *RequestError {
	class := ClassServer
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		class = ClassClient
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	var body struct {
		Error string `json:"error"`
	}
	var err error
	if isCBOR(resp) {
		err = cbor.Unmarshal(raw, &body)
	} else {
		err = json.Unmarshal(raw, &body)
	}
	msg := body.Error
	if err != nil || strings.TrimSpace(msg) == "" {
		msg = fallbackMessage
	}
	return &RequestError{Status: resp.StatusCode, Class: class, Message: msg}
}

func isCBOR(resp *http.Response) bool {
	return strings.HasPrefix(resp.Header.Get("Content-Type"), contentTypeCBOR)
}
