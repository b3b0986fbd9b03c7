package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/janisto/skinai/internal/skincare"
)

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	path := filepath.Join(dir, "selfie.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req skincare.AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if !strings.HasPrefix(req.Image, "data:image/jpeg;base64,") {
			t.Errorf("expected normalized jpeg, got %.30s", req.Image)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(skincare.AnalysisResult{
			Analysis:  "Balanced skin.",
			Morning:   []skincare.RoutineStep{{Step: 1, Product: "Gentle Cleanser", Amount: "Pea-sized", HowToUse: "Rinse"}},
			Evening:   []skincare.RoutineStep{{Step: 1, Product: "Night Cream", Amount: "Dime-sized", HowToUse: "Smooth on"}},
			TotalCost: "$30",
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnalyzeCommand(t *testing.T) {
	dir := t.TempDir()
	srv := fakeAPI(t)
	out := &bytes.Buffer{}
	transcript := filepath.Join(dir, "routine.txt")

	err := newApp(strings.NewReader(""), out).Run([]string{
		"skinai", "--server", srv.URL, "analyze",
		"--image", writePNG(t, dir), "--gender", "Male", "--concern", "Oily", "--concern", "Sensitive",
		"--copy", "--download", transcript,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Gentle Cleanser") || !strings.Contains(out.String(), "My Skincare Routine") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	data, err := os.ReadFile(transcript)
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	if !strings.Contains(string(data), "TOTAL INVESTMENT: $30") {
		t.Fatalf("unexpected transcript %q", data)
	}
}

func TestAnalyzeCommandRejectsUnknownConcern(t *testing.T) {
	dir := t.TempDir()
	err := newApp(strings.NewReader(""), &bytes.Buffer{}).Run([]string{
		"skinai", "analyze", "--image", writePNG(t, dir), "--gender", "Male", "--concern", "Wrinkles",
	})
	if err == nil || !strings.Contains(err.Error(), "Wrinkles") {
		t.Fatalf("expected vocabulary error, got %v", err)
	}
}

func TestWizardCommand(t *testing.T) {
	dir := t.TempDir()
	srv := fakeAPI(t)
	out := &bytes.Buffer{}
	script := strings.Join([]string{"start", "photo " + writePNG(t, dir), "gender 1", "concern 1", "submit", "quit"}, "\n")

	if err := newApp(strings.NewReader(script), out).Run([]string{"skinai", "--server", srv.URL, "wizard"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Your Routine") || !strings.Contains(out.String(), "Night Cream") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}
