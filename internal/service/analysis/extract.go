package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/janisto/skinai/internal/skincare"
)

const msgUnparseable = "could not parse JSON from response"

// ExtractResult locates the JSON object spanning the first '{' to the last '}' of text, decodes it
// and checks that it has the shape of an AnalysisResult. Steps are renumbered from 1 in order.
func ExtractResult(text string) (*skincare.AnalysisResult, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, ResponseShapeError(msgUnparseable, nil)
	}
	span := text[start : end+1]

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		return nil, ResponseShapeError(msgUnparseable, err)
	}
	for _, key := range []string{"analysis", "morning", "evening", "totalCost"} {
		if v, ok := raw[key]; !ok || string(v) == "null" {
			return nil, ResponseShapeError("missing field "+key, nil)
		}
	}

	var result skincare.AnalysisResult
	if err := json.Unmarshal([]byte(span), &result); err != nil {
		return nil, ResponseShapeError("unexpected response shape", err)
	}

	if err := checkSteps("morning", result.Morning); err != nil {
		return nil, err
	}
	if err := checkSteps("evening", result.Evening); err != nil {
		return nil, err
	}
	renumber(result.Morning)
	renumber(result.Evening)
	return &result, nil
}

func checkSteps(routine string, steps []skincare.RoutineStep) error {
	for i, s := range steps {
		if strings.TrimSpace(s.Product) == "" {
			return ResponseShapeError(fmt.Sprintf("%s step %d has no product", routine, i+1), nil)
		}
	}
	return nil
}

func renumber(steps []skincare.RoutineStep) {
	for i := range steps {
		steps[i].Step = i + 1
	}
}
