package logging

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// AnalysisEvent summarises one skin analysis for the structured log.
// It never carries image data or model free text.
type AnalysisEvent struct {
	Provider      string
	Model         string
	Outcome       string // "success" or "failure"
	ErrorKind     string
	MorningSteps  int
	EveningSteps  int
	BeginnerGuide bool
	Duration      time.Duration
}

// LogAnalysisEvent records ev at info level, or warning level for failures.
func LogAnalysisEvent(ctx context.Context, ev AnalysisEvent) {
	fields := []zap.Field{
		zap.String("analysis.provider", ev.Provider),
		zap.String("analysis.model", ev.Model),
		zap.String("analysis.outcome", ev.Outcome),
		zap.Duration("analysis.duration", ev.Duration),
	}
	if ev.Outcome == "failure" {
		fields = append(fields, zap.String("analysis.error_kind", ev.ErrorKind))
		LoggerFromContext(ctx).Warn("analysis event", fields...)
		return
	}
	fields = append(fields,
		zap.Int("analysis.morning_steps", ev.MorningSteps),
		zap.Int("analysis.evening_steps", ev.EveningSteps),
		zap.Bool("analysis.beginner_guide", ev.BeginnerGuide),
	)
	LoggerFromContext(ctx).Info("analysis event", fields...)
}
