package domain

import (
	"fmt"
	"math"
	"time"
)

// ModelInfo identifies a loaded model artifact.
type ModelInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Kind    string `json:"kind"`
}

// Model is a loaded regression model. Implementations must be safe for
// concurrent use and must not mutate state during Predict.
type Model interface {
	Predict(features Features) (float64, error)
	Info() ModelInfo
}

// Prediction is the outcome of one inference.
type Prediction struct {
	Features    Features
	Value       float64
	Severity    Severity
	PredictedAt time.Time
}

// Infer runs the model once and classifies its output, stamping it with now.
// A model error or a non-finite output yields *ModelInferenceError.
func Infer(m Model, features Features, now time.Time) (Prediction, error) {
	v, err := m.Predict(features)
	if err != nil {
		return Prediction{}, &ModelInferenceError{Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Prediction{}, &ModelInferenceError{Value: v}
	}
	return Prediction{
		Features:    features,
		Value:       v,
		Severity:    ClassifySeverity(v),
		PredictedAt: now.UTC(),
	}, nil
}

// DisplayValue is the value rounded to two decimal places.
func (p Prediction) DisplayValue() string {
	return fmt.Sprintf("%.2f", p.Value)
}

// ValueLine renders the first line of the result, e.g. "Predicted value: 1200.00".
func (p Prediction) ValueLine() string {
	return "Predicted value: " + p.DisplayValue()
}

// SeverityLine renders the second line of the result, e.g. "Severity Level: Medium Severity".
func (p Prediction) SeverityLine() string {
	return "Severity Level: " + p.Severity.Label()
}

// Text is the full plain-text result.
func (p Prediction) Text() string {
	return p.ValueLine() + "\n" + p.SeverityLine()
}

// PredictionEvent is the serialized record of a prediction published downstream.
type PredictionEvent struct {
	ID           string             `json:"id"`
	ModelName    string             `json:"model_name"`
	ModelVersion string             `json:"model_version"`
	Features     map[string]float64 `json:"features"`
	Value        float64            `json:"value"`
	Severity     Severity           `json:"severity"`
	PredictedAt  time.Time          `json:"predicted_at"`
}

// NewPredictionEvent builds the downstream record for p.
func NewPredictionEvent(id string, info ModelInfo, p Prediction) PredictionEvent {
	return PredictionEvent{
		ID:           id,
		ModelName:    info.Name,
		ModelVersion: info.Version,
		Features:     p.Features.Named(),
		Value:        p.Value,
		Severity:     p.Severity,
		PredictedAt:  p.PredictedAt,
	}
}
