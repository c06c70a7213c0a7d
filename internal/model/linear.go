package model

import (
	"fmt"

	"github.com/couchcryptid/air-quality-predictor/internal/domain"
)

// LinearParams holds an ordinary least squares fit. Coefficients follow the
// feature schema order.
type LinearParams struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// Linear is a compiled linear regression model.
type Linear struct {
	info      domain.ModelInfo
	intercept float64
	coef      domain.Features
}

func newLinear(info domain.ModelInfo, p LinearParams) (*Linear, error) {
	if len(p.Coefficients) != domain.NumFeatures {
		return nil, fmt.Errorf("linear model has %d coefficients, want %d", len(p.Coefficients), domain.NumFeatures)
	}
	if !finite(p.Intercept) {
		return nil, fmt.Errorf("linear intercept is not finite")
	}
	l := &Linear{info: info, intercept: p.Intercept}
	for i, c := range p.Coefficients {
		if !finite(c) {
			return nil, fmt.Errorf("coefficient for %q is not finite", domain.FeatureNames[i])
		}
		l.coef[i] = c
	}
	return l, nil
}

// Predict returns intercept + coef . features.
func (l *Linear) Predict(f domain.Features) (float64, error) {
	y := l.intercept
	for i, x := range f {
		y += l.coef[i] * x
	}
	return y, nil
}

func (l *Linear) Info() domain.ModelInfo { return l.info }
