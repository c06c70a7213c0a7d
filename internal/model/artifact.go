// Package model loads serialized regression models and runs inference on them.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/couchcryptid/air-quality-predictor/internal/domain"
)

// Artifact kinds.
const (
	KindLinear       = "linear"
	KindTreeEnsemble = "tree_ensemble"
)

// Artifact is the on-disk JSON form of a trained model.
type Artifact struct {
	Name     string        `json:"name"`
	Version  string        `json:"version"`
	Kind     string        `json:"kind"`
	Features []string      `json:"features"`
	Linear   *LinearParams `json:"linear,omitempty"`
	Trees    *TreeParams   `json:"trees,omitempty"`
}

// StartupError reports a model artifact that could not be loaded. The process
// must not serve traffic after one.
type StartupError struct {
	Path string
	Err  error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("load model artifact %s: %v", e.Path, e.Err)
}

func (e *StartupError) Unwrap() error { return e.Err }

// Load reads, validates and compiles the artifact at path.
func Load(path string) (domain.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StartupError{Path: path, Err: err}
	}
	m, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &StartupError{Path: path, Err: err}
	}
	return m, nil
}

// Decode parses an artifact from r and compiles it into a model.
func Decode(r io.Reader) (domain.Model, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var a Artifact
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return Compile(a)
}

// Compile validates a and builds the matching model.
func Compile(a Artifact) (domain.Model, error) {
	if err := checkFeatures(a.Features); err != nil {
		return nil, err
	}
	info := domain.ModelInfo{Name: a.Name, Version: a.Version, Kind: a.Kind}

	switch a.Kind {
	case KindLinear:
		if a.Linear == nil {
			return nil, errors.New(`kind "linear" requires a "linear" section`)
		}
		return newLinear(info, *a.Linear)
	case KindTreeEnsemble:
		if a.Trees == nil {
			return nil, errors.New(`kind "tree_ensemble" requires a "trees" section`)
		}
		return newTreeEnsemble(info, *a.Trees)
	case "":
		return nil, errors.New("artifact kind is required")
	default:
		return nil, fmt.Errorf("unsupported artifact kind %q", a.Kind)
	}
}

// Write encodes a as indented JSON.
func Write(w io.Writer, a Artifact) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}

// checkFeatures requires the artifact's feature list to match the input
// schema exactly, so positional inputs line up with training columns.
func checkFeatures(features []string) error {
	if len(features) != domain.NumFeatures {
		return fmt.Errorf("artifact declares %d features, want %d", len(features), domain.NumFeatures)
	}
	for i, name := range domain.FeatureNames {
		if features[i] != name {
			return fmt.Errorf("feature %d is %q, want %q", i, features[i], name)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
