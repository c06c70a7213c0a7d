package domain

import (
	"math"
	"strconv"
	"strings"
)

// NumFeatures is the length of the model input vector.
const NumFeatures = 7

// FeatureNames lists the form field names in model input order.
var FeatureNames = [NumFeatures]string{"co", "benzene", "nox", "no2", "temp", "rh", "ah"}

// Features is the positional model input. Index i holds the reading named
// FeatureNames[i].
type Features [NumFeatures]float64

// FieldSource looks up a raw field value by name. The boolean reports whether
// the field was present at all.
type FieldSource interface {
	Lookup(name string) (string, bool)
}

// FieldMap adapts a plain string map to FieldSource.
type FieldMap map[string]string

// Lookup implements FieldSource.
func (m FieldMap) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// ParseFeatures reads all seven fields from src in schema order. A missing
// field yields *MissingFieldError; a value that is not a finite decimal
// yields *ParseError. The first failing field in schema order is reported.
func ParseFeatures(src FieldSource) (Features, error) {
	var f Features
	for i, name := range FeatureNames {
		raw, ok := src.Lookup(name)
		if !ok {
			return Features{}, &MissingFieldError{Field: name}
		}
		v, err := parseReading(raw)
		if err != nil {
			return Features{}, &ParseError{Field: name, Value: raw, Err: err}
		}
		f[i] = v
	}
	return f, nil
}

// parseReading parses a decimal reading, tolerating surrounding whitespace.
func parseReading(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errEmptyValue
	}
	if isHexLiteral(s) {
		return 0, errNotDecimal
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}

// isHexLiteral reports whether s carries a 0x prefix after an optional sign.
// ParseFloat accepts hex floats; readings are decimal only.
func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// Named returns the readings keyed by field name.
func (f Features) Named() map[string]float64 {
	m := make(map[string]float64, NumFeatures)
	for i, name := range FeatureNames {
		m[name] = f[i]
	}
	return m
}

// Slice returns a copy of the vector as a slice.
func (f Features) Slice() []float64 {
	out := make([]float64, NumFeatures)
	copy(out, f[:])
	return out
}
