package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  Severity
	}{
		{"zero", 0, SeverityLow},
		{"negative", -50, SeverityLow},
		{"just below low cutoff", 1064.394, SeverityLow},
		{"low cutoff inclusive", 1064.395, SeverityLow},
		{"just above low cutoff", math.Nextafter(1064.395, math.Inf(1)), SeverityMedium},
		{"1064.396", 1064.396, SeverityMedium},
		{"mid band", 1200.0, SeverityMedium},
		{"medium cutoff inclusive", 1303.75, SeverityMedium},
		{"just above medium cutoff", math.Nextafter(1303.75, math.Inf(1)), SeverityHigh},
		{"1303.76", 1303.76, SeverityHigh},
		{"very high", 5000, SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySeverity(tt.value))
		})
	}
}

func TestSeverity_Labels(t *testing.T) {
	assert.Equal(t, "Low Severity", SeverityLow.Label())
	assert.Equal(t, "Medium Severity", SeverityMedium.Label())
	assert.Equal(t, "High Severity", SeverityHigh.Label())
	assert.Equal(t, "Unknown", Severity(42).String())
}

func TestSeverity_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Severity{"s": SeverityHigh})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"high"}`, string(data))
}
