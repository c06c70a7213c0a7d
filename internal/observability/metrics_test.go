package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewUnregisteredMetrics_Independent(t *testing.T) {
	a := NewUnregisteredMetrics()
	b := NewUnregisteredMetrics()

	a.Predictions.WithLabelValues("low").Inc()
	a.ModelLoaded.Set(1)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.Predictions.WithLabelValues("low")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Predictions.WithLabelValues("low")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ModelLoaded))
}
