package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/air-quality-predictor/internal/domain"
	"github.com/couchcryptid/air-quality-predictor/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exampleArgs = []string{
	"--co", "2.6", "--benzene", "11.88", "--nox", "166.0", "--no2", "113.0",
	"--temp", "13.6", "--rh", "48.87", "--ah", "0.75",
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"aqctl"}, args...))
	return out.String(), err
}

func genModel(t *testing.T, kind string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	out, err := run(t, "genmodel", "--out", path, "--kind", kind)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+kind+" model")
	return path
}

func TestPredict_TreeEnsembleExample(t *testing.T) {
	path := genModel(t, model.KindTreeEnsemble)

	out, err := run(t, append([]string{"predict", "--model", path}, exampleArgs...)...)
	require.NoError(t, err)
	assert.Equal(t, "Predicted value: 1200.00\nSeverity Level: Medium Severity\n", out)
}

func TestPredict_JSONOutput(t *testing.T) {
	path := genModel(t, model.KindLinear)

	out, err := run(t, append([]string{"predict", "--model", path, "--output", "json"}, exampleArgs...)...)
	require.NoError(t, err)

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "1188.37", resp["display_value"])
	assert.Equal(t, "medium", resp["severity"])
}

func TestPredict_MissingReading(t *testing.T) {
	path := genModel(t, model.KindLinear)

	_, err := run(t, "predict", "--model", path, "--co", "2.6")
	require.Error(t, err)

	var missing *domain.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "benzene", missing.Field)
}

func TestPredict_MissingModel(t *testing.T) {
	_, err := run(t, append([]string{"predict", "--model", filepath.Join(t.TempDir(), "none.json")}, exampleArgs...)...)

	var startup *model.StartupError
	require.True(t, errors.As(err, &startup))
}

func TestGenModel_RefusesOverwrite(t *testing.T) {
	path := genModel(t, model.KindLinear)

	_, err := run(t, "genmodel", "--out", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = run(t, "genmodel", "--out", path, "--kind", model.KindTreeEnsemble, "--force")
	require.NoError(t, err)
}

func TestGenModel_UnknownKind(t *testing.T) {
	_, err := run(t, "genmodel", "--out", filepath.Join(t.TempDir(), "m.json"), "--kind", "svm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown kind "svm"`)
}

func TestInspect(t *testing.T) {
	path := genModel(t, model.KindTreeEnsemble)

	out, err := run(t, "inspect", "--model", path)
	require.NoError(t, err)
	assert.Contains(t, out, "name:     air-quality-sample")
	assert.Contains(t, out, "kind:     tree_ensemble")
	assert.Contains(t, out, "trees:    2")
}
