package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFields() FieldMap {
	return FieldMap{
		"co":      "2.6",
		"benzene": "11.88",
		"nox":     "166.0",
		"no2":     "113.0",
		"temp":    "13.6",
		"rh":      "48.87",
		"ah":      "0.75",
	}
}

func TestParseFeatures(t *testing.T) {
	t.Run("schema order", func(t *testing.T) {
		f, err := ParseFeatures(sampleFields())
		require.NoError(t, err)

		want := Features{2.6, 11.88, 166.0, 113.0, 13.6, 48.87, 0.75}
		if diff := cmp.Diff(want, f); diff != "" {
			t.Errorf("features mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("key order does not change vector", func(t *testing.T) {
		a := FieldMap{"co": "1", "benzene": "2", "nox": "3", "no2": "4", "temp": "5", "rh": "6", "ah": "7"}
		b := FieldMap{"ah": "7", "rh": "6", "benzene": "2", "temp": "5", "co": "1", "no2": "4", "nox": "3"}

		fa, err := ParseFeatures(a)
		require.NoError(t, err)
		fb, err := ParseFeatures(b)
		require.NoError(t, err)

		assert.Equal(t, Features{1, 2, 3, 4, 5, 6, 7}, fa)
		assert.Equal(t, fa, fb)
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		fields := sampleFields()
		fields["temp"] = "  -3.5\t"
		f, err := ParseFeatures(fields)
		require.NoError(t, err)
		assert.Equal(t, -3.5, f[4])
	})

	t.Run("negative and exponent values pass through", func(t *testing.T) {
		fields := sampleFields()
		fields["co"] = "-200"
		fields["nox"] = "1.5e2"
		f, err := ParseFeatures(fields)
		require.NoError(t, err)
		assert.Equal(t, -200.0, f[0])
		assert.Equal(t, 150.0, f[2])
	})

	t.Run("extra fields ignored", func(t *testing.T) {
		fields := sampleFields()
		fields["pm25"] = "12"
		_, err := ParseFeatures(fields)
		require.NoError(t, err)
	})
}

func TestParseFeatures_MissingField(t *testing.T) {
	for _, name := range FeatureNames {
		t.Run(name, func(t *testing.T) {
			fields := sampleFields()
			delete(fields, name)

			_, err := ParseFeatures(fields)
			require.Error(t, err)

			var missing *MissingFieldError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, name, missing.Field)
			assert.True(t, IsClientError(err))
			assert.Equal(t, "missing_field", ErrorKind(err))
			assert.Equal(t, name, ErrorField(err))
		})
	}
}

func TestParseFeatures_FirstMissingFieldReported(t *testing.T) {
	_, err := ParseFeatures(FieldMap{"co": "1"})

	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "benzene", missing.Field)
}

func TestParseFeatures_ParseError(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"letters", "abc"},
		{"empty", ""},
		{"blank", "   "},
		{"nan", "NaN"},
		{"inf", "Inf"},
		{"negative inf", "-infinity"},
		{"trailing garbage", "1.2.3"},
		{"comma decimal", "2,6"},
		{"hex float", "0x1p4"},
		{"hex with underscore", "0x_1p-2"},
		{"upper hex", "0X1.8P1"},
		{"signed hex", "-0x10"},
		{"underscore separator", "1_000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := sampleFields()
			fields["no2"] = tt.value

			_, err := ParseFeatures(fields)
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, "no2", parseErr.Field)
			assert.Equal(t, tt.value, parseErr.Value)
			assert.Contains(t, err.Error(), `"no2"`)
			assert.True(t, IsClientError(err))
			assert.Equal(t, "parse", ErrorKind(err))
		})
	}
}

func TestFeatures_Named(t *testing.T) {
	f := Features{1, 2, 3, 4, 5, 6, 7}
	named := f.Named()

	assert.Len(t, named, NumFeatures)
	assert.Equal(t, 1.0, named["co"])
	assert.Equal(t, 7.0, named["ah"])
}

func TestFeatures_SliceIsCopy(t *testing.T) {
	f := Features{1, 2, 3, 4, 5, 6, 7}
	s := f.Slice()
	s[0] = 99

	assert.Equal(t, 1.0, f[0])
}
