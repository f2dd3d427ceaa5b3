package spectrum

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_PreservesPairing(t *testing.T) {
	t.Parallel()

	w, f := Sanitize([]float64{0, 1, 2, 0, 3}, []float64{10, 20, 30, 40, 50})

	if diff := cmp.Diff([]float64{1, 2, 3}, w); diff != "" {
		t.Errorf("wavelength mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{20, 30, 50}, f); diff != "" {
		t.Errorf("flux mismatch (-want +got):\n%s", diff)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		w, f []float64
	}{
		{"mixed", []float64{-2, 0, 3500, 3501, 0, 3503}, []float64{1, 2, 3, 4, 5, 6}},
		{"all invalid", []float64{0, -1, math.NaN()}, []float64{1, 2, 3}},
		{"all valid", []float64{1, 2, 3}, []float64{3, 2, 1}},
		{"empty", nil, nil},
		{"non finite", []float64{math.Inf(1), 4000, math.NaN(), 4001}, []float64{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w1, f1 := Sanitize(tt.w, tt.f)
			w2, f2 := Sanitize(w1, f1)
			assert.Equal(t, w1, w2)
			assert.Equal(t, f1, f2)
			require.Len(t, f1, len(w1))
			for _, wl := range w1 {
				assert.Greater(t, wl, 0.0)
				assert.False(t, math.IsInf(wl, 0))
			}
		})
	}
}

func TestSanitize_DoesNotAliasInput(t *testing.T) {
	t.Parallel()

	in := []float64{1, 2, 3}
	w, _ := Sanitize(in, []float64{4, 5, 6})
	w[0] = 99
	assert.Equal(t, 1.0, in[0])
}

func TestNewSpectrum(t *testing.T) {
	t.Parallel()

	_, err := NewSpectrum("0005", []float64{1, 2}, []float64{1})
	require.Error(t, err)

	s, err := NewSpectrum("0005", []float64{0, 1, 2, 0, 3}, []float64{10, 20, 30, 40, 50})
	require.NoError(t, err)
	assert.Equal(t, "0005", s.Key())
	assert.Equal(t, 3, s.Len())
	wl, fl := s.At(2)
	assert.Equal(t, 3.0, wl)
	assert.Equal(t, 50.0, fl)

	// Accessors hand out copies.
	got := s.Wavelength()
	got[0] = -5
	assert.Equal(t, []float64{1, 2, 3}, s.Wavelength())
	assert.Equal(t, []float64{20, 30, 50}, s.Flux())
}

func TestSpectrum_Equal(t *testing.T) {
	t.Parallel()

	a, _ := NewSpectrum("0002", []float64{1, 2}, []float64{math.NaN(), 2})
	b, _ := NewSpectrum("0002", []float64{1, 2}, []float64{math.NaN(), 2})
	c, _ := NewSpectrum("0002", []float64{1, 2}, []float64{1, 2})
	d, _ := NewSpectrum("0005", []float64{1, 2}, []float64{math.NaN(), 2})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
	assert.True(t, cmp.Equal(a, b), "cmp uses the Equal method")
}

func TestSpectrum_MarshalJSON(t *testing.T) {
	t.Parallel()

	s, err := NewSpectrum("1146", []float64{0, 4000, 4001}, []float64{9, math.NaN(), 1.5})
	require.NoError(t, err)

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var got struct {
		Key        string    `json:"dataset_key"`
		Wavelength []float64 `json:"wavelength"`
		Flux       []float64 `json:"flux"`
	}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "1146", got.Key)
	assert.Equal(t, []float64{4000, 4001}, got.Wavelength)
	assert.Equal(t, []float64{0, 1.5}, got.Flux)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Summary{}, Summarize(nil))

	s, err := NewSpectrum("0005", []float64{3000, 3001, 3002, 3003, 3004}, []float64{5, 1, math.NaN(), 3, 2})
	require.NoError(t, err)

	sum := Summarize(s)
	assert.Equal(t, 5, sum.Samples)
	assert.Equal(t, 3000.0, sum.MinWavelength)
	assert.Equal(t, 3004.0, sum.MaxWavelength)
	assert.Equal(t, 1.0, sum.MinFlux)
	assert.Equal(t, 5.0, sum.MaxFlux)
	assert.Equal(t, 2.0, sum.MedianFlux)
	assert.LessOrEqual(t, sum.FluxLow, sum.MedianFlux)
	assert.GreaterOrEqual(t, sum.FluxHigh, sum.MedianFlux)
}
