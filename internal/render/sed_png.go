package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/banshee-data/agnite/internal/photometry"
)

// SEDPNG plots log10 flux density against log10 frequency.
func SEDPNG(sed photometry.SED, o Options) ([]byte, error) {
	pts := positivePoints(sed)
	if len(pts) < 2 || pts[0].Frequency == pts[len(pts)-1].Frequency {
		return nil, ErrTooFewPoints
	}
	w, h := o.pixels()

	x := make([]float64, len(pts))
	y := make([]float64, len(pts))
	for i, p := range pts {
		x[i] = math.Log10(p.Frequency)
		y[i] = math.Log10(p.FluxDensity)
	}

	series := chart.ContinuousSeries{
		Name: sed.ObjectName,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 1,
			DotColor:    drawing.ColorFromHex("2563eb"),
			DotWidth:    3,
		},
		XValues: x,
		YValues: y,
	}

	exp := func(v interface{}) string {
		if f, ok := v.(float64); ok {
			return fmt.Sprintf("1e%.1f", f)
		}
		return ""
	}

	graph := chart.Chart{
		Title:  "SED " + sed.ObjectName,
		Width:  w,
		Height: h,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:           "Frequency (Hz)",
			Range:          paddedRange(x),
			ValueFormatter: exp,
		},
		YAxis: chart.YAxis{
			Name:           "Flux density (Jy)",
			Range:          paddedRange(y),
			ValueFormatter: exp,
		},
		Series: []chart.Series{series},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("sed png: %w", err)
	}
	return buf.Bytes(), nil
}

// paddedRange gives go-chart a non-degenerate axis even when all values
// are equal.
func paddedRange(v []float64) *chart.ContinuousRange {
	lo, hi := v[0], v[0]
	for _, x := range v[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	pad := 0.05 * (hi - lo)
	if pad == 0 {
		pad = 0.5
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
