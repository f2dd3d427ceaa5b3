package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/agnite/internal/lines"
	"github.com/banshee-data/agnite/internal/photometry"
	"github.com/banshee-data/agnite/internal/session"
)

// SpectrumHTML renders the view as a zoomable echarts page. Emission lines
// are dashed mark lines; their labels are two invisible scatter series so
// each side gets its own label position.
func SpectrumHTML(v session.View, o Options) ([]byte, error) {
	sum, err := checkView(v)
	if err != nil {
		return nil, err
	}
	ylo, yhi, labelY := yLimits(sum)
	title, subtitle := spectrumTitle(v)
	w, h := o.pixels()

	w0, f0 := v.Spectrum.Wavelength(), v.Spectrum.Flux()
	data := make([]opts.LineData, len(w0))
	for i := range w0 {
		// echarts reads "-" as a gap.
		var y interface{} = f0[i]
		if math.IsNaN(f0[i]) || math.IsInf(f0[i], 0) {
			y = "-"
		}
		data[i] = opts.LineData{Value: []interface{}{w0[i], y}}
	}

	anns := lines.InRange(v.Annotations, sum.MinWavelength, sum.MaxWavelength)
	marks := make([]opts.MarkLineNameXAxisItem, len(anns))
	var left, right []opts.ScatterData
	for i, a := range anns {
		marks[i] = opts.MarkLineNameXAxisItem{Name: a.Label, XAxis: a.Position}
		pt := opts.ScatterData{Name: a.Label, Value: []interface{}{a.Position, labelY}, SymbolSize: 1}
		if a.Side == lines.Right {
			right = append(right, pt)
		} else {
			left = append(left, pt)
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:  title,
			Theme:      o.Theme,
			Width:      fmt.Sprintf("%dpx", w),
			Height:     fmt.Sprintf("%dpx", h),
			AssetsHost: o.AssetsHost,
		}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Rest wavelength (Å)", NameLocation: "middle", NameGap: 25, Min: sum.MinWavelength, Max: sum.MaxWavelength}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Flux density", NameLocation: "middle", NameGap: 40, Min: ylo, Max: yhi}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}),
	)
	line.AddSeries("spectrum", data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithMarkLineNameXAxisItemOpts(marks...),
		charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
			Symbol:    []string{"none", "none"},
			Label:     &opts.Label{Show: opts.Bool(false)},
			LineStyle: &opts.LineStyle{Type: "dashed", Width: 1, Color: "#9ca3af"},
		}),
	)

	labels := charts.NewScatter()
	if len(left) > 0 {
		labels.AddSeries("lines (left)", left,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "left", Formatter: "{b}"}))
	}
	if len(right) > 0 {
		labels.AddSeries("lines (right)", right,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "right", Formatter: "{b}"}))
	}
	line.Overlap(labels)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return nil, fmt.Errorf("spectrum html: %w", err)
	}
	return buf.Bytes(), nil
}

// SEDHTML renders the SED on log-log axes.
func SEDHTML(sed photometry.SED, o Options) ([]byte, error) {
	pts := positivePoints(sed)
	if len(pts) < 2 {
		return nil, ErrTooFewPoints
	}
	w, h := o.pixels()

	data := make([]opts.ScatterData, len(pts))
	for i, p := range pts {
		data[i] = opts.ScatterData{Value: []interface{}{p.Frequency, p.FluxDensity}}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:  "SED " + sed.ObjectName,
			Theme:      o.Theme,
			Width:      fmt.Sprintf("%dpx", w),
			Height:     fmt.Sprintf("%dpx", h),
			AssetsHost: o.AssetsHost,
		}),
		charts.WithTitleOpts(opts.Title{Title: "Spectral energy distribution", Subtitle: fmt.Sprintf("%s, %d points", sed.ObjectName, len(pts))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "log", Name: "Frequency (Hz)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "log", Name: "Flux density (Jy)", NameLocation: "middle", NameGap: 40}),
	)
	scatter.AddSeries("photometry", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		return nil, fmt.Errorf("sed html: %w", err)
	}
	return buf.Bytes(), nil
}

// positivePoints keeps the points a log-log plot can show.
func positivePoints(sed photometry.SED) []photometry.Point {
	out := make([]photometry.Point, 0, len(sed.Points))
	for _, p := range sed.Points {
		if p.Frequency > 0 && p.FluxDensity > 0 {
			out = append(out, p)
		}
	}
	return out
}
