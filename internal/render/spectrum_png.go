package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/agnite/internal/lines"
	"github.com/banshee-data/agnite/internal/session"
)

var (
	spectrumColor   = color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	annotationColor = color.RGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
)

// SpectrumPNG plots the view's spectrum with a dashed marker and a label for
// every emission line inside the covered wavelength range. Labels sit on the
// side their line asks for.
func SpectrumPNG(v session.View, o Options) ([]byte, error) {
	sum, err := checkView(v)
	if err != nil {
		return nil, err
	}
	o = o.withDefaults()
	ylo, yhi, labelY := yLimits(sum)

	p := plot.New()
	title, subtitle := spectrumTitle(v)
	p.Title.Text = title + "\n" + subtitle
	p.X.Label.Text = "Rest wavelength (Å)"
	p.Y.Label.Text = "Flux density"

	// NaN fluxes split the trace; plotter rejects non-finite points.
	for _, seg := range finiteSegments(v.Spectrum.Wavelength(), v.Spectrum.Flux()) {
		l, err := plotter.NewLine(seg)
		if err != nil {
			return nil, fmt.Errorf("spectrum line: %w", err)
		}
		l.Color = spectrumColor
		l.Width = vg.Points(1)
		p.Add(l)
	}

	anns := lines.InRange(v.Annotations, sum.MinWavelength, sum.MaxWavelength)
	var left, right plotter.XYLabels
	for _, a := range anns {
		marker, err := plotter.NewLine(plotter.XYs{{X: a.Position, Y: ylo}, {X: a.Position, Y: labelY}})
		if err != nil {
			return nil, fmt.Errorf("annotation %s: %w", a.Key, err)
		}
		marker.Color = annotationColor
		marker.Width = vg.Points(0.5)
		marker.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(marker)

		pt := plotter.XY{X: a.Position, Y: labelY}
		if a.Side == lines.Right {
			right.XYs = append(right.XYs, pt)
			right.Labels = append(right.Labels, a.Label)
		} else {
			left.XYs = append(left.XYs, pt)
			left.Labels = append(left.Labels, a.Label)
		}
	}
	if err := addLabels(p, left, draw.XRight, -vg.Points(2)); err != nil {
		return nil, err
	}
	if err := addLabels(p, right, draw.XLeft, vg.Points(2)); err != nil {
		return nil, err
	}

	p.X.Min, p.X.Max = sum.MinWavelength, sum.MaxWavelength
	p.Y.Min, p.Y.Max = ylo, yhi

	wt, err := p.WriterTo(vg.Length(o.WidthIn)*vg.Inch, vg.Length(o.HeightIn)*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("spectrum png: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("spectrum png: %w", err)
	}
	return buf.Bytes(), nil
}

func addLabels(p *plot.Plot, xy plotter.XYLabels, align draw.XAlignment, dx vg.Length) error {
	if len(xy.Labels) == 0 {
		return nil
	}
	labels, err := plotter.NewLabels(xy)
	if err != nil {
		return fmt.Errorf("line labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = align
		labels.TextStyle[i].Font.Size = vg.Points(8)
	}
	labels.Offset = vg.Point{X: dx}
	p.Add(labels)
	return nil
}

// finiteSegments splits paired columns into runs of finite points.
func finiteSegments(w, f []float64) []plotter.XYs {
	var segs []plotter.XYs
	var cur plotter.XYs
	for i := range w {
		if math.IsNaN(f[i]) || math.IsInf(f[i], 0) {
			if len(cur) > 0 {
				segs = append(segs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: w[i], Y: f[i]})
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	return segs
}
