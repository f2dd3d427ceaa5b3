// Package render draws session views and SEDs as PNG images and
// interactive HTML charts.
package render

import (
	"errors"
	"fmt"

	"github.com/banshee-data/agnite/internal/session"
	"github.com/banshee-data/agnite/internal/spectrum"
)

// ErrEmptySpectrum is returned when a view has no plottable samples.
var ErrEmptySpectrum = errors.New("spectrum has no plottable samples")

// ErrTooFewPoints is returned when an SED has fewer than two distinct
// frequencies.
var ErrTooFewPoints = errors.New("sed needs at least two points")

const (
	DefaultWidthIn  = 10.0
	DefaultHeightIn = 5.0
)

// Options controls output size and chart assets.
type Options struct {
	// WidthIn and HeightIn size PNG output in inches at 96 dpi.
	WidthIn  float64
	HeightIn float64
	// AssetsHost overrides where HTML charts load echarts from.
	AssetsHost string
	Theme      string
}

func (o Options) withDefaults() Options {
	if o.WidthIn <= 0 {
		o.WidthIn = DefaultWidthIn
	}
	if o.HeightIn <= 0 {
		o.HeightIn = DefaultHeightIn
	}
	return o
}

func (o Options) pixels() (w, h int) {
	o = o.withDefaults()
	return int(o.WidthIn * 96), int(o.HeightIn * 96)
}

// spectrumTitle depends only on the archetype so renders can be cached per
// archetype.
func spectrumTitle(v session.View) (title, subtitle string) {
	c := v.Classification
	return c.Name, fmt.Sprintf("%s, BASS DR1 %s", c.ObjectName, c.DatasetKey)
}

// yLimits pads the robust flux range; the top margin leaves room for line
// labels.
func yLimits(sum spectrum.Summary) (lo, hi, labelY float64) {
	lo, hi = sum.FluxLow, sum.FluxHigh
	if !(hi > lo) {
		lo, hi = sum.MinFlux-1, sum.MaxFlux+1
	}
	span := hi - lo
	return lo - 0.05*span, hi + 0.15*span, hi + 0.08*span
}

func checkView(v session.View) (spectrum.Summary, error) {
	if v.Spectrum == nil || v.Spectrum.Len() == 0 {
		return spectrum.Summary{}, ErrEmptySpectrum
	}
	sum := spectrum.Summarize(v.Spectrum)
	if sum.MaxWavelength <= sum.MinWavelength {
		return sum, ErrEmptySpectrum
	}
	return sum, nil
}
