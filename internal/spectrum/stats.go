package spectrum

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a spectrum's coverage and flux distribution. FluxLow and
// FluxHigh are the 1st and 99th flux percentiles, which renderers use as
// y-axis limits so single-pixel spikes do not flatten the plot.
type Summary struct {
	Samples       int     `json:"samples"`
	MinWavelength float64 `json:"min_wavelength"`
	MaxWavelength float64 `json:"max_wavelength"`
	MinFlux       float64 `json:"min_flux"`
	MaxFlux       float64 `json:"max_flux"`
	MedianFlux    float64 `json:"median_flux"`
	FluxLow       float64 `json:"flux_low"`
	FluxHigh      float64 `json:"flux_high"`
}

// Summarize computes the Summary of s. Non-finite fluxes are ignored. An
// empty spectrum yields a zero Summary.
func Summarize(s *Spectrum) Summary {
	if s == nil || s.Len() == 0 {
		return Summary{}
	}
	sum := Summary{
		Samples:       s.Len(),
		MinWavelength: floats.Min(s.wavelength),
		MaxWavelength: floats.Max(s.wavelength),
	}

	flux := make([]float64, 0, len(s.flux))
	for _, f := range s.flux {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		flux = append(flux, f)
	}
	if len(flux) == 0 {
		return sum
	}
	sort.Float64s(flux)

	sum.MinFlux = flux[0]
	sum.MaxFlux = flux[len(flux)-1]
	sum.MedianFlux = stat.Quantile(0.5, stat.Empirical, flux, nil)
	sum.FluxLow = stat.Quantile(0.01, stat.Empirical, flux, nil)
	sum.FluxHigh = stat.Quantile(0.99, stat.Empirical, flux, nil)
	return sum
}
