// Package photometry fetches broadband photometry for an example object and
// turns it into a spectral energy distribution.
package photometry

import (
	"context"
	"math"
	"sort"
)

// SpeedOfLight in Angstrom per second, used to convert frequency to wavelength.
const SpeedOfLight = 2.99792458e18

// Point is one photometric measurement.
type Point struct {
	Frequency   float64 `json:"frequency"`    // Hz
	FluxDensity float64 `json:"flux_density"` // Jy
}

// Wavelength returns the wavelength of p in Angstrom, or 0 for a
// non-positive frequency.
func (p Point) Wavelength() float64 {
	if p.Frequency <= 0 {
		return 0
	}
	return SpeedOfLight / p.Frequency
}

// Request names the object whose photometry is wanted.
type Request struct {
	ObjectName string `json:"object_name"`
}

// Service retrieves photometry. The retrieval protocol is up to the
// implementation; Client is the HTTP one.
type Service interface {
	Photometry(ctx context.Context, req Request) ([]Point, error)
}

// ServiceFunc adapts a function to Service.
type ServiceFunc func(ctx context.Context, req Request) ([]Point, error)

// Photometry calls f.
func (f ServiceFunc) Photometry(ctx context.Context, req Request) ([]Point, error) {
	return f(ctx, req)
}

// SED is a renderable series: finite positive points sorted by frequency.
type SED struct {
	ObjectName string  `json:"object_name"`
	Points     []Point `json:"points"`
}

// Merge builds an SED from one or more batches of points. Points with a
// non-positive or non-finite frequency, or a non-finite flux, are dropped.
// Duplicate frequencies keep the first measurement seen.
func Merge(object string, batches ...[]Point) SED {
	seen := make(map[float64]bool)
	var pts []Point
	for _, batch := range batches {
		for _, p := range batch {
			if !(p.Frequency > 0) || math.IsInf(p.Frequency, 0) {
				continue
			}
			if math.IsNaN(p.FluxDensity) || math.IsInf(p.FluxDensity, 0) {
				continue
			}
			if seen[p.Frequency] {
				continue
			}
			seen[p.Frequency] = true
			pts = append(pts, p)
		}
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Frequency < pts[j].Frequency })
	return SED{ObjectName: object, Points: pts}
}

// Len returns the number of points.
func (s SED) Len() int { return len(s.Points) }

// Frequencies returns the frequency column.
func (s SED) Frequencies() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Frequency
	}
	return out
}

// FluxDensities returns the flux density column.
func (s SED) FluxDensities() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.FluxDensity
	}
	return out
}

// Wavelengths returns c/nu for every point, in Angstrom. The result is
// descending because the points are sorted by ascending frequency.
func (s SED) Wavelengths() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Wavelength()
	}
	return out
}
