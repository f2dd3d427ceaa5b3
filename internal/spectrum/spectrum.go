// Package spectrum loads, sanitizes and caches the archived optical spectra
// shown for each archetype.
package spectrum

import (
	"encoding/json"
	"fmt"
	"math"
)

// Spectrum is an immutable (wavelength, flux) series. Wavelengths are in
// Angstrom (rest frame) and strictly positive after sanitization.
type Spectrum struct {
	key        string
	wavelength []float64
	flux       []float64
}

// NewSpectrum sanitizes the given columns into a Spectrum. The inputs are
// copied.
func NewSpectrum(key string, wavelength, flux []float64) (*Spectrum, error) {
	if len(wavelength) != len(flux) {
		return nil, fmt.Errorf("column length mismatch: %d wavelengths, %d fluxes", len(wavelength), len(flux))
	}
	w, f := Sanitize(wavelength, flux)
	return &Spectrum{key: key, wavelength: w, flux: f}, nil
}

// Sanitize drops every sample whose wavelength is not a finite positive
// number. Order is kept and flux[i] stays paired with wavelength[i].
// Applying it twice gives the same result as applying it once. It panics
// if the columns differ in length.
func Sanitize(wavelength, flux []float64) ([]float64, []float64) {
	if len(wavelength) != len(flux) {
		panic(fmt.Sprintf("spectrum: sanitize column length mismatch %d != %d", len(wavelength), len(flux)))
	}
	w := make([]float64, 0, len(wavelength))
	f := make([]float64, 0, len(flux))
	for i, wl := range wavelength {
		if !(wl > 0) || math.IsInf(wl, 0) {
			continue
		}
		w = append(w, wl)
		f = append(f, flux[i])
	}
	return w, f
}

// Key returns the dataset key the spectrum was loaded from.
func (s *Spectrum) Key() string { return s.key }

// Len returns the number of samples.
func (s *Spectrum) Len() int { return len(s.wavelength) }

// At returns sample i.
func (s *Spectrum) At(i int) (wavelength, flux float64) {
	return s.wavelength[i], s.flux[i]
}

// Wavelength returns a copy of the wavelength column.
func (s *Spectrum) Wavelength() []float64 {
	out := make([]float64, len(s.wavelength))
	copy(out, s.wavelength)
	return out
}

// Flux returns a copy of the flux column.
func (s *Spectrum) Flux() []float64 {
	out := make([]float64, len(s.flux))
	copy(out, s.flux)
	return out
}

// Equal reports value equality. NaN fluxes compare equal to each other.
func (s *Spectrum) Equal(o *Spectrum) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.key != o.key || len(s.wavelength) != len(o.wavelength) {
		return false
	}
	for i := range s.wavelength {
		if s.wavelength[i] != o.wavelength[i] {
			return false
		}
		a, b := s.flux[i], o.flux[i]
		if a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
			return false
		}
	}
	return true
}

type spectrumJSON struct {
	Key        string    `json:"dataset_key"`
	Wavelength []float64 `json:"wavelength"`
	Flux       []float64 `json:"flux"`
}

// MarshalJSON encodes the spectrum as two parallel arrays. Non-finite flux
// values are written as 0 since JSON has no NaN.
func (s *Spectrum) MarshalJSON() ([]byte, error) {
	flux := make([]float64, len(s.flux))
	for i, f := range s.flux {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		flux[i] = f
	}
	return json.Marshal(spectrumJSON{Key: s.key, Wavelength: s.wavelength, Flux: flux})
}
