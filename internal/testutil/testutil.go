// Package testutil provides shared test helpers and synthetic datasets.
package testutil

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/banshee-data/agnite/internal/agn"
	"github.com/banshee-data/agnite/internal/spectrum"
)

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}


// SyntheticSamples is the sample count of every synthetic spectrum.
const SyntheticSamples = 64

// SyntheticColumns returns a smooth fake optical spectrum from 3500 to 7000
// Angstrom. The first sample has a zero wavelength so every dataset also
// exercises sanitization; seed shifts the continuum level.
func SyntheticColumns(seed int) (wavelength, flux []float64) {
	wavelength = make([]float64, SyntheticSamples)
	flux = make([]float64, SyntheticSamples)
	step := 3500.0 / float64(SyntheticSamples-2)
	for i := 1; i < SyntheticSamples; i++ {
		w := 3500 + step*float64(i-1)
		wavelength[i] = w
		flux[i] = float64(seed+1) + math.Sin(w/300)
	}
	flux[0] = 99
	return wavelength, flux
}

// SyntheticCSV renders SyntheticColumns(seed) as a dataset CSV file.
func SyntheticCSV(seed int) string {
	w, f := SyntheticColumns(seed)
	var b strings.Builder
	fmt.Fprintf(&b, "%s,%s\n", spectrum.ColumnWavelength, spectrum.ColumnFlux)
	for i := range w {
		fmt.Fprintf(&b, "%g,%g\n", w[i], f[i])
	}
	return b.String()
}

// DatasetFS returns an in-memory data directory with a synthetic CSV for
// every archetype in the default table.
func DatasetFS() fstest.MapFS {
	fsys := fstest.MapFS{}
	for i, e := range agn.Default().Entries() {
		fsys[spectrum.FileName(e.DatasetKey)] = &fstest.MapFile{Data: []byte(SyntheticCSV(i))}
	}
	return fsys
}

// NewStore returns a spectrum.Store over DatasetFS.
func NewStore() *spectrum.Store {
	return spectrum.NewStore(spectrum.NewDirSource(DatasetFS()))
}

// CountingLoader wraps a spectrum.Loader and counts Load calls per key. Fail
// makes every subsequent Load return that error without reaching the
// wrapped loader.
type CountingLoader struct {
	Next spectrum.Loader

	mu    sync.Mutex
	calls map[string]int
	total int
	fail  error
}

// NewCountingLoader wraps next.
func NewCountingLoader(next spectrum.Loader) *CountingLoader {
	return &CountingLoader{Next: next, calls: make(map[string]int)}
}

// Load implements spectrum.Loader.
func (c *CountingLoader) Load(key string) (*spectrum.Spectrum, error) {
	c.mu.Lock()
	c.calls[key]++
	c.total++
	fail := c.fail
	c.mu.Unlock()
	if fail != nil {
		return nil, fail
	}
	return c.Next.Load(key)
}

// Fail sets the error returned by later loads; nil restores normal loading.
func (c *CountingLoader) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fail = err
}

// Calls returns how often key was requested.
func (c *CountingLoader) Calls(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[key]
}

// Total returns the number of Load calls across all keys.
func (c *CountingLoader) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}
