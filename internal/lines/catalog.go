// Package lines holds the hand-curated emission line tables used to
// annotate each archetype's spectrum.
package lines

import (
	"fmt"

	"github.com/banshee-data/agnite/internal/agn"
)

// Side is the side of the marker an annotation label is drawn on.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "left":
		*s = Left
	case "right":
		*s = Right
	default:
		return fmt.Errorf("unknown annotation side %q", text)
	}
	return nil
}

// EmissionLine is a spectral line at a fixed rest wavelength (Angstrom).
type EmissionLine struct {
	Key            string  `json:"key"`
	RestWavelength float64 `json:"rest_wavelength"`
	Label          string  `json:"label"`
	Side           Side    `json:"side"`
}

// Annotation is a render directive: draw Label at Position on Side.
type Annotation struct {
	Key      string  `json:"key"`
	Position float64 `json:"position"`
	Label    string  `json:"label"`
	Side     Side    `json:"side"`
}

func tableFor(a agn.Archetype) []EmissionLine {
	agn.MustValid(a)
	t, ok := catalog[a]
	if !ok {
		panic(&agn.UnknownArchetypeError{Value: int(a)})
	}
	return t
}

// LinesFor returns a's emission lines ordered by rest wavelength. The
// returned slice is a copy.
func LinesFor(a agn.Archetype) []EmissionLine {
	t := tableFor(a)
	out := make([]EmissionLine, len(t))
	copy(out, t)
	return out
}

// Lookup returns the line with key in a's table.
func Lookup(a agn.Archetype, key string) (EmissionLine, bool) {
	for _, l := range tableFor(a) {
		if l.Key == key {
			return l, true
		}
	}
	return EmissionLine{}, false
}

// AnnotationSideFor returns the label side of key in a's table. ok is false
// when a does not list the line: line sets are per archetype.
func AnnotationSideFor(a agn.Archetype, key string) (side Side, ok bool) {
	l, ok := Lookup(a, key)
	if !ok {
		return Left, false
	}
	return l.Side, true
}

// Annotations returns the render directives for a, one per line, in
// rest-wavelength order.
func Annotations(a agn.Archetype) []Annotation {
	t := tableFor(a)
	out := make([]Annotation, len(t))
	for i, l := range t {
		out[i] = Annotation{Key: l.Key, Position: l.RestWavelength, Label: l.Label, Side: l.Side}
	}
	return out
}

// InRange keeps the annotations whose position lies in [lo, hi].
func InRange(anns []Annotation, lo, hi float64) []Annotation {
	out := make([]Annotation, 0, len(anns))
	for _, a := range anns {
		if a.Position >= lo && a.Position <= hi {
			out = append(out, a)
		}
	}
	return out
}
