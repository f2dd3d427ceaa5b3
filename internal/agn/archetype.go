// Package agn maps viewing angles onto the seven unified-model AGN
// archetypes and holds the reference dataset for each archetype.
package agn

import (
	"fmt"
	"strings"
)

// Archetype is one of the seven AGN classes of the unified model. The zero
// value is not a valid archetype.
type Archetype int

const (
	Blazar Archetype = iota + 1
	RadioLoudQuasar
	BroadLineRadioGalaxy
	NarrowLineRadioGalaxy
	Seyfert2
	Seyfert1
	RadioQuietQuasar
)

var archetypeNames = [...]string{
	Blazar:                "Blazar",
	RadioLoudQuasar:       "Radio-Loud Quasar",
	BroadLineRadioGalaxy:  "Broad Line Radio Galaxy",
	NarrowLineRadioGalaxy: "Narrow Line Radio Galaxy",
	Seyfert2:              "Seyfert 2",
	Seyfert1:              "Seyfert 1",
	RadioQuietQuasar:      "Radio-Quiet Quasar",
}

var archetypeSlugs = [...]string{
	Blazar:                "blazar",
	RadioLoudQuasar:       "radio-loud-quasar",
	BroadLineRadioGalaxy:  "broad-line-radio-galaxy",
	NarrowLineRadioGalaxy: "narrow-line-radio-galaxy",
	Seyfert2:              "seyfert-2",
	Seyfert1:              "seyfert-1",
	RadioQuietQuasar:      "radio-quiet-quasar",
}

// Archetypes returns all archetypes from the highest viewing angle to the lowest.
func Archetypes() []Archetype {
	return []Archetype{
		Blazar,
		RadioLoudQuasar,
		BroadLineRadioGalaxy,
		NarrowLineRadioGalaxy,
		Seyfert2,
		Seyfert1,
		RadioQuietQuasar,
	}
}

// Valid reports whether a is one of the seven declared archetypes.
func (a Archetype) Valid() bool {
	return a >= Blazar && a <= RadioQuietQuasar
}

// String returns the display name, e.g. "Seyfert 2".
func (a Archetype) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Archetype(%d)", int(a))
	}
	return archetypeNames[a]
}

// Slug returns the URL-safe identifier, e.g. "seyfert-2".
func (a Archetype) Slug() string {
	if !a.Valid() {
		return fmt.Sprintf("archetype-%d", int(a))
	}
	return archetypeSlugs[a]
}

// MarshalText encodes the archetype as its slug.
func (a Archetype) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, &UnknownArchetypeError{Value: int(a)}
	}
	return []byte(a.Slug()), nil
}

// UnmarshalText accepts a slug or a display name.
func (a *Archetype) UnmarshalText(text []byte) error {
	parsed, err := ParseArchetype(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseArchetype resolves a slug or display name (case-insensitive).
func ParseArchetype(s string) (Archetype, error) {
	s = strings.TrimSpace(s)
	for _, a := range Archetypes() {
		if strings.EqualFold(s, a.Slug()) || strings.EqualFold(s, a.String()) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown archetype %q", s)
}

// MustValid panics with an UnknownArchetypeError when a is not a declared
// archetype. Lookups that take an Archetype call it first.
func MustValid(a Archetype) {
	if !a.Valid() {
		panic(&UnknownArchetypeError{Value: int(a)})
	}
}
