package lines

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/agnite/internal/agn"
)

func TestAnnotationSideFor_RadioLoudQuasar(t *testing.T) {
	t.Parallel()

	side, ok := AnnotationSideFor(agn.RadioLoudQuasar, "O3b")
	require.True(t, ok)
	assert.Equal(t, Right, side)

	_, ok = AnnotationSideFor(agn.RadioLoudQuasar, "Cl3b")
	assert.False(t, ok, "Cl3b belongs to Seyfert 2 only")

	_, ok = AnnotationSideFor(agn.Blazar, "H-alpha")
	assert.False(t, ok, "blazar table has no H-alpha")
}

func TestRightSideExceptions(t *testing.T) {
	t.Parallel()

	want := map[agn.Archetype][]string{
		agn.Blazar:                nil,
		agn.RadioLoudQuasar:       {"O3b", "S2b"},
		agn.BroadLineRadioGalaxy:  {"O3b"},
		agn.NarrowLineRadioGalaxy: {"H-alpha", "O3b", "S2"},
		agn.Seyfert2:              {"Cl3b", "O3b"},
		agn.Seyfert1:              {"H-alpha", "O3b"},
		agn.RadioQuietQuasar:      {"O3"},
	}

	for _, a := range agn.Archetypes() {
		var right []string
		for _, l := range LinesFor(a) {
			if l.Side == Right {
				right = append(right, l.Key)
			}
		}
		sort.Strings(right)
		assert.Equal(t, want[a], right, a.String())
	}
}

func TestTables_Shape(t *testing.T) {
	t.Parallel()

	for _, a := range agn.Archetypes() {
		ls := LinesFor(a)
		assert.GreaterOrEqual(t, len(ls), 4, a.String())
		assert.LessOrEqual(t, len(ls), 14, a.String())

		keys := make(map[string]bool)
		for i, l := range ls {
			assert.Greater(t, l.RestWavelength, 0.0)
			assert.NotEmpty(t, l.Label)
			assert.False(t, keys[l.Key], "%s: duplicate key %s", a, l.Key)
			keys[l.Key] = true
			if i > 0 {
				assert.Greater(t, l.RestWavelength, ls[i-1].RestWavelength, "%s: %s out of order", a, l.Key)
			}
		}
	}
}

func TestRestWavelengths(t *testing.T) {
	t.Parallel()

	l, ok := Lookup(agn.Seyfert1, "H-alpha")
	require.True(t, ok)
	assert.Equal(t, 6562.819, l.RestWavelength)

	l, ok = Lookup(agn.Seyfert2, "O3b")
	require.True(t, ok)
	assert.Equal(t, 5006.843, l.RestWavelength)

	l, ok = Lookup(agn.RadioQuietQuasar, "O3")
	require.True(t, ok)
	assert.Equal(t, 4363.21, l.RestWavelength)
	side, _ := AnnotationSideFor(agn.RadioQuietQuasar, "O3b")
	assert.Equal(t, Left, side, "O3b is a distinct key from O3")
}

func TestLinesFor_ReturnsCopy(t *testing.T) {
	t.Parallel()

	ls := LinesFor(agn.Seyfert2)
	ls[0].RestWavelength = -1
	ls[0].Side = Right

	again := LinesFor(agn.Seyfert2)
	assert.Equal(t, 3426.85, again[0].RestWavelength)
	assert.Equal(t, Left, again[0].Side)
}

func TestAnnotations(t *testing.T) {
	t.Parallel()

	anns := Annotations(agn.NarrowLineRadioGalaxy)
	ls := LinesFor(agn.NarrowLineRadioGalaxy)
	require.Len(t, anns, len(ls))
	for i := range anns {
		assert.Equal(t, ls[i].RestWavelength, anns[i].Position)
		assert.Equal(t, ls[i].Label, anns[i].Label)
		assert.Equal(t, ls[i].Side, anns[i].Side)
	}
	assert.Equal(t, anns, Annotations(agn.NarrowLineRadioGalaxy), "directives are deterministic")

	inRange := InRange(anns, 4800, 5100)
	require.Len(t, inRange, 3)
	assert.Equal(t, "H-beta", inRange[0].Key)
	assert.Equal(t, "O3b", inRange[2].Key)
}

func TestUnknownArchetypePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { LinesFor(agn.Archetype(0)) })
	assert.Panics(t, func() { AnnotationSideFor(agn.Archetype(8), "O3b") })
}

func TestSide_Text(t *testing.T) {
	t.Parallel()

	var s Side
	require.NoError(t, s.UnmarshalText([]byte("right")))
	assert.Equal(t, Right, s)
	b, err := Left.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "left", string(b))
	assert.Error(t, s.UnmarshalText([]byte("up")))
}

func TestAnnotations_SeyfertHeliumBeforeHBeta(t *testing.T) {
	t.Parallel()

	for _, a := range []agn.Archetype{agn.Seyfert2, agn.Seyfert1} {
		anns := Annotations(a)
		idx := make(map[string]int, len(anns))
		for i, an := range anns {
			idx[an.Key] = i
			if i > 0 {
				assert.LessOrEqual(t, anns[i-1].Position, an.Position, "%s: %s after %s", a, an.Key, anns[i-1].Key)
			}
		}
		require.Contains(t, idx, "He2", a.String())
		require.Contains(t, idx, "H-beta", a.String())
		assert.Less(t, idx["He2"], idx["H-beta"], a.String())
	}
}
