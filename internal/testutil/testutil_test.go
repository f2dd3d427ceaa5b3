package testutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/agnite/internal/agn"
	"github.com/banshee-data/agnite/internal/spectrum"
)

func TestAssertHelpers(t *testing.T) {
	t.Parallel()

	AssertStatusCode(t, http.StatusOK, http.StatusOK)
}

func TestSyntheticColumns(t *testing.T) {
	t.Parallel()

	w, f := SyntheticColumns(2)
	require.Len(t, w, SyntheticSamples)
	require.Len(t, f, SyntheticSamples)
	assert.Equal(t, 0.0, w[0])
	assert.Equal(t, 3500.0, w[1])
	assert.InDelta(t, 7000.0, w[SyntheticSamples-1], 1e-9)
}

func TestDatasetFS_LoadsEveryArchetype(t *testing.T) {
	t.Parallel()

	store := NewStore()
	for _, a := range agn.Archetypes() {
		key := agn.Default().Lookup(a).DatasetKey
		s, err := store.Load(key)
		require.NoError(t, err, a.String())
		assert.Equal(t, SyntheticSamples-1, s.Len(), "zero-wavelength sample removed")
	}
}

func TestCountingLoader(t *testing.T) {
	t.Parallel()

	c := NewCountingLoader(NewStore())
	_, err := c.Load("0005")
	require.NoError(t, err)
	_, err = c.Load("0005")
	require.NoError(t, err)

	boom := &spectrum.DatasetNotFoundError{Key: "0002"}
	c.Fail(boom)
	_, err = c.Load("0002")
	assert.True(t, errors.Is(err, spectrum.ErrDatasetNotFound))

	assert.Equal(t, 2, c.Calls("0005"))
	assert.Equal(t, 1, c.Calls("0002"))
	assert.Equal(t, 3, c.Total())
}
