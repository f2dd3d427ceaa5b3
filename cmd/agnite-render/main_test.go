package main

import (
	"bytes"
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/agnite/internal/agn"
	"github.com/banshee-data/agnite/internal/render"
	"github.com/banshee-data/agnite/internal/spectrum"
	"github.com/banshee-data/agnite/internal/testutil"
)

func TestOutputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format, out string
		want        string
		wantErr     bool
	}{
		{format: "", out: "a.png", want: "png"},
		{format: "", out: "a.HTML", want: "html"},
		{format: "html", out: "a.png", want: "html"},
		{format: "", out: "a.svg", wantErr: true},
		{format: "", out: "noext", wantErr: true},
	}
	for _, tt := range tests {
		got, err := outputFormat(tt.format, tt.out)
		if tt.wantErr {
			assert.Error(t, err, tt.out)
			continue
		}
		require.NoError(t, err, tt.out)
		assert.Equal(t, tt.want, got)
	}
}

func TestRenderAngle(t *testing.T) {
	t.Parallel()

	b, v, err := renderAngle(testutil.NewStore(), agn.Default(), 60, "png", render.Options{WidthIn: 4, HeightIn: 2})
	require.NoError(t, err)
	assert.Equal(t, agn.RadioLoudQuasar, v.Archetype())
	assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")))

	b, _, err = renderAngle(testutil.NewStore(), agn.Default(), -30, "html", render.Options{})
	require.NoError(t, err)
	assert.Contains(t, string(b), "Seyfert 2")

	_, _, err = renderAngle(testutil.NewStore(), agn.Default(), 95, "png", render.Options{})
	assert.ErrorIs(t, err, agn.ErrOutOfRange)
}

func TestDataFlagNamesDatasetFiles(t *testing.T) {
	f := flag.Lookup("data")
	require.NotNil(t, f)
	assert.Contains(t, f.Usage, strings.TrimSuffix(spectrum.FileName("<key>"), ".csv"))
}
