package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/agnite/internal/agn"
	"github.com/banshee-data/agnite/internal/session"
)

func TestRecordView(t *testing.T) {
	db := newTestDB(t)

	records := []ViewRecord{
		{SessionID: "s1", Angle: 0, Archetype: "narrow-line-radio-galaxy", DatasetKey: "0360", Switched: true},
		{SessionID: "s1", Angle: 10, Archetype: "narrow-line-radio-galaxy", DatasetKey: "0360"},
		{SessionID: "s1", Angle: 80, Archetype: "blazar", DatasetKey: "0545", Switched: true},
		{SessionID: "s2", Angle: 5, Archetype: "narrow-line-radio-galaxy", DatasetKey: "0360", Switched: true},
	}
	for _, r := range records {
		require.NoError(t, db.RecordView(r))
	}

	views, err := db.SessionViews("s1", 0)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, 80, views[0].Angle, "newest first")
	assert.True(t, views[0].Switched)
	assert.False(t, views[1].Switched)
	assert.False(t, views[0].RecordedAt.IsZero())

	limited, err := db.SessionViews("s1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	rollup, err := db.ArchetypeRollup()
	require.NoError(t, err)
	require.Len(t, rollup, 2)
	assert.Equal(t, ArchetypeCount{Archetype: "narrow-line-radio-galaxy", Views: 3, Sessions: 2}, rollup[0])
	assert.Equal(t, ArchetypeCount{Archetype: "blazar", Views: 1, Sessions: 1}, rollup[1])
}

func TestRecordChange(t *testing.T) {
	db := newTestDB(t)

	var rec session.Recorder = db
	require.NoError(t, rec.RecordChange(session.Change{
		SessionID:  "s9",
		Angle:      -75,
		Archetype:  agn.RadioQuietQuasar,
		DatasetKey: "1146",
		Switched:   true,
	}))

	views, err := db.SessionViews("s9", 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "radio-quiet-quasar", views[0].Archetype)
	assert.Equal(t, -75, views[0].Angle)
}
