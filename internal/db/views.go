package db

import (
	"fmt"
	"time"

	"github.com/banshee-data/agnite/internal/session"
)

// ViewRecord is one accepted angle change of a session.
type ViewRecord struct {
	SessionID  string    `json:"session_id"`
	Angle      int       `json:"angle"`
	Archetype  string    `json:"archetype"`
	DatasetKey string    `json:"dataset_key"`
	Switched   bool      `json:"switched"`
	RecordedAt time.Time `json:"recorded_at"`
}

// RecordView appends v to the session view log. A zero RecordedAt is
// stamped by the database.
func (db *DB) RecordView(v ViewRecord) error {
	var at interface{}
	if !v.RecordedAt.IsZero() {
		at = v.RecordedAt.UTC()
	}
	_, err := db.Exec(
		`INSERT INTO session_views (session_id, angle, archetype, dataset_key, switched, recorded_at)
		 VALUES (?, ?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))`,
		v.SessionID, v.Angle, v.Archetype, v.DatasetKey, v.Switched, at,
	)
	if err != nil {
		return fmt.Errorf("record view for session %s: %w", v.SessionID, err)
	}
	return nil
}

// RecordChange implements session.Recorder.
func (db *DB) RecordChange(c session.Change) error {
	return db.RecordView(ViewRecord{
		SessionID:  c.SessionID,
		Angle:      c.Angle,
		Archetype:  c.Archetype.Slug(),
		DatasetKey: c.DatasetKey,
		Switched:   c.Switched,
		RecordedAt: c.At,
	})
}

// SessionViews returns up to limit most recent views of one session, newest first.
func (db *DB) SessionViews(sessionID string, limit int) ([]ViewRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(
		`SELECT session_id, angle, archetype, dataset_key, switched, recorded_at
		   FROM session_views WHERE session_id = ? ORDER BY view_id DESC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ViewRecord
	for rows.Next() {
		var v ViewRecord
		if err := rows.Scan(&v.SessionID, &v.Angle, &v.Archetype, &v.DatasetKey, &v.Switched, &v.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ArchetypeCount is the number of angle changes that landed on an archetype.
type ArchetypeCount struct {
	Archetype string `json:"archetype"`
	Views     int    `json:"views"`
	Sessions  int    `json:"sessions"`
}

// ArchetypeRollup counts views and distinct sessions per archetype, most
// viewed first.
func (db *DB) ArchetypeRollup() ([]ArchetypeCount, error) {
	rows, err := db.Query(
		`SELECT archetype, COUNT(*), COUNT(DISTINCT session_id)
		   FROM session_views GROUP BY archetype ORDER BY COUNT(*) DESC, archetype`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ArchetypeCount
	for rows.Next() {
		var c ArchetypeCount
		if err := rows.Scan(&c.Archetype, &c.Views, &c.Sessions); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
