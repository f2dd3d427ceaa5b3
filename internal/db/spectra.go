package db

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/banshee-data/agnite/internal/spectrum"
)

// DatasetInfo describes one imported dataset.
type DatasetInfo struct {
	Key        string    `json:"dataset_key"`
	Source     string    `json:"source"`
	Samples    int       `json:"samples"`
	ImportedAt time.Time `json:"imported_at"`
}

// ImportSpectrum stores the raw wavelength and flux columns of t under key,
// replacing any previous import. Rows are stored unsanitized and in order;
// sanitization happens on load.
func (db *DB) ImportSpectrum(key, source string, t *spectrum.Table) error {
	if t == nil {
		return &spectrum.MalformedDatasetError{Key: key, Reason: "empty table"}
	}
	w, ok := t.Columns[spectrum.ColumnWavelength]
	if !ok {
		return &spectrum.MalformedDatasetError{Key: key, Reason: fmt.Sprintf("missing column %q", spectrum.ColumnWavelength)}
	}
	f, ok := t.Columns[spectrum.ColumnFlux]
	if !ok {
		return &spectrum.MalformedDatasetError{Key: key, Reason: fmt.Sprintf("missing column %q", spectrum.ColumnFlux)}
	}
	if len(w) != len(f) {
		return &spectrum.MalformedDatasetError{Key: key, Reason: fmt.Sprintf("unequal columns: %d wavelengths, %d fluxes", len(w), len(f))}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin import %s: %w", key, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM datasets WHERE dataset_key = ?`, key); err != nil {
		return fmt.Errorf("clear dataset %s: %w", key, err)
	}
	if _, err := tx.Exec(`INSERT INTO datasets (dataset_key, source, samples) VALUES (?, ?, ?)`, key, source, len(w)); err != nil {
		return fmt.Errorf("insert dataset %s: %w", key, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO spectrum_samples (dataset_key, idx, rest_wavelength, flux_density) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for i := range w {
		// SQLite has no NaN; store missing flux as NULL.
		var flux sql.NullFloat64
		if !math.IsNaN(f[i]) && !math.IsInf(f[i], 0) {
			flux = sql.NullFloat64{Float64: f[i], Valid: true}
		}
		if _, err := stmt.Exec(key, i, w[i], flux); err != nil {
			return fmt.Errorf("insert sample %d of %s: %w", i, key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import %s: %w", key, err)
	}
	return nil
}

// Datasets lists imported datasets ordered by key.
func (db *DB) Datasets() ([]DatasetInfo, error) {
	rows, err := db.Query(`SELECT dataset_key, source, samples, imported_at FROM datasets ORDER BY dataset_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DatasetInfo
	for rows.Next() {
		var d DatasetInfo
		if err := rows.Scan(&d.Key, &d.Source, &d.Samples, &d.ImportedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// SpectrumSource serves imported datasets to a spectrum.Store.
type SpectrumSource struct {
	db *DB
}

// SpectrumSource returns a spectrum.Source backed by db.
func (db *DB) SpectrumSource() *SpectrumSource {
	return &SpectrumSource{db: db}
}

// ReadTable returns the raw columns stored for key.
func (s *SpectrumSource) ReadTable(key string) (*spectrum.Table, error) {
	var samples int
	err := s.db.QueryRow(`SELECT samples FROM datasets WHERE dataset_key = ?`, key).Scan(&samples)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &spectrum.DatasetNotFoundError{Key: key}
	}
	if err != nil {
		return nil, fmt.Errorf("query dataset %s: %w", key, err)
	}

	rows, err := s.db.Query(`SELECT rest_wavelength, flux_density FROM spectrum_samples WHERE dataset_key = ? ORDER BY idx`, key)
	if err != nil {
		return nil, fmt.Errorf("query samples of %s: %w", key, err)
	}
	defer rows.Close()

	w := make([]float64, 0, samples)
	f := make([]float64, 0, samples)
	for rows.Next() {
		var wl float64
		var fl sql.NullFloat64
		if err := rows.Scan(&wl, &fl); err != nil {
			return nil, &spectrum.MalformedDatasetError{Key: key, Reason: "unreadable sample", Err: err}
		}
		w = append(w, wl)
		if fl.Valid {
			f = append(f, fl.Float64)
		} else {
			f = append(f, math.NaN())
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read samples of %s: %w", key, err)
	}
	if len(w) != samples {
		return nil, &spectrum.MalformedDatasetError{Key: key, Reason: fmt.Sprintf("expected %d samples, found %d", samples, len(w))}
	}

	return &spectrum.Table{Columns: map[string][]float64{
		spectrum.ColumnWavelength: w,
		spectrum.ColumnFlux:       f,
	}}, nil
}
