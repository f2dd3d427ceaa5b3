package spectrum

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/banshee-data/agnite/internal/agn"
)

// Column names of the archived spectrum tables.
const (
	ColumnWavelength = "Rest-wavelength"
	ColumnFlux       = "Flux density"
)

// Table is a raw numeric table keyed by column name.
type Table struct {
	Columns map[string][]float64
}

// Source resolves a dataset key to its raw table. Implementations return
// *DatasetNotFoundError or *MalformedDatasetError.
type Source interface {
	ReadTable(key string) (*Table, error)
}

// FromTable builds a sanitized Spectrum from a raw table.
func FromTable(key string, t *Table) (*Spectrum, error) {
	if t == nil {
		return nil, &MalformedDatasetError{Key: key, Reason: "empty table"}
	}
	w, ok := t.Columns[ColumnWavelength]
	if !ok {
		return nil, &MalformedDatasetError{Key: key, Reason: fmt.Sprintf("missing column %q", ColumnWavelength)}
	}
	f, ok := t.Columns[ColumnFlux]
	if !ok {
		return nil, &MalformedDatasetError{Key: key, Reason: fmt.Sprintf("missing column %q", ColumnFlux)}
	}
	s, err := NewSpectrum(key, w, f)
	if err != nil {
		return nil, &MalformedDatasetError{Key: key, Reason: "unequal columns", Err: err}
	}
	return s, nil
}

// FileName returns the archive file name for key, e.g. BASS_DR1_0005.csv.
func FileName(key string) string {
	return "BASS_DR1_" + key + ".csv"
}

// DirSource reads BASS_DR1_<key>.csv files from a file system, typically
// os.DirFS(dataDir).
type DirSource struct {
	FS fs.FS
}

// NewDirSource returns a DirSource over fsys.
func NewDirSource(fsys fs.FS) *DirSource {
	return &DirSource{FS: fsys}
}

// ReadTable opens and parses the CSV file for key.
func (d *DirSource) ReadTable(key string) (*Table, error) {
	if !agn.ValidDatasetKey(key) {
		return nil, &DatasetNotFoundError{Key: key, Err: errors.New("invalid dataset key")}
	}
	f, err := d.FS.Open(FileName(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &DatasetNotFoundError{Key: key, Err: err}
		}
		return nil, fmt.Errorf("open dataset %s: %w", key, err)
	}
	defer f.Close()
	return ParseCSV(key, f)
}

// ParseCSV reads a header row followed by numeric rows. Lines starting
// with '#' are ignored. All columns are parsed; callers pick the ones
// they need.
func ParseCSV(key string, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &MalformedDatasetError{Key: key, Reason: "empty file"}
		}
		return nil, &MalformedDatasetError{Key: key, Reason: "unreadable header", Err: err}
	}
	names := make([]string, len(header))
	cols := make(map[string][]float64, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
		cols[names[i]] = nil
	}

	row := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, &MalformedDatasetError{Key: key, Reason: fmt.Sprintf("row %d", row), Err: err}
		}
		for i, cell := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, &MalformedDatasetError{Key: key, Reason: fmt.Sprintf("row %d column %q", row, names[i]), Err: err}
			}
			cols[names[i]] = append(cols[names[i]], v)
		}
	}
	return &Table{Columns: cols}, nil
}
