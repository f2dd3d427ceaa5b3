// Command agnite-import loads CSV spectra into the SQLite archive so the
// server can run with "source": "sqlite".
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"

	"github.com/banshee-data/agnite/internal/agn"
	"github.com/banshee-data/agnite/internal/config"
	"github.com/banshee-data/agnite/internal/db"
	"github.com/banshee-data/agnite/internal/spectrum"
)

var (
	configPath  = flag.String("config", "", "Optional JSON config supplying archetype overrides")
	dbPath      = flag.String("db", "agnite.db", "Path to the SQLite archive")
	dataDir     = flag.String("data", "data", "Directory of BASS_DR1_<key>.csv spectra")
	skipMissing = flag.Bool("skip-missing", false, "Skip datasets with no CSV file instead of failing")
)

func main() {
	flag.Parse()

	classifier := agn.Default()
	if *configPath != "" {
		cfg, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		if classifier, err = cfg.Classifier(); err != nil {
			log.Fatalf("invalid archetype overrides: %v", err)
		}
	}

	database, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	n, err := importAll(database, os.DirFS(*dataDir), *dataDir, classifier, *skipMissing)
	if err != nil {
		log.Fatalf("import failed after %d datasets: %v", n, err)
	}
	log.Printf("imported %d datasets into %s", n, *dbPath)
}

// importAll imports the dataset of every archetype c knows about. Datasets
// shared by several archetypes are imported once.
func importAll(database *db.DB, fsys fs.FS, dir string, c *agn.Classifier, skipMissing bool) (int, error) {
	seen := make(map[string]bool)
	n := 0
	for _, e := range c.Entries() {
		if seen[e.DatasetKey] {
			continue
		}
		seen[e.DatasetKey] = true

		name := spectrum.FileName(e.DatasetKey)
		f, err := fsys.Open(name)
		if errors.Is(err, fs.ErrNotExist) && skipMissing {
			log.Printf("skipping %s (%s): no %s", e.DatasetKey, e.Archetype, name)
			continue
		}
		if err != nil {
			return n, fmt.Errorf("open %s: %w", name, err)
		}
		t, err := spectrum.ParseCSV(e.DatasetKey, f)
		f.Close()
		if err != nil {
			return n, err
		}

		if err := database.ImportSpectrum(e.DatasetKey, path.Join(dir, name), t); err != nil {
			return n, err
		}
		log.Printf("imported %s (%s): %d samples", e.DatasetKey, e.Archetype, len(t.Columns[spectrum.ColumnWavelength]))
		n++
	}
	return n, nil
}
