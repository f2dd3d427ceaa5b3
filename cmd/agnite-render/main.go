// Command agnite-render writes the spectrum of one viewing angle to a PNG
// or HTML file without starting the server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/banshee-data/agnite/internal/agn"
	"github.com/banshee-data/agnite/internal/config"
	"github.com/banshee-data/agnite/internal/render"
	"github.com/banshee-data/agnite/internal/session"
	"github.com/banshee-data/agnite/internal/spectrum"
)

var (
	angle      = flag.Int("angle", agn.DefaultAngle, "Viewing angle in degrees, -90 to 90")
	out        = flag.String("out", "spectrum.png", "Output file")
	format     = flag.String("format", "", "Output format: png or html (default from -out extension)")
	dataDir    = flag.String("data", "data", "Directory of BASS_DR1_<key>.csv spectra")
	configPath = flag.String("config", "", "Optional JSON config supplying overrides and plot size")
)

func main() {
	flag.Parse()

	cfg := &config.Config{}
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadConfig(*configPath); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}
	classifier, err := cfg.Classifier()
	if err != nil {
		log.Fatalf("invalid archetype overrides: %v", err)
	}

	f, err := outputFormat(*format, *out)
	if err != nil {
		log.Fatal(err)
	}

	store := spectrum.NewStore(spectrum.NewDirSource(os.DirFS(*dataDir)))
	opts := render.Options{WidthIn: cfg.GetPlotWidthIn(), HeightIn: cfg.GetPlotHeightIn()}
	b, v, err := renderAngle(store, classifier, *angle, f, opts)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", *out, err)
	}
	log.Printf("wrote %s: %s at %d° (dataset %s)", *out, v.Classification.Name, v.Angle, v.Classification.DatasetKey)
}

func outputFormat(format, out string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
	}
	switch format {
	case "png", "html":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use png or html", format)
	}
}

func renderAngle(loader spectrum.Loader, c *agn.Classifier, angle int, format string, opts render.Options) ([]byte, session.View, error) {
	s := session.New("cli", loader, session.WithClassifier(c))
	v, err := s.SetAngle(angle)
	if err != nil {
		return nil, session.View{}, err
	}

	var b []byte
	switch format {
	case "html":
		b, err = render.SpectrumHTML(v, opts)
	default:
		b, err = render.SpectrumPNG(v, opts)
	}
	if err != nil {
		return nil, v, fmt.Errorf("render %s: %w", v.Classification.Name, err)
	}
	return b, v, nil
}
