// Command agnite serves the AGN viewing-angle explorer over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/banshee-data/agnite/internal/agn"
	"github.com/banshee-data/agnite/internal/api"
	"github.com/banshee-data/agnite/internal/config"
	"github.com/banshee-data/agnite/internal/db"
	"github.com/banshee-data/agnite/internal/monitoring"
	"github.com/banshee-data/agnite/internal/photometry"
	"github.com/banshee-data/agnite/internal/render"
	"github.com/banshee-data/agnite/internal/session"
	"github.com/banshee-data/agnite/internal/spectrum"
	"github.com/banshee-data/agnite/internal/timeutil"
	"github.com/banshee-data/agnite/internal/version"
)

var (
	configPath  = flag.String("config", "", "Path to JSON config file (built-in defaults when empty)")
	listen      = flag.String("listen", "", "Listen address (overrides config)")
	dataDir     = flag.String("data", "", "Directory of BASS_DR1_<key>.csv spectra (overrides config)")
	dbPath      = flag.String("db", "", "Path to the SQLite archive (overrides config)")
	devMode     = flag.Bool("dev", false, "Run in dev mode: canned photometry when no service is configured")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg := &config.Config{}
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}
	applyFlags(cfg)

	if flag.Arg(0) == "migrate" {
		if err := db.RunMigrateCommand(os.Stdout, flag.Args()[1:], cfg.GetDBPath()); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		return
	}

	classifier, err := cfg.Classifier()
	if err != nil {
		log.Fatalf("invalid archetype overrides: %v", err)
	}

	metrics, err := monitoring.NewCollector(nil)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	database, err := db.NewDB(cfg.GetDBPath())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	src, err := newSource(cfg, database)
	if err != nil {
		log.Fatalf("failed to configure spectrum source: %v", err)
	}
	store := spectrum.NewStore(src, spectrum.WithMetrics(metrics))
	if cfg.GetPreload() {
		if err := store.Preload(datasetKeys(classifier)); err != nil {
			log.Fatalf("failed to preload spectra: %v", err)
		}
		log.Printf("preloaded %d spectra", len(classifier.Entries()))
	}

	registry := session.NewRegistry(store,
		session.WithClassifier(classifier),
		session.WithClock(timeutil.RealClock{}),
		session.WithMetrics(metrics),
		session.WithRecorder(database),
		session.WithIdleTimeout(cfg.GetSessionIdleTimeout()),
	)

	opts := []api.Option{
		api.WithClassifier(classifier),
		api.WithDB(database),
		api.WithMetrics(metrics),
		api.WithRenderOptions(render.Options{
			WidthIn:  cfg.GetPlotWidthIn(),
			HeightIn: cfg.GetPlotHeightIn(),
		}),
	}
	if svc := newPhotometry(cfg, metrics, *devMode); svc != nil {
		opts = append(opts, api.WithPhotometry(svc))
	}
	server := api.NewServer(registry, opts...)

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// evict idle sessions
	wg.Add(1)
	go func() {
		defer wg.Done()
		registry.Run(ctx, cfg.GetSessionSweepInterval())
		log.Print("session sweeper terminated")
	}()

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		mux := server.ServeMux()
		if err := database.AttachAdminRoutes(mux); err != nil {
			log.Printf("failed to attach admin routes: %v", err)
		}

		httpServer := &http.Server{
			Addr:    cfg.GetListen(),
			Handler: api.LoggingMiddleware(mux),
		}

		go func() {
			log.Printf("%s listening on %s", version.String(), httpServer.Addr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
			if err := httpServer.Close(); err != nil {
				log.Printf("HTTP server force close error: %v", err)
			}
		}

		log.Printf("HTTP server routine stopped")
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}

// applyFlags copies explicitly set flags over config file values.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			cfg.Listen = listen
		case "data":
			cfg.DataDir = dataDir
		case "db":
			cfg.DBPath = dbPath
		}
	})
}

func newSource(cfg *config.Config, database *db.DB) (spectrum.Source, error) {
	switch cfg.GetSource() {
	case config.SourceCSV:
		dir := cfg.GetDataDir()
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			return nil, fmt.Errorf("data directory %q is not readable", dir)
		}
		return spectrum.NewDirSource(os.DirFS(dir)), nil
	case config.SourceSQLite:
		return database.SpectrumSource(), nil
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.GetSource())
	}
}

func newPhotometry(cfg *config.Config, metrics *monitoring.Collector, dev bool) photometry.Service {
	if url := cfg.GetPhotometryURL(); url != "" {
		return photometry.NewClient(
			photometry.WithBaseURL(url),
			photometry.WithTimeout(cfg.GetPhotometryTimeout()),
			photometry.WithRateLimit(cfg.GetPhotometryRateLimit()),
			photometry.WithMetrics(metrics),
		)
	}
	if dev {
		return devPhotometry
	}
	return nil
}

func datasetKeys(c *agn.Classifier) []string {
	entries := c.Entries()
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.DatasetKey)
	}
	return keys
}
