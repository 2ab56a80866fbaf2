package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/maherelattar207-beep/mxd/internal/configwriter"
	"github.com/maherelattar207-beep/mxd/internal/hardware"
	"github.com/maherelattar207-beep/mxd/internal/profiles"
	"github.com/maherelattar207-beep/mxd/internal/settings"
	"github.com/maherelattar207-beep/mxd/internal/tier"
)

// App wires the pipeline components together. Everything takes explicit
// dependencies; there is no package-level state to reach for.
type App struct {
	log       *slog.Logger
	collector *hardware.Collector
	tiers     *tier.Manager
	profiles  *profiles.Store
	writer    *configwriter.Writer
	settings  *settings.Store
}

func main() {
	// .env overrides are optional; a missing file is the normal case.
	_ = godotenv.Load()

	dataDir := os.Getenv("MXD_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataDir = filepath.Join(home, ".mxd")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "cannot create data dir %s: %v\n", dataDir, err)
		os.Exit(1)
	}

	log := newLogger(filepath.Join(dataDir, "mxd.log"))

	store := settings.Open(filepath.Join(dataDir, "settings.json"), log)

	profilePath := os.Getenv("MXD_PROFILE_STORE")
	if profilePath == "" {
		profilePath = filepath.Join(dataDir, "profiles.json")
	}
	profileStore, err := profiles.OpenStore(profilePath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open profile store: %v\n", err)
		os.Exit(1)
	}

	app := &App{
		log:       log,
		collector: hardware.NewCollector(log),
		tiers:     tier.NewManager(store, log),
		profiles:  profileStore,
		writer:    configwriter.New(log),
		settings:  store,
	}

	runCLI(app)
}

// newLogger writes structured logs to the data dir, falling back to stderr.
// CLI output stays on stdout via color; the log file is for diagnostics.
func newLogger(path string) *slog.Logger {
	var w io.Writer = os.Stderr
	if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
		w = f
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
