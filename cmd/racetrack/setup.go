package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/racetrack/internal/config"
	"github.com/vovakirdan/racetrack/internal/core"
	"github.com/vovakirdan/racetrack/internal/race"
	"github.com/vovakirdan/racetrack/internal/spectate"
	"github.com/vovakirdan/racetrack/internal/storage"
	"github.com/vovakirdan/racetrack/internal/track"
)

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "racetrack",
	})
}

// loadExtraTracks registers the maps found under --tracks.
func loadExtraTracks(logger *log.Logger) {
	if flagTracksDir == "" {
		return
	}

	tracks, err := track.NewLoader(flagTracksDir).LoadAll()
	if err != nil {
		logger.Warn("could not load tracks", "dir", flagTracksDir, "error", err)
		return
	}
	for _, t := range race.RegisterTracks(tracks) {
		logger.Warn("track ID already taken, skipping", "id", t.ID, "source", t.Source)
	}
	for _, t := range tracks {
		if t.Skipped > 0 {
			logger.Warn("ignored malformed map lines", "id", t.ID, "lines", t.Skipped)
		}
	}
}

// loadRaceConfig loads the race config, applies preset and installs the
// result for new races.
func loadRaceConfig(preset string) (config.RaceConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if preset != "" {
		p, err := config.ParsePreset(preset)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, p)
	}

	race.SetConfig(cfg)
	return cfg, nil
}

// openStore opens the results database. Races still run without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		return nil
	}
	return store
}

// terminalConfig sizes the runtime config to the terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// startSpectator serves the live feed on addr and installs it as the race
// observer. The returned func stops it.
func startSpectator(addr string, logger *log.Logger) func() {
	hub := spectate.NewHub(logger)
	server := spectate.NewServer(hub, logger)
	race.SetObserver(hub)

	go func() {
		if err := server.ListenAndServe(addr); err != nil {
			logger.Error("spectator feed stopped", "error", err)
		}
	}()

	return func() {
		race.SetObserver(nil)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		//nolint:errcheck // Best-effort shutdown on exit
		server.Shutdown(ctx)
	}
}

// driverName is the name stored with results.
func driverName(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "player"
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
