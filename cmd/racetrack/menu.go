package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/racetrack/internal/platform/tui"
	"github.com/vovakirdan/racetrack/internal/race"
	"github.com/vovakirdan/racetrack/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a track picker menu",
	Long: `Start racetrack in interactive menu mode.

Pick a track, the number of cars and their colours, then race.
After a race, press Esc to return to the menu.

Controls:
  Up/Down/j/k  - Choose track
  Left/Right   - Fewer/more cars
  1-4          - Cycle the colour of car 1-4
  Enter/Space  - Race
  Tab          - Best races
  Q            - Quit

Examples:
  racetrack menu
  racetrack menu --preset casual
  racetrack menu --tracks ./maps --db ./results.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagPreset, "preset", "", "Rule preset: casual, normal, hardcore")
	menuCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a live spectator feed on this address (e.g. :8080)")
	menuCmd.Flags().StringVar(&flagDriver, "driver", "", "Name stored with results (default: $USER)")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger()

	if _, err := loadRaceConfig(flagPreset); err != nil {
		fail("%v", err)
	}

	if flagSpectate != "" {
		logger.SetLevel(log.WarnLevel)
		stop := startSpectator(flagSpectate, logger)
		defer stop()
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	driver := driverName(flagDriver)

	for {
		menuResult, err := tui.RunMenu(store, cfg, race.Config())
		if err != nil {
			logger.Error("menu failed", "error", err)
			return
		}

		// Keeps size changes and the chosen cars for the next round
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				logger.Error("results screen failed", "error", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return // User quit from scoreboard
		}

		r, err := registry.Create(menuResult.TrackID)
		if err != nil {
			logger.Error("creating race", "error", err)
			continue
		}

		back, err := tui.Run(r, store, cfg, driver)
		if err != nil {
			logger.Error("race failed", "error", err)
			continue
		}
		if !back {
			return
		}
	}
}
