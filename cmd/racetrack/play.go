package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/racetrack/internal/platform/tui"
	"github.com/vovakirdan/racetrack/internal/registry"
)

var (
	flagPlayers  int
	flagColors   []int
	flagPreset   string
	flagSpectate string
	flagDriver   string
)

var playCmd = &cobra.Command{
	Use:   "play <track>",
	Short: "Race on a track",
	Long: `Start a race on the specified track.

Cars move in turn. On your turn pick one of nine accelerations:

  7 8 9     up-left   up     up-right
  4 5 6     left      coast  right
  1 2 3     down-left down   down-right

Controls:
  Arrows/1-9 - Accelerate (5 or Space keeps the current velocity)
  H          - Show/hide walls
  P          - Pause
  R          - Race again (after the finish)
  Esc/B      - Back (after the finish or while paused)
  Q/Ctrl+C   - Quit

Rule presets:
  casual   - Crashed cars are back after 1.5s, walls and velocity hint shown
  normal   - Crashed cars are back after 3s, walls shown
  hardcore - A crash puts the car out of the race, walls hidden

Examples:
  racetrack play track1
  racetrack play track2 --players 4
  racetrack play track1 --players 2 --colors 4,5
  racetrack play track3 --preset hardcore
  racetrack play track1 --spectate :8080`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagPlayers, "players", 0, "Number of cars, 1-4 (0 = from config)")
	playCmd.Flags().IntSliceVar(&flagColors, "colors", nil, "Palette index per car, e.g. 0,2")
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Rule preset: casual, normal, hardcore")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a live spectator feed on this address (e.g. :8080)")
	playCmd.Flags().StringVar(&flagDriver, "driver", "", "Name stored with results (default: $USER)")
}

func runPlay(cmd *cobra.Command, args []string) {
	trackID := args[0]
	logger := newLogger()

	if !registry.Exists(trackID) {
		fmt.Fprintf(os.Stderr, "Error: unknown track %q\n", trackID)
		fmt.Fprintln(os.Stderr, "Run 'racetrack list' to see available tracks.")
		os.Exit(1)
	}

	if _, err := loadRaceConfig(flagPreset); err != nil {
		fail("%v", err)
	}

	cfg := terminalConfig()
	cfg.Players = flagPlayers
	cfg.Colors = flagColors

	r, err := registry.Create(trackID)
	if err != nil {
		fail("creating race: %v", err)
	}

	if flagSpectate != "" {
		// The race owns the terminal; only problems are worth printing
		logger.SetLevel(log.WarnLevel)
		stop := startSpectator(flagSpectate, logger)
		defer stop()
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(r, store, cfg, driverName(flagDriver)); err != nil {
		logger.Error("race failed", "error", err)
	}
}
