// racetrack is a turn-based vector racing game for the terminal.
//
// Usage:
//
//	racetrack list               - List available tracks
//	racetrack play <track>       - Race on a track
//	racetrack menu               - Pick tracks, players and colours interactively
//	racetrack serve              - Start SSH server for remote play
//	racetrack scores <track>     - Show the best races on a track
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--db <path>       - Set database path (default: ~/.racetrack/results.db)
//	--tracks <dir>    - Load extra track maps from a directory
//	--config <path>   - Use a custom race config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Built-in tracks register themselves
	_ "github.com/vovakirdan/racetrack/internal/race"
)

var (
	// Global flags
	flagFPS       int
	flagDBPath    string
	flagTracksDir string
	flagConfig    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "racetrack",
	Short: "Racetrack - vector racing in your terminal",
	Long: `Racetrack is the pencil-and-paper racing game played on a grid.

Every turn each car may change its velocity by at most one cell in each
direction. Cars keep their momentum, so braking for a corner has to start
early. Hit a wall, the edge of the map or another car and you crash.
The first car to stop inside the finish zone wins.

Available commands:
  list     - Show all available tracks
  play     - Race on a specific track
  menu     - Interactive track picker
  serve    - Start SSH server for remote play
  scores   - View the best races

Examples:
  racetrack list
  racetrack play track1 --players 3
  racetrack menu --preset hardcore
  racetrack serve --ssh :2222
  racetrack scores track2`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadExtraTracks(newLogger())
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.racetrack/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagTracksDir, "tracks", "", "Directory with extra track maps (.txt, .yaml)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom race config YAML")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
