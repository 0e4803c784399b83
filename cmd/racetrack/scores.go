package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/racetrack/internal/core"
	"github.com/vovakirdan/racetrack/internal/registry"
	"github.com/vovakirdan/racetrack/internal/storage"
)

var (
	flagRecent bool
	flagClear  bool
	flagLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [track]",
	Short: "Show the best races on a track",
	Long: `Display the races won in the fewest moves on the specified track.

Without a track, shows a summary of every track raced so far.

Examples:
  racetrack scores
  racetrack scores track1
  racetrack scores track1 --limit 20
  racetrack scores --recent
  racetrack scores track2 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent races on all tracks")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all results for the track")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of races to show")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening results database: %v", err)
	}
	defer store.Close()

	switch {
	case flagRecent:
		err = showRecent(store)
	case len(args) == 0:
		err = showSummary(store)
	default:
		trackID := args[0]
		if !registry.Exists(trackID) {
			fmt.Fprintf(os.Stderr, "Error: unknown track %q\n", trackID)
			fmt.Fprintln(os.Stderr, "Run 'racetrack list' to see available tracks.")
			return
		}
		if flagClear {
			err = store.ClearRaces(trackID)
			if err == nil {
				fmt.Printf("Cleared all results for %s.\n", trackID)
			}
			break
		}
		err = showTrack(store, trackID)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
	}
}

func showTrack(store *storage.Store, trackID string) error {
	r, err := registry.Create(trackID)
	if err != nil {
		return err
	}

	races, err := store.BestRaces(trackID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Races - %s\n", r.Title())
	fmt.Println()

	if len(races) == 0 {
		fmt.Println("Nobody has finished this track yet.")
		fmt.Println()
		fmt.Printf("Play 'racetrack play %s' to set the first record!\n", trackID)
		return nil
	}

	fmt.Printf("  %-4s  %-5s  %-12s  %-14s  %-4s  %s\n", "Rank", "Moves", "Driver", "Car", "Cars", "Date")
	fmt.Printf("  %-4s  %-5s  %-12s  %-14s  %-4s  %s\n", "----", "-----", "------", "---", "----", "----")

	for i, entry := range races {
		car := fmt.Sprintf("P%d %s", entry.Winner+1, core.PaintFor(entry.WinnerColor).Name)
		fmt.Printf("  %-4d  %-5d  %-12s  %-14s  %-4d  %s\n",
			i+1, entry.Moves, entry.Driver, car, entry.Players, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetTrackStats(trackID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d moves  |  %d races, %d finished, %d crashes\n",
		stats.BestMoves, stats.Races, stats.Finished, stats.Crashes)
	return nil
}

func showRecent(store *storage.Store) error {
	races, err := store.RecentRaces(flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("Recent Races")
	fmt.Println()
	if len(races) == 0 {
		fmt.Println("No races recorded yet.")
		return nil
	}

	fmt.Printf("  %-10s  %-12s  %-16s  %-5s  %s\n", "Track", "Driver", "Result", "Turns", "Date")
	fmt.Printf("  %-10s  %-12s  %-16s  %-5s  %s\n", "-----", "------", "------", "-----", "----")
	for _, entry := range races {
		result := "no winner"
		if entry.Finished() {
			result = fmt.Sprintf("P%d in %d moves", entry.Winner+1, entry.Moves)
		}
		fmt.Printf("  %-10s  %-12s  %-16s  %-5d  %s\n",
			entry.TrackID, entry.Driver, result, entry.Turns, entry.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func showSummary(store *storage.Store) error {
	all, err := store.GetAllTrackStats()
	if err != nil {
		return err
	}

	fmt.Println("Track Summary")
	fmt.Println()

	races := registry.List()
	fmt.Printf("  %-10s  %-5s  %-8s  %-4s  %-9s  %s\n", "Track", "Races", "Finished", "Best", "Avg moves", "Last played")
	fmt.Printf("  %-10s  %-5s  %-8s  %-4s  %-9s  %s\n", "-----", "-----", "--------", "----", "---------", "-----------")
	for _, info := range races {
		stats, ok := all[info.ID]
		if !ok {
			fmt.Printf("  %-10s  %-5d  %-8s  %-4s  %-9s  %s\n", info.ID, 0, "-", "-", "-", "never")
			continue
		}
		fmt.Printf("  %-10s  %-5d  %-8d  %-4d  %-9.1f  %s\n",
			info.ID, stats.Races, stats.Finished, stats.BestMoves, stats.AvgMoves, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
