package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/racetrack/internal/race"
	"github.com/vovakirdan/racetrack/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available tracks",
	Long:  `Shows the built-in tracks and any loaded with --tracks.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	races := registry.List()

	if len(races) == 0 {
		fmt.Println("No tracks available.")
		return
	}

	fmt.Println("Available tracks:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, r := range races {
		maxIDLen = max(maxIDLen, len(r.ID))
		maxTitleLen = max(maxTitleLen, len(r.Title))
	}

	fmt.Printf("  %-*s  %-*s  %-7s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Size", "Walls")
	fmt.Printf("  %-*s  %-*s  %-7s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----", "-----")

	for _, info := range races {
		size, walls := "-", "-"
		if r, err := registry.Create(info.ID); err == nil {
			if g, ok := r.(*race.Game); ok {
				w, h := g.Track().Size()
				size = fmt.Sprintf("%dx%d", w, h)
				walls = fmt.Sprintf("%d", len(g.Track().Walls))
			}
		}
		fmt.Printf("  %-*s  %-*s  %-7s  %s\n", maxIDLen, info.ID, maxTitleLen, info.Title, size, walls)
	}

	fmt.Println()
	fmt.Println("Run 'racetrack play <id>' to race.")
}
