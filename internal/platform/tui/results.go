package tui

import (
	"fmt"

	"github.com/vovakirdan/racetrack/internal/race"
	"github.com/vovakirdan/racetrack/internal/registry"
	"github.com/vovakirdan/racetrack/internal/storage"
)

// resultSource is implemented by races that can summarise a finished race.
type resultSource interface {
	Result() (race.Result, bool)
}

// saveResult stores the outcome of a finished race. Having no store or no
// result to save is not an error.
func saveResult(store *storage.Store, r registry.Race, driver string) error {
	if store == nil {
		return nil
	}
	src, ok := r.(resultSource)
	if !ok {
		return nil
	}
	res, ok := src.Result()
	if !ok {
		return nil
	}

	if _, err := store.SaveRace(toRaceResult(res, driver)); err != nil {
		return fmt.Errorf("tui: save %s result: %w", res.Track, err)
	}
	return nil
}

func toRaceResult(res race.Result, driver string) storage.RaceResult {
	return storage.RaceResult{
		TrackID:     res.Track,
		Driver:      driver,
		Players:     res.Players,
		Winner:      res.Winner,
		WinnerColor: res.WinnerColor,
		Moves:       res.Moves,
		Turns:       res.Turns,
		Crashes:     res.Crashes,
	}
}
