package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, r RaceResult) int64 {
	t.Helper()
	id, err := store.SaveRace(r)
	if err != nil {
		t.Fatalf("SaveRace() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsResults(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	mustSave(t, store, RaceResult{TrackID: "track1", Players: 2, Winner: 0, Moves: 12})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	best, err := store.BestMoves("track1")
	if err != nil || best != 12 {
		t.Errorf("BestMoves() = %d, %v; expected 12", best, err)
	}
}

func TestBestRaces(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, RaceResult{TrackID: "track1", Driver: "ann", Players: 2, Winner: 1, WinnerColor: 2, Moves: 15, Turns: 29})
	mustSave(t, store, RaceResult{TrackID: "track1", Driver: "bob", Players: 1, Winner: 0, Moves: 11, Turns: 11, Crashes: 2})
	mustSave(t, store, RaceResult{TrackID: "track1", Driver: "cy", Players: 2, Winner: -1, Turns: 40, Crashes: 5})
	mustSave(t, store, RaceResult{TrackID: "track1", Driver: "dee", Players: 2, Winner: 0, Moves: 11, Turns: 21})
	mustSave(t, store, RaceResult{TrackID: "track2", Driver: "ann", Players: 1, Winner: 0, Moves: 9, Turns: 9})

	best, err := store.BestRaces("track1", 10)
	if err != nil {
		t.Fatalf("BestRaces() failed: %v", err)
	}
	if len(best) != 3 {
		t.Fatalf("expected 3 finished races, got %d", len(best))
	}

	// Fewest moves first, earlier race wins a tie
	wantDrivers := []string{"bob", "dee", "ann"}
	for i, want := range wantDrivers {
		if best[i].Driver != want {
			t.Errorf("best[%d].Driver = %q, expected %q", i, best[i].Driver, want)
		}
	}
	if best[2].WinnerColor != 2 || best[2].Turns != 29 || !best[2].Finished() {
		t.Errorf("best[2] = %+v", best[2])
	}
	if best[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}

	limited, err := store.BestRaces("track1", 1)
	if err != nil || len(limited) != 1 {
		t.Errorf("BestRaces(limit 1) = %d results, %v", len(limited), err)
	}

	none, err := store.BestRaces("track9", 10)
	if err != nil || len(none) != 0 {
		t.Errorf("unknown track should have no results, got %d, %v", len(none), err)
	}
}

func TestRecentRaces(t *testing.T) {
	store := openTestStore(t)

	first := mustSave(t, store, RaceResult{TrackID: "track1", Players: 1, Winner: 0, Moves: 10})
	second := mustSave(t, store, RaceResult{TrackID: "track2", Players: 2, Winner: -1})

	recent, err := store.RecentRaces(10)
	if err != nil {
		t.Fatalf("RecentRaces() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != second || recent[1].ID != first {
		t.Errorf("RecentRaces() = %+v, expected newest first", recent)
	}
	if recent[0].Finished() {
		t.Error("race without a winner is not finished")
	}
}

func TestBestMovesEmpty(t *testing.T) {
	store := openTestStore(t)
	mustSave(t, store, RaceResult{TrackID: "track1", Players: 2, Winner: -1})

	best, err := store.BestMoves("track1")
	if err != nil {
		t.Fatalf("BestMoves() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("expected 0 without finished races, got %d", best)
	}
}

func TestClearRaces(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, RaceResult{TrackID: "track1", Players: 1, Winner: 0, Moves: 10})
	mustSave(t, store, RaceResult{TrackID: "track2", Players: 1, Winner: 0, Moves: 8})

	if err := store.ClearRaces("track1"); err != nil {
		t.Fatalf("ClearRaces() failed: %v", err)
	}

	if races, _ := store.BestRaces("track1", 10); len(races) != 0 {
		t.Errorf("expected track1 cleared, got %d races", len(races))
	}
	if races, _ := store.BestRaces("track2", 10); len(races) != 1 {
		t.Errorf("track2 should be untouched, got %d races", len(races))
	}
}

func TestTrackStats(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, RaceResult{TrackID: "track1", Players: 2, Winner: 0, Moves: 10, Crashes: 1})
	mustSave(t, store, RaceResult{TrackID: "track1", Players: 2, Winner: 1, Moves: 20, Crashes: 3})
	mustSave(t, store, RaceResult{TrackID: "track1", Players: 2, Winner: -1, Crashes: 4})

	stats, err := store.GetTrackStats("track1")
	if err != nil {
		t.Fatalf("GetTrackStats() failed: %v", err)
	}
	if stats.Races != 3 || stats.Finished != 2 || stats.BestMoves != 10 || stats.Crashes != 8 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgMoves != 15 {
		t.Errorf("AvgMoves = %v, expected 15", stats.AvgMoves)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	empty, err := store.GetTrackStats("track9")
	if err != nil {
		t.Fatalf("GetTrackStats() on empty track failed: %v", err)
	}
	if empty.Races != 0 || empty.BestMoves != 0 {
		t.Errorf("empty stats = %+v", empty)
	}
}

func TestAllTrackStats(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, RaceResult{TrackID: "track1", Players: 1, Winner: 0, Moves: 10})
	mustSave(t, store, RaceResult{TrackID: "track2", Players: 1, Winner: -1, Crashes: 1})

	all, err := store.GetAllTrackStats()
	if err != nil {
		t.Fatalf("GetAllTrackStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(all))
	}
	if all["track1"].BestMoves != 10 || all["track2"].Finished != 0 {
		t.Errorf("stats = %+v / %+v", all["track1"], all["track2"])
	}
}

func TestRaceByID(t *testing.T) {
	store := openTestStore(t)
	id := mustSave(t, store, RaceResult{TrackID: "track3", Driver: "eve", Players: 3, Winner: 2, Moves: 14})

	r, err := store.RaceByID(id)
	if err != nil {
		t.Fatalf("RaceByID() failed: %v", err)
	}
	if r == nil || r.Driver != "eve" || r.Players != 3 || r.Winner != 2 {
		t.Errorf("RaceByID() = %+v", r)
	}

	missing, err := store.RaceByID(id + 100)
	if err != nil || missing != nil {
		t.Errorf("missing race = %+v, %v", missing, err)
	}
}
