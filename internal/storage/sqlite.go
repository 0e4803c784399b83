// Package storage provides SQLite-based persistence for race results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// RaceResult is one finished race.
type RaceResult struct {
	ID          int64
	TrackID     string
	Driver      string // Who played: a local user name or an SSH user
	Players     int
	Winner      int // Winning car id, -1 when nobody finished
	WinnerColor int
	Moves       int // Moves the winner needed
	Turns       int // Turns played by all cars
	Crashes     int
	CreatedAt   time.Time
}

// Finished reports whether somebody crossed the finish.
func (r RaceResult) Finished() bool {
	return r.Winner >= 0
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS races (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			track_id TEXT NOT NULL,
			driver TEXT NOT NULL DEFAULT '',
			players INTEGER NOT NULL,
			winner INTEGER NOT NULL DEFAULT -1,
			winner_color INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			turns INTEGER NOT NULL DEFAULT 0,
			crashes INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_races_track_id ON races(track_id);
		CREATE INDEX IF NOT EXISTS idx_races_best ON races(track_id, winner, moves);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRace records a race result.
// Returns the ID of the inserted record.
func (s *Store) SaveRace(r RaceResult) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO races (track_id, driver, players, winner, winner_color, moves, turns, crashes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.TrackID, r.Driver, r.Players, r.Winner, r.WinnerColor, r.Moves, r.Turns, r.Crashes,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save race: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const raceColumns = `id, track_id, driver, players, winner, winner_color, moves, turns, crashes, created_at`

// BestRaces retrieves the N finished races with the fewest winning moves
// on a track. Ties go to the earlier race.
func (s *Store) BestRaces(trackID string, limit int) ([]RaceResult, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryRaces(
		`SELECT `+raceColumns+`
		 FROM races
		 WHERE track_id = ? AND winner >= 0
		 ORDER BY moves ASC, id ASC
		 LIMIT ?`,
		trackID, limit,
	)
}

// RecentRaces retrieves the most recent races on all tracks, newest first.
func (s *Store) RecentRaces(limit int) ([]RaceResult, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.queryRaces(
		`SELECT `+raceColumns+`
		 FROM races
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryRaces(query string, args ...any) ([]RaceResult, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query races: %w", err)
	}
	defer rows.Close()

	var results []RaceResult
	for rows.Next() {
		var r RaceResult
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.TrackID,
			&r.Driver,
			&r.Players,
			&r.Winner,
			&r.WinnerColor,
			&r.Moves,
			&r.Turns,
			&r.Crashes,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// BestMoves returns the fewest winning moves on a track.
// Returns 0 if nobody has finished it yet.
func (s *Store) BestMoves(trackID string) (int, error) {
	var moves sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(moves) FROM races WHERE track_id = ? AND winner >= 0",
		trackID,
	).Scan(&moves)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best moves: %w", err)
	}

	if !moves.Valid {
		return 0, nil
	}

	return int(moves.Int64), nil
}

// ClearRaces deletes all results for the given track.
func (s *Store) ClearRaces(trackID string) error {
	_, err := s.db.Exec("DELETE FROM races WHERE track_id = ?", trackID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear races: %w", err)
	}
	return nil
}

// TrackStats contains aggregated statistics for a track.
type TrackStats struct {
	TrackID    string
	Races      int
	Finished   int
	BestMoves  int
	AvgMoves   float64 // Over finished races
	Crashes    int
	LastPlayed time.Time
}

// GetTrackStats retrieves aggregated statistics for a specific track.
func (s *Store) GetTrackStats(trackID string) (*TrackStats, error) {
	stats := &TrackStats{TrackID: trackID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN winner >= 0 THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN winner >= 0 THEN moves END), 0),
		        COALESCE(AVG(CASE WHEN winner >= 0 THEN moves END), 0),
		        COALESCE(SUM(crashes), 0),
		        MAX(created_at)
		 FROM races WHERE track_id = ?`,
		trackID,
	).Scan(&stats.Races, &stats.Finished, &stats.BestMoves, &stats.AvgMoves, &stats.Crashes, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get track stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllTrackStats retrieves statistics for all tracks that have been raced.
func (s *Store) GetAllTrackStats() (map[string]*TrackStats, error) {
	rows, err := s.db.Query(
		`SELECT track_id, COUNT(*),
		        SUM(CASE WHEN winner >= 0 THEN 1 ELSE 0 END),
		        COALESCE(MIN(CASE WHEN winner >= 0 THEN moves END), 0),
		        COALESCE(AVG(CASE WHEN winner >= 0 THEN moves END), 0),
		        SUM(crashes),
		        MAX(created_at)
		 FROM races
		 GROUP BY track_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all track stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*TrackStats)
	for rows.Next() {
		var ts TrackStats
		var lastPlayed any
		if err := rows.Scan(&ts.TrackID, &ts.Races, &ts.Finished, &ts.BestMoves, &ts.AvgMoves, &ts.Crashes, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ts.LastPlayed = parseTime(lastPlayed)
		stats[ts.TrackID] = &ts
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// RaceByID retrieves a single result. Returns nil, nil when it does not exist.
func (s *Store) RaceByID(id int64) (*RaceResult, error) {
	results, err := s.queryRaces(`SELECT `+raceColumns+` FROM races WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
