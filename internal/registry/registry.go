// Package registry provides a global registry of playable races, one per
// track. Built-in tracks register themselves in init() functions and maps
// loaded from disk are added at startup, so the platform can list and start
// races without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/racetrack/internal/core"
)

// Race is the interface every playable race implements.
// Races contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Race interface {
	// ID returns the track identifier (e.g., "track1").
	// Used for CLI commands and result storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Track 1").
	Title() string

	// Reset places fresh cars on the start line.
	// Called once at start and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the race by one fixed tick. At most one turn is
	// played per tick, for the car whose turn it is.
	Step(in core.InputFrame) core.StepResult

	// Render draws the board into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current race state.
	State() core.GameState
}

// RaceInfo contains metadata about a registered race.
type RaceInfo struct {
	ID    string
	Title string
}

// Factory creates a new race instance.
type Factory func() Race

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a race factory to the registry.
// Typically called from an init() function.
// Panics if a race with the same ID is already registered.
func Register(id string, f Factory) {
	if err := TryRegister(id, f); err != nil {
		panic(err.Error())
	}
}

// TryRegister is Register for races discovered at runtime: a duplicate ID
// is reported as an error instead of a panic.
func TryRegister(id string, f Factory) error {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		return fmt.Errorf("registry: race %q already registered", id)
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = f().Title()
	return nil
}

// List returns information about all registered races, sorted by ID.
func List() []RaceInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]RaceInfo, 0, len(factories))
	for id := range factories {
		result = append(result, RaceInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new race by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Race, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown race %q", id)
	}

	return f(), nil
}

// Exists checks if a race with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
