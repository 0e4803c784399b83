package core

// RuntimeConfig contains configuration passed to a race at initialization.
// Races use this to adapt to screen size and tick timing.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
	Players  int // Number of cars (0 = use race config)
	Colors   []int
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a race.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Turns    int  // Turns completed so far
	Winner   int  // Car id of the winner, -1 while racing
	GameOver bool // Whether the race has ended
	Paused   bool // Whether the race is paused
}

// HasWinner reports whether some car crossed the finish.
func (s GameState) HasWinner() bool {
	return s.Winner >= 0
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Moved bool // A turn was played this tick
}
