// Package race runs a turn-based vector race on one track.
//
// Cars take turns in id order. On its turn a car picks one of nine
// accelerations; the engine resolves the move and any crash. The first car
// to stop inside the finish zone wins. Crashed cars sit out until they
// respawn on their start cell, or for good when respawn is disabled.
package race

import (
	"sync"

	"github.com/vovakirdan/racetrack/internal/config"
	"github.com/vovakirdan/racetrack/internal/core"
	"github.com/vovakirdan/racetrack/internal/engine"
	"github.com/vovakirdan/racetrack/internal/registry"
	"github.com/vovakirdan/racetrack/internal/track"
)

const defaultTickRate = 60

// Package-level settings applied on the next Reset.
var (
	settingsMu sync.RWMutex
	raceConfig = config.DefaultRaceConfig()
	observer   Observer
)

// SetConfig sets the race configuration used by races reset afterwards.
func SetConfig(cfg config.RaceConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	raceConfig = cfg
}

// Config returns the current race configuration.
func Config() config.RaceConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return raceConfig
}

// SetObserver installs an observer notified after every turn. Pass nil to
// remove it.
func SetObserver(o Observer) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	observer = o
}

func currentObserver() Observer {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return observer
}

// racer is the race-level bookkeeping for one car.
type racer struct {
	start      core.Point
	trail      []core.Point
	moves      int
	crashes    int
	waiting    bool   // Crashed and counting down to respawn
	respawnAt  uint64 // Tick at which a waiting car respawns
	eliminated bool
}

// Game implements registry.Race for a single track.
type Game struct {
	track   track.Track
	cfg     config.RaceConfig
	runtime core.RuntimeConfig

	sess    *engine.Session
	racers  []racer
	current int
	turns   int
	tick    uint64
	last    engine.Outcome
	winner  int
	over    bool
	paused  bool
	err     error

	showWalls bool
}

// New creates a race on t. Call Reset before stepping it.
func New(t track.Track) *Game {
	return &Game{track: t, winner: -1}
}

// ID returns the track identifier.
func (g *Game) ID() string {
	return g.track.ID
}

// Title returns the track name.
func (g *Game) Title() string {
	return g.track.Name
}

// Track returns the track being raced.
func (g *Game) Track() track.Track {
	return g.track
}

// Reset builds a fresh session and lines the cars up on the start zone.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.cfg = Config()
	if rc.Players > 0 {
		g.cfg.SetPlayers(rc.Players)
	}
	if len(rc.Colors) > 0 {
		g.cfg.Players.Colors = append([]int(nil), rc.Colors...)
	}

	g.tick = 0
	g.turns = 0
	g.current = 0
	g.winner = -1
	g.over = false
	g.paused = false
	g.err = nil
	g.last = engine.Outcome{Other: -1}
	g.showWalls = g.cfg.Display.ShowWalls
	g.racers = nil

	w, h := g.gridSize()
	sess, err := engine.NewSession(w, h)
	if err != nil {
		g.err = err
		g.sess = nil
		g.over = true
		return
	}
	g.track.Load(sess)
	g.sess = sess

	count := core.Clamp(g.cfg.Players.Count, config.MinPlayers, config.MaxPlayers)
	for i, p := range g.track.StartPositions(count) {
		p = core.Pt(core.Clamp(p.X, 0, w-1), core.Clamp(p.Y, 0, h-1))
		if _, err := sess.AddCar(p.X, p.Y, g.cfg.Color(i)); err != nil {
			g.err = err
			g.over = true
			return
		}
		g.racers = append(g.racers, racer{start: p, trail: []core.Point{p}})
	}

	g.notify()
}

// gridSize is the track's own size, or the configured grid.
func (g *Game) gridSize() (int, int) {
	w, h := g.track.Width, g.track.Height
	if w <= 0 {
		w = g.cfg.Grid.Width
	}
	if h <= 0 {
		h = g.cfg.Grid.Height
	}
	return w, h
}

func (g *Game) tickRate() int {
	if g.runtime.TickRate > 0 {
		return g.runtime.TickRate
	}
	return defaultTickRate
}

// Step advances the race by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if in.Has(core.ActionRestart) && g.over {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionToggleWalls) {
		g.showWalls = !g.showWalls
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.over {
		g.paused = !g.paused
	}

	if g.over || g.paused || g.sess == nil {
		return core.StepResult{State: g.State()}
	}

	g.respawnDue()
	g.skipInactive()

	moved := false
	if accel, ok := in.Turn(); ok {
		moved = g.play(accel)
	}

	return core.StepResult{State: g.State(), Moved: moved}
}

// play spends the current car's turn on acceleration a.
func (g *Game) play(a core.Vec) bool {
	id := g.current
	if g.racers[id].waiting || g.racers[id].eliminated {
		return false
	}

	out, err := g.sess.ApplyAcceleration(id, a.X, a.Y)
	if err != nil || out.Kind == engine.OutcomeFrozen {
		return false
	}

	g.turns++
	r := &g.racers[id]
	r.moves++
	r.trail = append(r.trail, out.Path.B)
	g.last = out

	g.noteCrashes()

	switch {
	case !out.Crashed() && g.track.Finished(out.Path.B):
		g.winner = id
		g.over = true
	case g.allEliminated():
		g.over = true
	case g.cfg.Rules.MaxTurns > 0 && g.turns >= g.cfg.Rules.MaxTurns:
		g.over = true
	default:
		g.advance()
	}

	g.notify()
	return true
}

// noteCrashes starts the respawn countdown, or eliminates, every car that
// crashed since the last check. A car-on-car crash freezes two cars at once.
func (g *Game) noteCrashes() {
	delay := g.cfg.RespawnTicks(g.tickRate())
	for id, view := range g.sess.Cars() {
		r := &g.racers[id]
		if !view.Crashed() || r.waiting || r.eliminated {
			continue
		}
		r.crashes++
		if delay < 0 {
			r.eliminated = true
			continue
		}
		r.waiting = true
		r.respawnAt = g.tick + uint64(delay)
	}
}

// respawnDue returns cars whose countdown has run out to their start cell.
func (g *Game) respawnDue() {
	respawned := false
	for id := range g.racers {
		r := &g.racers[id]
		if !r.waiting || g.tick < r.respawnAt {
			continue
		}
		if err := g.sess.ResetCar(id, r.start.X, r.start.Y); err != nil {
			continue
		}
		r.waiting = false
		r.trail = []core.Point{r.start}
		respawned = true
	}
	if respawned {
		g.notify()
	}
}

// active reports whether car id can take a turn now.
func (g *Game) active(id int) bool {
	r := g.racers[id]
	return !r.waiting && !r.eliminated
}

// skipInactive moves the turn off a car that cannot play. When no car can
// play the turn stays put until someone respawns.
func (g *Game) skipInactive() {
	if len(g.racers) == 0 || g.active(g.current) {
		return
	}
	g.advance()
}

// advance passes the turn to the next car that can play, in id order.
func (g *Game) advance() {
	n := len(g.racers)
	for step := 1; step <= n; step++ {
		next := (g.current + step) % n
		if g.active(next) {
			g.current = next
			return
		}
	}
}

func (g *Game) allEliminated() bool {
	for _, r := range g.racers {
		if !r.eliminated {
			return false
		}
	}
	return len(g.racers) > 0
}

// State returns the current race state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Turns:    g.turns,
		Winner:   g.winner,
		GameOver: g.over,
		Paused:   g.paused,
	}
}

// Err returns the error that stopped the race from starting, if any.
func (g *Game) Err() error {
	return g.err
}

// Current returns the id of the car whose turn it is.
func (g *Game) Current() int {
	return g.current
}

// LastOutcome returns the outcome of the most recent turn.
func (g *Game) LastOutcome() engine.Outcome {
	return g.last
}

// Result summarises a finished race.
type Result struct {
	Track       string
	Players     int
	Winner      int // Car id, -1 when nobody finished
	WinnerColor int
	Moves       int // Moves made by the winner
	Turns       int // Turns made by all cars
	Crashes     int
}

// Result returns the race summary once the race is over.
func (g *Game) Result() (Result, bool) {
	if !g.over || g.sess == nil {
		return Result{}, false
	}

	res := Result{
		Track:   g.track.ID,
		Players: len(g.racers),
		Winner:  g.winner,
		Turns:   g.turns,
	}
	for _, r := range g.racers {
		res.Crashes += r.crashes
	}
	if g.winner >= 0 {
		res.Moves = g.racers[g.winner].moves
		if view, err := g.sess.Car(g.winner); err == nil {
			res.WinnerColor = view.Color
		}
	}
	return res, true
}

func (g *Game) notify() {
	if o := currentObserver(); o != nil {
		o.RaceUpdated(g.Snapshot())
	}
}

// RegisterTracks registers a race for every track whose ID is free.
// Tracks with a taken ID are returned in skipped.
func RegisterTracks(tracks []track.Track) (skipped []track.Track) {
	for _, t := range tracks {
		err := registry.TryRegister(t.ID, func() registry.Race {
			return New(t)
		})
		if err != nil {
			skipped = append(skipped, t)
		}
	}
	return skipped
}

func init() {
	tracks, err := track.Builtin()
	if err != nil {
		panic(err)
	}
	for _, t := range tracks {
		registry.Register(t.ID, func() registry.Race {
			return New(t)
		})
	}
}
