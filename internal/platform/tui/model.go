package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/racetrack/internal/core"
	"github.com/vovakirdan/racetrack/internal/registry"
	"github.com/vovakirdan/racetrack/internal/storage"
)

// Model is the Bubble Tea model for running one race.
type Model struct {
	race       registry.Race
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	driver     string
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	saved      bool  // Whether the result has been handled for the current race
	saveErr    error // Last failed save, if any
}

// NewModel creates a new Bubble Tea model for the given race.
// driver names the player in stored results.
func NewModel(r registry.Race, store *storage.Store, cfg core.RuntimeConfig, driver string) Model {
	return Model{
		race:       r,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		driver:     driver,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init lines the cars up and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.race.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The board is redrawn to fit; the race itself is kept.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu once the race is over or paused
	if m.keyMapper.MapKeyToMenuAction(msg) == MenuActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	result := m.race.Step(m.inputFrame)
	m.gameState = result.State

	// A restart starts a new race to record
	if wasOver && !m.gameState.GameOver {
		m.saved = false
	}

	if m.gameState.GameOver && !m.saved {
		// A failed save is not retried; the race screen stays up
		m.saveErr = saveResult(m.store, m.race, m.driver)
		if m.saveErr != nil {
			log.Warn("could not save race result", "error", m.saveErr)
		}
		m.saved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.race.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".racetrack", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.race.ID(), timestamp))

	//nolint:errcheck // Best-effort save, the race continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.race.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// SaveErr returns the error from the last failed result save.
func (m Model) SaveErr() error {
	return m.saveErr
}

// BackToMenu returns true if the user asked to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single race.
// Returns true when the user asked to go back to the menu.
func Run(r registry.Race, store *storage.Store, cfg core.RuntimeConfig, driver string) (backToMenu bool, err error) {
	model := NewModel(r, store, cfg, driver)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(Model); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
