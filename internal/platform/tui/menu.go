package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/racetrack/internal/config"
	"github.com/vovakirdan/racetrack/internal/core"
	"github.com/vovakirdan/racetrack/internal/registry"
	"github.com/vovakirdan/racetrack/internal/storage"
)

// MenuItem represents a selectable track in the menu.
type MenuItem struct {
	TrackID   string
	Title     string
	BestMoves int // Fewest winning moves on record, 0 if none
}

// MenuModel is the Bubble Tea model for the track picker.
// Besides the track it lets the player choose how many cars race and
// what colour each car is.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	race           config.RaceConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a track
	openScoreboard bool      // True if user pressed Tab for scoreboard
	showRules      bool
}

// NewMenuModel creates a new menu model. rc provides the initial player
// count and colours.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, rc config.RaceConfig) MenuModel {
	races := registry.List()
	items := make([]MenuItem, 0, len(races))

	for _, r := range races {
		item := MenuItem{TrackID: r.ID, Title: r.Title}
		if store != nil {
			if best, err := store.BestMoves(r.ID); err == nil {
				item.BestMoves = best
			}
		}
		items = append(items, item)
	}

	if cfg.Players > 0 {
		rc.SetPlayers(cfg.Players)
	}
	if len(cfg.Colors) > 0 {
		rc.Players.Colors = append([]int(nil), cfg.Colors...)
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		race:      rc,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.showRules {
		switch action {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionBack, MenuActionSelect, MenuActionRules:
			m.showRules = false
		}
		return m, nil
	}

	switch action {
	case MenuActionRules:
		m.showRules = true

	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionFewerPlayers:
		m.race.SetPlayers(m.race.Players.Count - 1)

	case MenuActionMorePlayers:
		m.race.SetPlayers(m.race.Players.Count + 1)

	case MenuActionCycleColor:
		if slot := colorSlot(msg); slot >= 0 && slot < m.race.Players.Count {
			m.race.CycleColor(slot)
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start the race
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.showRules {
		return m.renderRules()
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  R A C E T R A C K  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a track", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("No tracks available", m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		best := ""
		if item.BestMoves > 0 {
			best = fmt.Sprintf("  (best %d)", item.BestMoves)
		}

		b.WriteString(centerText(cursor+item.Title+best, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Players: < %d >", m.race.Players.Count), m.width))
	b.WriteString("\n")
	b.WriteString(m.renderCars())
	b.WriteString("\n\n")

	controls := "Up/Down: Track  |  Left/Right: Players  |  1-4: Colour  |  Enter: Race  |  Tab: Results  |  ?: Rules  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// renderCars draws one coloured label per car.
func (m MenuModel) renderCars() string {
	labels := make([]string, 0, m.race.Players.Count)
	plain := 0
	for i := range m.race.Players.Count {
		paint := core.PaintFor(m.race.Color(i))
		label := fmt.Sprintf("P%d %s", i+1, paint.Name)
		plain += len(label) + 2
		labels = append(labels, styleFor(paint.Color).Bold(true).Render(label))
	}

	line := strings.Join(labels, "  ")
	if pad := (m.width - plain) / 2; pad > 0 {
		line = strings.Repeat(" ", pad) + line
	}
	return line
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// ShowingRules returns true while the rules screen is open.
func (m MenuModel) ShowingRules() bool {
	return m.showRules
}

// WantsScoreboard returns true if user requested the results screen.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config with the chosen players and colours.
func (m MenuModel) Config() core.RuntimeConfig {
	cfg := m.config
	cfg.Players = m.race.Players.Count
	cfg.Colors = make([]int, m.race.Players.Count)
	for i := range cfg.Colors {
		cfg.Colors[i] = m.race.Color(i)
	}
	return cfg
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	TrackID         string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, rc config.RaceConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg, rc)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.TrackID = m.Selected().TrackID
	} else {
		result.Quit = true
	}

	return result, nil
}
