package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/swat-arcade/internal/config"
	"github.com/vovakirdan/swat-arcade/internal/core"
	"github.com/vovakirdan/swat-arcade/internal/registry"
	"github.com/vovakirdan/swat-arcade/internal/scores"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID       string
	Title        string
	Difficulties []string
	Unlocked     int // selectable difficulties, counted from the first
	Difficulty   int // selected difficulty index
}

// difficultyName returns the label of the selected difficulty, or "".
func (i MenuItem) difficultyName() string {
	if i.Difficulty < 0 || i.Difficulty >= len(i.Difficulties) {
		return ""
	}
	return i.Difficulties[i.Difficulty]
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	table          *scores.Table
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a game
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. table may be nil.
func NewMenuModel(table *scores.Table, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))

	for _, g := range games {
		item := MenuItem{
			GameID:       g.ID,
			Title:        g.Title,
			Difficulties: g.Difficulties,
			Unlocked:     len(g.Difficulties),
		}
		if table != nil {
			if game, err := registry.Create(g.ID); err == nil {
				if u, ok := game.(registry.Unlocker); ok {
					item.Unlocked = u.Unlocked(table.BestAny(g.ID))
				}
			}
		}
		if len(g.Difficulties) > 0 {
			item.Difficulty = min(config.IndexForPreset(config.DifficultyNormal, len(g.Difficulties)), max(0, item.Unlocked-1))
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		cursor:    0,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		table:     table,
		config:    cfg,
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

	switch action {
	case MenuActionQuit:
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

	case MenuActionLeft:
		m.shiftDifficulty(-1)

	case MenuActionRight:
		m.shiftDifficulty(1)

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			m.config.Difficulty = selected.Difficulty
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// shiftDifficulty moves the selected difficulty within the unlocked range.
func (m *MenuModel) shiftDifficulty(delta int) {
	if len(m.items) == 0 {
		return
	}
	item := &m.items[m.cursor]
	if item.Unlocked <= 1 {
		return
	}
	item.Difficulty = core.Clamp(item.Difficulty+delta, 0, item.Unlocked-1)
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  S W A T   A R C A D E  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = activeStyle
		}

		line := cursor + item.Title
		if name := item.difficultyName(); name != "" {
			line += fmt.Sprintf("  < %s >", name)
			if item.Unlocked < len(item.Difficulties) {
				line += fmt.Sprintf(" (%d/%d unlocked)", item.Unlocked, len(item.Difficulties))
			}
		}
		if m.table != nil {
			if best := m.table.Best(item.GameID, item.Difficulty); best > 0 {
				line += fmt.Sprintf("  best %d", best)
			}
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate | Left/Right: Difficulty | Enter: Play | Tab: Scores | Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
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
	GameID          string
	Difficulty      int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(table *scores.Table, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(table, cfg)

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
		result.GameID = m.Selected().GameID
		result.Difficulty = m.Selected().Difficulty
	} else {
		result.Quit = true
	}

	return result, nil
}
