package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/swat-arcade/internal/core"
	"github.com/vovakirdan/swat-arcade/internal/registry"
	"github.com/vovakirdan/swat-arcade/internal/scores"
	"github.com/vovakirdan/swat-arcade/internal/storage"
)

// Services are the dependencies shared by every game session.
// Store may be nil; the arcade then runs without round history.
type Services struct {
	Store  *storage.Store
	Scores *scores.Table
	Logger *log.Logger
}

func (s Services) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

// GameModel is the Bubble Tea model running one game: ticks, key and
// mouse input, the high-score name prompt and the way back to the menu.
type GameModel struct {
	game       registry.Game
	svc        Services
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper

	player    string // name offered in the prompt
	nameInput textinput.Model
	prompting bool
	finished  bool // result of the current round was handled
	lastRank  int

	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model. player pre-fills the high-score prompt.
func NewGameModel(game registry.Game, svc Services, cfg core.RuntimeConfig, player string) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	input := textinput.New()
	input.Placeholder = scores.DefaultName
	input.CharLimit = scores.MaxNameLen
	input.Prompt = ""
	input.SetValue(player)

	return GameModel{
		game:       game,
		svc:        svc,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		player:     player,
		nameInput:  input,
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.offerBest()
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// offerBest tells games with unlockable difficulties the best score on record.
func (m GameModel) offerBest() {
	u, ok := m.game.(registry.Unlocker)
	if !ok || m.svc.Scores == nil {
		return
	}
	u.SetBest(m.svc.Scores.BestAny(m.game.ID()))
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.prompting {
			m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	if m.prompting {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompting {
		return m.handlePrompt(msg)
	}

	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionBack {
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
		}
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handlePrompt edits the player name while a high score awaits one.
func (m GameModel) handlePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.submitName(m.nameInput.Value())
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.submitName(m.nameInput.Value())
		return m, nil
	case tea.KeyEsc:
		m.submitName("")
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// resize processes window resize events.
func (m *GameModel) resize(w, h int) {
	m.config.ScreenW = w
	m.config.ScreenH = h
	m.screen.Resize(w, h)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(w, h)
		return
	}
	// Games that cannot adapt restart unless a result is on screen.
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.gameState = result.State

	var cmd tea.Cmd
	switch {
	case !m.gameState.GameOver:
		m.finished = false
		m.lastRank = 0
	case !m.finished:
		m.finished = true
		cmd = m.finishRound()
	}

	return m, tea.Batch(cmd, tickCmd(m.config.TickRate))
}

// finishRound handles a round that just ended: qualifying scores open the
// name prompt, everything else is recorded right away.
func (m *GameModel) finishRound() tea.Cmd {
	st := m.gameState
	m.svc.logger().Info("round finished",
		"game", m.game.ID(),
		"difficulty", st.Difficulty,
		"score", st.Score,
		"elapsed", st.Elapsed.Round(time.Millisecond),
	)

	if m.svc.Scores != nil && m.svc.Scores.Qualifies(m.game.ID(), st.Difficulty, st.Score) {
		m.prompting = true
		m.nameInput.SetValue(m.player)
		m.nameInput.CursorEnd()
		return m.nameInput.Focus()
	}

	m.saveRound(scores.CleanName(m.player))
	return nil
}

// submitName records the high score under name and closes the prompt.
func (m *GameModel) submitName(name string) {
	name = scores.CleanName(name)
	st := m.gameState

	rec := scores.Record{
		Score:      st.Score,
		PlayerName: name,
		Date:       time.Now(),
		GameMode:   m.game.ID(),
		Difficulty: st.Difficulty,
	}
	if st.Survival {
		rec.SurvivalTime = st.Elapsed.Seconds()
	}
	m.lastRank = m.svc.Scores.Record(rec)
	m.prompting = false
	m.nameInput.Blur()
	m.player = name

	m.saveRound(name)
	m.offerBest()
}

// saveRound appends the finished round to the history. Best effort.
func (m *GameModel) saveRound(name string) {
	if m.svc.Store == nil {
		return
	}
	st := m.gameState
	_, err := m.svc.Store.SaveRound(storage.RoundRecord{
		GameID:     m.game.ID(),
		Difficulty: st.Difficulty,
		Score:      st.Score,
		Duration:   st.Elapsed,
		PlayerName: name,
	})
	if err != nil {
		m.svc.logger().Error("could not save round", "game", m.game.ID(), "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.svc.logger().Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.svc.logger().Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	switch {
	case m.prompting:
		m.drawPrompt()
	case m.gameState.GameOver && m.lastRank > 0:
		msg := fmt.Sprintf("New high score! Rank #%d", m.lastRank)
		m.screen.DrawTextCentered(m.screen.Height()-3, msg, core.ColorAccent)
	}
	return RenderScreen(m.screen)
}

// drawPrompt draws the name entry box over the game's end screen.
func (m GameModel) drawPrompt() {
	name := m.nameInput.Value()
	field := name + "_" + strings.Repeat(" ", max(0, scores.MaxNameLen-utf8.RuneCountInString(name)))
	m.screen.DrawMessageBox("NEW HIGH SCORE!",
		fmt.Sprintf("Score: %d", m.gameState.Score),
		"",
		"Enter your name:",
		"[ "+field+" ]",
		"",
		"ENTER save | ESC skip")
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last game state seen by the model.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays a single game until the player quits or backs out.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig, player string) error {
	model := NewGameModel(game, svc, cfg, player)
	model.standalone = true
	_, err := runGame(model)
	return err
}

// RunGame plays a game launched from the menu. It returns true when the
// player asked to leave the arcade rather than return to the menu.
func RunGame(game registry.Game, svc Services, cfg core.RuntimeConfig, player string) (quit bool, err error) {
	m, err := runGame(NewGameModel(game, svc, cfg, player))
	if err != nil {
		return true, err
	}
	return m.IsQuitting(), nil
}

func runGame(model GameModel) (GameModel, error) {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return model, err
	}
	m, ok := final.(GameModel)
	if !ok {
		return model, nil
	}
	return m, nil
}
