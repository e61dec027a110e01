package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/penquin/internal/core"
	"github.com/vovakirdan/penquin/internal/registry"
	"github.com/vovakirdan/penquin/internal/storage"
)

// Model is the Bubble Tea model for playing one level.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	frame     core.InputFrame
	held      map[core.Action]int
	state     core.GameState
	quitting  bool
	runSaved  bool
}

// NewModel creates a new Bubble Tea model for the given level.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		logger:    logger,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		frame:     core.NewInputFrame(),
		held:      make(map[core.Action]int),
	}
}

// Init starts the level and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) typing() bool {
	ti, ok := m.game.(registry.TextInput)
	return ok && ti.WantsText()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.typing() {
		clear(m.held)
		m.keyMapper.MapTextKey(msg, &m.frame)
		return m, nil
	}

	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keyMapper.MapKey(msg)
	switch {
	case action == core.ActionNone:
	case Held(action):
		m.held[action] = holdTicks
		// A direction press cancels the opposite direction still being held.
		switch action {
		case core.ActionLeft:
			delete(m.held, core.ActionRight)
		case core.ActionRight:
			delete(m.held, core.ActionLeft)
		}
	default:
		m.frame.Set(action)
	}
	return m, nil
}

// handleTick runs one simulation tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	for a, n := range m.held {
		m.frame.Set(a)
		if n <= 1 {
			delete(m.held, a)
		} else {
			m.held[a] = n - 1
		}
	}

	result := m.game.Step(m.frame)
	m.state = result.State
	m.frame.Clear()

	if m.state.GameOver {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished attempt once. Sessions that never ticked a
// level, such as a level that failed to load, are not runs.
func (m *Model) saveRun() {
	if m.runSaved || m.store == nil || m.state.Ticks == 0 {
		return
	}
	m.runSaved = true

	level, err := strconv.Atoi(m.game.ID())
	if err != nil {
		return
	}
	_, err = m.store.SaveRun(storage.RunEntry{
		Level:   level,
		Outcome: m.state.Outcome.String(),
		Ticks:   m.state.Ticks,
		Coins:   m.state.Score,
		Deaths:  m.state.Deaths,
	})
	if err != nil {
		m.logger.Warn("run not recorded", "level", level, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".penquin", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("level%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last state reported by the level.
func (m Model) State() core.GameState {
	return m.state
}

// Run plays one level until it reports game over and returns its final state.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) (core.GameState, error) {
	p := tea.NewProgram(
		NewModel(game, store, logger, cfg),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return core.GameState{}, err
	}
	if fm, ok := final.(Model); ok {
		return fm.State(), nil
	}
	return core.GameState{}, nil
}
