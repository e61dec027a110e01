package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/penquin/internal/core"
	"github.com/vovakirdan/penquin/internal/progress"
	"github.com/vovakirdan/penquin/internal/registry"
)

// initCommand must be typed before a level is entered for the first time.
const initCommand = "git init"

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuLockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	menuHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuItem is one entry of the level select.
type MenuItem struct {
	ID       string
	Level    int
	Title    string
	Unlocked bool
	TaskDone bool
}

// MenuModel is the Bubble Tea model for the level select.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	prog      *progress.Progress
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	prompt    textinput.Model
	prompting bool
	promptErr string
	notice    string

	quitting  bool
	selected  *MenuItem
	openStats bool
}

// NewMenuModel creates the level select. The cursor starts on the level
// last played when it is unlocked, else on the highest unlocked level.
func NewMenuModel(prog *progress.Progress, cfg core.RuntimeConfig) MenuModel {
	if prog == nil {
		prog = progress.New(nil, nil)
	}

	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		n, err := strconv.Atoi(g.ID)
		if err != nil {
			continue
		}
		items = append(items, MenuItem{
			ID:       g.ID,
			Level:    n,
			Title:    g.Title,
			Unlocked: prog.IsUnlocked(n),
			TaskDone: prog.TaskCompleted(n),
		})
	}

	ti := textinput.New()
	ti.Prompt = "$ "
	ti.Placeholder = initCommand
	ti.CharLimit = 32
	ti.Width = 24

	m := MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		prog:      prog,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		prompt:    ti,
	}
	m.cursor = m.initialCursor()
	return m
}

func (m MenuModel) initialCursor() int {
	current := m.prog.CurrentLevel()
	best := 0
	for i, it := range m.items {
		if it.Level == current && it.Unlocked {
			return i
		}
		if it.Unlocked {
			best = i
		}
	}
	return best
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompting {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	if m.prompting {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch m.keyMapper.MapKeyToMenuAction(msg) {
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

	case MenuActionStats:
		m.openStats = true
		return m, tea.Quit

	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		if !item.Unlocked {
			m.notice = fmt.Sprintf("Level %d is locked. Finish level %d first.", item.Level, item.Level-1)
			return m, nil
		}
		if !m.prog.InitDone(item.Level) {
			m.prompting = true
			m.promptErr = ""
			m.prompt.Reset()
			cmd := m.prompt.Focus()
			return m, cmd
		}
		m.selected = &item
		return m, tea.Quit
	}

	return m, nil
}

// handlePromptKey runs the git init prompt shown before a first visit.
func (m MenuModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEsc:
		m.prompting = false
		m.prompt.Blur()
		return m, nil

	case tea.KeyEnter:
		if !InitAccepted(m.prompt.Value()) {
			m.promptErr = fmt.Sprintf("not a repository yet: type %q", initCommand)
			m.prompt.Reset()
			return m, nil
		}
		item := m.items[m.cursor]
		m.prog.MarkInitDone(item.Level)
		m.prompting = false
		m.prompt.Blur()
		m.selected = &item
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// InitAccepted reports whether the typed text initializes a level.
// Surrounding whitespace and letter case are ignored.
func InitAccepted(s string) bool {
	return strings.ToLower(strings.TrimSpace(s)) == initCommand
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("P E N Q U I N"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		status := ""
		switch {
		case !item.Unlocked:
			status = "  [locked]"
		case item.TaskDone:
			status = "  [committed]"
		}
		line := fmt.Sprintf("%s%d. %s%s", cursor, item.Level, item.Title, status)

		switch {
		case !item.Unlocked:
			line = menuLockedStyle.Render(line)
		case i == m.cursor:
			line = menuCursorStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.prompting:
		item := m.items[m.cursor]
		b.WriteString(centerText(fmt.Sprintf("Level %d has no repository. Initialize it:", item.Level), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(m.prompt.View(), m.width))
		b.WriteString("\n")
		if m.promptErr != "" {
			b.WriteString(centerText(menuErrorStyle.Render(m.promptErr), m.width))
			b.WriteString("\n")
		}
		b.WriteString(centerText(menuHelpStyle.Render("Enter: run  |  Esc: cancel"), m.width))
	case m.notice != "":
		b.WriteString(centerText(menuErrorStyle.Render(m.notice), m.width))
		b.WriteString("\n")
		fallthrough
	default:
		b.WriteString(centerText(menuHelpStyle.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Stats  |  Q: Quit"), m.width))
	}
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected level, or nil if none was selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if the user asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsStats returns true if the user asked for the run history.
func (m MenuModel) WantsStats() bool {
	return m.openStats
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within the given width. Width is measured in
// terminal cells so styled text centers correctly.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LevelID    string
	Config     core.RuntimeConfig
	WantsStats bool
	Quit       bool
}

// RunMenu runs the level select and returns the selection result.
func RunMenu(prog *progress.Progress, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(prog, cfg),
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

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsStats():
		result.WantsStats = true
	case m.Selected() != nil:
		result.LevelID = m.Selected().ID
	default:
		result.Quit = true
	}
	return result, nil
}
