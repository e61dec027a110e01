package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/penquin/internal/registry"
	"github.com/vovakirdan/penquin/internal/storage"
)

const maxRecentRuns = 100

// StatsView selects what the run history board shows.
type StatsView int

const (
	StatsViewLevels StatsView = iota // one row per level
	StatsViewRecent                  // most recent attempts
)

// ScoreboardKeyMap defines the key bindings for the run history board.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right"),
			key.WithHelp("tab", "levels/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the run history board.
type ScoreboardModel struct {
	store     *storage.Store
	view      StatsView
	titles    map[int]string
	stats     []*storage.LevelStats
	runs      []storage.RunEntry
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates the run history board. store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	titles := make(map[int]string)
	for _, g := range registry.List() {
		if n, err := strconv.Atoi(g.ID); err == nil {
			titles[n] = g.Title
		}
	}

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		store:  store,
		titles: titles,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// load reads both views from the store.
func (m *ScoreboardModel) load() {
	m.stats, m.runs, m.loadErr = nil, nil, nil
	if m.store == nil {
		return
	}

	all, err := m.store.GetAllLevelStats()
	if err != nil {
		m.loadErr = err
		return
	}
	for _, st := range all {
		m.stats = append(m.stats, st)
	}
	sort.Slice(m.stats, func(i, j int) bool { return m.stats[i].Level < m.stats[j].Level })

	m.runs, m.loadErr = m.store.RecentRuns(maxRecentRuns)
}

func (m *ScoreboardModel) columns() []table.Column {
	if m.view == StatsViewRecent {
		return []table.Column{
			{Title: "Level", Width: 16},
			{Title: "Outcome", Width: 9},
			{Title: "Time", Width: 8},
			{Title: "Coins", Width: 6},
			{Title: "Deaths", Width: 7},
			{Title: "Date", Width: 13},
		}
	}
	return []table.Column{
		{Title: "Level", Width: 16},
		{Title: "Tries", Width: 6},
		{Title: "Clears", Width: 7},
		{Title: "Best", Width: 8},
		{Title: "Deaths", Width: 7},
		{Title: "Coins", Width: 6},
	}
}

// createTable creates a new table with the columns of the current view.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ScoreboardModel) levelName(level int) string {
	if title, ok := m.titles[level]; ok {
		return fmt.Sprintf("%d. %s", level, title)
	}
	return strconv.Itoa(level)
}

// FormatTicks renders a tick count as m:ss.t at the given tick rate.
func FormatTicks(ticks, tickRate int) string {
	if ticks <= 0 || tickRate <= 0 {
		return "-"
	}
	tenths := ticks * 10 / tickRate
	return fmt.Sprintf("%d:%02d.%d", tenths/600, tenths/10%60, tenths%10)
}

// updateTableRows fills the table from the loaded data.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row
	if m.view == StatsViewRecent {
		rows = make([]table.Row, len(m.runs))
		for i, r := range m.runs {
			rows[i] = table.Row{
				m.levelName(r.Level),
				r.Outcome,
				FormatTicks(r.Ticks, 60),
				strconv.Itoa(r.Coins),
				strconv.Itoa(r.Deaths),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	} else {
		rows = make([]table.Row, len(m.stats))
		for i, st := range m.stats {
			rows[i] = table.Row{
				m.levelName(st.Level),
				strconv.Itoa(st.Attempts),
				strconv.Itoa(st.Completions),
				FormatTicks(st.BestTicks, 60),
				strconv.Itoa(st.TotalDeaths),
				strconv.Itoa(st.TotalCoins),
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the board.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Switch):
			if m.view == StatsViewLevels {
				m.view = StatsViewRecent
			} else {
				m.view = StatsViewLevels
			}
			m.table = m.createTable()
			m.updateTableRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the board.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := "RUN HISTORY - LEVELS"
	if m.view == StatsViewRecent {
		title = "RUN HISTORY - RECENT"
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or a placeholder message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Run history is unavailable without a database.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not read run history:\n" + m.loadErr.Error())
	case m.view == StatsViewLevels && len(m.stats) == 0,
		m.view == StatsViewRecent && len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nPlay a level to start your history!")
	}
	return m.table.View()
}

// Rows returns the rows currently shown.
func (m ScoreboardModel) Rows() []table.Row {
	return m.table.Rows()
}

// IsGoingBack returns true if the user wants to go back to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the run history board.
// Returns true if the user wants to go back to the menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
