// Package tui provides the Bubble Tea front-end for the seed finder.
// It handles the form, the result table and the hand-off of seed searches
// to a background search.Pool.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tza-rng/internal/config"
	"github.com/vovakirdan/tza-rng/internal/heal"
	"github.com/vovakirdan/tza-rng/internal/search"
	"github.com/vovakirdan/tza-rng/internal/window"
)

// Options configures a Model.
type Options struct {
	Character  heal.Character
	Seed       uint32 // seed of the window shown at start
	WindowSize int    // draws shown for a seed
	Min        uint32 // initial search range
	Max        uint32
	Limit      int

	// Terminal size until the first resize message. Zero keeps 100x30.
	Width  int
	Height int

	// Pool runs seed searches. Required.
	Pool *search.Pool

	// Context scopes the searches submitted by this model, e.g. to an SSH
	// session. Defaults to context.Background().
	Context context.Context
}

// NewOptions builds model options from the configuration.
func NewOptions(cfg config.Config, pool *search.Pool) Options {
	return Options{
		Character:  cfg.Character.Character(),
		Seed:       cfg.Window.Seed,
		WindowSize: cfg.Window.Size,
		Min:        cfg.Search.Interactive.Min,
		Max:        cfg.Search.Interactive.Max,
		Limit:      cfg.Search.Interactive.Limit,
		Pool:       pool,
	}
}

// searchDoneMsg carries the outcome of a background search.
type searchDoneMsg search.Outcome

// findDoneMsg carries a window slid by a background find next.
type findDoneMsg struct {
	seq   int
	win   *window.Window
	found bool
}

// Model is the Bubble Tea model for the seed finder.
type Model struct {
	opts      Options
	character heal.Character
	win       *window.Window

	inputs [fieldCount]textinput.Model
	focus  field

	table   table.Model
	help    help.Model
	spinner spinner.Model
	keys    KeyMap

	searching bool
	started   time.Time
	finding   bool
	findSeq   int // bumped whenever the window is replaced
	status    string
	failed    bool // status describes an error

	width    int
	height   int
	quitting bool
}

// NewModel creates a seed finder model.
func NewModel(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.WindowSize <= 0 {
		opts.WindowSize = window.DefaultSize
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		opts:      opts,
		character: opts.Character,
		win:       window.New(opts.Seed, opts.Character, opts.WindowSize),
		keys:      DefaultKeyMap(),
		help:      h,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
		width:     100,
		height:    30,
	}
	if opts.Width > 0 && opts.Height > 0 {
		m.width, m.height = opts.Width, opts.Height
		m.help.Width = opts.Width
	}

	m.inputs[fieldLevel] = newInput(strconv.Itoa(int(opts.Character.Level)), 3)
	m.inputs[fieldMagic] = newInput(strconv.Itoa(int(opts.Character.Magic)), 3)
	m.inputs[fieldSeed] = newInput(strconv.FormatUint(uint64(opts.Seed), 10), 10)
	m.inputs[fieldMin] = newInput(strconv.FormatUint(uint64(opts.Min), 10), 10)
	m.inputs[fieldMax] = newInput(strconv.FormatUint(uint64(opts.Max), 10), 10)
	m.inputs[fieldLimit] = newInput(strconv.Itoa(opts.Limit), 9)
	for f := fieldHeal1; f <= fieldHeal5; f++ {
		m.inputs[f] = newInput("", 5)
		m.inputs[f].Placeholder = "heal"
	}
	m.inputs[fieldLevel].Focus()

	m.table = m.createTable()
	m.updateTableRows()

	return m
}

func newInput(value string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = limit
	ti.Width = 11
	ti.SetValue(value)
	return ti
}

// createTable creates the result table sized to the terminal.
func (m *Model) createTable() table.Model {
	columns := []table.Column{
		{Title: "Pos", Width: 7},
		{Title: "Value", Width: 11},
		{Title: "Heal", Width: 6},
		{Title: "Chest", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-6, 5)), // Leave room for title, status and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(borderStyle).
		BorderForeground(mutedColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(highlightColor).
		Background(selectedBackground).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows copies the window into the table.
func (m *Model) updateTableRows() {
	draws := m.win.Draws()
	rows := make([]table.Row, len(draws))
	for i, d := range draws {
		rows[i] = table.Row{
			strconv.FormatUint(uint64(d.Position), 10),
			strconv.FormatUint(uint64(d.Value), 10),
			strconv.FormatInt(int64(d.Heal), 10),
			strconv.FormatUint(uint64(d.Chest), 10),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(m.height-6, 5))
		m.help.Width = msg.Width
		return m, nil

	case searchDoneMsg:
		return m.handleSearchDone(search.Outcome(msg))

	case findDoneMsg:
		return m.handleFindDone(msg)

	case spinner.TickMsg:
		if !m.searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other input messages
	var cmd tea.Cmd
	if m.focus.isText() {
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		cmd := m.setFocus((m.focus + 1) % fieldCount)
		return m, cmd

	case key.Matches(msg, m.keys.PrevField):
		cmd := m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, cmd

	case key.Matches(msg, m.keys.FindNext):
		return m.startFindNext()

	case key.Matches(msg, m.keys.FindSeed):
		return m.startSearch()

	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.Top):
		m.table.GotoTop()
		return m, nil
	}

	switch m.focus {
	case fieldSpell:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.setSpell(nextSpell(m.character.Spell, -1))
		case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Toggle):
			m.setSpell(nextSpell(m.character.Spell, 1))
		}
		return m, nil

	case fieldSerenity:
		if key.Matches(msg, m.keys.Toggle, m.keys.Left, m.keys.Right) {
			m.character.Serenity = !m.character.Serenity
			m.applyCharacter()
		}
		return m, nil
	}

	// Pass to the focused text input
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() != before {
		m.inputChanged(m.focus)
	}
	return m, cmd
}

// setFocus moves the focus and returns the blink command for text fields.
func (m *Model) setFocus(f field) tea.Cmd {
	if m.focus.isText() {
		m.inputs[m.focus].Blur()
	}
	m.focus = f
	if f.isText() {
		return m.inputs[f].Focus()
	}
	return nil
}

// inputChanged applies the side effects of editing a text field.
// Range, limit and heal fields are only read when an action runs.
func (m *Model) inputChanged(f field) {
	switch f {
	case fieldLevel:
		m.character.Level = parseStat(m.inputs[f].Value())
		m.applyCharacter()
	case fieldMagic:
		m.character.Magic = parseStat(m.inputs[f].Value())
		m.applyCharacter()
	case fieldSeed:
		m.replaceWindow(window.New(parseSeed(m.inputs[f].Value()), m.character, m.opts.WindowSize))
		m.setStatus(fmt.Sprintf("Showing seed %d", m.win.Seed()))
		m.updateTableRows()
	}
}

func (m *Model) setSpell(s heal.Spell) {
	m.character.Spell = s
	m.applyCharacter()
}

// applyCharacter recomputes the heals shown for the current window.
func (m *Model) applyCharacter() {
	m.win.Reapply(m.character)
	m.updateTableRows()
}

// heals returns the leading run of valid heal entries.
func (m Model) heals() []int32 {
	values := make([]string, 0, healFieldCount)
	for f := fieldHeal1; f <= fieldHeal5; f++ {
		values = append(values, m.inputs[f].Value())
	}
	return collectHeals(values)
}

// replaceWindow swaps the displayed window. A find next still running on
// the old one is discarded when it completes.
func (m *Model) replaceWindow(w *window.Window) {
	m.win = w
	m.findSeq++
	m.finding = false
}

// startFindNext slides a copy of the current window to the next occurrence
// of the heals. Up to window.DefaultLimit slides may run, so it happens off
// the update loop.
func (m Model) startFindNext() (tea.Model, tea.Cmd) {
	if m.finding {
		return m, nil
	}
	m.finding = true
	m.findSeq++
	m.setStatus("Finding heals...")

	seq := m.findSeq
	win := m.win.Clone()
	character := m.character
	target := m.heals()
	return m, func() tea.Msg {
		found := win.FindNext(character, target, 0)
		return findDoneMsg{seq: seq, win: win, found: found}
	}
}

// handleFindDone shows the window slid by a find next.
func (m Model) handleFindDone(msg findDoneMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.findSeq {
		return m, nil
	}
	m.finding = false
	m.win = msg.win
	m.win.Reapply(m.character) // stats may have changed meanwhile

	if msg.found {
		m.setStatus(fmt.Sprintf("Found at position %d", m.win.Position()-uint32(m.win.Len())+1))
	} else {
		m.setError(fmt.Sprintf("No match within %d draws", window.DefaultLimit))
	}
	m.updateTableRows()
	return m, nil
}

// request builds a search request from the form.
func (m Model) request() search.Request {
	return search.Request{
		Character: m.character,
		Target:    m.heals(),
		Min:       parseUint32(m.inputs[fieldMin].Value(), fallbackMin),
		Max:       parseUint32(m.inputs[fieldMax].Value(), fallbackMax),
		Limit:     parseLimit(m.inputs[fieldLimit].Value(), fallbackLimit),
	}
}

// startSearch submits a seed search to the pool.
func (m Model) startSearch() (tea.Model, tea.Cmd) {
	if m.searching {
		return m, nil
	}
	req := m.request()
	if len(req.Target) == 0 {
		m.setError("Enter at least one heal")
		return m, nil
	}

	m.searching = true
	m.started = time.Now()
	m.setStatus(fmt.Sprintf("Searching seeds %d to %d", req.Min, req.Max))

	return m, tea.Batch(submitSearch(m.opts.Context, m.opts.Pool, req), m.spinner.Tick)
}

// submitSearch returns a command that queues req and waits for its outcome.
// Submit may block on a full queue, so it runs off the update loop.
func submitSearch(ctx context.Context, pool *search.Pool, req search.Request) tea.Cmd {
	return func() tea.Msg {
		return searchDoneMsg(<-pool.Submit(ctx, req))
	}
}

// handleSearchDone shows the outcome of a background search.
func (m Model) handleSearchDone(out search.Outcome) (tea.Model, tea.Cmd) {
	m.searching = false
	elapsed := time.Since(m.started).Round(time.Millisecond)

	switch {
	case out.Err != nil:
		m.setError(fmt.Sprintf("Search failed: %v", out.Err))
	case out.Result.Found():
		m.replaceWindow(out.Result.Window)
		m.win.Reapply(m.character)
		m.win.Grow(m.character, m.opts.WindowSize)
		m.inputs[fieldSeed].SetValue(strconv.FormatUint(uint64(out.Result.Seed), 10))
		m.setStatus(fmt.Sprintf("Seed %d found after %d seeds in %s", out.Result.Seed, out.Result.Checked, elapsed))
		m.updateTableRows()
	default:
		m.setError(fmt.Sprintf("No seed found (%d seeds checked in %s)", out.Result.Checked, elapsed))
	}
	return m, nil
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.failed = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.failed = true
}

// Character returns the character as currently configured in the form.
func (m Model) Character() heal.Character {
	return m.character
}

// Window returns the window currently displayed.
func (m Model) Window() *window.Window {
	return m.win
}

// Finding reports whether a find next is in flight.
func (m Model) Finding() bool {
	return m.finding
}

// Searching reports whether a seed search is in flight.
func (m Model) Searching() bool {
	return m.searching
}

// Status returns the current status line.
func (m Model) Status() string {
	return m.status
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
