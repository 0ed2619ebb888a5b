package tui

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tza-rng/internal/config"
	"github.com/vovakirdan/tza-rng/internal/heal"
	"github.com/vovakirdan/tza-rng/internal/mt"
	"github.com/vovakirdan/tza-rng/internal/search"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	logger := log.New(io.Discard)
	pool := search.NewPool(search.DefaultPoolConfig(), search.NewSearcher(1, logger), logger)
	pool.Start()
	t.Cleanup(pool.Stop)

	return NewModel(NewOptions(config.DefaultConfig(), pool))
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return model, cmd
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = update(t, m, k)
	}
	return m
}

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyTab       = tea.KeyMsg{Type: tea.KeyTab}
	keyBackspace = tea.KeyMsg{Type: tea.KeyBackspace}
	keyEnter     = tea.KeyMsg{Type: tea.KeyEnter}
	keyRight     = tea.KeyMsg{Type: tea.KeyRight}
	keySpace     = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

// focusField tabs forward until f has focus.
func focusField(t *testing.T, m Model, f field) Model {
	t.Helper()
	for i := 0; m.focus != f; i++ {
		if i > int(fieldCount) {
			t.Fatalf("field %d never focused", f)
		}
		m = press(t, m, keyTab)
	}
	return m
}

// setHeals fills the heal entries in order.
func setHeals(t *testing.T, m Model, heals ...string) Model {
	t.Helper()
	for i, h := range heals {
		m = focusField(t, m, fieldHeal1+field(i))
		m = press(t, m, typeText(h))
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t)

	if m.Character() != heal.DefaultCharacter() {
		t.Errorf("Character() = %+v", m.Character())
	}
	w := m.Window()
	if w.Seed() != mt.DefaultSeed || w.Len() != 500 {
		t.Errorf("window seed %d len %d, expected %d and 500", w.Seed(), w.Len(), mt.DefaultSeed)
	}
	draws := w.Draws()
	if draws[0].Position != 1 || draws[0].Heal != 2259 || draws[0].Chest != 36 {
		t.Errorf("first draw = %+v", draws[0])
	}
	if m.inputs[fieldMin].Value() != "5500000" || m.inputs[fieldMax].Value() != "7500000" || m.inputs[fieldLimit].Value() != "1000" {
		t.Errorf("range inputs = %q %q %q",
			m.inputs[fieldMin].Value(), m.inputs[fieldMax].Value(), m.inputs[fieldLimit].Value())
	}
	if m.focus != fieldLevel {
		t.Errorf("initial focus = %d, expected level", m.focus)
	}
}

func TestStatInput(t *testing.T) {
	m := newTestModel(t)

	// Clear "70": unparsable text gives 1
	m = press(t, m, keyBackspace, keyBackspace)
	if got := m.Character().Level; got != 1 {
		t.Errorf("empty level = %d, expected 1", got)
	}

	m = press(t, m, typeText("150"))
	if got := m.Character().Level; got != 99 {
		t.Errorf("level 150 = %d, expected 99", got)
	}

	expected := heal.Character{Level: 99, Magic: 99, Spell: heal.Cure, Serenity: true}
	first := m.Window().Draws()[0]
	if first.Heal != expected.Cast(first.Value) {
		t.Errorf("heal not reapplied: %d, expected %d", first.Heal, expected.Cast(first.Value))
	}
}

func TestSpellAndSerenity(t *testing.T) {
	m := newTestModel(t)

	m = focusField(t, m, fieldSpell)
	m = press(t, m, keyRight)
	if got := m.Character().Spell; got != heal.Cura {
		t.Errorf("spell = %v, expected Cura", got)
	}

	m = focusField(t, m, fieldSerenity)
	m = press(t, m, keySpace)
	if m.Character().Serenity {
		t.Error("serenity should be toggled off")
	}

	c := m.Character()
	for _, d := range m.Window().Draws()[:10] {
		if d.Heal != c.Cast(d.Value) {
			t.Fatalf("draw %d heal %d, expected %d", d.Position, d.Heal, c.Cast(d.Value))
		}
	}
}

func TestSeedEditRebuildsWindow(t *testing.T) {
	m := newTestModel(t)

	m = focusField(t, m, fieldSeed)
	m = press(t, m, keyBackspace, keyBackspace, keyBackspace, keyBackspace)
	m = press(t, m, typeText("5489"))

	w := m.Window()
	if w.Seed() != 5489 || w.Len() != 500 {
		t.Fatalf("window seed %d len %d", w.Seed(), w.Len())
	}
	if got := w.Draws()[0].Value; got != 3499211612 {
		t.Errorf("first value = %d, expected 3499211612", got)
	}
}

func TestFindNext(t *testing.T) {
	m := newTestModel(t)
	m = setHeals(t, m, "2044", "2219")

	before := m.Window().Draws()
	m, cmd := update(t, m, keyEnter)
	if cmd == nil || !m.Finding() {
		t.Fatal("find next did not start")
	}
	// The displayed window is untouched until the result arrives
	if got := m.Window().Draws()[0]; got != before[0] {
		t.Errorf("window changed before the result: %+v", got)
	}
	if _, again := update(t, m, keyEnter); again != nil {
		t.Error("second find next should be ignored while one runs")
	}

	m, _ = update(t, m, cmd())
	if m.Finding() {
		t.Error("still finding after the result")
	}

	draws := m.Window().Draws()
	if draws[0].Position != 3 || draws[0].Heal != 2044 || draws[1].Heal != 2219 {
		t.Errorf("head = %+v %+v, expected heals 2044, 2219 at position 3", draws[0], draws[1])
	}
	if m.Window().Len() != 500 {
		t.Errorf("window length = %d, expected 500", m.Window().Len())
	}
	if !strings.Contains(m.Status(), "position 3") {
		t.Errorf("status = %q", m.Status())
	}
}

func TestFindNextDiscardedAfterSeedEdit(t *testing.T) {
	m := newTestModel(t)
	m = setHeals(t, m, "2044", "2219")

	m, cmd := update(t, m, keyEnter)
	if cmd == nil {
		t.Fatal("find next did not start")
	}

	m = focusField(t, m, fieldSeed)
	m = press(t, m, keyBackspace, keyBackspace, keyBackspace, keyBackspace)
	m = press(t, m, typeText("5489"))

	m, _ = update(t, m, cmd())
	w := m.Window()
	if w.Seed() != 5489 || w.Position() != 500 {
		t.Errorf("window seed %d position %d, expected the edited seed untouched", w.Seed(), w.Position())
	}
	if m.Finding() {
		t.Error("finding flag left set")
	}
}

func TestSearchNeedsHeals(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	if cmd != nil {
		t.Error("search without heals should not start a command")
	}
	if m.Searching() || !m.failed {
		t.Errorf("searching=%v status=%q", m.Searching(), m.Status())
	}
}

func TestSearchFindsSeed(t *testing.T) {
	m := newTestModel(t)
	m = setHeals(t, m, "2255", "2063", "2029", "2211", "2195")

	m = focusField(t, m, fieldMin)
	m.inputs[fieldMin].SetValue("6357000")
	m.inputs[fieldMax].SetValue("6358000")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	if !m.Searching() || cmd == nil {
		t.Fatal("search did not start")
	}

	// A second request while searching is ignored
	if _, again := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlF}); again != nil {
		t.Error("second search should be ignored")
	}

	var done tea.Msg
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected a batch command")
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(searchDoneMsg); ok {
			done = msg
		}
	}
	if done == nil {
		t.Fatal("no search outcome delivered")
	}

	m, _ = update(t, m, done)
	if m.Searching() {
		t.Error("still searching after outcome")
	}
	w := m.Window()
	if w.Seed() != 6357987 {
		t.Fatalf("window seed = %d, expected 6357987 (status %q)", w.Seed(), m.Status())
	}
	if w.Len() != 500 {
		t.Errorf("found window grown to %d, expected 500", w.Len())
	}
	heals := w.Heals()[:5]
	for i, want := range []int32{2255, 2063, 2029, 2211, 2195} {
		if heals[i] != want {
			t.Errorf("heal[%d] = %d, expected %d", i, heals[i], want)
		}
	}
	if m.inputs[fieldSeed].Value() != "6357987" {
		t.Errorf("seed input = %q", m.inputs[fieldSeed].Value())
	}
}

func TestSearchOutcomeError(t *testing.T) {
	m := newTestModel(t)
	m.searching = true

	m, _ = update(t, m, searchDoneMsg{Err: context.Canceled})
	if m.Searching() || !m.failed || !strings.Contains(m.Status(), "canceled") {
		t.Errorf("searching=%v failed=%v status=%q", m.Searching(), m.failed, m.Status())
	}
	if m.Window().Seed() != mt.DefaultSeed {
		t.Error("window should be unchanged after a failed search")
	}
}

func TestSearchOutcomeNotFound(t *testing.T) {
	m := newTestModel(t)
	m.searching = true

	m, _ = update(t, m, searchDoneMsg{Result: search.Result{Status: search.StatusNotFound, Checked: 12}})
	if !strings.Contains(m.Status(), "No seed found") {
		t.Errorf("status = %q", m.Status())
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsQuitting() || cmd == nil {
		t.Error("esc should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty when quitting")
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t)

	for _, size := range []tea.WindowSizeMsg{{Width: 120, Height: 40}, {Width: 70, Height: 40}} {
		m, _ = update(t, m, size)
		out := m.View()
		for _, s := range []string{"Character", "Seed", "Heal Entry", "Pos", "Chest", "2259"} {
			if !strings.Contains(out, s) {
				t.Errorf("width %d: view missing %q", size.Width, s)
			}
		}
	}
}

func TestParseStat(t *testing.T) {
	tests := []struct {
		in       string
		expected uint8
	}{
		{"70", 70},
		{"0", 0},
		{"99", 99},
		{"150", 99},
		{"300", 1}, // not a byte
		{"", 1},
		{"abc", 1},
		{"-5", 1},
	}

	for _, tc := range tests {
		if got := parseStat(tc.in); got != tc.expected {
			t.Errorf("parseStat(%q) = %d, expected %d", tc.in, got, tc.expected)
		}
	}
}

func TestParseFallbacks(t *testing.T) {
	if got := parseSeed("x"); got != mt.DefaultSeed {
		t.Errorf("parseSeed(x) = %d", got)
	}
	if got := parseSeed("5489"); got != 5489 {
		t.Errorf("parseSeed(5489) = %d", got)
	}
	if got := parseUint32("", fallbackMax); got != fallbackMax {
		t.Errorf("parseUint32 fallback = %d", got)
	}
	if got := parseLimit("", fallbackLimit); got != 5000 {
		t.Errorf("parseLimit fallback = %d", got)
	}
	if got := parseLimit("-3", fallbackLimit); got != 5000 {
		t.Errorf("parseLimit(-3) = %d", got)
	}
	if got := parseLimit("0", fallbackLimit); got != 5000 {
		t.Errorf("parseLimit(0) = %d, expected the 5000 fallback", got)
	}
	if got := parseLimit("250", fallbackLimit); got != 250 {
		t.Errorf("parseLimit(250) = %d", got)
	}
}

func TestCollectHeals(t *testing.T) {
	tests := []struct {
		name     string
		in       []string
		expected []int32
	}{
		{"all set", []string{"1", "2", "3", "4", "5"}, []int32{1, 2, 3, 4, 5}},
		{"stops at gap", []string{"1", "", "3"}, []int32{1}},
		{"stops at junk", []string{"10", "x", "30"}, []int32{10}},
		{"empty", []string{"", "", ""}, []int32{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := collectHeals(tc.in)
			if len(got) != len(tc.expected) {
				t.Fatalf("collectHeals() = %v, expected %v", got, tc.expected)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("collectHeals()[%d] = %d, expected %d", i, got[i], tc.expected[i])
				}
			}
		})
	}
}

func TestNextSpellWraps(t *testing.T) {
	if got := nextSpell(heal.Curaja, 1); got != heal.Cure {
		t.Errorf("nextSpell(Curaja, 1) = %v", got)
	}
	if got := nextSpell(heal.Cure, -1); got != heal.Curaja {
		t.Errorf("nextSpell(Cure, -1) = %v", got)
	}
}

func TestKeyMapHelp(t *testing.T) {
	k := DefaultKeyMap()
	if len(k.ShortHelp()) == 0 || len(k.FullHelp()) == 0 {
		t.Error("help bindings should not be empty")
	}
}
