package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	minWidthForColumns = 90 // Below this the form is stacked above the table
	panelWidth         = 24
	labelWidth         = 9
)

var (
	mutedColor         = lipgloss.Color("240")
	highlightColor     = lipgloss.Color("229")
	selectedBackground = lipgloss.Color("57")

	borderStyle = lipgloss.NormalBorder()

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlightColor)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	labelStyle        = lipgloss.NewStyle().Width(labelWidth)
	focusedLabelStyle = labelStyle.Bold(true).Foreground(highlightColor)
	accentStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	buttonStyle       = lipgloss.NewStyle().
				Foreground(highlightColor).
				Background(selectedBackground).
				Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the seed finder.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("TZA RNG - heal seed finder"))
	b.WriteString("\n")

	left := lipgloss.JoinVertical(lipgloss.Left, m.viewCharacter(), m.viewSeed())
	results := panelStyle.Render(m.table.View())

	if m.width >= minWidthForColumns {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", m.viewHeals(), " ", results))
	} else {
		form := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", m.viewHeals())
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, form, results))
	}
	b.WriteString("\n")

	// Status line
	if m.status != "" {
		style := statusStyle
		if m.failed {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status))
	}
	b.WriteString("\n")

	// Help bar
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// label renders a field label, highlighted when the field has focus.
func (m Model) label(f field, text string) string {
	if m.focus == f {
		return focusedLabelStyle.Render(text)
	}
	return labelStyle.Render(text)
}

// row renders a labelled text input.
func (m Model) row(f field, text string) string {
	return m.label(f, text) + m.inputs[f].View()
}

func (m Model) viewCharacter() string {
	spell := fmt.Sprintf("< %s >", m.character.Spell.Name())
	serenity := "[ ]"
	if m.character.Serenity {
		serenity = "[x]"
	}

	lines := []string{
		titleStyle.Render("Character"),
		m.row(fieldLevel, "Level"),
		m.row(fieldMagic, "Magic"),
		m.label(fieldSpell, "Spell") + spell,
		m.label(fieldSerenity, "Serenity") + serenity,
	}
	return panelStyle.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) viewSeed() string {
	button := buttonStyle.Render("Search (ctrl+f)")
	if m.searching {
		elapsed := time.Since(m.started).Truncate(time.Second)
		button = m.spinner.View() + " Searching... " + elapsed.String()
	}

	lines := []string{
		titleStyle.Render("Seed"),
		m.row(fieldSeed, "Seed"),
		m.row(fieldMin, "Min"),
		m.row(fieldMax, "Max"),
		m.row(fieldLimit, "Iters"),
		"",
		button,
	}
	return panelStyle.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) viewHeals() string {
	lines := []string{titleStyle.Render("Heal Entry")}
	for f := fieldHeal1; f <= fieldHeal5; f++ {
		lines = append(lines, m.row(f, fmt.Sprintf("#%d", int(f-fieldHeal1)+1)))
	}
	lines = append(lines, "", buttonStyle.Render("Find Next (enter)"))
	return panelStyle.Width(panelWidth).Render(strings.Join(lines, "\n"))
}
