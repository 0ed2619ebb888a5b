package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/tza-rng/internal/search"
	"github.com/vovakirdan/tza-rng/internal/window"
)

func init() {
	Register("table", func() Encoder { return tableEncoder{} })
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// tableEncoder prints a summary line followed by the draws, if any.
type tableEncoder struct{}

func (tableEncoder) Name() string        { return "table" }
func (tableEncoder) Description() string { return "Human-readable summary and draw table" }

func (tableEncoder) Encode(w io.Writer, rec search.Record) error {
	if rec.Status != search.StatusFound.String() {
		_, err := fmt.Fprintf(w, "No seed found (%d seeds checked)\n", rec.Checked)
		return err
	}

	if _, err := fmt.Fprintf(w, "Seed %d found (%d seeds checked)\n", rec.Seed, rec.Checked); err != nil {
		return err
	}
	if len(rec.Draws) == 0 {
		return nil
	}

	_, err := fmt.Fprintln(w, DrawTable(rec.Draws))
	return err
}

// DrawTable renders draws as a bordered Pos/Value/Heal/Chest table.
func DrawTable(draws []window.Draw) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers("Pos", "Value", "Heal", "Chest").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle.Align(lipgloss.Right)
		})

	for _, d := range draws {
		t.Row(
			strconv.FormatUint(uint64(d.Position), 10),
			strconv.FormatUint(uint64(d.Value), 10),
			strconv.FormatInt(int64(d.Heal), 10),
			strconv.FormatUint(uint64(d.Chest), 10),
		)
	}

	return t.Render()
}
