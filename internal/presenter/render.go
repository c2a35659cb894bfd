package presenter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	symbolStyle   = cellStyle.Bold(true).Foreground(lipgloss.Color("3"))
	positiveStyle = cellStyle.Foreground(lipgloss.Color("2"))
	negativeStyle = cellStyle.Foreground(lipgloss.Color("1"))
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	subtitleStyle = lipgloss.NewStyle().Faint(true)
	panelStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("5")).
			Padding(1, 1)
	emptyStyle = lipgloss.NewStyle().
			Faint(true).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// String draws the table as terminal text
func (t *Table) String() string {
	if t.IsEmpty() {
		return emptyStyle.Render(t.EmptyText)
	}

	headers := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headers[i] = col.Name
	}

	grid := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(t.Rows...).
		StyleFunc(t.cellStyle)

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(t.Title),
		grid.Render(),
		subtitleStyle.Render("Generated on "+t.GeneratedAt.Format("2006-01-02 15:04:05")),
	)
	return panelStyle.Render(body)
}

// Render writes the drawn table to w
func (t *Table) Render(w io.Writer) error {
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func (t *Table) cellStyle(row, col int) lipgloss.Style {
	if row == table.HeaderRow {
		return headerStyle
	}
	if col >= len(t.Columns) {
		return cellStyle
	}

	column := t.Columns[col]
	style := cellStyle
	switch {
	case col == 0:
		style = symbolStyle
	case column.Signed && row >= 0 && row < len(t.Rows):
		cell := t.Rows[row][col]
		if strings.HasPrefix(cell, "+") {
			style = positiveStyle
		} else if strings.HasPrefix(cell, "-") {
			style = negativeStyle
		}
	}

	if column.AlignRight {
		style = style.Align(lipgloss.Right)
	}
	return style
}
