// Package render draws boards and cards for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/flvvius/hackathon-sisc-2025/frontend/internal/boardview"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
)

const columnWidth = 32

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	columnStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Width(columnWidth).Padding(0, 1)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

var labelColors = map[domain.LabelColor]lipgloss.Color{
	domain.ColorGreen:  "2",
	domain.ColorRed:    "1",
	domain.ColorBlue:   "4",
	domain.ColorYellow: "3",
	domain.ColorPurple: "5",
	domain.ColorPink:   "13",
	domain.ColorIndigo: "12",
	domain.ColorGray:   "8",
}

var statusMarks = map[domain.Status]string{
	domain.StatusTodo:       "[ ]",
	domain.StatusInProgress: "[~]",
	domain.StatusCompleted:  "[x]",
}

// Board writes the columns side by side under title.
func Board(w io.Writer, title string, columns []boardview.Column) error {
	blocks := make([]string, 0, len(columns))
	for _, col := range columns {
		blocks = append(blocks, Column(col))
	}
	out := titleStyle.Render(title)
	if len(blocks) == 0 {
		out += "\n" + mutedStyle.Render("no lists")
	} else {
		out += "\n" + lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

func Column(col boardview.Column) string {
	header := fmt.Sprintf("%s (%d)", col.Title, len(col.Cards))
	lines := []string{headerStyle.Render(header), mutedStyle.Render(col.Id)}
	for _, card := range col.Cards {
		lines = append(lines, CardLine(card))
	}
	body := strings.Join(lines, "\n")
	if col.Pending {
		body = pendingStyle.Render(body)
	}
	return columnStyle.Render(body)
}

// CardLine is a one-line summary: status mark, title, labels and id.
func CardLine(card boardview.CardItem) string {
	mark := statusMarks[card.Status]
	if !card.Type.HasWork() {
		mark = "[#]"
	}
	parts := []string{mark, card.Title}
	for _, l := range card.Labels {
		parts = append(parts, Label(l))
	}
	line := strings.Join(parts, " ") + "\n    " + mutedStyle.Render(card.Id)
	if card.Pending {
		return pendingStyle.Render(line)
	}
	return line
}

func Label(l domain.LabelRef) string {
	style := lipgloss.NewStyle().Foreground(labelColors[l.Color])
	return style.Render("#" + l.Text)
}

// Notice renders a user-facing error line, or nothing for an empty message.
func Notice(w io.Writer, msg string) {
	if msg == "" {
		return
	}
	fmt.Fprintln(w, noticeStyle.Render(msg))
}
