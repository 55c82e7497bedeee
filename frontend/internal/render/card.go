package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
)

const detailWidth = 80

// CardDetail writes a card with its description, subtasks and comments.
func CardDetail(w io.Writer, card domain.Card, tasks []domain.Task, comments []domain.Comment) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(card.Title), mutedStyle.Render(card.Id))
	fmt.Fprintf(&b, "type: %s  list: %s\n", card.Type, card.ListId)

	if card.Work != nil {
		fmt.Fprintf(&b, "status: %s\n", card.Status())
		if len(card.Work.Labels) > 0 {
			labels := make([]string, 0, len(card.Work.Labels))
			for _, l := range card.Work.Labels {
				labels = append(labels, Label(l))
			}
			fmt.Fprintf(&b, "labels: %s\n", strings.Join(labels, " "))
		}
		if len(card.Work.Assignees) > 0 {
			names := make([]string, 0, len(card.Work.Assignees))
			for _, a := range card.Work.Assignees {
				names = append(names, assigneeName(a))
			}
			fmt.Fprintf(&b, "assignees: %s\n", strings.Join(names, ", "))
		}
	}
	if card.Comment != nil {
		fmt.Fprintf(&b, "author: %s\n", card.Comment.Author)
	}
	if card.Description != nil {
		if desc := Markdown(detailWidth, *card.Description); desc != "" {
			fmt.Fprintf(&b, "\n%s\n", desc)
		}
	}

	if len(tasks) > 0 {
		fmt.Fprintf(&b, "\n%s\n", headerStyle.Render("Tasks"))
		for _, t := range tasks {
			fmt.Fprintf(&b, "%s %s %s\n", statusMarks[t.Status], t.Title, mutedStyle.Render(t.Id))
		}
	}
	if len(comments) > 0 {
		fmt.Fprintf(&b, "\n%s\n", headerStyle.Render("Comments"))
		for _, c := range comments {
			fmt.Fprintf(&b, "%s %s: %s\n", mutedStyle.Render(c.CreatedAt.Format("2006-01-02 15:04")), c.Author, c.Text)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func assigneeName(a domain.Assignee) string {
	switch {
	case a.Name != nil && *a.Name != "":
		return *a.Name
	case a.Email != nil && *a.Email != "":
		return *a.Email
	}
	return a.Id
}
