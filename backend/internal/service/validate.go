package service

import (
	"fmt"
	"strings"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/flvvius/hackathon-sisc-2025/shared/middleware/metrics"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 10000
)

// requireTitle trims title and rejects it when empty or too long.
func requireTitle(what, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", &internal_errors.ValidationError{Message: fmt.Sprintf("%s title is required", what)}
	}
	if len([]rune(title)) > maxTitleLen {
		return "", &internal_errors.ValidationError{Message: fmt.Sprintf("%s title is too long (max %d characters)", what, maxTitleLen)}
	}
	return title, nil
}

func optionalTitle(what string, title *string) (*string, error) {
	if title == nil {
		return nil, nil
	}
	t, err := requireTitle(what, *title)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// checkDescription leaves nil alone; the store turns a blank description into NULL.
func checkDescription(desc *string) error {
	if desc != nil && len([]rune(*desc)) > maxDescriptionLen {
		return &internal_errors.ValidationError{Message: fmt.Sprintf("Description is too long (max %d characters)", maxDescriptionLen)}
	}
	return nil
}

func checkPosition(pos *int) error {
	if pos != nil && *pos < 0 {
		return &internal_errors.ValidationError{Message: "Position must not be negative"}
	}
	return nil
}

func checkStatus(status *domain.Status) error {
	if status != nil && !status.Valid() {
		return &internal_errors.ValidationError{Message: fmt.Sprintf("Unknown status %q", *status)}
	}
	return nil
}

// filterLabels keeps labels with non-empty text and a known color, trimming
// the text and dropping duplicates.
func filterLabels(labels []domain.LabelRef) []domain.LabelRef {
	out := make([]domain.LabelRef, 0, len(labels))
	seen := make(map[domain.LabelRef]bool, len(labels))
	for _, l := range labels {
		l.Text = strings.TrimSpace(l.Text)
		if l.Text == "" || !l.Color.Valid() || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

// filterAssignees keeps assignees with an id, first occurrence wins.
func filterAssignees(assignees domain.Assignees) domain.Assignees {
	out := make(domain.Assignees, 0, len(assignees))
	seen := make(map[domain.UserId]bool, len(assignees))
	for _, a := range assignees {
		a.Id = strings.TrimSpace(a.Id)
		if a.Id == "" || seen[a.Id] {
			continue
		}
		seen[a.Id] = true
		out = append(out, a)
	}
	return out
}

// countConflict records err in the conflicts counter when it is a ConflictError.
func countConflict(op string, err error) error {
	if internal_errors.Is[*internal_errors.ConflictError](err) {
		metrics.Conflicts.WithLabelValues(op).Inc()
	}
	return err
}
