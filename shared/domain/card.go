package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// LabelRef is the inline {text, color} form of a label as seen on a card.
type LabelRef struct {
	Text  string     `json:"text"`
	Color LabelColor `json:"color"`
}

type Assignee struct {
	Id       UserId  `json:"id"`
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	ImageUrl *string `json:"image_url,omitempty"`
}

// Assignees is stored as a JSONB snapshot on the card row.
type Assignees []Assignee

// Value is a JSON string; lib/pq would send []byte as bytea.
func (a Assignees) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *Assignees) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("assignees: unsupported source type")
	}
	return json.Unmarshal(data, a)
}

// WorkDetails belongs to project and task cards only.
type WorkDetails struct {
	Status    Status     `json:"status"`
	Labels    []LabelRef `json:"labels"`
	Assignees Assignees  `json:"assignees"`
}

// CommentDetails belongs to comment cards only.
type CommentDetails struct {
	Author UserId `json:"author"`
}

// Card is a tagged union keyed by Type: exactly one of Work (project, task)
// or Comment (comment) is set.
type Card struct {
	Id          CardId          `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	ListId      ListId          `json:"list_id"`
	Position    int             `json:"position"`
	Type        CardType        `json:"type"`
	Work        *WorkDetails    `json:"work,omitempty"`
	Comment     *CommentDetails `json:"comment,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

// Status returns the work status, or todo for cards without work details.
func (c *Card) Status() Status {
	if c.Work == nil || c.Work.Status == "" {
		return StatusTodo
	}
	return c.Work.Status
}

type CardCreationData struct {
	ListId      ListId
	Title       string
	Description *string
	Type        CardType
	Status      *Status
	Labels      []LabelRef
	Assignees   Assignees
	Author      UserId
}

// CardUpdateData is a merge-patch: nil fields keep their stored value.
type CardUpdateData struct {
	Title       *string
	Description *string
	Status      *Status
	Labels      *[]LabelRef
	Assignees   *Assignees
}

func (d CardUpdateData) Empty() bool {
	return d.Title == nil && d.Description == nil && d.Status == nil && d.Labels == nil && d.Assignees == nil
}

// CardLocation resolves a card to its owning list and board.
type CardLocation struct {
	CardId  CardId
	ListId  ListId
	BoardId BoardId
	Type    CardType
}
