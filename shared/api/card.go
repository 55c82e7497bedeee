package api

import (
	"time"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
)

// Renderer turns a markdown description into sanitised HTML.
// A nil Renderer leaves description_html empty.
type Renderer func(markdown string) string

type CreateCardRequest struct {
	Title       string            `json:"title" validate:"required"`
	Description *string           `json:"description,omitempty"`
	Type        domain.CardType   `json:"type,omitempty"`
	Status      *domain.Status    `json:"status,omitempty"`
	Labels      []domain.LabelRef `json:"labels,omitempty"`
	Assignees   domain.Assignees  `json:"assignees,omitempty"`
}

// UpdateCardRequest is a merge-patch: absent fields are left unchanged.
type UpdateCardRequest struct {
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	Status      *domain.Status     `json:"status,omitempty"`
	Labels      *[]domain.LabelRef `json:"labels,omitempty"`
	Assignees   *domain.Assignees  `json:"assignees,omitempty"`
}

type MoveCardRequest struct {
	SourceListId domain.ListId `json:"source_list_id" validate:"required"`
	TargetListId domain.ListId `json:"target_list_id" validate:"required"`
}

// CardResponse is the flat wire form of a card. Status, labels and
// assignees are present for project and task cards, author for comment cards.
type CardResponse struct {
	Id              domain.CardId     `json:"id"`
	Title           string            `json:"title"`
	Description     *string           `json:"description,omitempty"`
	DescriptionHTML string            `json:"description_html,omitempty"`
	ListId          domain.ListId     `json:"list_id"`
	Position        int               `json:"position"`
	Type            domain.CardType   `json:"type"`
	Status          *domain.Status    `json:"status,omitempty"`
	Labels          []domain.LabelRef `json:"labels,omitempty"`
	Assignees       domain.Assignees  `json:"assignees,omitempty"`
	Author          *domain.UserId    `json:"author,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       *time.Time        `json:"updated_at,omitempty"`
}

func NewCardResponse(c domain.Card, render Renderer) CardResponse {
	resp := CardResponse{
		Id:          c.Id,
		Title:       c.Title,
		Description: c.Description,
		ListId:      c.ListId,
		Position:    c.Position,
		Type:        c.Type,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Description != nil && render != nil {
		resp.DescriptionHTML = render(*c.Description)
	}
	if c.Work != nil {
		status := c.Work.Status
		resp.Status = &status
		resp.Labels = c.Work.Labels
		resp.Assignees = c.Work.Assignees
	}
	if c.Comment != nil {
		author := c.Comment.Author
		resp.Author = &author
	}
	return resp
}

// Card rebuilds the tagged domain card from the flat wire form.
func (r CardResponse) Card() domain.Card {
	c := domain.Card{
		Id:          r.Id,
		Title:       r.Title,
		Description: r.Description,
		ListId:      r.ListId,
		Position:    r.Position,
		Type:        r.Type,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	switch {
	case r.Type == domain.CardTypeComment:
		c.Comment = &domain.CommentDetails{}
		if r.Author != nil {
			c.Comment.Author = *r.Author
		}
	default:
		c.Work = &domain.WorkDetails{Labels: r.Labels, Assignees: r.Assignees}
		if r.Status != nil {
			c.Work.Status = *r.Status
		}
	}
	return c
}
