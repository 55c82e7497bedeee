package api

import (
	"time"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
)

type CreateListRequest struct {
	Title    string `json:"title" validate:"required"`
	Position *int   `json:"position,omitempty" validate:"omitempty,gte=0"`
}

type UpdateListRequest struct {
	Title    *string `json:"title,omitempty"`
	Position *int    `json:"position,omitempty" validate:"omitempty,gte=0"`
}

type ListResponse struct {
	Id        domain.ListId  `json:"id"`
	Title     string         `json:"title"`
	BoardId   domain.BoardId `json:"board_id"`
	Position  int            `json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
	Cards     []CardResponse `json:"cards"`
}

type ListsResponse struct {
	Lists []ListResponse `json:"lists"`
}

func NewListResponse(l domain.List, render Renderer) ListResponse {
	resp := ListResponse{
		Id:        l.Id,
		Title:     l.Title,
		BoardId:   l.BoardId,
		Position:  l.Position,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
		Cards:     make([]CardResponse, 0, len(l.Cards)),
	}
	for _, c := range l.Cards {
		resp.Cards = append(resp.Cards, NewCardResponse(c, render))
	}
	return resp
}

func (r ListResponse) List() domain.List {
	l := domain.List{
		Id:        r.Id,
		Title:     r.Title,
		BoardId:   r.BoardId,
		Position:  r.Position,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Cards:     make([]domain.Card, 0, len(r.Cards)),
	}
	for _, c := range r.Cards {
		l.Cards = append(l.Cards, c.Card())
	}
	return l
}
