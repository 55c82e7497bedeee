package api

import (
	"time"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
)

// Request DTOs

type CreateBoardRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
}

type UpdateBoardRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Response DTOs

type BoardResponse struct {
	Id          domain.BoardId `json:"id"`
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	OwnerUserId domain.UserId  `json:"owner_user_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
	Lists       []ListResponse `json:"lists,omitempty"`
}

type BoardListResponse struct {
	Boards []BoardResponse `json:"boards"`
}

func NewBoardResponse(b domain.Board, render Renderer) BoardResponse {
	resp := BoardResponse{
		Id:          b.Id,
		Title:       b.Title,
		Description: b.Description,
		OwnerUserId: b.OwnerUserId,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	for _, l := range b.Lists {
		resp.Lists = append(resp.Lists, NewListResponse(l, render))
	}
	return resp
}

// Board converts the response back to the domain shape (client side).
func (r BoardResponse) Board() domain.Board {
	b := domain.Board{
		Id:          r.Id,
		Title:       r.Title,
		Description: r.Description,
		OwnerUserId: r.OwnerUserId,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	for _, l := range r.Lists {
		b.Lists = append(b.Lists, l.List())
	}
	return b
}
