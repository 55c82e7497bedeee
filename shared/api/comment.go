package api

import "github.com/flvvius/hackathon-sisc-2025/shared/domain"

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type CommentsResponse struct {
	Comments []domain.Comment `json:"comments"`
}
