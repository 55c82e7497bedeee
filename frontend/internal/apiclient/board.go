package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
)

// === Board Methods ===

func (c *APIClient) Boards(ctx context.Context) ([]domain.Board, error) {
	var resp api.BoardListResponse
	if err := c.do(ctx, http.MethodGet, "/boards", nil, &resp); err != nil {
		return nil, err
	}
	boards := make([]domain.Board, 0, len(resp.Boards))
	for _, b := range resp.Boards {
		boards = append(boards, b.Board())
	}
	return boards, nil
}

func (c *APIClient) CreateBoard(ctx context.Context, req api.CreateBoardRequest) (domain.Board, error) {
	var resp api.BoardResponse
	if err := c.do(ctx, http.MethodPost, "/boards", req, &resp); err != nil {
		return domain.Board{}, err
	}
	return resp.Board(), nil
}

func (c *APIClient) Board(ctx context.Context, boardId domain.BoardId) (domain.Board, error) {
	var resp api.BoardResponse
	if err := c.do(ctx, http.MethodGet, "/boards/"+url.PathEscape(boardId), nil, &resp); err != nil {
		return domain.Board{}, err
	}
	return resp.Board(), nil
}

func (c *APIClient) UpdateBoard(ctx context.Context, boardId domain.BoardId, req api.UpdateBoardRequest) (domain.Board, error) {
	var resp api.BoardResponse
	if err := c.do(ctx, http.MethodPatch, "/boards/"+url.PathEscape(boardId), req, &resp); err != nil {
		return domain.Board{}, err
	}
	return resp.Board(), nil
}

func (c *APIClient) DeleteBoard(ctx context.Context, boardId domain.BoardId) error {
	return c.do(ctx, http.MethodDelete, "/boards/"+url.PathEscape(boardId), nil, nil)
}

// === List Methods ===

func (c *APIClient) Lists(ctx context.Context, boardId domain.BoardId) ([]domain.List, error) {
	var resp api.ListsResponse
	if err := c.do(ctx, http.MethodGet, "/boards/"+url.PathEscape(boardId)+"/lists", nil, &resp); err != nil {
		return nil, err
	}
	lists := make([]domain.List, 0, len(resp.Lists))
	for _, l := range resp.Lists {
		lists = append(lists, l.List())
	}
	return lists, nil
}

func (c *APIClient) CreateList(ctx context.Context, boardId domain.BoardId, req api.CreateListRequest) (domain.List, error) {
	var resp api.ListResponse
	if err := c.do(ctx, http.MethodPost, "/boards/"+url.PathEscape(boardId)+"/lists", req, &resp); err != nil {
		return domain.List{}, err
	}
	return resp.List(), nil
}

func (c *APIClient) UpdateList(ctx context.Context, listId domain.ListId, req api.UpdateListRequest) (domain.List, error) {
	var resp api.ListResponse
	if err := c.do(ctx, http.MethodPatch, "/lists/"+url.PathEscape(listId), req, &resp); err != nil {
		return domain.List{}, err
	}
	return resp.List(), nil
}

func (c *APIClient) DeleteList(ctx context.Context, listId domain.ListId) error {
	return c.do(ctx, http.MethodDelete, "/lists/"+url.PathEscape(listId), nil, nil)
}
