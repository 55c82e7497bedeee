package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
)

func (c *APIClient) card(ctx context.Context, method, path string, body any) (domain.Card, error) {
	var resp api.CardResponse
	if err := c.do(ctx, method, path, body, &resp); err != nil {
		return domain.Card{}, err
	}
	return resp.Card(), nil
}

func (c *APIClient) CreateCard(ctx context.Context, listId domain.ListId, req api.CreateCardRequest) (domain.Card, error) {
	return c.card(ctx, http.MethodPost, "/lists/"+url.PathEscape(listId)+"/cards", req)
}

func (c *APIClient) Card(ctx context.Context, cardId domain.CardId) (domain.Card, error) {
	return c.card(ctx, http.MethodGet, "/cards/"+url.PathEscape(cardId), nil)
}

func (c *APIClient) UpdateCard(ctx context.Context, cardId domain.CardId, req api.UpdateCardRequest) (domain.Card, error) {
	return c.card(ctx, http.MethodPatch, "/cards/"+url.PathEscape(cardId), req)
}

func (c *APIClient) MoveCard(ctx context.Context, cardId domain.CardId, sourceListId, targetListId domain.ListId) (domain.Card, error) {
	return c.card(ctx, http.MethodPost, "/cards/"+url.PathEscape(cardId)+"/move", api.MoveCardRequest{
		SourceListId: sourceListId,
		TargetListId: targetListId,
	})
}

func (c *APIClient) DeleteCard(ctx context.Context, cardId domain.CardId) error {
	return c.do(ctx, http.MethodDelete, "/cards/"+url.PathEscape(cardId), nil, nil)
}

func (c *APIClient) AddCardLabel(ctx context.Context, cardId domain.CardId, labelId domain.LabelId) (domain.Card, error) {
	return c.card(ctx, http.MethodPut, "/cards/"+url.PathEscape(cardId)+"/labels/"+url.PathEscape(labelId), nil)
}

func (c *APIClient) RemoveCardLabel(ctx context.Context, cardId domain.CardId, labelId domain.LabelId) (domain.Card, error) {
	return c.card(ctx, http.MethodDelete, "/cards/"+url.PathEscape(cardId)+"/labels/"+url.PathEscape(labelId), nil)
}

// === Task Methods ===

func (c *APIClient) Tasks(ctx context.Context, cardId domain.CardId) ([]domain.Task, error) {
	var resp api.TasksResponse
	if err := c.do(ctx, http.MethodGet, "/cards/"+url.PathEscape(cardId)+"/tasks", nil, &resp); err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		tasks = append(tasks, t.Task)
	}
	return tasks, nil
}

func (c *APIClient) CreateTask(ctx context.Context, cardId domain.CardId, req api.CreateTaskRequest) (domain.Task, error) {
	var resp api.TaskResponse
	if err := c.do(ctx, http.MethodPost, "/cards/"+url.PathEscape(cardId)+"/tasks", req, &resp); err != nil {
		return domain.Task{}, err
	}
	return resp.Task, nil
}

// === Comment Methods ===

func (c *APIClient) CardComments(ctx context.Context, cardId domain.CardId) ([]domain.Comment, error) {
	var resp api.CommentsResponse
	if err := c.do(ctx, http.MethodGet, "/cards/"+url.PathEscape(cardId)+"/comments", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

func (c *APIClient) AddCardComment(ctx context.Context, cardId domain.CardId, text string) (domain.Comment, error) {
	var comment domain.Comment
	err := c.do(ctx, http.MethodPost, "/cards/"+url.PathEscape(cardId)+"/comments", api.CreateCommentRequest{Text: text}, &comment)
	return comment, err
}
