package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/flvvius/hackathon-sisc-2025/shared/permission"
)

const maxCommentLen = 5000

type CommentService interface {
	List(ctx context.Context, actor domain.UserId, target domain.CommentTarget) ([]domain.Comment, error)
	Add(ctx context.Context, actor domain.UserId, target domain.CommentTarget, text string) (domain.Comment, error)
	Delete(ctx context.Context, actor domain.UserId, commentId domain.CommentId) error
}

type Comment struct {
	storage   CommentStorage
	gate      Authorizer
	publisher Publisher
}

type CommentStorage interface {
	CardLocation(ctx context.Context, id domain.CardId) (domain.CardLocation, error)
	TaskLocation(ctx context.Context, id domain.TaskId) (domain.TaskLocation, error)
	GetComments(ctx context.Context, target domain.CommentTarget) ([]domain.Comment, error)
	GetComment(ctx context.Context, id domain.CommentId) (domain.Comment, error)
	AddComment(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error)
	DeleteComment(ctx context.Context, id domain.CommentId) error
}

func NewComment(storage CommentStorage, gate Authorizer, publisher Publisher) CommentService {
	return &Comment{storage: storage, gate: gate, publisher: orNop(publisher)}
}

func (c *Comment) List(ctx context.Context, actor domain.UserId, target domain.CommentTarget) ([]domain.Comment, error) {
	if _, err := c.authorize(ctx, actor, target, permission.View); err != nil {
		return nil, err
	}
	return c.storage.GetComments(ctx, target)
}

func (c *Comment) Add(ctx context.Context, actor domain.UserId, target domain.CommentTarget, text string) (domain.Comment, error) {
	boardId, err := c.authorize(ctx, actor, target, permission.CreateComment)
	if err != nil {
		return domain.Comment{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Comment{}, &internal_errors.ValidationError{Message: "Comment text is required"}
	}
	if len([]rune(text)) > maxCommentLen {
		return domain.Comment{}, &internal_errors.ValidationError{Message: fmt.Sprintf("Comment is too long (max %d characters)", maxCommentLen)}
	}

	comment, err := c.storage.AddComment(ctx, domain.CommentCreationData{Target: target, Text: text, Author: actor})
	if err != nil {
		return domain.Comment{}, err
	}
	publish(c.publisher, boardId, api.EventCreated, "comment", comment)
	return comment, nil
}

// Delete lets the author remove their own comment; anyone else needs the
// deleteComment permission.
func (c *Comment) Delete(ctx context.Context, actor domain.UserId, commentId domain.CommentId) error {
	comment, err := c.storage.GetComment(ctx, commentId)
	if err != nil {
		return err
	}
	action := permission.DeleteComment
	if comment.Author == actor {
		action = permission.CreateComment
	}
	boardId, err := c.authorize(ctx, actor, domain.CommentTarget{CardId: comment.ProjectCardId, TaskId: comment.TaskId}, action)
	if err != nil {
		return err
	}
	if err := c.storage.DeleteComment(ctx, commentId); err != nil {
		return err
	}
	publish(c.publisher, boardId, api.EventDeleted, "comment", idPayload{Id: commentId})
	return nil
}

// authorize resolves the comment parent's board and checks action against it.
func (c *Comment) authorize(ctx context.Context, actor domain.UserId, target domain.CommentTarget, action permission.Action) (domain.BoardId, error) {
	if !target.Valid() {
		return "", &internal_errors.ValidationError{Message: "A comment belongs to exactly one card or task"}
	}
	var boardId domain.BoardId
	if target.CardId != nil {
		loc, err := c.storage.CardLocation(ctx, *target.CardId)
		if err != nil {
			return "", err
		}
		boardId = loc.BoardId
	} else {
		loc, err := c.storage.TaskLocation(ctx, *target.TaskId)
		if err != nil {
			return "", err
		}
		boardId = loc.BoardId
	}
	if _, err := c.gate.Authorize(ctx, actor, boardId, action); err != nil {
		return "", err
	}
	return boardId, nil
}
