package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	sharedpg "github.com/flvvius/hackathon-sisc-2025/shared/storage/pg"
	"github.com/google/uuid"
)

const boardColumns = `id, title, description, owner_user_id, created_at, updated_at`

func scanBoard(row rowScanner) (domain.Board, error) {
	var b domain.Board
	err := row.Scan(&b.Id, &b.Title, &b.Description, &b.OwnerUserId, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

var errBoardNotFound = &internal_errors.NotFoundError{Message: "Board not found"}

// =========================================================================
// Public Methods (satisfy the service.BoardStorage interface)
// =========================================================================

// CreateBoard inserts the board, its initial lists and the owner membership
// in one transaction.
func (s *Storage) CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.Board, error) {
	var board domain.Board
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		board, err = s.createBoard(ctx, tx, data)
		return err
	})
	return board, sharedpg.Classify(err, "create board")
}

func (s *Storage) GetBoard(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	board, err := s.getBoard(ctx, s.db, id)
	return board, sharedpg.Classify(err, "get board")
}

// GetBoardsForUser returns boards the user created or is a member of,
// most recently changed first.
func (s *Storage) GetBoardsForUser(ctx context.Context, userId domain.UserId) ([]domain.Board, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.title, b.description, b.owner_user_id, b.created_at, b.updated_at
		FROM board b
		WHERE b.owner_user_id = $1
			OR EXISTS (SELECT 1 FROM board_member m WHERE m.board_id = b.id AND m.user_id = $1)
		ORDER BY COALESCE(b.updated_at, b.created_at) DESC, b.id`, userId)
	if err != nil {
		return nil, sharedpg.Classify(err, "get boards")
	}
	defer rows.Close()

	boards := []domain.Board{}
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, sharedpg.Classify(err, "get boards")
		}
		boards = append(boards, b)
	}
	return boards, sharedpg.Classify(rows.Err(), "get boards")
}

func (s *Storage) UpdateBoard(ctx context.Context, id domain.BoardId, data domain.BoardUpdateData) (domain.Board, error) {
	board, err := scanBoard(s.db.QueryRowContext(ctx, `
		UPDATE board SET
			title = COALESCE($2, title),
			description = CASE WHEN $3 THEN NULLIF($4, '') ELSE description END,
			updated_at = now()
		WHERE id = $1
		RETURNING `+boardColumns,
		id, data.Title, data.Description != nil, deref(data.Description)))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Board{}, errBoardNotFound
	}
	return board, sharedpg.Classify(err, "update board")
}

// DeleteBoard removes the board; lists, cards, tasks, labels, comments and
// memberships go with it through ON DELETE CASCADE.
func (s *Storage) DeleteBoard(ctx context.Context, id domain.BoardId) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM board WHERE id = $1`, id)
	if err != nil {
		return sharedpg.Classify(err, "delete board")
	}
	return expectAffected(res, errBoardNotFound, "delete board")
}

// GetRole returns the user's role on the board, or "" when the user is not
// a member. A missing board is a NotFoundError.
func (s *Storage) GetRole(ctx context.Context, boardId domain.BoardId, userId domain.UserId) (domain.Role, error) {
	var role sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT m.role
		FROM board b
		LEFT JOIN board_member m ON m.board_id = b.id AND m.user_id = $2
		WHERE b.id = $1`, boardId, userId).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errBoardNotFound
	}
	if err != nil {
		return "", sharedpg.Classify(err, "check board membership")
	}
	return domain.Role(role.String), nil
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) createBoard(ctx context.Context, q Querier, data domain.BoardCreationData) (domain.Board, error) {
	board, err := scanBoard(q.QueryRowContext(ctx, `
		INSERT INTO board (id, title, description, owner_user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+boardColumns,
		uuid.NewString(), data.Title, data.Description, data.OwnerId))
	if err != nil {
		return domain.Board{}, fmt.Errorf("failed to insert board: %w", err)
	}

	board.Lists = make([]domain.List, 0, len(data.Lists))
	for i, l := range data.Lists {
		pos := i
		if l.Position != nil {
			pos = *l.Position
		}
		list, err := s.insertList(ctx, q, board.Id, l.Title, pos)
		if err != nil {
			return domain.Board{}, fmt.Errorf("failed to insert list %q: %w", l.Title, err)
		}
		board.Lists = append(board.Lists, list)
	}

	if _, err := s.insertMember(ctx, q, board.Id, data.OwnerId, domain.RoleOwner); err != nil {
		return domain.Board{}, fmt.Errorf("failed to insert owner membership: %w", err)
	}
	return board, nil
}

func (s *Storage) getBoard(ctx context.Context, q Querier, id domain.BoardId) (domain.Board, error) {
	board, err := scanBoard(q.QueryRowContext(ctx, `SELECT `+boardColumns+` FROM board WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Board{}, errBoardNotFound
	}
	return board, err
}

// lockBoard takes a row lock on the board for the rest of the transaction.
func lockBoard(ctx context.Context, q Querier, id domain.BoardId) error {
	var got string
	err := q.QueryRowContext(ctx, `SELECT id FROM board WHERE id = $1 FOR UPDATE`, id).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return errBoardNotFound
	}
	return err
}

func expectAffected(res sql.Result, notFound error, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return sharedpg.Classify(err, op)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
