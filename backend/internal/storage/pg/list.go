package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	sharedpg "github.com/flvvius/hackathon-sisc-2025/shared/storage/pg"
	"github.com/google/uuid"
)

const listColumns = `id, title, board_id, position, created_at, updated_at`

func scanList(row rowScanner) (domain.List, error) {
	l := domain.List{Cards: []domain.Card{}}
	err := row.Scan(&l.Id, &l.Title, &l.BoardId, &l.Position, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

var errListNotFound = &internal_errors.NotFoundError{Message: "List not found"}

// =========================================================================
// Public Methods (satisfy the service.ListStorage interface)
// =========================================================================

// GetBoardLists returns the board's lists by position, each with its cards
// by position.
func (s *Storage) GetBoardLists(ctx context.Context, boardId domain.BoardId) ([]domain.List, error) {
	lists, err := s.getBoardLists(ctx, s.db, boardId)
	return lists, sharedpg.Classify(err, "get lists")
}

func (s *Storage) GetList(ctx context.Context, id domain.ListId) (domain.List, error) {
	list, err := scanList(s.db.QueryRowContext(ctx, `SELECT `+listColumns+` FROM list WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.List{}, errListNotFound
	}
	return list, sharedpg.Classify(err, "get list")
}

// CreateList appends the list after the board's last list unless a position
// is given.
func (s *Storage) CreateList(ctx context.Context, data domain.ListCreationData) (domain.List, error) {
	var list domain.List
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := lockBoard(ctx, tx, data.BoardId); err != nil {
			return err
		}
		var pos int
		if data.Position != nil {
			pos = *data.Position
		} else {
			var err error
			if pos, err = nextPosition(ctx, tx, "list", "board_id", data.BoardId); err != nil {
				return err
			}
		}
		var err error
		list, err = s.insertList(ctx, tx, data.BoardId, data.Title, pos)
		return err
	})
	return list, sharedpg.Classify(err, "create list")
}

func (s *Storage) UpdateList(ctx context.Context, id domain.ListId, data domain.ListUpdateData) (domain.List, error) {
	list, err := scanList(s.db.QueryRowContext(ctx, `
		UPDATE list SET
			title = COALESCE($2, title),
			position = COALESCE($3, position),
			updated_at = now()
		WHERE id = $1
		RETURNING `+listColumns,
		id, data.Title, data.Position))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.List{}, errListNotFound
	}
	return list, sharedpg.Classify(err, "update list")
}

func (s *Storage) DeleteList(ctx context.Context, id domain.ListId) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM list WHERE id = $1`, id)
	if err != nil {
		return sharedpg.Classify(err, "delete list")
	}
	return expectAffected(res, errListNotFound, "delete list")
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) insertList(ctx context.Context, q Querier, boardId domain.BoardId, title string, position int) (domain.List, error) {
	return scanList(q.QueryRowContext(ctx, `
		INSERT INTO list (id, title, board_id, position)
		VALUES ($1, $2, $3, $4)
		RETURNING `+listColumns,
		uuid.NewString(), title, boardId, position))
}

func (s *Storage) getBoardLists(ctx context.Context, q Querier, boardId domain.BoardId) ([]domain.List, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+listColumns+` FROM list WHERE board_id = $1 ORDER BY position, created_at, id`, boardId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []domain.List{}
	index := make(map[domain.ListId]int)
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		index[l.Id] = len(lists)
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cards, err := s.queryCards(ctx, q, `l.board_id = $1`, boardId)
	if err != nil {
		return nil, err
	}
	for _, c := range cards {
		if i, ok := index[c.ListId]; ok {
			lists[i].Cards = append(lists[i].Cards, c)
		}
	}
	return lists, nil
}
