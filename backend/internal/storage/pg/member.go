package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/flvvius/hackathon-sisc-2025/shared/permission"
	sharedpg "github.com/flvvius/hackathon-sisc-2025/shared/storage/pg"
)

const memberColumns = `m.board_id, m.user_id, m.role, m.created_at, m.updated_at`

var (
	errMemberNotFound = &internal_errors.NotFoundError{Message: "Membership not found"}
	errAlreadyMember  = &internal_errors.ConflictError{Message: "User is already a member of this board"}
	errLastOwner      = &internal_errors.ConflictError{Message: "Cannot remove the only owner of the board"}
	errLastOwnerRole  = &internal_errors.ConflictError{Message: "Cannot change the role of the only owner of the board"}
)

func scanMembership(row rowScanner) (domain.Membership, error) {
	var m domain.Membership
	err := row.Scan(&m.BoardId, &m.UserId, &m.Role, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// =========================================================================
// Public Methods (satisfy the service.MemberStorage interface)
// =========================================================================

// GetBoardMembers returns the memberships of the board with user profiles,
// owners first.
func (s *Storage) GetBoardMembers(ctx context.Context, boardId domain.BoardId) ([]domain.Membership, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+memberColumns+`,
			u.id, u.name, u.email, u.image_url, u.github_username, u.gitlab_username, u.created_at, u.updated_at
		FROM board_member m
		JOIN "user" u ON u.id = m.user_id
		WHERE m.board_id = $1
		ORDER BY CASE m.role WHEN 'owner' THEN 0 WHEN 'admin' THEN 1 WHEN 'member' THEN 2 ELSE 3 END, m.created_at`,
		boardId)
	if err != nil {
		return nil, sharedpg.Classify(err, "get members")
	}
	defer rows.Close()

	members := []domain.Membership{}
	for rows.Next() {
		var m domain.Membership
		var u domain.User
		if err := rows.Scan(&m.BoardId, &m.UserId, &m.Role, &m.CreatedAt, &m.UpdatedAt,
			&u.Id, &u.Name, &u.Email, &u.ImageUrl, &u.GithubUsername, &u.GitlabUsername, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, sharedpg.Classify(err, "get members")
		}
		m.User = &u
		members = append(members, m)
	}
	return members, sharedpg.Classify(rows.Err(), "get members")
}

func (s *Storage) GetMembership(ctx context.Context, boardId domain.BoardId, userId domain.UserId) (domain.Membership, error) {
	m, err := getMembership(ctx, s.db, boardId, userId, false)
	return m, sharedpg.Classify(err, "get membership")
}

func (s *Storage) AddMember(ctx context.Context, boardId domain.BoardId, userId domain.UserId, role domain.Role) (domain.Membership, error) {
	m, err := s.insertMember(ctx, s.db, boardId, userId, role)
	if code, ok := sharedpg.SQLState(err); ok && code == sharedpg.CodeUniqueViolation {
		return domain.Membership{}, errAlreadyMember
	}
	return m, sharedpg.Classify(err, "add member")
}

// UpdateMemberRole changes the role, refusing to demote the board's last owner.
func (s *Storage) UpdateMemberRole(ctx context.Context, boardId domain.BoardId, userId domain.UserId, role domain.Role) (domain.Membership, error) {
	var m domain.Membership
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := lockedMembership(ctx, tx, boardId, userId)
		if err != nil {
			return err
		}
		owners, err := countOwners(ctx, tx, boardId)
		if err != nil {
			return err
		}
		if permission.RemovesLastOwner(current.Role, &role, owners) {
			return errLastOwnerRole
		}
		m, err = scanMembership(tx.QueryRowContext(ctx, `
			UPDATE board_member m SET role = $3, updated_at = now()
			WHERE m.board_id = $1 AND m.user_id = $2
			RETURNING `+memberColumns,
			boardId, userId, role))
		return err
	})
	return m, sharedpg.Classify(err, "update member role")
}

// RemoveMember deletes the membership, refusing to remove the board's last owner.
func (s *Storage) RemoveMember(ctx context.Context, boardId domain.BoardId, userId domain.UserId) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := lockedMembership(ctx, tx, boardId, userId)
		if err != nil {
			return err
		}
		owners, err := countOwners(ctx, tx, boardId)
		if err != nil {
			return err
		}
		if permission.RemovesLastOwner(current.Role, nil, owners) {
			return errLastOwner
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM board_member WHERE board_id = $1 AND user_id = $2`, boardId, userId)
		return err
	})
	return sharedpg.Classify(err, "remove member")
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) insertMember(ctx context.Context, q Querier, boardId domain.BoardId, userId domain.UserId, role domain.Role) (domain.Membership, error) {
	return scanMembership(q.QueryRowContext(ctx, `
		INSERT INTO board_member AS m (board_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING `+memberColumns,
		boardId, userId, role))
}

func getMembership(ctx context.Context, q Querier, boardId domain.BoardId, userId domain.UserId, lock bool) (domain.Membership, error) {
	query := `SELECT ` + memberColumns + ` FROM board_member m WHERE m.board_id = $1 AND m.user_id = $2`
	if lock {
		query += ` FOR UPDATE`
	}
	m, err := scanMembership(q.QueryRowContext(ctx, query, boardId, userId))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Membership{}, errMemberNotFound
	}
	return m, err
}

// lockedMembership locks the board first so that concurrent role changes on
// the same board see each other's owner counts.
func lockedMembership(ctx context.Context, q Querier, boardId domain.BoardId, userId domain.UserId) (domain.Membership, error) {
	if err := lockBoard(ctx, q, boardId); err != nil {
		return domain.Membership{}, err
	}
	return getMembership(ctx, q, boardId, userId, true)
}

func countOwners(ctx context.Context, q Querier, boardId domain.BoardId) (int, error) {
	var n int
	err := q.QueryRowContext(ctx,
		`SELECT count(*) FROM board_member WHERE board_id = $1 AND role = 'owner'`, boardId,
	).Scan(&n)
	return n, err
}
