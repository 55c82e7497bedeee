package pg

import (
	"context"
	"testing"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembers(t *testing.T) {
	ctx := context.Background()
	owner := createTestUser(t)
	member := createTestUser(t)
	board := createTestBoard(t, owner.Id)

	t.Run("add and duplicate", func(t *testing.T) {
		m, err := storage.AddMember(ctx, board.Id, member.Id, domain.RoleMember)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleMember, m.Role)

		_, err = storage.AddMember(ctx, board.Id, member.Id, domain.RoleViewer)
		assert.True(t, internal_errors.Is[*internal_errors.ConflictError](err))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := storage.AddMember(ctx, board.Id, "user_nobody", domain.RoleMember)
		assert.True(t, internal_errors.Is[*internal_errors.NotFoundError](err))
	})

	t.Run("members come owners first", func(t *testing.T) {
		members, err := storage.GetBoardMembers(ctx, board.Id)
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, owner.Id, members[0].UserId)
		assert.Equal(t, member.Id, members[1].UserId)
	})

	t.Run("update role", func(t *testing.T) {
		m, err := storage.UpdateMemberRole(ctx, board.Id, member.Id, domain.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, m.Role)
		assert.NotNil(t, m.UpdatedAt)

		got, err := storage.GetMembership(ctx, board.Id, member.Id)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, got.Role)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, storage.RemoveMember(ctx, board.Id, member.Id))
		_, err := storage.GetMembership(ctx, board.Id, member.Id)
		assert.True(t, internal_errors.Is[*internal_errors.NotFoundError](err))

		err = storage.RemoveMember(ctx, board.Id, member.Id)
		assert.True(t, internal_errors.Is[*internal_errors.NotFoundError](err))
	})
}

func TestLastOwnerProtection(t *testing.T) {
	ctx := context.Background()
	owner := createTestUser(t)
	second := createTestUser(t)
	board := createTestBoard(t, owner.Id)

	t.Run("only owner cannot be removed", func(t *testing.T) {
		err := storage.RemoveMember(ctx, board.Id, owner.Id)
		assert.True(t, internal_errors.Is[*internal_errors.ConflictError](err), "got %v", err)

		m, err := storage.GetMembership(ctx, board.Id, owner.Id)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleOwner, m.Role)
	})

	t.Run("only owner cannot be demoted", func(t *testing.T) {
		_, err := storage.UpdateMemberRole(ctx, board.Id, owner.Id, domain.RoleAdmin)
		assert.True(t, internal_errors.Is[*internal_errors.ConflictError](err))
	})

	t.Run("with a second owner the first may leave", func(t *testing.T) {
		_, err := storage.AddMember(ctx, board.Id, second.Id, domain.RoleOwner)
		require.NoError(t, err)

		require.NoError(t, storage.RemoveMember(ctx, board.Id, owner.Id))

		err = storage.RemoveMember(ctx, board.Id, second.Id)
		assert.True(t, internal_errors.Is[*internal_errors.ConflictError](err))
	})
}
