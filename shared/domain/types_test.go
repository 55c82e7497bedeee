package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCycle(t *testing.T) {
	s := StatusTodo
	seen := []Status{s}
	for i := 0; i < 3; i++ {
		s = s.Next()
		seen = append(seen, s)
	}
	assert.Equal(t, []Status{StatusTodo, StatusInProgress, StatusCompleted, StatusTodo}, seen)
	assert.Equal(t, StatusInProgress, Status("").Next())
}

func TestStatusOrder(t *testing.T) {
	assert.Less(t, StatusTodo.Order(), StatusInProgress.Order())
	assert.Less(t, StatusInProgress.Order(), StatusCompleted.Order())
	assert.Equal(t, StatusTodo.Order(), Status("").Order())
}

func TestRoleRank(t *testing.T) {
	assert.Greater(t, RoleOwner.Rank(), RoleAdmin.Rank())
	assert.Greater(t, RoleAdmin.Rank(), RoleMember.Rank())
	assert.Greater(t, RoleMember.Rank(), RoleViewer.Rank())
	assert.Zero(t, Role("guest").Rank())
	assert.False(t, Role("guest").Valid())
}

func TestCardTypeHasWork(t *testing.T) {
	assert.True(t, CardTypeProject.HasWork())
	assert.True(t, CardTypeTask.HasWork())
	assert.False(t, CardTypeComment.HasWork())
	assert.False(t, CardType("epic").Valid())
}

func TestLabelColorValid(t *testing.T) {
	for _, c := range LabelColors {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, LabelColor("orange").Valid())
}

func TestCardStatusDefaultsToTodo(t *testing.T) {
	comment := Card{Type: CardTypeComment, Comment: &CommentDetails{Author: "u1"}}
	assert.Equal(t, StatusTodo, comment.Status())

	work := Card{Type: CardTypeTask, Work: &WorkDetails{Status: StatusCompleted}}
	assert.Equal(t, StatusCompleted, work.Status())
}

func TestAssigneesValueAndScan(t *testing.T) {
	v, err := Assignees(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	name := "Ada"
	v, err = Assignees{{Id: "u1", Name: &name}}.Value()
	require.NoError(t, err)

	var back Assignees
	require.NoError(t, back.Scan([]byte(v.(string))))
	require.Len(t, back, 1)
	assert.Equal(t, "u1", back[0].Id)
	assert.Equal(t, "Ada", *back[0].Name)

	require.NoError(t, back.Scan(nil))
	assert.Nil(t, back)
	assert.Error(t, back.Scan(42))
}

func TestStrPtr(t *testing.T) {
	assert.Nil(t, StrPtr("   "))
	require.NotNil(t, StrPtr(" x "))
	assert.Equal(t, "x", *StrPtr(" x "))
}
