package permission

import (
	"testing"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cardActions = []Action{CreateCard, UpdateCard, DeleteCard, MoveCard, CreateList, UpdateList, DeleteList, CreateTask, UpdateTask, DeleteTask, ManageLabels, CreateComment}

func TestCanPerform_Viewer(t *testing.T) {
	for action := range required {
		if action.Mutating() {
			assert.False(t, CanPerform(domain.RoleViewer, action), "viewer must not %s", action)
		}
	}
	assert.True(t, CanPerform(domain.RoleViewer, View))
}

func TestCanPerform_MemberAndAdmin(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleMember, domain.RoleAdmin, domain.RoleOwner} {
		for _, action := range cardActions {
			assert.True(t, CanPerform(role, action), "%s should %s", role, action)
		}
	}
	assert.False(t, CanPerform(domain.RoleMember, ManageMembers))
	assert.True(t, CanPerform(domain.RoleAdmin, ManageMembers))
	assert.False(t, CanPerform(domain.RoleAdmin, DeleteBoard))
	assert.True(t, CanPerform(domain.RoleOwner, DeleteBoard))
}

func TestCanPerform_NonMember(t *testing.T) {
	for action := range required {
		assert.False(t, CanPerform("", action))
		assert.False(t, CanPerform("superuser", action))
	}
}

func TestCanPerform_UnknownAction(t *testing.T) {
	assert.False(t, CanPerform(domain.RoleOwner, Action("launchRockets")))
}

func TestDeniedMessages(t *testing.T) {
	err := Check(domain.RoleViewer, CreateCard)
	require.Error(t, err)
	assert.True(t, internal_errors.Is[*internal_errors.PermissionError](err))
	assert.Equal(t, "Viewers do not have permission to create tasks", err.Error())

	err = Check("", UpdateCard)
	assert.Equal(t, "You are not a member of this board", err.Error())

	err = Check(domain.RoleMember, ManageMembers)
	assert.Equal(t, "Only owners and admins can manage board members", err.Error())

	assert.NoError(t, Check(domain.RoleMember, MoveCard))
}

func TestCanAddMember(t *testing.T) {
	tests := []struct {
		name    string
		actor   domain.Role
		granted domain.Role
		ok      bool
	}{
		{"owner adds owner", domain.RoleOwner, domain.RoleOwner, true},
		{"owner adds admin", domain.RoleOwner, domain.RoleAdmin, true},
		{"admin adds member", domain.RoleAdmin, domain.RoleMember, true},
		{"admin adds admin", domain.RoleAdmin, domain.RoleAdmin, true},
		{"admin adds owner", domain.RoleAdmin, domain.RoleOwner, false},
		{"member adds viewer", domain.RoleMember, domain.RoleViewer, false},
		{"viewer adds viewer", domain.RoleViewer, domain.RoleViewer, false},
		{"non member", "", domain.RoleViewer, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanAddMember(tt.actor, tt.granted)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, internal_errors.Is[*internal_errors.PermissionError](err), "got %v", err)
			}
		})
	}

	err := CanAddMember(domain.RoleOwner, "boss")
	assert.True(t, internal_errors.Is[*internal_errors.ValidationError](err))
}

func TestCanChangeRole(t *testing.T) {
	tests := []struct {
		name    string
		actor   domain.Role
		target  domain.Role
		newRole domain.Role
		ok      bool
	}{
		{"owner demotes owner", domain.RoleOwner, domain.RoleOwner, domain.RoleAdmin, true},
		{"owner promotes member to owner", domain.RoleOwner, domain.RoleMember, domain.RoleOwner, true},
		{"admin changes owner", domain.RoleAdmin, domain.RoleOwner, domain.RoleMember, false},
		{"admin promotes to owner", domain.RoleAdmin, domain.RoleMember, domain.RoleOwner, false},
		{"admin demotes admin", domain.RoleAdmin, domain.RoleAdmin, domain.RoleMember, false},
		{"admin promotes member to admin", domain.RoleAdmin, domain.RoleMember, domain.RoleAdmin, true},
		{"admin demotes member to viewer", domain.RoleAdmin, domain.RoleMember, domain.RoleViewer, true},
		{"member changes viewer", domain.RoleMember, domain.RoleViewer, domain.RoleMember, false},
		{"viewer changes viewer", domain.RoleViewer, domain.RoleViewer, domain.RoleMember, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanChangeRole(tt.actor, tt.target, tt.newRole)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, internal_errors.Is[*internal_errors.PermissionError](err), "got %v", err)
			}
		})
	}
}

func TestCanRemoveMember(t *testing.T) {
	assert.NoError(t, CanRemoveMember(domain.RoleOwner, domain.RoleOwner))
	assert.NoError(t, CanRemoveMember(domain.RoleAdmin, domain.RoleViewer))
	assert.Error(t, CanRemoveMember(domain.RoleAdmin, domain.RoleOwner))
	assert.Error(t, CanRemoveMember(domain.RoleAdmin, domain.RoleAdmin))
	assert.Error(t, CanRemoveMember(domain.RoleMember, domain.RoleViewer))
}

func TestRemovesLastOwner(t *testing.T) {
	admin := domain.RoleAdmin
	owner := domain.RoleOwner
	assert.True(t, RemovesLastOwner(domain.RoleOwner, nil, 1))
	assert.True(t, RemovesLastOwner(domain.RoleOwner, &admin, 1))
	assert.False(t, RemovesLastOwner(domain.RoleOwner, &owner, 1))
	assert.False(t, RemovesLastOwner(domain.RoleOwner, nil, 2))
	assert.False(t, RemovesLastOwner(domain.RoleAdmin, nil, 1))
}
