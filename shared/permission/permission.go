// Package permission holds the board role rules. Every mutating service call
// consults these functions, so role semantics live only here.
package permission

import (
	"fmt"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
)

type Action string

const (
	View          Action = "view"
	UpdateBoard   Action = "updateBoard"
	DeleteBoard   Action = "deleteBoard"
	CreateList    Action = "createList"
	UpdateList    Action = "updateList"
	DeleteList    Action = "deleteList"
	CreateCard    Action = "createCard"
	UpdateCard    Action = "updateCard"
	DeleteCard    Action = "deleteCard"
	MoveCard      Action = "moveCard"
	CreateTask    Action = "createTask"
	UpdateTask    Action = "updateTask"
	DeleteTask    Action = "deleteTask"
	CreateComment Action = "createComment"
	DeleteComment Action = "deleteComment"
	ManageLabels  Action = "manageLabels"
	ManageMembers Action = "manageMembers"
)

var verbs = map[Action]string{
	View:          "view this board",
	UpdateBoard:   "update this board",
	DeleteBoard:   "delete this board",
	CreateList:    "create lists",
	UpdateList:    "update lists",
	DeleteList:    "delete lists",
	CreateCard:    "create tasks",
	UpdateCard:    "update tasks",
	DeleteCard:    "delete tasks",
	MoveCard:      "move tasks",
	CreateTask:    "create subtasks",
	UpdateTask:    "update subtasks",
	DeleteTask:    "delete subtasks",
	CreateComment: "comment",
	DeleteComment: "delete comments",
	ManageLabels:  "manage labels",
	ManageMembers: "manage members",
}

// Verb is the human-readable phrase for an action, e.g. "create tasks".
func (a Action) Verb() string {
	if v, ok := verbs[a]; ok {
		return v
	}
	return string(a)
}

// Mutating reports whether the action changes stored state.
func (a Action) Mutating() bool {
	return a != View
}

// minimum role per action
var required = map[Action]domain.Role{
	View:          domain.RoleViewer,
	UpdateBoard:   domain.RoleAdmin,
	DeleteBoard:   domain.RoleOwner,
	CreateList:    domain.RoleMember,
	UpdateList:    domain.RoleMember,
	DeleteList:    domain.RoleMember,
	CreateCard:    domain.RoleMember,
	UpdateCard:    domain.RoleMember,
	DeleteCard:    domain.RoleMember,
	MoveCard:      domain.RoleMember,
	CreateTask:    domain.RoleMember,
	UpdateTask:    domain.RoleMember,
	DeleteTask:    domain.RoleMember,
	CreateComment: domain.RoleMember,
	DeleteComment: domain.RoleAdmin,
	ManageLabels:  domain.RoleMember,
	ManageMembers: domain.RoleAdmin,
}

// CanPerform is the pure role check. A role outside the hierarchy (including
// the empty role of a non-member) may do nothing.
func CanPerform(role domain.Role, action Action) bool {
	minRole, ok := required[action]
	if !ok || !role.Valid() {
		return false
	}
	return role.Rank() >= minRole.Rank()
}

// Check is CanPerform returning the user-facing error.
func Check(role domain.Role, action Action) error {
	if CanPerform(role, action) {
		return nil
	}
	return Denied(role, action)
}

// Denied builds the permission error shown to a user with role for action.
func Denied(role domain.Role, action Action) error {
	switch {
	case !role.Valid():
		return &internal_errors.PermissionError{Message: "You are not a member of this board"}
	case role == domain.RoleViewer:
		return &internal_errors.PermissionError{Message: fmt.Sprintf("Viewers do not have permission to %s", action.Verb())}
	case action == ManageMembers:
		return &internal_errors.PermissionError{Message: "Only owners and admins can manage board members"}
	case action == DeleteBoard:
		return &internal_errors.PermissionError{Message: "Only owners can delete the board"}
	default:
		return &internal_errors.PermissionError{Message: fmt.Sprintf("You don't have permission to %s", action.Verb())}
	}
}

// CanAddMember checks whether actor may add a new membership with role granted.
func CanAddMember(actor, granted domain.Role) error {
	if !granted.Valid() {
		return &internal_errors.ValidationError{Message: fmt.Sprintf("Unknown role %q", granted)}
	}
	if !CanPerform(actor, ManageMembers) {
		return Denied(actor, ManageMembers)
	}
	if granted == domain.RoleOwner && actor != domain.RoleOwner {
		return &internal_errors.PermissionError{Message: "Only owners can add other owners to the board"}
	}
	return nil
}

// CanChangeRole checks whether actor may change target's role to newRole.
// The last-owner invariant is not checked here; it needs the owner count and
// is enforced by the store.
func CanChangeRole(actor, target, newRole domain.Role) error {
	if !newRole.Valid() {
		return &internal_errors.ValidationError{Message: fmt.Sprintf("Unknown role %q", newRole)}
	}
	if !CanPerform(actor, ManageMembers) {
		return &internal_errors.PermissionError{Message: "You don't have permission to modify roles"}
	}
	if target == domain.RoleOwner && actor != domain.RoleOwner {
		return &internal_errors.PermissionError{Message: "Only owners can modify another owner's role"}
	}
	if newRole == domain.RoleOwner && actor != domain.RoleOwner {
		return &internal_errors.PermissionError{Message: "Only owners can designate new owners"}
	}
	if actor == domain.RoleAdmin && target == domain.RoleAdmin {
		return &internal_errors.PermissionError{Message: "Admins can only modify members and viewers"}
	}
	return nil
}

// CanRemoveMember checks whether actor may remove a membership with role target.
func CanRemoveMember(actor, target domain.Role) error {
	if !CanPerform(actor, ManageMembers) {
		return &internal_errors.PermissionError{Message: "You don't have permission to remove board members"}
	}
	if target == domain.RoleOwner && actor != domain.RoleOwner {
		return &internal_errors.PermissionError{Message: "Only owners can remove other owners"}
	}
	if actor == domain.RoleAdmin && target == domain.RoleAdmin {
		return &internal_errors.PermissionError{Message: "Admins can only remove members and viewers"}
	}
	return nil
}

// RemovesLastOwner reports whether taking an owner role away from one of
// ownerCount owners would leave the board without an owner.
func RemovesLastOwner(current domain.Role, next *domain.Role, ownerCount int) bool {
	if current != domain.RoleOwner {
		return false
	}
	if next != nil && *next == domain.RoleOwner {
		return false
	}
	return ownerCount <= 1
}
