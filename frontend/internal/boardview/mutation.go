package boardview

import (
	"fmt"

	"github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/flvvius/hackathon-sisc-2025/shared/permission"
)

// Intent names a user action; its value reads as "Failed to <intent>".
type Intent string

const (
	IntentCreateCard Intent = "create card"
	IntentUpdateCard Intent = "update card"
	IntentMoveCard   Intent = "move card"
	IntentDeleteCard Intent = "delete card"
	IntentCreateList Intent = "create list"
)

var intentActions = map[Intent]permission.Action{
	IntentCreateCard: permission.CreateCard,
	IntentUpdateCard: permission.UpdateCard,
	IntentMoveCard:   permission.MoveCard,
	IntentDeleteCard: permission.DeleteCard,
	IntentCreateList: permission.CreateList,
}

type State int

const (
	Pending State = iota
	Confirmed
	RolledBack
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Confirmed:
		return "confirmed"
	case RolledBack:
		return "rolled back"
	}
	return "unknown"
}

// Mutation records one optimistic change. Target is the card or list id,
// a placeholder until a create is confirmed.
type Mutation struct {
	Seq    int
	Intent Intent
	Target string
	State  State
	Err    error
}

// noticeFor picks the message shown after a rejected change. Permission
// denials explain the viewer role, client errors carry the server's
// message and everything else gets a generic line.
func noticeFor(intent Intent, err error) string {
	if perr, ok := errors.As[*errors.PermissionError](err); ok {
		if perr.Unauthenticated {
			return perr.Message
		}
		return fmt.Sprintf("You don't have permission to %s. Viewers can only view the board.", intentActions[intent].Verb())
	}
	if errors.Is[*errors.ValidationError](err) || errors.Is[*errors.ConflictError](err) || errors.Is[*errors.NotFoundError](err) {
		return err.Error()
	}
	return "Failed to " + string(intent)
}
