package domain

type (
	UserId    = string
	BoardId   = string
	ListId    = string
	CardId    = string
	TaskId    = string
	LabelId   = string
	CommentId = string
)

// Role is a board membership role, in descending privilege.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// Rank orders roles so that a higher rank means more privilege. Unknown roles rank 0.
func (r Role) Rank() int {
	switch r {
	case RoleOwner:
		return 4
	case RoleAdmin:
		return 3
	case RoleMember:
		return 2
	case RoleViewer:
		return 1
	}
	return 0
}

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Order is the display rank used when sorting cards by status.
// An empty status is treated as todo.
func (s Status) Order() int {
	switch s {
	case StatusInProgress:
		return 1
	case StatusCompleted:
		return 2
	}
	return 0
}

// Next cycles todo -> in-progress -> completed -> todo.
func (s Status) Next() Status {
	switch s {
	case StatusTodo, "":
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	}
	return StatusTodo
}

type CardType string

const (
	CardTypeProject CardType = "project"
	CardTypeTask    CardType = "task"
	CardTypeComment CardType = "comment"
)

func (t CardType) Valid() bool {
	switch t {
	case CardTypeProject, CardTypeTask, CardTypeComment:
		return true
	}
	return false
}

// HasWork reports whether cards of this type carry status, labels and assignees.
func (t CardType) HasWork() bool {
	return t == CardTypeProject || t == CardTypeTask
}

type LabelColor string

const (
	ColorGreen  LabelColor = "green"
	ColorRed    LabelColor = "red"
	ColorBlue   LabelColor = "blue"
	ColorYellow LabelColor = "yellow"
	ColorPurple LabelColor = "purple"
	ColorPink   LabelColor = "pink"
	ColorIndigo LabelColor = "indigo"
	ColorGray   LabelColor = "gray"
)

var LabelColors = []LabelColor{ColorGreen, ColorRed, ColorBlue, ColorYellow, ColorPurple, ColorPink, ColorIndigo, ColorGray}

func (c LabelColor) Valid() bool {
	for _, known := range LabelColors {
		if c == known {
			return true
		}
	}
	return false
}
