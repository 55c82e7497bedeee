// Package boardview keeps a client-side projection of one board and applies
// card and list changes optimistically. Every change is recorded as a
// Mutation that ends Confirmed, with the server's record replacing the
// local guess, or RolledBack, with the whole board refetched.
package boardview

import (
	"context"
	stderrors "errors"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	"github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/flvvius/hackathon-sisc-2025/shared/logger"
)

// Backend is the subset of the API the view talks to.
type Backend interface {
	Lists(ctx context.Context, boardId domain.BoardId) ([]domain.List, error)
	CreateList(ctx context.Context, boardId domain.BoardId, req api.CreateListRequest) (domain.List, error)
	CreateCard(ctx context.Context, listId domain.ListId, req api.CreateCardRequest) (domain.Card, error)
	UpdateCard(ctx context.Context, cardId domain.CardId, req api.UpdateCardRequest) (domain.Card, error)
	MoveCard(ctx context.Context, cardId domain.CardId, sourceListId, targetListId domain.ListId) (domain.Card, error)
	DeleteCard(ctx context.Context, cardId domain.CardId) error
}

// ErrStale is returned by intents while the view has not been (re)loaded.
var ErrStale = stderrors.New("board view is out of date, reload it")

const placeholderPrefix = "tmp-"

// IsPlaceholder reports whether id is a local id for an unconfirmed create.
func IsPlaceholder(id string) bool {
	return strings.HasPrefix(id, placeholderPrefix)
}

type View struct {
	backend Backend
	boardId domain.BoardId

	mu        sync.Mutex
	columns   []Column
	mutations []Mutation
	notice    string
	loaded    bool
	stale     bool
	// projection as it was before each pending mutation, keyed by index
	before map[int][]Column

	newPlaceholder func() string
}

func New(backend Backend, boardId domain.BoardId) *View {
	return &View{
		backend: backend,
		boardId: boardId,
		before:  make(map[int][]Column),
		newPlaceholder: func() string {
			return placeholderPrefix + uuid.NewString()
		},
	}
}

func (v *View) BoardId() domain.BoardId {
	return v.boardId
}

// Load replaces the projection with the server's lists. On failure the view
// is marked stale.
func (v *View) Load(ctx context.Context) error {
	lists, err := v.backend.Lists(ctx, v.boardId)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.stale = true
		v.notice = "Failed to load board lists"
		return err
	}
	v.columns = project(lists)
	v.loaded = true
	v.stale = false
	return nil
}

// Columns returns a copy of the current projection.
func (v *View) Columns() []Column {
	v.mu.Lock()
	defer v.mu.Unlock()
	return cloneColumns(v.columns)
}

func (v *View) Card(id domain.CardId) (CardItem, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if i, j := v.findCard(id); i >= 0 {
		return v.columns[i].Cards[j], true
	}
	return CardItem{}, false
}

func (v *View) Mutations() []Mutation {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.mutations)
}

// Notice is the last user-facing error message, empty when none.
func (v *View) Notice() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.notice
}

func (v *View) Stale() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stale || !v.loaded
}

// CreateCard appends a placeholder card to listId, then swaps in the created
// record.
func (v *View) CreateCard(ctx context.Context, listId domain.ListId, req api.CreateCardRequest) (CardItem, error) {
	v.mu.Lock()
	if err := v.ready(); err != nil {
		v.mu.Unlock()
		return CardItem{}, err
	}
	col := v.findColumn(listId)
	if col < 0 {
		v.mu.Unlock()
		return CardItem{}, &errors.NotFoundError{Message: "List not found"}
	}

	snapshot := cloneColumns(v.columns)
	placeholder := v.newPlaceholder()
	item := CardItem{
		Id:          placeholder,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		ListId:      listId,
		Position:    len(v.columns[col].Cards),
		Type:        req.Type,
		Status:      domain.StatusTodo,
		Labels:      slices.Clone(req.Labels),
		Assignees:   slices.Clone(req.Assignees),
		Pending:     true,
	}
	if item.Type == "" {
		item.Type = domain.CardTypeProject
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	v.columns[col].Cards = append(v.columns[col].Cards, item)
	m := v.record(IntentCreateCard, placeholder, snapshot)
	v.mu.Unlock()

	card, err := v.backend.CreateCard(ctx, listId, req)
	if err != nil {
		v.rollback(ctx, m, err)
		return CardItem{}, err
	}

	v.mu.Lock()
	canonical, ok := toCardItem(card, v.knownLists())
	if !ok {
		v.mu.Unlock()
		v.settle(ctx, m, card.Id)
		item, _ := v.Card(card.Id)
		return item, nil
	}
	v.replaceCard(placeholder, canonical)
	v.confirm(m, canonical.Id)
	v.mu.Unlock()
	return canonical, nil
}

// UpdateCard applies patch locally, re-sorting the card's column when its
// status changes, then reconciles with the stored card.
func (v *View) UpdateCard(ctx context.Context, cardId domain.CardId, patch api.UpdateCardRequest) error {
	v.mu.Lock()
	if err := v.ready(); err != nil {
		v.mu.Unlock()
		return err
	}
	col, idx := v.findCard(cardId)
	if col < 0 {
		v.mu.Unlock()
		return &errors.NotFoundError{Message: "Card not found"}
	}

	snapshot := cloneColumns(v.columns)
	card := &v.columns[col].Cards[idx]
	statusChanged := patch.Status != nil && *patch.Status != card.Status
	applyPatch(card, patch)
	card.Pending = true
	if statusChanged {
		sortByStatus(v.columns[col].Cards)
	}
	m := v.record(IntentUpdateCard, cardId, snapshot)
	v.mu.Unlock()

	updated, err := v.backend.UpdateCard(ctx, cardId, patch)
	if err != nil {
		v.rollback(ctx, m, err)
		return err
	}
	v.reconcile(ctx, m, cardId, updated)
	return nil
}

// CycleStatus moves a work card to the next status:
// todo, in-progress, completed and back to todo.
func (v *View) CycleStatus(ctx context.Context, cardId domain.CardId) (domain.Status, error) {
	card, ok := v.Card(cardId)
	if !ok {
		return "", &errors.NotFoundError{Message: "Card not found"}
	}
	if !card.Type.HasWork() {
		return "", &errors.ValidationError{Message: "Comment cards have no status"}
	}
	next := card.Status.Next()
	return next, v.UpdateCard(ctx, cardId, api.UpdateCardRequest{Status: &next})
}

// MoveCard moves the card to the end of targetListId. The card's current
// column is sent as the source so the server can detect a stale view.
func (v *View) MoveCard(ctx context.Context, cardId domain.CardId, targetListId domain.ListId) error {
	v.mu.Lock()
	if err := v.ready(); err != nil {
		v.mu.Unlock()
		return err
	}
	col, idx := v.findCard(cardId)
	if col < 0 {
		v.mu.Unlock()
		return &errors.NotFoundError{Message: "Card not found"}
	}
	target := v.findColumn(targetListId)
	if target < 0 {
		v.mu.Unlock()
		return &errors.NotFoundError{Message: "List not found"}
	}
	sourceListId := v.columns[col].Id
	if col == target {
		v.mu.Unlock()
		return nil
	}

	snapshot := cloneColumns(v.columns)
	card := v.columns[col].Cards[idx]
	v.columns[col].Cards = slices.Delete(v.columns[col].Cards, idx, idx+1)
	card.ListId = targetListId
	card.Position = len(v.columns[target].Cards)
	card.Pending = true
	v.columns[target].Cards = append(v.columns[target].Cards, card)
	m := v.record(IntentMoveCard, cardId, snapshot)
	v.mu.Unlock()

	moved, err := v.backend.MoveCard(ctx, cardId, sourceListId, targetListId)
	if err != nil {
		v.rollback(ctx, m, err)
		return err
	}
	v.reconcile(ctx, m, cardId, moved)
	return nil
}

func (v *View) DeleteCard(ctx context.Context, cardId domain.CardId) error {
	v.mu.Lock()
	if err := v.ready(); err != nil {
		v.mu.Unlock()
		return err
	}
	col, idx := v.findCard(cardId)
	if col < 0 {
		v.mu.Unlock()
		return &errors.NotFoundError{Message: "Card not found"}
	}
	snapshot := cloneColumns(v.columns)
	v.columns[col].Cards = slices.Delete(v.columns[col].Cards, idx, idx+1)
	m := v.record(IntentDeleteCard, cardId, snapshot)
	v.mu.Unlock()

	if err := v.backend.DeleteCard(ctx, cardId); err != nil {
		v.rollback(ctx, m, err)
		return err
	}
	v.mu.Lock()
	v.confirm(m, cardId)
	v.mu.Unlock()
	return nil
}

// CreateList appends a placeholder column, then swaps in the created list.
func (v *View) CreateList(ctx context.Context, title string) (Column, error) {
	v.mu.Lock()
	if err := v.ready(); err != nil {
		v.mu.Unlock()
		return Column{}, err
	}
	position := 0
	for _, c := range v.columns {
		position = max(position, c.Position+1)
	}
	snapshot := cloneColumns(v.columns)
	placeholder := v.newPlaceholder()
	v.columns = append(v.columns, Column{
		Id:       placeholder,
		Title:    strings.TrimSpace(title),
		Position: position,
		Cards:    []CardItem{},
		Pending:  true,
	})
	m := v.record(IntentCreateList, placeholder, snapshot)
	v.mu.Unlock()

	list, err := v.backend.CreateList(ctx, v.boardId, api.CreateListRequest{Title: title})
	if err != nil {
		v.rollback(ctx, m, err)
		return Column{}, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	column := Column{Id: list.Id, Title: list.Title, Position: list.Position, Cards: []CardItem{}}
	if i := v.findColumn(placeholder); i >= 0 {
		v.columns[i] = column
	} else {
		v.columns = append(v.columns, column)
	}
	v.confirm(m, list.Id)
	return column, nil
}

// reconcile swaps the stored card in for the optimistic one.
func (v *View) reconcile(ctx context.Context, m int, cardId domain.CardId, stored domain.Card) {
	v.mu.Lock()
	canonical, ok := toCardItem(stored, v.knownLists())
	if !ok {
		v.mu.Unlock()
		// accepted, but the card left the board or came back malformed
		v.settle(ctx, m, stored.Id)
		return
	}
	v.replaceCard(cardId, canonical)
	v.confirm(m, canonical.Id)
	v.mu.Unlock()
}

// settle confirms mutation m and refetches the board in place of the local
// guess. If the refetch fails the view is marked stale.
func (v *View) settle(ctx context.Context, m int, target string) {
	v.mu.Lock()
	if target == "" {
		target = v.mutations[m].Target
	}
	v.confirm(m, target)
	v.mu.Unlock()
	v.refetch(ctx, nil)
}

// rollback marks mutation m as rolled back and refetches the board. When the
// refetch fails, the projection from before m is restored and the view is
// marked stale.
func (v *View) rollback(ctx context.Context, m int, cause error) {
	v.mu.Lock()
	v.mutations[m].State = RolledBack
	v.mutations[m].Err = cause
	v.notice = noticeFor(v.mutations[m].Intent, cause)
	logger.Log.Debug("optimistic change rolled back", "intent", v.mutations[m].Intent, "error", cause)
	before := v.before[m]
	delete(v.before, m)
	v.mu.Unlock()

	v.refetch(ctx, before)
}

// refetch replaces the projection with the server's lists. On failure it
// falls back to fallback, when given, and marks the view stale.
func (v *View) refetch(ctx context.Context, fallback []Column) {
	lists, err := v.backend.Lists(ctx, v.boardId)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		if fallback != nil {
			v.columns = fallback
		}
		v.stale = true
		logger.Log.Warn("board refetch failed", "board", v.boardId, "error", err)
		return
	}
	v.columns = project(lists)
	v.stale = false
}

// Internal helpers below expect v.mu to be held.

func (v *View) ready() error {
	if v.stale || !v.loaded {
		return ErrStale
	}
	v.notice = ""
	return nil
}

func (v *View) record(intent Intent, target string, before []Column) int {
	v.mutations = append(v.mutations, Mutation{Seq: len(v.mutations) + 1, Intent: intent, Target: target, State: Pending})
	m := len(v.mutations) - 1
	v.before[m] = before
	return m
}

func (v *View) confirm(m int, target string) {
	v.mutations[m].State = Confirmed
	v.mutations[m].Target = target
	delete(v.before, m)
}

func (v *View) findColumn(id domain.ListId) int {
	return slices.IndexFunc(v.columns, func(c Column) bool { return c.Id == id })
}

func (v *View) findCard(id domain.CardId) (int, int) {
	for i, c := range v.columns {
		if j := slices.IndexFunc(c.Cards, func(card CardItem) bool { return card.Id == id }); j >= 0 {
			return i, j
		}
	}
	return -1, -1
}

func (v *View) knownLists() map[domain.ListId]bool {
	known := make(map[domain.ListId]bool, len(v.columns))
	for _, c := range v.columns {
		if !IsPlaceholder(c.Id) {
			known[c.Id] = true
		}
	}
	return known
}

// replaceCard puts canonical where the card with id currently sits, moving
// it to canonical's column if the server placed it elsewhere. The column is
// re-sorted only when the status differs from the local one.
func (v *View) replaceCard(id domain.CardId, canonical CardItem) {
	col, idx := v.findCard(id)
	if col >= 0 && v.columns[col].Id == canonical.ListId {
		resort := v.columns[col].Cards[idx].Status != canonical.Status
		v.columns[col].Cards[idx] = canonical
		if resort {
			sortByStatus(v.columns[col].Cards)
		}
		return
	}
	if col >= 0 {
		v.columns[col].Cards = slices.Delete(v.columns[col].Cards, idx, idx+1)
	}
	if target := v.findColumn(canonical.ListId); target >= 0 {
		v.columns[target].Cards = append(v.columns[target].Cards, canonical)
	}
}

func applyPatch(card *CardItem, patch api.UpdateCardRequest) {
	if patch.Title != nil {
		card.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		desc := *patch.Description
		card.Description = &desc
	}
	if patch.Status != nil {
		card.Status = *patch.Status
	}
	if patch.Labels != nil {
		card.Labels = slices.Clone(*patch.Labels)
	}
	if patch.Assignees != nil {
		card.Assignees = slices.Clone(*patch.Assignees)
	}
}
