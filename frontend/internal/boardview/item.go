package boardview

import (
	"slices"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
)

// CardItem is the display projection of a card.
type CardItem struct {
	Id          domain.CardId
	Title       string
	Description *string
	ListId      domain.ListId
	Position    int
	Type        domain.CardType
	Status      domain.Status
	Labels      []domain.LabelRef
	Assignees   domain.Assignees
	Author      domain.UserId
	// Pending is set while an optimistic change to this card is unconfirmed.
	Pending bool
}

// Column is the display projection of a list.
type Column struct {
	Id       domain.ListId
	Title    string
	Position int
	Cards    []CardItem
	Pending  bool
}

// toCardItem projects c, reporting false for records that cannot be shown:
// empty id or title, or a list that is not on the board.
func toCardItem(c domain.Card, lists map[domain.ListId]bool) (CardItem, bool) {
	if c.Id == "" || c.Title == "" || c.ListId == "" || !lists[c.ListId] {
		return CardItem{}, false
	}
	item := CardItem{
		Id:          c.Id,
		Title:       c.Title,
		Description: c.Description,
		ListId:      c.ListId,
		Position:    c.Position,
		Type:        c.Type,
		Status:      c.Status(),
	}
	if c.Work != nil {
		item.Labels = slices.Clone(c.Work.Labels)
		item.Assignees = slices.Clone(c.Work.Assignees)
	}
	if c.Comment != nil {
		item.Author = c.Comment.Author
	}
	return item, true
}

// project builds columns from lists, dropping cards that cannot be shown
// and sorting each column by status.
func project(lists []domain.List) []Column {
	known := make(map[domain.ListId]bool, len(lists))
	for _, l := range lists {
		if l.Id != "" {
			known[l.Id] = true
		}
	}

	columns := make([]Column, 0, len(lists))
	index := make(map[domain.ListId]int, len(lists))
	for _, l := range lists {
		if l.Id == "" {
			continue
		}
		index[l.Id] = len(columns)
		columns = append(columns, Column{Id: l.Id, Title: l.Title, Position: l.Position, Cards: []CardItem{}})
	}
	for _, l := range lists {
		for _, c := range l.Cards {
			item, ok := toCardItem(c, known)
			if !ok {
				continue
			}
			i := index[item.ListId]
			columns[i].Cards = append(columns[i].Cards, item)
		}
	}
	slices.SortStableFunc(columns, func(a, b Column) int { return a.Position - b.Position })
	for i := range columns {
		sortByStatus(columns[i].Cards)
	}
	return columns
}

// sortByStatus orders cards todo, in-progress, completed, keeping the
// existing order among cards with the same status.
func sortByStatus(cards []CardItem) {
	slices.SortStableFunc(cards, func(a, b CardItem) int {
		return a.Status.Order() - b.Status.Order()
	})
}

func cloneColumns(columns []Column) []Column {
	out := make([]Column, len(columns))
	for i, c := range columns {
		out[i] = c
		out[i].Cards = make([]CardItem, len(c.Cards))
		for j, card := range c.Cards {
			card.Labels = slices.Clone(card.Labels)
			card.Assignees = slices.Clone(card.Assignees)
			out[i].Cards[j] = card
		}
	}
	return out
}
