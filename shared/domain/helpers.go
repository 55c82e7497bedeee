package domain

import "strings"

// for debug
func (c *Card) String() string {
	var b strings.Builder
	b.WriteString("[id:" + c.Id + ", title:" + c.Title + ", list:" + c.ListId + ", type:" + string(c.Type))
	if c.Work != nil {
		b.WriteString(", status:" + string(c.Work.Status))
	}
	if c.Comment != nil {
		b.WriteString(", author:" + c.Comment.Author)
	}
	return b.String() + "]"
}

func (l *List) String() string {
	var b strings.Builder
	b.WriteString("[id:" + l.Id + ", title:" + l.Title + ", cards:[")
	for i := range l.Cards {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(l.Cards[i].String())
	}
	return b.String() + "]]"
}

// StrPtr returns nil for an empty trimmed string, otherwise a pointer to the trimmed value.
func StrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
