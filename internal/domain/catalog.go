package domain

import "strings"

// LookupEntity is a category, brand or unit as listed by the upstream.
type LookupEntity struct {
	ID    any
	Title any
}

// NewLookupEntity reads id and title from an upstream record.
func NewLookupEntity(raw any) LookupEntity {
	return LookupEntity{
		ID:    Field(raw, "id"),
		Title: Field(raw, "title"),
	}
}

// TitleText returns the title as text, or "" when it is unset.
func (e LookupEntity) TitleText() string {
	if !Truthy(e.Title) {
		return ""
	}
	return Text(e.Title)
}

// MatchesTitle reports whether the entity's title equals title, ignoring case.
func (e LookupEntity) MatchesTitle(title string) bool {
	return strings.ToLower(e.TitleText()) == strings.ToLower(title)
}

// FindByTitle returns the first record whose title matches, ignoring case.
// The second result lists every non-empty title, for not-found details.
func FindByTitle(records []any, title string) (*LookupEntity, []any) {
	available := make([]any, 0, len(records))
	var found *LookupEntity
	for _, raw := range records {
		entity := NewLookupEntity(raw)
		if Truthy(entity.Title) {
			available = append(available, entity.Title)
		}
		if found == nil && entity.MatchesTitle(title) {
			found = &entity
		}
	}
	return found, available
}
