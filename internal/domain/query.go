package domain

import "strings"

// SortKey selects the result ordering.
type SortKey string

const (
	// SortName orders by name, case-insensitive and locale-aware.
	SortName SortKey = "name"
	// SortTrending orders by trending score, highest first.
	SortTrending SortKey = "trending"
)

// Valid reports whether the key is a known sort key.
func (k SortKey) Valid() bool {
	return k == SortName || k == SortTrending
}

// ParseSortKey converts user input into a SortKey.
func ParseSortKey(raw string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(raw))) {
	case SortName:
		return SortName, nil
	case SortTrending:
		return SortTrending, nil
	default:
		return "", E(CodeInvalidArgument, "parse sort key", "sort must be name or trending", ErrInvalidSortKey)
	}
}

// QueryState is the current search, filter and sort selection.
// Every method returns a new state and leaves the receiver untouched.
type QueryState struct {
	Text          string    `json:"text"`
	Categories    StringSet `json:"categories"`
	Tags          StringSet `json:"tags"`
	Sort          SortKey   `json:"sort"`
	OnlyFavorites bool      `json:"onlyFavorites"`
}

// DefaultQueryState returns the cleared query.
func DefaultQueryState() QueryState {
	return QueryState{Sort: DefaultSortKey}
}

func (q QueryState) SetText(text string) QueryState {
	q.Text = text
	return q
}

func (q QueryState) ToggleCategory(category string) QueryState {
	q.Categories = q.Categories.Toggle(category)
	return q
}

func (q QueryState) ToggleTag(tag string) QueryState {
	q.Tags = q.Tags.Toggle(tag)
	return q
}

func (q QueryState) SetSort(key SortKey) QueryState {
	q.Sort = key
	return q
}

func (q QueryState) SetOnlyFavorites(only bool) QueryState {
	q.OnlyFavorites = only
	return q
}

// ClearAll resets every field at once.
func (q QueryState) ClearAll() QueryState {
	return DefaultQueryState()
}

// Needle is the normalized search text.
func (q QueryState) Needle() string {
	return strings.ToLower(strings.TrimSpace(q.Text))
}

// HasActiveFilters reports whether any narrowing selection is set. Sort order is not a filter.
func (q QueryState) HasActiveFilters() bool {
	return q.Text != "" || q.Categories.Len() > 0 || q.Tags.Len() > 0 || q.OnlyFavorites
}

// Favorites is the set of favorite tool ids.
type Favorites = StringSet
