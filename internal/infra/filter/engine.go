package filter

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tooldir/internal/domain"
)

// Engine computes the visible result sequence for a query. It keeps a
// collator, which is not safe for concurrent use.
type Engine struct {
	locale   language.Tag
	collator *collate.Collator
}

// NewEngine builds an engine ordering names by the collation rules of locale.
// An unparseable locale falls back to domain.DefaultLocale.
func NewEngine(locale string) *Engine {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.Make(domain.DefaultLocale)
	}
	return &Engine{
		locale:   tag,
		collator: collate.New(tag, collate.IgnoreCase),
	}
}

// Locale returns the collation locale.
func (e *Engine) Locale() language.Tag {
	return e.locale
}

// Compute narrows tools by every active stage of q and orders the survivors by
// q.Sort. Ties keep catalog order. The input is not modified.
func (e *Engine) Compute(tools []domain.Tool, q domain.QueryState, favorites domain.Favorites) []domain.Tool {
	q.Categories = q.Categories.Normalize()
	q.Tags = q.Tags.Normalize()
	favorites = favorites.Normalize()

	folder := cases.Fold()
	needle := folder.String(q.Needle())

	out := make([]domain.Tool, 0, len(tools))
	for _, tool := range tools {
		if !matchesText(folder, tool, needle) {
			continue
		}
		if q.Categories.Len() > 0 && !q.Categories.Contains(tool.Category) {
			continue
		}
		if q.Tags.Len() > 0 && !matchesAnyTag(tool, q.Tags) {
			continue
		}
		if q.OnlyFavorites && !favorites.Contains(tool.ID) {
			continue
		}
		out = append(out, tool.Clone())
	}

	switch q.Sort {
	case domain.SortName:
		slices.SortStableFunc(out, func(a, b domain.Tool) int {
			return e.collator.CompareString(a.Name, b.Name)
		})
	case domain.SortTrending:
		slices.SortStableFunc(out, func(a, b domain.Tool) int {
			return cmp.Compare(b.Trending, a.Trending)
		})
	}
	return out
}

// matchesText checks each searchable field on its own, so a needle can never
// straddle two fields.
func matchesText(folder cases.Caser, tool domain.Tool, needle string) bool {
	if needle == "" {
		return true
	}
	contains := func(field string) bool {
		return strings.Contains(folder.String(field), needle)
	}
	if contains(tool.Name) || contains(tool.Description) || contains(tool.Category) {
		return true
	}
	return slices.ContainsFunc(tool.Tags, contains)
}

func matchesAnyTag(tool domain.Tool, selected domain.StringSet) bool {
	return slices.ContainsFunc(tool.Tags, selected.Contains)
}
