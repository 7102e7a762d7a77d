package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tooldir/internal/domain"
)

func ids(tools []domain.Tool) []string {
	out := make([]string, len(tools))
	for i, tool := range tools {
		out[i] = tool.ID
	}
	return out
}

func sampleCatalog() []domain.Tool {
	return []domain.Tool{
		{ID: "a", Name: "Alpha", Tags: []string{"x"}, Trending: 10},
		{ID: "b", Name: "Beta", Tags: []string{"x", "y"}, Trending: 50},
	}
}

func TestComputeSortsByTrendingDescending(t *testing.T) {
	engine := NewEngine("en")

	got := engine.Compute(sampleCatalog(), domain.DefaultQueryState(), nil)

	require.Equal(t, []string{"b", "a"}, ids(got))
}

func TestComputeUnknownCategoryYieldsEmpty(t *testing.T) {
	engine := NewEngine("en")
	q := domain.DefaultQueryState().ToggleCategory("NoSuchCategory")

	got := engine.Compute(sampleCatalog(), q, nil)

	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestComputeClearedQueryReturnsWholeCatalog(t *testing.T) {
	engine := NewEngine("en")
	tools := domain.SeedTools()

	got := engine.Compute(tools, domain.DefaultQueryState().SetSort(domain.SortName), nil)

	require.Len(t, got, len(tools))
	require.ElementsMatch(t, ids(tools), ids(got))
}

func TestComputeTagStageIsUnion(t *testing.T) {
	engine := NewEngine("en")
	tools := []domain.Tool{
		{ID: "dns-only", Tags: []string{"dns"}},
		{ID: "email-only", Tags: []string{"email"}},
		{ID: "neither", Tags: []string{"web"}},
		{ID: "untagged"},
	}
	q := domain.DefaultQueryState().ToggleTag("dns").ToggleTag("email")

	got := engine.Compute(tools, q, nil)

	require.Equal(t, []string{"dns-only", "email-only"}, ids(got))
}

func TestComputeTrendingSortIsStable(t *testing.T) {
	engine := NewEngine("en")
	tools := []domain.Tool{
		{ID: "first", Trending: 5},
		{ID: "top", Trending: 9},
		{ID: "second", Trending: 5},
		{ID: "third", Trending: 5},
		{ID: "zero"},
	}

	for range 5 {
		got := engine.Compute(tools, domain.DefaultQueryState(), nil)
		require.Equal(t, []string{"top", "first", "second", "third", "zero"}, ids(got))
	}
}

func TestComputeNameSortIgnoresCase(t *testing.T) {
	engine := NewEngine("en")
	tools := []domain.Tool{
		{ID: "1", Name: "beta"},
		{ID: "2", Name: "Alpha"},
		{ID: "3", Name: "alpha"},
		{ID: "4", Name: "Gamma"},
	}

	got := engine.Compute(tools, domain.DefaultQueryState().SetSort(domain.SortName), nil)

	require.Equal(t, []string{"2", "3", "1", "4"}, ids(got))
}

func TestComputeTextMatchesEachField(t *testing.T) {
	engine := NewEngine("en")
	tools := []domain.Tool{
		{ID: "name", Name: "Shodan"},
		{ID: "desc", Description: "Search engine for DEVICES"},
		{ID: "cat", Category: "Email"},
		{ID: "tag", Tags: []string{"subdomains"}},
		{ID: "split", Name: "ab", Description: "cd"},
	}

	cases := []struct {
		text string
		want []string
	}{
		{text: "  shodan ", want: []string{"name"}},
		{text: "devices", want: []string{"desc"}},
		{text: "EMAIL", want: []string{"cat"}},
		{text: "domain", want: []string{"tag"}},
		{text: "bc", want: []string{}},
		{text: "   ", want: []string{"name", "desc", "cat", "tag", "split"}},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			q := domain.DefaultQueryState().SetText(tc.text)
			require.Equal(t, tc.want, ids(engine.Compute(tools, q, nil)))
		})
	}
}

func TestComputeOnlyFavorites(t *testing.T) {
	engine := NewEngine("en")
	q := domain.DefaultQueryState().SetOnlyFavorites(true)

	require.Empty(t, engine.Compute(sampleCatalog(), q, nil))
	require.Equal(t, []string{"a"}, ids(engine.Compute(sampleCatalog(), q, domain.NewStringSet("a", "gone"))))
}

func TestComputeStagesComposeByAnd(t *testing.T) {
	engine := NewEngine("en")
	tools := []domain.Tool{
		{ID: "hit", Name: "Recon", Category: "DNS", Tags: []string{"dns"}},
		{ID: "wrong-cat", Name: "Recon", Category: "Email", Tags: []string{"dns"}},
		{ID: "wrong-text", Name: "Other", Category: "DNS", Tags: []string{"dns"}},
	}
	q := domain.DefaultQueryState().SetText("recon").ToggleCategory("DNS").ToggleTag("dns")

	require.Equal(t, []string{"hit"}, ids(engine.Compute(tools, q, nil)))
}

func TestComputeUnknownSortKeepsCatalogOrder(t *testing.T) {
	engine := NewEngine("en")
	q := domain.DefaultQueryState().SetSort(domain.SortKey("popularity"))

	require.Equal(t, []string{"a", "b"}, ids(engine.Compute(sampleCatalog(), q, nil)))
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	engine := NewEngine("en")
	tools := sampleCatalog()

	got := engine.Compute(tools, domain.DefaultQueryState(), nil)
	got[0].Tags[0] = "mutated"

	require.Equal(t, sampleCatalog(), tools)
}

func TestNewEngineFallsBackOnBadLocale(t *testing.T) {
	require.Equal(t, "en", NewEngine("not a locale!").Locale().String())
	require.Equal(t, "de", NewEngine("de").Locale().String())
}

func TestComputeAcceptsUnsortedSets(t *testing.T) {
	engine := NewEngine("en")
	tools := []domain.Tool{
		{ID: "a", Category: "DNS", Tags: []string{"x"}},
		{ID: "b", Category: "Email", Tags: []string{"y"}},
		{ID: "c", Category: "Web", Tags: []string{"z"}},
	}

	q := domain.DefaultQueryState()
	q.Categories = domain.StringSet{"Web", "DNS"}
	require.ElementsMatch(t, []string{"a", "c"}, ids(engine.Compute(tools, q, nil)))

	q = domain.DefaultQueryState()
	q.Tags = domain.StringSet{"z", "y"}
	require.ElementsMatch(t, []string{"b", "c"}, ids(engine.Compute(tools, q, nil)))

	q = domain.DefaultQueryState()
	q.OnlyFavorites = true
	require.ElementsMatch(t, []string{"a", "c"}, ids(engine.Compute(tools, q, domain.Favorites{"c", "a"})))
}
