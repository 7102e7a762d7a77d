package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestQueryState_ToggleCategoryIsInvolution(t *testing.T) {
	base := DefaultQueryState().
		SetText("dns").
		ToggleCategory("Meta").
		ToggleTag("recon")

	for _, category := range []string{"Meta", "DNS", "NoSuchCategory"} {
		got := base.ToggleCategory(category).ToggleCategory(category)
		if diff := cmp.Diff(base, got); diff != "" {
			t.Fatalf("toggle %q twice changed state (-want +got):\n%s", category, diff)
		}
	}
}

func TestQueryState_ToggleTagIsInvolution(t *testing.T) {
	base := DefaultQueryState().ToggleTag("email")
	require.Equal(t, base, base.ToggleTag("dns").ToggleTag("dns"))
	require.Equal(t, base, base.ToggleTag("email").ToggleTag("email"))
}

func TestQueryState_TransitionsDoNotMutateReceiver(t *testing.T) {
	base := DefaultQueryState().ToggleCategory("DNS")
	next := base.ToggleCategory("Meta")

	require.Equal(t, StringSet{"DNS"}, base.Categories)
	require.Equal(t, StringSet{"DNS", "Meta"}, next.Categories)
}

func TestQueryState_ClearAll(t *testing.T) {
	dirty := DefaultQueryState().
		SetText("  Shodan ").
		ToggleCategory("Infrastructure").
		ToggleTag("ip").
		SetSort(SortName).
		SetOnlyFavorites(true)

	cleared := dirty.ClearAll()
	require.Equal(t, QueryState{Sort: SortTrending}, cleared)
	require.False(t, cleared.HasActiveFilters())
	require.Equal(t, cleared, cleared.ClearAll())
}

func TestQueryState_Needle(t *testing.T) {
	require.Equal(t, "dns dump", DefaultQueryState().SetText("  DNS Dump\t").Needle())
	require.Empty(t, DefaultQueryState().SetText("   ").Needle())
}

func TestQueryState_HasActiveFilters(t *testing.T) {
	tests := []struct {
		name  string
		query QueryState
		want  bool
	}{
		{name: "default", query: DefaultQueryState(), want: false},
		{name: "sort only", query: DefaultQueryState().SetSort(SortName), want: false},
		{name: "text", query: DefaultQueryState().SetText("x"), want: true},
		{name: "category", query: DefaultQueryState().ToggleCategory("DNS"), want: true},
		{name: "tag", query: DefaultQueryState().ToggleTag("dns"), want: true},
		{name: "favorites", query: DefaultQueryState().SetOnlyFavorites(true), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.query.HasActiveFilters())
		})
	}
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey("NAME")
	require.NoError(t, err)
	require.Equal(t, SortName, key)

	key, err = ParseSortKey(" trending ")
	require.NoError(t, err)
	require.Equal(t, SortTrending, key)

	_, err = ParseSortKey("popularity")
	require.ErrorIs(t, err, ErrInvalidSortKey)
	code, ok := CodeFrom(err)
	require.True(t, ok)
	require.Equal(t, CodeInvalidArgument, code)
}
