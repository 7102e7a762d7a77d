package domain

const (
	DefaultSortKey                    = SortTrending
	DefaultTagCloudLimit              = 24
	DefaultLocale                     = "en"
	DefaultLogLevel                   = "info"
	DefaultLogFormat                  = "console"
	DefaultFeedDebounceMillis         = 200
	DefaultObservabilityListenAddress = ""
)

// Preference slot keys. Each slot holds one JSON value.
const (
	SlotThemeDark          = "theme.dark"
	SlotQueryText          = "query.text"
	SlotQueryCategories    = "query.categories"
	SlotQueryTags          = "query.tags"
	SlotQuerySort          = "query.sort"
	SlotQueryOnlyFavorites = "query.onlyFavorites"
	SlotFavorites          = "favorites"
	SlotCatalog            = "catalog"
)

// AllSlots lists every preference slot in display order.
var AllSlots = []string{
	SlotThemeDark,
	SlotQueryText,
	SlotQueryCategories,
	SlotQueryTags,
	SlotQuerySort,
	SlotQueryOnlyFavorites,
	SlotFavorites,
	SlotCatalog,
}
