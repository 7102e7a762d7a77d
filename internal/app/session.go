package app

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tooldir/internal/domain"
	"tooldir/internal/infra/catalog"
	"tooldir/internal/infra/filter"
	"tooldir/internal/infra/prefstore"
	"tooldir/internal/infra/tagcloud"
	"tooldir/internal/infra/telemetry"
)

// SessionOptions captures dependencies and settings for Session.
type SessionOptions struct {
	ID            string
	Slots         *prefstore.Slots
	Engine        *filter.Engine
	Logger        *zap.Logger
	Metrics       domain.Metrics
	TagCloudLimit int
}

// Session holds the catalog, query, favorites and theme of one user and
// persists each of them to its preference slot whenever it changes.
// A Session is not safe for concurrent use.
type Session struct {
	id            string
	slots         *prefstore.Slots
	engine        *filter.Engine
	logger        *zap.Logger
	metrics       domain.Metrics
	tagCloudLimit int

	catalog   *catalog.Catalog
	query     domain.QueryState
	favorites domain.Favorites
	dark      bool
}

// NewSession restores a session from the preference slots. Missing or
// corrupt slots fall back to their defaults.
func NewSession(opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = domain.NoopMetrics{}
	}
	slots := opts.Slots
	if slots == nil {
		slots = prefstore.NewSlots(prefstore.NewMemory(), logger, metrics)
	}
	engine := opts.Engine
	if engine == nil {
		engine = filter.NewEngine(domain.DefaultLocale)
	}
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	limit := opts.TagCloudLimit
	if limit <= 0 {
		limit = domain.DefaultTagCloudLimit
	}

	s := &Session{
		id:            id,
		slots:         slots,
		engine:        engine,
		logger:        logger.Named("session").With(telemetry.SessionIDField(id)),
		metrics:       metrics,
		tagCloudLimit: limit,
	}
	s.restore()
	return s
}

func (s *Session) restore() {
	s.dark = prefstore.Load(s.slots, domain.SlotThemeDark, false)

	sortKey := domain.DefaultSortKey
	rawSort := prefstore.Load(s.slots, domain.SlotQuerySort, string(domain.DefaultSortKey))
	if parsed, err := domain.ParseSortKey(rawSort); err == nil {
		sortKey = parsed
	} else {
		s.logger.Warn("stored sort key invalid, using default",
			telemetry.SlotField(domain.SlotQuerySort),
			telemetry.EventField(telemetry.EventSlotFallback),
			zap.String("value", rawSort),
		)
	}
	s.query = domain.QueryState{
		Text:          prefstore.Load(s.slots, domain.SlotQueryText, ""),
		Categories:    prefstore.Load(s.slots, domain.SlotQueryCategories, domain.StringSet(nil)).Normalize(),
		Tags:          prefstore.Load(s.slots, domain.SlotQueryTags, domain.StringSet(nil)).Normalize(),
		Sort:          sortKey,
		OnlyFavorites: prefstore.Load(s.slots, domain.SlotQueryOnlyFavorites, false),
	}
	s.favorites = prefstore.Load(s.slots, domain.SlotFavorites, domain.Favorites(nil)).Normalize()
	s.catalog = catalog.New(prefstore.Load(s.slots, domain.SlotCatalog, domain.SeedTools()))

	s.logger.Debug("session restored",
		telemetry.EventField(telemetry.EventSessionRestored),
		zap.Int("tools", s.catalog.Len()),
		zap.Int("favorites", s.favorites.Len()),
	)
}

// ID returns the session identifier attached to log lines.
func (s *Session) ID() string {
	return s.id
}

// SetText replaces the search text.
func (s *Session) SetText(text string) {
	s.applyQuery(s.query.SetText(text))
}

// ToggleCategory adds or removes a category filter.
func (s *Session) ToggleCategory(category string) {
	s.applyQuery(s.query.ToggleCategory(category))
}

// ToggleTag adds or removes a tag filter.
func (s *Session) ToggleTag(tag string) {
	s.applyQuery(s.query.ToggleTag(tag))
}

// SetSort changes the result order.
func (s *Session) SetSort(key domain.SortKey) error {
	if !key.Valid() {
		return domain.E(domain.CodeInvalidArgument, "set sort", "sort must be name or trending", domain.ErrInvalidSortKey)
	}
	s.applyQuery(s.query.SetSort(key))
	return nil
}

// SetOnlyFavorites restricts results to favorites.
func (s *Session) SetOnlyFavorites(only bool) {
	s.applyQuery(s.query.SetOnlyFavorites(only))
}

// ClearAll resets the whole query in one step.
func (s *Session) ClearAll() {
	s.applyQuery(s.query.ClearAll())
	s.logger.Debug("query cleared", telemetry.EventField(telemetry.EventQueryCleared))
}

// applyQuery installs next and saves only the fields that differ.
func (s *Session) applyQuery(next domain.QueryState) {
	prev := s.query
	s.query = next
	if prev.Text != next.Text {
		s.slots.Save(domain.SlotQueryText, next.Text)
	}
	if !slices.Equal(prev.Categories, next.Categories) {
		s.slots.Save(domain.SlotQueryCategories, setOrEmpty(next.Categories))
	}
	if !slices.Equal(prev.Tags, next.Tags) {
		s.slots.Save(domain.SlotQueryTags, setOrEmpty(next.Tags))
	}
	if prev.Sort != next.Sort {
		s.slots.Save(domain.SlotQuerySort, string(next.Sort))
	}
	if prev.OnlyFavorites != next.OnlyFavorites {
		s.slots.Save(domain.SlotQueryOnlyFavorites, next.OnlyFavorites)
	}
}

// ToggleFavorite flips favorite membership of id and reports the new state.
// The id does not have to exist in the catalog.
func (s *Session) ToggleFavorite(id string) bool {
	s.favorites = s.favorites.Toggle(id)
	s.slots.Save(domain.SlotFavorites, setOrEmpty(s.favorites))
	member := s.favorites.Contains(id)
	s.logger.Debug("favorite toggled",
		telemetry.EventField(telemetry.EventFavoriteToggled),
		telemetry.ToolIDField(id),
		zap.Bool("favorite", member),
	)
	return member
}

// ReplaceCatalog swaps the whole catalog for tools, verbatim.
func (s *Session) ReplaceCatalog(tools []domain.Tool) {
	s.catalog.ReplaceAll(tools)
	s.saveCatalog()
	s.logger.Info("catalog replaced",
		telemetry.EventField(telemetry.EventCatalogReplaced),
		zap.Int("tools", s.catalog.Len()),
	)
}

// ImportCatalog merges patches into the catalog by id.
func (s *Session) ImportCatalog(patches []domain.ToolPatch) domain.ImportReport {
	return s.finishImport(s.catalog.MergeImport(patches))
}

// ImportPayload decodes an encoded import and merges it. A payload of the
// wrong shape is rejected before anything changes.
func (s *Session) ImportPayload(data []byte, format catalog.Format) (domain.ImportReport, error) {
	payload, err := catalog.Decode(data, format)
	if err != nil {
		s.logger.Warn("import rejected",
			telemetry.EventField(telemetry.EventImportRejected),
			zap.Error(err),
		)
		return domain.ImportReport{}, err
	}
	report := s.catalog.MergeImport(payload.Patches).Merge(payload.Issues)
	return s.finishImport(report), nil
}

// ResetCatalog merges the built-in tools back in. Imported tools are kept.
func (s *Session) ResetCatalog() domain.ImportReport {
	seed := domain.SeedTools()
	patches := make([]domain.ToolPatch, len(seed))
	for i, tool := range seed {
		patches[i] = domain.PatchFromTool(tool)
	}
	return s.ImportCatalog(patches)
}

func (s *Session) finishImport(report domain.ImportReport) domain.ImportReport {
	if report.Added > 0 || report.Updated > 0 {
		s.saveCatalog()
	}
	s.metrics.ObserveImport(report)
	s.logger.Info("import applied",
		telemetry.EventField(telemetry.EventImportApplied),
		zap.Int("added", report.Added),
		zap.Int("updated", report.Updated),
		zap.Int("skipped", report.Skipped),
	)
	return report
}

func (s *Session) saveCatalog() {
	s.slots.Save(domain.SlotCatalog, s.catalog.Tools())
}

// SetDark sets the theme flag.
func (s *Session) SetDark(dark bool) {
	if s.dark == dark {
		return
	}
	s.dark = dark
	s.slots.Save(domain.SlotThemeDark, dark)
}

// ToggleDark flips the theme flag and returns the new value.
func (s *Session) ToggleDark() bool {
	s.SetDark(!s.dark)
	return s.dark
}

// Results computes the visible tools for the current query.
func (s *Session) Results() []domain.Tool {
	return s.Search(s.query)
}

// Search computes results for an ad-hoc query without touching the stored one.
func (s *Session) Search(q domain.QueryState) []domain.Tool {
	start := time.Now()
	results := s.engine.Compute(s.catalog.Tools(), q, s.favorites)
	s.metrics.ObserveQuery(time.Since(start), len(results))
	return results
}

// TagCloud returns the most frequent tags of the whole catalog.
func (s *Session) TagCloud() []domain.TagCount {
	return s.TopTags(s.tagCloudLimit)
}

// TopTags is TagCloud with an explicit row limit.
func (s *Session) TopTags(limit int) []domain.TagCount {
	return tagcloud.Compute(s.catalog.Tools(), limit)
}

// IsFavorite reports favorite membership.
func (s *Session) IsFavorite(id string) bool {
	return s.favorites.Contains(id)
}

func (s *Session) Query() domain.QueryState {
	return s.query
}

func (s *Session) Favorites() domain.Favorites {
	return slices.Clone(s.favorites)
}

func (s *Session) Tools() []domain.Tool {
	return s.catalog.Tools()
}

func (s *Session) Dark() bool {
	return s.dark
}

// Categories lists the known categories followed by any other category
// present in the catalog, in first-seen order.
func (s *Session) Categories() []string {
	out := slices.Clone(domain.KnownCategories)
	seen := make(map[string]struct{}, len(out))
	for _, category := range out {
		seen[category] = struct{}{}
	}
	for _, tool := range s.catalog.Tools() {
		if tool.Category == "" {
			continue
		}
		if _, ok := seen[tool.Category]; ok {
			continue
		}
		seen[tool.Category] = struct{}{}
		out = append(out, tool.Category)
	}
	return out
}

// AllTags lists every distinct tag in the catalog, sorted.
func (s *Session) AllTags() []string {
	var tags []string
	for _, tool := range s.catalog.Tools() {
		tags = append(tags, tool.Tags...)
	}
	return domain.NewStringSet(tags...)
}

// setOrEmpty keeps persisted sets as JSON arrays rather than null.
func setOrEmpty(set domain.StringSet) []string {
	if set == nil {
		return []string{}
	}
	return set
}
