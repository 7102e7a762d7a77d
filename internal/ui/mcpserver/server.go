package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"tooldir/internal/app"
	"tooldir/internal/domain"
	"tooldir/internal/infra/catalog"
	"tooldir/internal/infra/telemetry"
)

const serverName = "tooldir"

const instructions = `tooldir exposes a catalog of OSINT tools.

Available tools:
- search_tools: filter and sort the catalog by text, categories, tags and favorites
- tag_cloud: most frequent tags across the catalog
- list_categories: categories and distinct tags usable as filters
- toggle_favorite: add or remove a tool id from favorites
- import_tools: merge a JSON, YAML or TOML list of tools into the catalog by id`

// Server exposes a Session over the Model Context Protocol. Tool handlers may
// run concurrently, so every Session access is serialized.
type Server struct {
	mu      sync.Mutex
	session *app.Session
	logger  *zap.Logger
	server  *mcp.Server
}

func New(session *app.Session, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if version == "" {
		version = app.Version
	}
	s := &Server{
		session: session,
		logger:  logger.Named("mcp").With(zap.String(telemetry.FieldLogSource, telemetry.LogSourceMCP)),
	}
	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: version,
	}, &mcp.ServerOptions{
		Instructions: instructions,
		HasTools:     true,
	})
	s.registerTools()
	return s
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// Run serves on stdio until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting (stdio transport)")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

type SearchArgs struct {
	Text          string   `json:"text,omitempty" jsonschema:"free text matched case-insensitively against name, description, category and tags"`
	Categories    []string `json:"categories,omitempty" jsonschema:"keep tools in any of these categories"`
	Tags          []string `json:"tags,omitempty" jsonschema:"keep tools carrying at least one of these tags"`
	Sort          string   `json:"sort,omitempty" jsonschema:"name or trending (default trending)"`
	OnlyFavorites bool     `json:"onlyFavorites,omitempty" jsonschema:"keep favorite tools only"`
	Limit         int      `json:"limit,omitempty" jsonschema:"maximum number of tools to return, 0 for all"`
}

type SearchResult struct {
	Tools []ToolView `json:"tools"`
	Total int        `json:"total"`
}

type ToolView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Trending    int      `json:"trending"`
	Favorite    bool     `json:"favorite"`
}

func newToolView(tool domain.Tool, favorite bool) ToolView {
	return ToolView{
		ID:          tool.ID,
		Name:        tool.Name,
		URL:         tool.URL,
		Category:    tool.Category,
		Description: tool.Description,
		Tags:        tool.Tags,
		Trending:    tool.Trending,
		Favorite:    favorite,
	}
}

type TagCloudArgs struct {
	Limit int `json:"limit,omitempty" jsonschema:"number of tags to return (default 24)"`
}

type TagCloudResult struct {
	Tags []domain.TagCount `json:"tags"`
}

type ListCategoriesArgs struct{}

type ListCategoriesResult struct {
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}

type ToggleFavoriteArgs struct {
	ID string `json:"id" jsonschema:"tool id to add to or remove from favorites"`
}

type ToggleFavoriteResult struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
}

type ImportArgs struct {
	Payload string `json:"payload" jsonschema:"encoded list of tools; records are merged by id"`
	Format  string `json:"format,omitempty" jsonschema:"json, yaml or toml (default json)"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_tools",
		Description: "Filter and sort the tool catalog. Stages combine with AND; tags match with OR.",
		Annotations: &mcp.ToolAnnotations{
			Title:        "Search Tools",
			ReadOnlyHint: true,
		},
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "tag_cloud",
		Description: "Most frequent tags across the whole catalog, highest count first.",
		Annotations: &mcp.ToolAnnotations{
			Title:        "Tag Cloud",
			ReadOnlyHint: true,
		},
	}, s.handleTagCloud)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_categories",
		Description: "Known categories plus any found in the catalog, and every distinct tag.",
		Annotations: &mcp.ToolAnnotations{
			Title:        "List Categories",
			ReadOnlyHint: true,
		},
	}, s.handleListCategories)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "toggle_favorite",
		Description: "Add a tool id to favorites, or remove it if already present.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Toggle Favorite",
			DestructiveHint: ptr(false),
		},
	}, s.handleToggleFavorite)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "import_tools",
		Description: "Merge tools into the catalog by id. Fields missing from a record keep their current value.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Import Tools",
			DestructiveHint: ptr(false),
			IdempotentHint:  true,
		},
	}, s.handleImport)
}

func (s *Server) handleSearch(_ context.Context, _ *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, SearchResult, error) {
	query := domain.DefaultQueryState()
	if strings.TrimSpace(args.Sort) != "" {
		key, err := domain.ParseSortKey(args.Sort)
		if err != nil {
			return nil, SearchResult{}, err
		}
		query.Sort = key
	}
	query.Text = args.Text
	query.Categories = domain.NewStringSet(args.Categories...)
	query.Tags = domain.NewStringSet(args.Tags...)
	query.OnlyFavorites = args.OnlyFavorites

	s.mu.Lock()
	results := s.session.Search(query)
	views := make([]ToolView, len(results))
	for i, tool := range results {
		views[i] = newToolView(tool, s.session.IsFavorite(tool.ID))
	}
	s.mu.Unlock()

	out := SearchResult{Tools: views, Total: len(views)}
	if args.Limit > 0 && len(out.Tools) > args.Limit {
		out.Tools = out.Tools[:args.Limit]
	}
	s.logger.Debug("tool executed", zap.String("tool", "search_tools"), zap.Int("results", out.Total))
	return nil, out, nil
}

func (s *Server) handleTagCloud(_ context.Context, _ *mcp.CallToolRequest, args TagCloudArgs) (*mcp.CallToolResult, TagCloudResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if args.Limit > 0 {
		return nil, TagCloudResult{Tags: s.session.TopTags(args.Limit)}, nil
	}
	return nil, TagCloudResult{Tags: s.session.TagCloud()}, nil
}

func (s *Server) handleListCategories(_ context.Context, _ *mcp.CallToolRequest, _ ListCategoriesArgs) (*mcp.CallToolResult, ListCategoriesResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return nil, ListCategoriesResult{
		Categories: s.session.Categories(),
		Tags:       s.session.AllTags(),
	}, nil
}

func (s *Server) handleToggleFavorite(_ context.Context, _ *mcp.CallToolRequest, args ToggleFavoriteArgs) (*mcp.CallToolResult, ToggleFavoriteResult, error) {
	id := strings.TrimSpace(args.ID)
	if id == "" {
		return nil, ToggleFavoriteResult{}, domain.E(domain.CodeInvalidArgument, "toggle favorite", "id is required", nil)
	}
	s.mu.Lock()
	favorite := s.session.ToggleFavorite(id)
	s.mu.Unlock()

	s.logger.Info("tool executed", zap.String("tool", "toggle_favorite"), telemetry.ToolIDField(id), zap.Bool("favorite", favorite))
	return nil, ToggleFavoriteResult{ID: id, Favorite: favorite}, nil
}

func (s *Server) handleImport(_ context.Context, _ *mcp.CallToolRequest, args ImportArgs) (*mcp.CallToolResult, domain.ImportReport, error) {
	format := catalog.FormatJSON
	if strings.TrimSpace(args.Format) != "" {
		parsed, err := catalog.ParseFormat(args.Format)
		if err != nil {
			return nil, domain.ImportReport{}, err
		}
		format = parsed
	}

	s.mu.Lock()
	report, err := s.session.ImportPayload([]byte(args.Payload), format)
	s.mu.Unlock()
	if err != nil {
		return nil, domain.ImportReport{}, fmt.Errorf("import failed: %w", err)
	}
	return nil, report, nil
}

func ptr[T any](v T) *T {
	return &v
}
