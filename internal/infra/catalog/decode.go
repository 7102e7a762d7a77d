package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"tooldir/internal/domain"
)

// Format is an import payload encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// tomlToolsKey holds the record list in TOML payloads, which cannot have a top-level array.
const tomlToolsKey = "tools"

// ParseFormat converts a user supplied format name.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownFormat, raw)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", domain.ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Payload is a decoded import: usable patches plus the records that were skipped.
type Payload struct {
	Patches []domain.ToolPatch
	Issues  []domain.ImportIssue
}

// Tools materializes every patch as a full tool.
func (p Payload) Tools() []domain.Tool {
	tools := make([]domain.Tool, len(p.Patches))
	for i, patch := range p.Patches {
		tools[i] = patch.ToTool()
	}
	return tools
}

// ReadFile reads and decodes an import file, choosing the format by extension.
func ReadFile(path string) (Payload, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Payload{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, fmt.Errorf("read import file: %w", err)
	}
	return Decode(data, format)
}

// Decode parses an import payload. A payload whose top level is not a list of
// records fails with domain.ErrImportShape; individual malformed records are
// reported as issues and left out of the patches.
func Decode(data []byte, format Format) (Payload, error) {
	records, err := decodeRecords(data, format)
	if err != nil {
		return Payload{}, err
	}
	payload := Payload{Patches: make([]domain.ToolPatch, 0, len(records))}
	for i, record := range records {
		patch, issue := patchFromRecord(i, record)
		if issue != nil {
			payload.Issues = append(payload.Issues, *issue)
			continue
		}
		payload.Patches = append(payload.Patches, patch)
	}
	return payload, nil
}

func decodeRecords(data []byte, format Format) ([]any, error) {
	const op = "decode import"
	var root any
	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&root); err != nil {
			return nil, domain.E(domain.CodeInvalidArgument, op, fmt.Sprintf("invalid JSON: %v", err), domain.ErrImportShape)
		}
		if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return nil, domain.E(domain.CodeInvalidArgument, op, "invalid JSON: trailing data", domain.ErrImportShape)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, domain.E(domain.CodeInvalidArgument, op, fmt.Sprintf("invalid YAML: %v", err), domain.ErrImportShape)
		}
	case FormatTOML:
		var table map[string]any
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, domain.E(domain.CodeInvalidArgument, op, fmt.Sprintf("invalid TOML: %v", err), domain.ErrImportShape)
		}
		value, ok := table[tomlToolsKey]
		if !ok {
			return nil, domain.E(domain.CodeInvalidArgument, op, "expected a [[tools]] array of tables", domain.ErrImportShape)
		}
		root = value
	default:
		return nil, domain.E(domain.CodeInvalidArgument, op, "", fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format))
	}

	switch records := root.(type) {
	case []any:
		return records, nil
	case []map[string]any:
		out := make([]any, len(records))
		for i, record := range records {
			out[i] = record
		}
		return out, nil
	default:
		return nil, domain.E(domain.CodeInvalidArgument, op, fmt.Sprintf("expected a list of tools, got %s", describe(root)), domain.ErrImportShape)
	}
}

func patchFromRecord(index int, record any) (domain.ToolPatch, *domain.ImportIssue) {
	fields, ok := record.(map[string]any)
	if !ok {
		return domain.ToolPatch{}, &domain.ImportIssue{
			Index:   index,
			Kind:    domain.IssueInvalidRecord,
			Message: fmt.Sprintf("record must be an object, got %s", describe(record)),
		}
	}

	invalid := func(id, message string) *domain.ImportIssue {
		return &domain.ImportIssue{Index: index, ID: id, Kind: domain.IssueInvalidRecord, Message: message}
	}

	rawID, present := fields["id"]
	if !present || rawID == nil {
		return domain.ToolPatch{}, &domain.ImportIssue{Index: index, Kind: domain.IssueMissingID, Message: "record has no id"}
	}
	id, ok := rawID.(string)
	if !ok {
		return domain.ToolPatch{}, invalid("", fmt.Sprintf("id must be a string, got %s", describe(rawID)))
	}
	if strings.TrimSpace(id) == "" {
		return domain.ToolPatch{}, &domain.ImportIssue{Index: index, Kind: domain.IssueMissingID, Message: "record has an empty id"}
	}

	patch := domain.ToolPatch{ID: id}
	stringFields := []struct {
		key    string
		target **string
	}{
		{key: "name", target: &patch.Name},
		{key: "url", target: &patch.URL},
		{key: "category", target: &patch.Category},
		{key: "description", target: &patch.Description},
	}
	for _, field := range stringFields {
		value, err := optionalString(fields, field.key)
		if err != nil {
			return domain.ToolPatch{}, invalid(id, err.Error())
		}
		*field.target = value
	}

	tags, hasTags, err := optionalStrings(fields, "tags")
	if err != nil {
		return domain.ToolPatch{}, invalid(id, err.Error())
	}
	patch.Tags = tags
	patch.HasTags = hasTags

	trending, err := optionalInt(fields, "trending")
	if err != nil {
		return domain.ToolPatch{}, invalid(id, err.Error())
	}
	patch.Trending = trending

	return patch, nil
}

func optionalString(fields map[string]any, key string) (*string, error) {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return nil, nil
	}
	value, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%s must be a string, got %s", key, describe(raw))
	}
	return &value, nil
}

func optionalStrings(fields map[string]any, key string) ([]string, bool, error) {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return nil, false, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, false, fmt.Errorf("%s must be a list of strings, got %s", key, describe(raw))
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		value, ok := item.(string)
		if !ok {
			return nil, false, fmt.Errorf("%s[%d] must be a string, got %s", key, i, describe(item))
		}
		out = append(out, value)
	}
	return out, true, nil
}

func optionalInt(fields map[string]any, key string) (*int, error) {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return nil, nil
	}
	var number float64
	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			if n > math.MaxInt || n < math.MinInt {
				return nil, fmt.Errorf("%s is out of range", key)
			}
			value := int(n)
			return &value, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%s must be a number: %w", key, err)
		}
		number = f
	case int:
		return &v, nil
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return nil, fmt.Errorf("%s is out of range", key)
		}
		value := int(v)
		return &value, nil
	case uint64:
		if v > math.MaxInt {
			return nil, fmt.Errorf("%s is out of range", key)
		}
		value := int(v)
		return &value, nil
	case float64:
		number = v
	default:
		return nil, fmt.Errorf("%s must be a number, got %s", key, describe(raw))
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return nil, fmt.Errorf("%s must be a finite number", key)
	}
	number = math.Round(number)
	// float64(math.MaxInt) rounds up to 2^63, which no int can hold.
	if number >= float64(math.MaxInt) || number < float64(math.MinInt) {
		return nil, fmt.Errorf("%s is out of range", key)
	}
	value := int(number)
	return &value, nil
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case []any:
		return "a list"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number, int, int64, uint64, float64:
		return "a number"
	default:
		return fmt.Sprintf("%T", value)
	}
}
