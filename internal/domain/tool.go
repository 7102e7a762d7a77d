package domain

import "slices"

// Tool is a single catalog entry.
type Tool struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Trending    int      `json:"trending"`
}

// Clone returns a copy of the tool that shares no slices with the original.
func (t Tool) Clone() Tool {
	t.Tags = slices.Clone(t.Tags)
	return t
}

// ToolPatch is an incoming import record. Nil fields were absent from the payload.
type ToolPatch struct {
	ID          string
	Name        *string
	URL         *string
	Category    *string
	Description *string
	Tags        []string
	HasTags     bool
	Trending    *int
}

// PatchFromTool builds a patch that sets every field of tool.
func PatchFromTool(tool Tool) ToolPatch {
	name := tool.Name
	url := tool.URL
	category := tool.Category
	description := tool.Description
	trending := tool.Trending
	return ToolPatch{
		ID:          tool.ID,
		Name:        &name,
		URL:         &url,
		Category:    &category,
		Description: &description,
		Tags:        slices.Clone(tool.Tags),
		HasTags:     true,
		Trending:    &trending,
	}
}

// Apply overlays the patch onto base. Fields absent from the patch keep the base value.
func (p ToolPatch) Apply(base Tool) Tool {
	out := base.Clone()
	out.ID = p.ID
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.URL != nil {
		out.URL = *p.URL
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.HasTags {
		out.Tags = slices.Clone(p.Tags)
	}
	if p.Trending != nil {
		out.Trending = *p.Trending
	}
	return out
}

// ToTool materializes the patch as a new tool, using zero values for absent fields.
func (p ToolPatch) ToTool() Tool {
	return p.Apply(Tool{})
}

// TagCount is one row of the tag frequency table.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// ImportIssueKind classifies a skipped import record.
type ImportIssueKind string

const (
	// IssueMissingID marks a record without a usable id.
	IssueMissingID ImportIssueKind = "missing_id"
	// IssueInvalidRecord marks a record that is not an object or has a mistyped field.
	IssueInvalidRecord ImportIssueKind = "invalid_record"
)

// ImportIssue describes one skipped import record.
type ImportIssue struct {
	Index   int             `json:"index"`
	ID      string          `json:"id,omitempty"`
	Kind    ImportIssueKind `json:"kind"`
	Message string          `json:"message"`
}

// ImportReport summarizes a merge import.
type ImportReport struct {
	Added   int           `json:"added"`
	Updated int           `json:"updated"`
	Skipped int           `json:"skipped"`
	Issues  []ImportIssue `json:"issues,omitempty"`
}

// Merge folds decode-time issues into the report.
func (r ImportReport) Merge(issues []ImportIssue) ImportReport {
	if len(issues) == 0 {
		return r
	}
	r.Skipped += len(issues)
	r.Issues = append(slices.Clone(issues), r.Issues...)
	slices.SortStableFunc(r.Issues, func(a, b ImportIssue) int {
		return a.Index - b.Index
	})
	return r
}
