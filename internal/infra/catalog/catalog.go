package catalog

import (
	"strings"

	"tooldir/internal/domain"
)

// Catalog is the ordered set of tools. Insertion order is the fallback display order.
// The zero value is an empty catalog.
type Catalog struct {
	tools []domain.Tool
	index map[string]int
}

// New returns a catalog holding a copy of tools.
func New(tools []domain.Tool) *Catalog {
	c := &Catalog{}
	c.ReplaceAll(tools)
	return c
}

// Tools returns a copy of the current contents in catalog order.
func (c *Catalog) Tools() []domain.Tool {
	out := make([]domain.Tool, len(c.tools))
	for i, tool := range c.tools {
		out[i] = tool.Clone()
	}
	return out
}

// Len returns the number of tools.
func (c *Catalog) Len() int {
	return len(c.tools)
}

// Get looks a tool up by id.
func (c *Catalog) Get(id string) (domain.Tool, bool) {
	if c.index == nil {
		c.reindex()
	}
	idx, ok := c.index[id]
	if !ok {
		return domain.Tool{}, false
	}
	return c.tools[idx].Clone(), true
}

// ReplaceAll discards the current contents and stores tools verbatim.
func (c *Catalog) ReplaceAll(tools []domain.Tool) {
	c.tools = make([]domain.Tool, len(tools))
	for i, tool := range tools {
		c.tools[i] = tool.Clone()
	}
	c.reindex()
}

// MergeImport overlays patches onto the catalog by id. Existing ids keep their
// position, new ids are appended in input order and patches without an id are
// skipped.
func (c *Catalog) MergeImport(patches []domain.ToolPatch) domain.ImportReport {
	if c.index == nil {
		c.reindex()
	}
	var report domain.ImportReport
	for i, patch := range patches {
		if strings.TrimSpace(patch.ID) == "" {
			report.Skipped++
			report.Issues = append(report.Issues, domain.ImportIssue{
				Index:   i,
				Kind:    domain.IssueMissingID,
				Message: "record has no id",
			})
			continue
		}
		if idx, ok := c.index[patch.ID]; ok {
			c.tools[idx] = patch.Apply(c.tools[idx])
			report.Updated++
			continue
		}
		c.tools = append(c.tools, patch.ToTool())
		c.index[patch.ID] = len(c.tools) - 1
		report.Added++
	}
	return report
}

// reindex maps each id to its first position. ReplaceAll does not validate, so
// a duplicated id resolves to its first occurrence.
func (c *Catalog) reindex() {
	c.index = make(map[string]int, len(c.tools))
	for i, tool := range c.tools {
		if _, exists := c.index[tool.ID]; exists {
			continue
		}
		c.index[tool.ID] = i
	}
}
