package template

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Standard describes one entry in the standards catalog.
type Standard struct {
	ID           string `yaml:"id" json:"id"`
	FullName     string `yaml:"full_name" json:"full_name"`
	Category     string `yaml:"category" json:"category"`
	Organization string `yaml:"organization" json:"organization"`
	Description  string `yaml:"description" json:"description"`
}

// StandardsCatalog holds the industry standards referenced by templates and
// normative-reference sections.
type StandardsCatalog struct {
	byID map[string]*Standard
}

// NewStandardsCatalog loads the embedded standards catalog.
func NewStandardsCatalog() (*StandardsCatalog, error) {
	data, err := configFiles.ReadFile("config/standards.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading standards catalog: %w", err)
	}

	var file struct {
		Standards []Standard `yaml:"standards"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing standards catalog: %w", err)
	}

	byID := make(map[string]*Standard, len(file.Standards))
	for i := range file.Standards {
		byID[file.Standards[i].ID] = &file.Standards[i]
	}
	return &StandardsCatalog{byID: byID}, nil
}

// All returns every standard, sorted by ID.
func (c *StandardsCatalog) All() []Standard {
	out := make([]Standard, 0, len(c.byID))
	for _, std := range c.byID {
		out = append(out, *std)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the standard with the given ID, or nil.
func (c *StandardsCatalog) Get(id string) *Standard {
	return c.byID[id]
}

// Search returns standards whose ID, full name or category contains the
// query, case-insensitively, sorted by ID.
func (c *StandardsCatalog) Search(query string) []Standard {
	query = strings.ToLower(query)

	var out []Standard
	for _, std := range c.byID {
		if strings.Contains(strings.ToLower(std.ID), query) ||
			strings.Contains(strings.ToLower(std.FullName), query) ||
			strings.Contains(strings.ToLower(std.Category), query) {
			out = append(out, *std)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Citation returns the citation line for a standard ID. Unknown IDs are
// returned unchanged so free-form references still render.
func (c *StandardsCatalog) Citation(id string) string {
	if std := c.byID[id]; std != nil {
		return std.FullName
	}
	return id
}
