package template

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"sopgen/internal/domain"
	models "sopgen/internal/domain/models/sop"
)

//go:embed config/*.yaml
var configFiles embed.FS

// builtinTemplates are the template names shipped with the binary.
var builtinTemplates = []string{
	"equipment_testing",
	"pv_module_qualification",
	"instrument_calibration",
	"safety_inspection",
}

// SectionDefinition describes one section of a template.
type SectionDefinition struct {
	Title       string `yaml:"title" json:"title"`
	Content     string `yaml:"content" json:"content"`
	ContentType string `yaml:"content_type" json:"content_type"`
}

// Definition is a reusable document skeleton.
type Definition struct {
	Title       string              `yaml:"title" json:"title"`
	DocNumber   string              `yaml:"doc_number" json:"doc_number"`
	Description string              `yaml:"description" json:"description"`
	Standards   []string            `yaml:"standards" json:"standards"`
	Sections    []SectionDefinition `yaml:"sections" json:"sections"`
}

// Info summarizes a template for listings.
type Info struct {
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Standards    []string `json:"standards"`
	SectionCount int      `json:"section_count"`
	Sections     []string `json:"sections"`
}

// Manager serves built-in templates from embedded YAML and custom templates
// from an on-disk directory. Custom templates may be JSON or YAML and
// shadow built-ins with the same name.
type Manager struct {
	customDir string
	logger    *slog.Logger

	mu      sync.RWMutex
	builtin map[string]*Definition
}

// NewManager creates a template manager. customDir may be empty to serve
// only built-in templates; otherwise it is created if missing.
func NewManager(customDir string, logger *slog.Logger) (*Manager, error) {
	m := &Manager{
		customDir: customDir,
		logger:    logger,
		builtin:   make(map[string]*Definition),
	}

	for _, name := range builtinTemplates {
		if err := m.loadBuiltin(name); err != nil {
			return nil, fmt.Errorf("loading built-in template %s: %w", name, err)
		}
	}

	if customDir != "" {
		if err := os.MkdirAll(customDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating template directory: %w", err)
		}
	}
	return m, nil
}

func (m *Manager) loadBuiltin(name string) error {
	data, err := configFiles.ReadFile("config/" + name + ".yaml")
	if err != nil {
		return err
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return err
	}

	m.mu.Lock()
	m.builtin[name] = &def
	m.mu.Unlock()
	return nil
}

// ListTemplates returns the available template names, sorted.
func (m *Manager) ListTemplates() []string {
	seen := make(map[string]bool)

	m.mu.RLock()
	for name := range m.builtin {
		seen[name] = true
	}
	m.mu.RUnlock()

	if m.customDir != "" {
		entries, err := os.ReadDir(m.customDir)
		if err == nil {
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				ext := filepath.Ext(entry.Name())
				if ext == ".json" || ext == ".yaml" || ext == ".yml" {
					seen[strings.TrimSuffix(entry.Name(), ext)] = true
				}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// getDefinition resolves a template name, preferring custom over built-in.
func (m *Manager) getDefinition(name string) (*Definition, error) {
	if m.customDir != "" {
		for _, ext := range []string{".json", ".yaml", ".yml"} {
			path := filepath.Join(m.customDir, name+ext)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}

			var def Definition
			if ext == ".json" {
				err = json.Unmarshal(data, &def)
			} else {
				err = yaml.Unmarshal(data, &def)
			}
			if err != nil {
				return nil, fmt.Errorf("parsing template %s: %w", path, err)
			}
			return &def, nil
		}
	}

	m.mu.RLock()
	def, ok := m.builtin[name]
	m.mu.RUnlock()
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("template '%s' not found", name)}
	}
	return def, nil
}

// TemplateInfo returns a summary of the named template.
func (m *Manager) TemplateInfo(name string) (*Info, error) {
	def, err := m.getDefinition(name)
	if err != nil {
		return nil, err
	}

	sections := make([]string, len(def.Sections))
	for i, s := range def.Sections {
		sections[i] = s.Title
	}

	return &Info{
		Name:         name,
		Title:        def.Title,
		Description:  def.Description,
		Standards:    def.Standards,
		SectionCount: len(def.Sections),
		Sections:     sections,
	}, nil
}

// LoadTemplate instantiates a document from the named template.
func (m *Manager) LoadTemplate(name string) (*models.Document, error) {
	def, err := m.getDefinition(name)
	if err != nil {
		return nil, err
	}

	doc := m.instantiate(def, "template_system")
	doc.TemplateName = name

	m.logger.Info("template loaded", "template", name, "sections", len(doc.Sections))
	return doc, nil
}

// ImportTemplate instantiates a document from a caller-supplied definition
// without adding it to the library.
func (m *Manager) ImportTemplate(def *Definition) *models.Document {
	if def.Title == "" {
		def.Title = "Untitled SOP"
	}
	return m.instantiate(def, "user")
}

// SaveTemplate writes a custom template to the library as JSON.
func (m *Manager) SaveTemplate(name string, def *Definition) (string, error) {
	if m.customDir == "" {
		return "", &domain.ValidationError{Message: "custom template directory is not configured"}
	}
	if strings.TrimSpace(name) == "" {
		return "", &domain.ValidationError{Message: "template name is required"}
	}

	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding template: %w", err)
	}

	path := filepath.Join(m.customDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing template: %w", err)
	}

	m.logger.Info("template saved", "template", name, "path", path)
	return path, nil
}

func (m *Manager) instantiate(def *Definition, createdBy string) *models.Document {
	doc := models.NewDocument(def.Title, def.DocNumber, createdBy)
	doc.Metadata.Description = def.Description
	doc.Metadata.Standards = append([]string(nil), def.Standards...)

	for i, sec := range def.Sections {
		contentType := models.ContentType(sec.ContentType)
		if !contentType.Valid() {
			contentType = models.ContentText
		}
		doc.AddSection(sec.Title, sec.Content, contentType, i)
	}
	return doc
}
