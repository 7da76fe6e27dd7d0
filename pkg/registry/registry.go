// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

var schemaLoader = gojsonschema.NewStringLoader(pageRegistrySchema)

func LoadRegistry(path string) (*PageRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a registry document.
func Parse(data []byte) (*PageRegistry, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}
	var reg PageRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

func validateDocument(data []byte) error {
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("invalid registry document: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("registry schema validation failed: %s", strings.Join(msgs, "; "))
}

// Validate checks the constraints the schema cannot express.
func (r *PageRegistry) Validate() error {
	ids := make(map[string]bool)
	paths := make(map[string]bool)
	for _, p := range r.Pages {
		if ids[p.ID] {
			return fmt.Errorf("duplicate page ID: %s", p.ID)
		}
		ids[p.ID] = true
		if paths[p.Path] {
			return fmt.Errorf("duplicate page path: %s", p.Path)
		}
		paths[p.Path] = true

		tabs := make(map[string]bool)
		for _, t := range p.Tabs {
			if tabs[t.ID] {
				return fmt.Errorf("page %s has duplicate tab: %s", p.ID, t.ID)
			}
			tabs[t.ID] = true
		}
	}
	return nil
}

// Save validates r and writes it to path, creating parent directories.
func (r *PageRegistry) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := validateDocument(data); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

func (r *PageRegistry) Find(id string) (*Page, bool) {
	for i := range r.Pages {
		if r.Pages[i].ID == id {
			return &r.Pages[i], true
		}
	}
	return nil, false
}

// Visible returns active and in-progress pages sorted by Order.
func (r *PageRegistry) Visible() []Page {
	out := make([]Page, 0, len(r.Pages))
	for _, p := range r.Pages {
		if p.Status == StatusActive || p.Status == StatusInProgress {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Add appends page; IDs must be unique.
func (r *PageRegistry) Add(page Page) error {
	if _, exists := r.Find(page.ID); exists {
		return fmt.Errorf("page with ID %s already exists", page.ID)
	}
	if page.Tabs == nil {
		page.Tabs = []Tab{}
	}
	r.Pages = append(r.Pages, page)
	r.touch()
	return nil
}

// Update sets one field of the page with the given ID.
func (r *PageRegistry) Update(id, field, value string) error {
	p, ok := r.Find(id)
	if !ok {
		return fmt.Errorf("page with ID %s not found", id)
	}
	switch field {
	case "status":
		p.Status = value
	case "path":
		p.Path = value
	case "category":
		p.Category = value
	case "service":
		p.Service = value
	case "description":
		p.Description = value
	case "title.id":
		p.setTitle("id", value)
	case "title.en":
		p.setTitle("en", value)
	case "order":
		order, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid order value: %w", err)
		}
		p.Order = order
	default:
		return fmt.Errorf("unknown field: %s", field)
	}
	r.touch()
	return nil
}

// TitleFor returns the title in locale, falling back to Indonesian and then the ID.
func (p Page) TitleFor(locale string) string {
	return titleFor(p.Title, locale, p.ID)
}

func (t Tab) TitleFor(locale string) string {
	return titleFor(t.Title, locale, t.ID)
}

func (p *Page) setTitle(locale, value string) {
	if p.Title == nil {
		p.Title = map[string]string{}
	}
	p.Title[locale] = value
}

func titleFor(titles map[string]string, locale, id string) string {
	if s := titles[locale]; s != "" {
		return s
	}
	if s := titles["id"]; s != "" {
		return s
	}
	return id
}

func (r *PageRegistry) touch() {
	r.LastUpdated = time.Now().Format(time.RFC3339)
}
