package categories

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry holds the set of document categories loaded from the embedded
// YAML file. Categories are fixed per deployment, not per profile.
type Registry struct {
	categories map[string]Category
	order      []string
	mu         sync.RWMutex
}

// NewRegistry creates a new category registry and loads the embedded YAML file.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		categories: make(map[string]Category),
	}

	if err := r.loadFile("categories"); err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	return r, nil
}

func (r *Registry) loadFile(name string) error {
	filename := fmt.Sprintf("config/%s.yaml", name)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var file categoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, cat := range file.Categories {
		cat.ID = id
		r.categories[id] = cat
	}
	for _, id := range file.Order {
		if _, ok := r.categories[id]; !ok {
			return fmt.Errorf("order references unknown category %q", id)
		}
		r.order = append(r.order, id)
	}

	return nil
}

// Get returns a category by ID.
func (r *Registry) Get(id string) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cat, ok := r.categories[id]
	if !ok {
		return Category{}, fmt.Errorf("unknown category: %s", id)
	}
	return cat, nil
}

// Valid reports whether id names a registered category.
func (r *Registry) Valid(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.categories[id]
	return ok
}

// List returns all categories in the order defined in the YAML file.
func (r *Registry) List() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.categories[id])
	}
	return out
}

// IDs returns the category identifiers in YAML order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
