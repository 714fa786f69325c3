// Package condition tracks status-condition tags (blinded, poisoned, exhaustion-N, …)
// and loads the read-only condition reference catalog.
package condition

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is the static description of a condition, loaded from YAML.
type Definition struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Levels > 0 marks a leveled condition whose tags are "<id>-1" … "<id>-<Levels>".
	Levels int `yaml:"levels"`
}

// Registry holds all known Definitions keyed by ID. It is read-only after loading.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds def to the registry, overwriting any existing entry with the same ID.
//
// Precondition: def must not be nil and def.ID must not be empty.
func (r *Registry) Register(def *Definition) {
	r.defs[def.ID] = def
}

// Get returns the Definition for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*Definition, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// Lookup resolves a tag to its definition, so "exhaustion-3" finds "exhaustion".
func (r *Registry) Lookup(tag string) (*Definition, bool) {
	tag = Normalize(tag)
	if d, ok := r.defs[tag]; ok && d.Levels == 0 {
		return d, true
	}
	i := strings.LastIndex(tag, "-")
	if i < 0 {
		return nil, false
	}
	d, ok := r.defs[tag[:i]]
	if !ok || d.Levels == 0 {
		return nil, false
	}
	var level int
	if _, err := fmt.Sscanf(tag[i+1:], "%d", &level); err != nil || level < 1 || level > d.Levels {
		return nil, false
	}
	return d, true
}

// Known reports whether tag names a catalogued condition.
func (r *Registry) Known(tag string) bool {
	_, ok := r.Lookup(tag)
	return ok
}

// All returns a snapshot slice of all registered Definitions sorted by ID.
func (r *Registry) All() []*Definition {
	out := make([]*Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadDirectory reads every *.yaml file in dir, parses each as a Definition,
// and returns a populated Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails to parse.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading condition dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def Definition
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if def.ID == "" {
			return nil, fmt.Errorf("parsing %q: id must not be empty", path)
		}
		def.ID = Normalize(def.ID)
		reg.Register(&def)
	}
	return reg, nil
}
