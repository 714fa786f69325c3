// Package npc provides the read-only NPC template catalog that encounters draw combatants from.
package npc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/campaign/internal/game/stats"
)

// Abilities holds the six ability scores for an NPC template. Omitted scores default to 10.
type Abilities struct {
	Strength     int `yaml:"strength" json:"strength"`
	Dexterity    int `yaml:"dexterity" json:"dexterity"`
	Constitution int `yaml:"constitution" json:"constitution"`
	Intelligence int `yaml:"intelligence" json:"intelligence"`
	Wisdom       int `yaml:"wisdom" json:"wisdom"`
	Charisma     int `yaml:"charisma" json:"charisma"`
}

// Scores converts a to the indexed form, substituting 10 for zero entries.
func (a Abilities) Scores() stats.AbilityScores {
	out := stats.AbilityScores{a.Strength, a.Dexterity, a.Constitution, a.Intelligence, a.Wisdom, a.Charisma}
	for i, v := range out {
		if v == 0 {
			out[i] = 10
		}
	}
	return out
}

// Template defines a reusable NPC stat block loaded from YAML.
type Template struct {
	ID          string    `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description" json:"description"`
	Level       int       `yaml:"level" json:"level"`
	MaxHP       int       `yaml:"max_hp" json:"max_hp"`
	AC          int       `yaml:"ac" json:"ac"`
	Abilities   Abilities `yaml:"abilities" json:"abilities"`
	// Conditions are applied to every combatant drawn from this template, e.g. "invisible".
	Conditions []string `yaml:"conditions" json:"conditions,omitempty"`
}

// Dexterity returns the template's dexterity score.
func (t *Template) Dexterity() int { return t.Abilities.Scores().Get(stats.Dexterity) }

// InitiativeModifier is the dexterity modifier.
func (t *Template) InitiativeModifier() int { return stats.Modifier(t.Dexterity()) }

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID is non-empty, Name is non-empty, Level >= 0,
// MaxHP >= 1, and AC >= 1; returns an error on the first violation otherwise.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("npc template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("npc template %q: name must not be empty", t.ID)
	}
	if t.Level < 0 {
		return fmt.Errorf("npc template %q: level must be >= 0", t.ID)
	}
	if t.MaxHP < 1 {
		return fmt.Errorf("npc template %q: max_hp must be >= 1", t.ID)
	}
	if t.AC < 1 {
		return fmt.Errorf("npc template %q: ac must be >= 1", t.ID)
	}
	return nil
}

// LoadTemplateFromBytes parses a single NPC template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading npc dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// Catalog is an immutable lookup of templates by ID.
type Catalog struct {
	byID map[string]*Template
}

// NewCatalog indexes templates by ID.
//
// Postcondition: Returns an error if two templates share an ID.
func NewCatalog(templates []*Template) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Template, len(templates))}
	for _, t := range templates {
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate npc template id %q", t.ID)
		}
		c.byID[t.ID] = t
	}
	return c, nil
}

// LoadCatalog reads dir and indexes the templates found there.
func LoadCatalog(dir string) (*Catalog, error) {
	templates, err := LoadTemplates(dir)
	if err != nil {
		return nil, err
	}
	return NewCatalog(templates)
}

// Get returns the template with id.
func (c *Catalog) Get(id string) (*Template, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// All returns every template sorted by ID.
func (c *Catalog) All() []*Template {
	out := make([]*Template, 0, len(c.byID))
	for _, t := range c.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of templates.
func (c *Catalog) Len() int { return len(c.byID) }
