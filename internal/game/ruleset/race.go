package ruleset

import (
	"fmt"

	"github.com/cory-johannsen/campaign/internal/game/character"
)

// Race is a playable race or subrace.
//
// Precondition: ID and Name must be non-empty after loading.
type Race struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Article     string         `yaml:"article"`
	Description string         `yaml:"description"`
	Speed       int            `yaml:"speed"`
	Modifiers   map[string]int `yaml:"modifiers"`
	Traits      []string       `yaml:"traits"`
}

// DisplayName returns the race name with its grammatical article.
// If Article is empty, returns Name alone.
func (r *Race) DisplayName() string {
	if r.Article == "" {
		return r.Name
	}
	return r.Article + " " + r.Name
}

// Validate checks the fields the builder relies on.
func (r *Race) Validate() error {
	if r.ID == "" || r.Name == "" {
		return fmt.Errorf("race %q: id and name must not be empty", r.ID)
	}
	return nil
}

// Option converts r to the builder's view of a race.
func (r *Race) Option() character.RaceOption {
	mods := make(map[string]int, len(r.Modifiers))
	for k, v := range r.Modifiers {
		mods[k] = v
	}
	return character.RaceOption{ID: r.ID, Modifiers: mods}
}

// LoadRaces reads all .yaml files in dir and parses each as a Race.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed races (may be empty slice) or a non-nil error.
func LoadRaces(dir string) ([]*Race, error) {
	return loadDir[Race](dir, "race")
}
