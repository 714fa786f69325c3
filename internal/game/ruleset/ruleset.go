package ruleset

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/stats"
)

// Ruleset provides lookup of races and classes by ID. It is read-only after loading.
type Ruleset struct {
	races   map[string]*Race
	classes map[string]*Class
}

// New indexes races and classes, validating each.
//
// Postcondition: Returns a Ruleset or an error naming the first invalid or duplicate entry.
func New(races []*Race, classes []*Class) (*Ruleset, error) {
	rs := &Ruleset{
		races:   make(map[string]*Race, len(races)),
		classes: make(map[string]*Class, len(classes)),
	}
	for _, r := range races {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, dup := rs.races[r.ID]; dup {
			return nil, fmt.Errorf("duplicate race id %q", r.ID)
		}
		rs.races[r.ID] = r
	}
	for _, c := range classes {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := rs.classes[c.ID]; dup {
			return nil, fmt.Errorf("duplicate class id %q", c.ID)
		}
		rs.classes[c.ID] = c
	}
	return rs, nil
}

// Load reads races from racesDir and classes from classesDir.
func Load(racesDir, classesDir string) (*Ruleset, error) {
	races, err := LoadRaces(racesDir)
	if err != nil {
		return nil, err
	}
	classes, err := LoadClasses(classesDir)
	if err != nil {
		return nil, err
	}
	return New(races, classes)
}

// Race returns the race for id.
func (rs *Ruleset) Race(id string) (*Race, bool) {
	r, ok := rs.races[id]
	return r, ok
}

// Class returns the class for id.
func (rs *Ruleset) Class(id string) (*Class, bool) {
	c, ok := rs.classes[id]
	return c, ok
}

// Races returns every race sorted by ID.
func (rs *Ruleset) Races() []*Race {
	out := make([]*Race, 0, len(rs.races))
	for _, r := range rs.races {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Classes returns every class sorted by ID.
func (rs *Ruleset) Classes() []*Class {
	out := make([]*Class, 0, len(rs.classes))
	for _, c := range rs.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Spec assembles a BuildSpec from catalog IDs. An empty raceID or classID
// leaves that part of the BuildSpec at its zero value.
func (rs *Ruleset) Spec(name, raceID, classID string, level int, abilities stats.AbilityScores) (character.BuildSpec, error) {
	spec := character.BuildSpec{Name: name, Level: level, Abilities: abilities}
	if raceID != "" {
		r, ok := rs.Race(raceID)
		if !ok {
			return character.BuildSpec{}, fmt.Errorf("unknown race %q", raceID)
		}
		spec.Race = r.Option()
	}
	if classID != "" {
		c, ok := rs.Class(classID)
		if !ok {
			return character.BuildSpec{}, fmt.Errorf("unknown class %q", classID)
		}
		spec.Class = c.Option(max(level, 1))
	}
	return spec, nil
}
