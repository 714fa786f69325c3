// Package inventory provides the read-only gear catalog: item definitions
// loaded from YAML and converted into character equipment.
package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/campaign/internal/game/character"
)

// Kind constants for ItemDef.Kind.
const (
	KindGear       = "gear"
	KindWeapon     = "weapon"
	KindArmor      = "armor"
	KindShield     = "shield"
	KindConsumable = "consumable"
)

// validKinds is the set of valid ItemDef kinds.
var validKinds = map[string]bool{
	KindGear:       true,
	KindWeapon:     true,
	KindArmor:      true,
	KindShield:     true,
	KindConsumable: true,
}

// ItemDef defines the static properties of an item loaded from YAML.
type ItemDef struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Kind        string  `yaml:"kind"`
	Weight      float64 `yaml:"weight"` // pounds
	Value       int     `yaml:"value"`  // copper pieces
	// Damage is the weapon damage expression, e.g. "1d8".
	Damage string `yaml:"damage"`
	// ArmorBase is the armor's base AC; DexCap limits the DEX bonus (nil = no cap).
	ArmorBase   int  `yaml:"armor_base"`
	DexCap      *int `yaml:"dex_cap"`
	StrengthReq int  `yaml:"strength_req"`
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !validKinds[d.Kind] {
		errs = append(errs, fmt.Errorf("Kind must be one of gear, weapon, armor, shield, consumable; got %q", d.Kind))
	}
	if d.Weight < 0 {
		errs = append(errs, errors.New("Weight must be >= 0"))
	}
	if d.Kind == KindWeapon && d.Damage == "" {
		errs = append(errs, errors.New("Damage is required when Kind is weapon"))
	}
	if d.Kind == KindArmor && d.ArmorBase < 10 {
		errs = append(errs, fmt.Errorf("ArmorBase must be >= 10 when Kind is armor; got %d", d.ArmorBase))
	}
	if d.DexCap != nil && *d.DexCap < 0 {
		errs = append(errs, errors.New("DexCap must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// Item returns qty units of d as a character inventory entry.
func (d *ItemDef) Item(qty int) character.Item {
	return character.Item{Name: d.Name, Quantity: max(qty, 1), Weight: d.Weight}
}

// Equip returns current with d worn. Body armor replaces the worn armor and
// keeps any shield; a shield is added on top of the worn armor.
//
// Postcondition: returns an error when d is neither armor nor a shield.
func (d *ItemDef) Equip(current character.Armor) (character.Armor, error) {
	switch d.Kind {
	case KindArmor:
		out := character.Armor{Name: d.Name, Base: d.ArmorBase, Shield: current.Shield}
		if d.DexCap != nil {
			c := *d.DexCap
			out.MaxDexBonus = &c
		}
		return out, nil
	case KindShield:
		current.Shield = true
		return current, nil
	default:
		return current, fmt.Errorf("%s is %s, not armor", d.Name, d.Kind)
	}
}

// LoadItems reads all *.yaml and *.yml files from dir, parses each as an
// ItemDef, validates it, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid ItemDefs or the first encountered error.
func LoadItems(dir string) ([]*ItemDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read directory %q: %w", dir, err)
	}

	var items []*ItemDef
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
		}
		var d ItemDef
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("LoadItems: cannot parse file %q: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("LoadItems: invalid item in %q: %w", path, err)
		}
		items = append(items, &d)
	}
	return items, nil
}
