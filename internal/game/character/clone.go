package character

// Clone returns a deep copy sharing no mutable memory with c.
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c
	out.SkillProficiencies = cloneSlice(c.SkillProficiencies)
	out.SaveProficiencies = cloneSlice(c.SaveProficiencies)
	out.KnownSpells = cloneSlice(c.KnownSpells)
	out.PreparedSpells = cloneSlice(c.PreparedSpells)
	out.Equipment = cloneSlice(c.Equipment)
	if c.SpellcastingAbility != nil {
		a := *c.SpellcastingAbility
		out.SpellcastingAbility = &a
	}
	if c.Armor.MaxDexBonus != nil {
		m := *c.Armor.MaxDexBonus
		out.Armor.MaxDexBonus = &m
	}
	out.Resources = c.Resources.Clone()
	return &out
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

