package stats

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Modifier computes floor((score - 10) / 2).
func Modifier(score int) int {
	return floorDiv(score-10, 2)
}

// ProficiencyBonus computes floor((level - 1) / 4) + 2.
//
// Postcondition: for level in [1,20] the result is in {2,3,4,5,6}.
func ProficiencyBonus(level int) int {
	return floorDiv(level-1, 4) + 2
}

// PassiveScore computes 10 + modifier, plus the proficiency bonus when proficient.
func PassiveScore(abilityScore int, proficient bool, level int) int {
	return 10 + SkillBonus(abilityScore, proficient, level)
}

// SkillBonus is the check bonus for an ability, with proficiency when trained.
// Saving throws use the same formula.
func SkillBonus(abilityScore int, proficient bool, level int) int {
	bonus := Modifier(abilityScore)
	if proficient {
		bonus += ProficiencyBonus(level)
	}
	return bonus
}

// SpellSaveDC computes 8 + modifier(castingAbilityScore) + proficiencyBonus.
func SpellSaveDC(castingAbilityScore, proficiencyBonus int) int {
	return 8 + SpellAttackBonus(castingAbilityScore, proficiencyBonus)
}

// SpellAttackBonus computes modifier(castingAbilityScore) + proficiencyBonus.
func SpellAttackBonus(castingAbilityScore, proficiencyBonus int) int {
	return Modifier(castingAbilityScore) + proficiencyBonus
}

// ArmorClass computes base + min(modifier(dexScore), maxDexBonus).
// A nil maxDexBonus means the dexterity modifier is uncapped.
func ArmorClass(base, dexScore int, maxDexBonus *int) int {
	dex := Modifier(dexScore)
	if maxDexBonus != nil && *maxDexBonus < dex {
		dex = *maxDexBonus
	}
	return base + dex
}

// Encumbrance is the load category under the variant encumbrance rule.
type Encumbrance int

const (
	Unencumbered Encumbrance = iota
	Encumbered
	HeavilyEncumbered
	OverCapacity
)

// String returns a human-readable label.
func (e Encumbrance) String() string {
	switch e {
	case Unencumbered:
		return "unencumbered"
	case Encumbered:
		return "encumbered"
	case HeavilyEncumbered:
		return "heavily encumbered"
	case OverCapacity:
		return "over capacity"
	default:
		return "unknown"
	}
}

// SpeedPenalty is the walking speed reduction in feet for the category.
// OverCapacity reports -1: the creature cannot move at all.
func (e Encumbrance) SpeedPenalty() int {
	switch e {
	case Encumbered:
		return 10
	case HeavilyEncumbered:
		return 20
	case OverCapacity:
		return -1
	default:
		return 0
	}
}

// CarryingCapacity is 15 times the strength score, in pounds.
func CarryingCapacity(strScore int) int {
	return 15 * strScore
}

// EncumbranceFor classifies carried weight (pounds) against strength:
// over 5×STR is encumbered, over 10×STR heavily encumbered, over 15×STR over capacity.
func EncumbranceFor(strScore int, weight float64) Encumbrance {
	str := float64(strScore)
	switch {
	case weight > 15*str:
		return OverCapacity
	case weight > 10*str:
		return HeavilyEncumbered
	case weight > 5*str:
		return Encumbered
	default:
		return Unencumbered
	}
}
