package combat

import (
	"strconv"
	"strings"
)

// DefaultInitiativeFallback substitutes for a missing die roller or an unreadable typed value.
const DefaultInitiativeFallback = 10

// rollInitiative is roll() + dexMod, or fallback + dexMod when roll is nil.
func rollInitiative(dexMod int, roll func() int, fallback int) int {
	if roll == nil {
		return fallback + dexMod
	}
	return roll() + dexMod
}

// parseInitiative reads a typed initiative value, returning fallback when it is not an integer.
func parseInitiative(text string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return fallback
	}
	return v
}

// sortByInitiativeDesc sorts combatants in place, highest initiative first.
// Insertion sort keeps equal initiatives in their prior relative order.
func sortByInitiativeDesc(combatants []*Combatant) {
	n := len(combatants)
	for i := 1; i < n; i++ {
		for j := i; j > 0 && combatants[j].Initiative > combatants[j-1].Initiative; j-- {
			combatants[j], combatants[j-1] = combatants[j-1], combatants[j]
		}
	}
}
