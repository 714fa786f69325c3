package dice

import "sort"

// Roll evaluates an Expression using the given Source.
//
// Precondition: expr came from Parse; src must be non-nil.
// Postcondition: len(result.Dice) == expr.Count, or expr.KeepHighest when set.
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}
	result := RollResult{Expression: expr.Raw, Dice: rolled, Modifier: expr.Modifier}
	if expr.KeepHighest > 0 {
		sorted := append([]int(nil), rolled...)
		sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
		result.Dice = sorted[:expr.KeepHighest]
		result.Dropped = sorted[expr.KeepHighest:]
	}
	return result
}

// RollExpr parses expr and rolls it using src in a single call.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}
