package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger. Every roll is logged at debug level with
// expression, dice values, modifier, and total.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll evaluates expr and logs the result.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Ints("dropped", result.Dropped),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses expr and rolls it, logging the result.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}

// Total rolls expr and returns only the grand total.
func (r *Roller) Total(expr string) (int, error) {
	res, err := r.RollExpr(expr)
	if err != nil {
		return 0, err
	}
	return res.Total(), nil
}

// D20 returns a closure rolling a single d20, the shape initiative rolls consume.
func (r *Roller) D20() func() int {
	d20 := MustParse("1d20")
	return func() int { return r.Roll(d20).Total() }
}

// Func returns a closure rolling the pre-parsed expr and returning its total.
func (r *Roller) Func(expr Expression) func() int {
	return func() int { return r.Roll(expr).Total() }
}
