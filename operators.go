package calc

import "math"

// Unicode code points the tokenizer folds multi-character comparison
// operators into (spec.md §4.1's pre-substitution pass): >= -> geqChar,
// <= -> leqChar, != -> neqChar.
const (
	geqChar = "≥"
	leqChar = "≤"
	neqChar = "≠"
)

// tolerance is the absolute tolerance used by the equality family of
// operators (=, !=, >=, <=).
const tolerance = 1e-8

// OperatorFunc is a pure binary numeric operator.
type OperatorFunc func(a, b float64) float64

// operatorEntry pairs a symbol with its function. Operators are kept
// in an explicitly ordered slice, not a map: insertion order IS
// precedence order, per spec.md §9's redesign guidance ("do not rely
// on a language's default mapping iteration order").
type operatorEntry struct {
	Symbol string
	Fn     OperatorFunc
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// defaultOperators returns the built-in operator table in the fixed
// precedence order of spec.md §4.3, highest precedence first.
// Host-added operators (Calculator.AddOperator) are appended after
// this at the tail, i.e. lowest precedence.
func defaultOperators() []operatorEntry {
	return []operatorEntry{
		{"^", math.Pow},
		{"%", math.Mod},
		{"/", func(a, b float64) float64 { return a / b }},
		{"*", func(a, b float64) float64 { return a * b }},
		{"-", func(a, b float64) float64 { return a - b }},
		{"+", func(a, b float64) float64 { return a + b }},
		{">", func(a, b float64) float64 { return boolFloat(a > b) }},
		{"<", func(a, b float64) float64 { return boolFloat(a < b) }},
		{geqChar, func(a, b float64) float64 { return boolFloat(a-b > -tolerance) }},
		{leqChar, func(a, b float64) float64 { return boolFloat(b-a > -tolerance) }},
		{neqChar, func(a, b float64) float64 { return boolFloat(math.Abs(a-b) >= tolerance) }},
		{"=", func(a, b float64) float64 { return boolFloat(math.Abs(a-b) < tolerance) }},
	}
}

func findOperator(operators []operatorEntry, symbol string) (OperatorFunc, bool) {
	for _, e := range operators {
		if e.Symbol == symbol {
			return e.Fn, true
		}
	}
	return nil, false
}

func isOperatorSymbol(operators []operatorEntry, tok string) bool {
	_, ok := findOperator(operators, tok)
	return ok
}
