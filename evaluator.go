package calc

import (
	"strings"
)

// FunctionLookup resolves a function name to its implementation. The
// Calculator wires this to check user-defined functions (case-sensitive)
// before falling back to the built-in factory (case-insensitive,
// lazily memoized) -- see calculator.go.
type FunctionLookup func(name string) (VariantFunc, bool)

func isIdentifierToken(tok string) bool {
	if tok == "" || !isLetterRune(rune(tok[0])) {
		return false
	}
	for _, r := range tok {
		if !isAlnumRune(r) {
			return false
		}
	}
	return true
}

// splitTopLevelCommas splits a paren-free token slice on "," tokens.
// Safe to call unconditionally here because Evaluate always resolves
// the rightmost (innermost) parenthesized group first, so by the time
// a sub-slice reaches this function it can contain no nested parens.
func splitTopLevelCommas(tokens []string) [][]string {
	var parts [][]string
	start := 0
	for i, t := range tokens {
		if t == "," {
			parts = append(parts, tokens[start:i])
			start = i + 1
		}
	}
	parts = append(parts, tokens[start:])
	return parts
}

// Evaluate repeatedly reduces the innermost (rightmost) parenthesized
// group, dispatching to a function when one precedes the group, then
// folds the residual flat token list with the arithmetic reducer.
// This is spec.md §4.4's core evaluation loop.
func Evaluate(tokens []string, operators []operatorEntry, lookup FunctionLookup) (float64, error) {
	work := append([]string{}, tokens...)

	for {
		openIdx := lastIndexOf(work, "(")
		if openIdx == -1 {
			break
		}
		closeIdx := indexOfFrom(work, ")", openIdx+1)
		if closeIdx == -1 {
			return 0, newError(ErrNoClosingBracket, "no closing bracket")
		}
		sub := work[openIdx+1 : closeIdx]

		fname := ""
		var fn VariantFunc
		if openIdx > 0 && isIdentifierToken(work[openIdx-1]) {
			if f, ok := lookup(work[openIdx-1]); ok {
				fname = work[openIdx-1]
				fn = f
			}
		}

		if fname == "" {
			val, err := reduceArithmetic(sub, operators)
			if err != nil {
				return 0, err
			}
			work = spliceReplace(work, openIdx, closeIdx+1, []string{formatNumber(val)})
			continue
		}

		result, err := dispatchFunction(fname, fn, sub, operators)
		if err != nil {
			return 0, err
		}
		work = spliceReplace(work, openIdx-1, closeIdx+1, []string{formatNumber(result)})
	}

	return reduceArithmetic(work, operators)
}

func dispatchFunction(fname string, fn VariantFunc, sub []string, operators []operatorEntry) (float64, error) {
	isCountif := strings.EqualFold(fname, "countif")

	switch {
	case len(sub) == 0:
		return fn(VariantList{})

	case indexOf(sub, ",") == -1:
		val, err := reduceArithmetic(sub, operators)
		if err != nil {
			return 0, err
		}
		return fn(VariantList{NumberVariant(val)})

	default:
		parts := splitTopLevelCommas(sub)
		args := make(VariantList, 0, len(parts))
		for _, part := range parts {
			if isCountif && len(part) == 1 && !isValidNumber(part[0]) {
				args = append(args, StringVariant(part[0]))
				continue
			}
			val, err := reduceArithmetic(part, operators)
			if err != nil {
				return 0, err
			}
			args = append(args, NumberVariant(val))
		}
		return fn(args)
	}
}

func isValidNumber(tok string) bool {
	_, err := parseNumber(tok)
	return err == nil
}

// spliceReplace replaces work[from:to] with replacement, returning a
// new slice. from/to follow normal Go slice semantics.
func spliceReplace(work []string, from, to int, replacement []string) []string {
	out := make([]string, 0, len(work)-(to-from)+len(replacement))
	out = append(out, work[:from]...)
	out = append(out, replacement...)
	out = append(out, work[to:]...)
	return out
}
