package calc

import (
	"fmt"
	"strconv"
)

func parseNumber(tok string) (float64, error) {
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, newError(ErrUndefinedVariable, fmt.Sprintf("variable %s is undefined", tok))
	}
	return f, nil
}

// formatNumber round-trips a float64 back into a token. 'g' precision
// -1 preserves full double precision and also produces the "+Inf",
// "-Inf" and "NaN" spellings strconv.ParseFloat accepts back in, so a
// reduction result can re-enter the token stream as a plain token.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// reduceArithmetic consumes a token list containing only numbers and
// binary operators -- no parens, no functions, no cell refs -- and
// folds it down to a single number, per spec.md §4.3.
func reduceArithmetic(tokens []string, operators []operatorEntry) (float64, error) {
	switch len(tokens) {
	case 0:
		return 0, nil
	case 1:
		return parseNumber(tokens[0])
	case 2:
		first := tokens[0]
		if first == "+" || first == "-" {
			val, err := parseNumber(tokens[1])
			if err != nil {
				return 0, err
			}
			if first == "-" {
				return -val, nil
			}
			return val, nil
		}
		fn, ok := findOperator(operators, first)
		if !ok {
			return 0, newError(ErrUndefinedOperator, fmt.Sprintf("operator %s is not defined", first))
		}
		rhs, err := parseNumber(tokens[1])
		if err != nil {
			return 0, err
		}
		return fn(0, rhs), nil
	}

	work := append([]string{}, tokens...)
	for _, entry := range operators {
		for {
			idx := indexOf(work, entry.Symbol)
			if idx == -1 {
				break
			}
			if idx == 0 {
				rhs, err := parseNumber(work[1])
				if err != nil {
					return 0, err
				}
				work = append([]string{formatNumber(entry.Fn(0, rhs))}, work[2:]...)
				continue
			}
			lhs, err := parseNumber(work[idx-1])
			if err != nil {
				return 0, err
			}
			rhs, err := parseNumber(work[idx+1])
			if err != nil {
				return 0, err
			}
			reduced := formatNumber(entry.Fn(lhs, rhs))
			next := make([]string, 0, len(work)-2)
			next = append(next, work[:idx-1]...)
			next = append(next, reduced)
			next = append(next, work[idx+2:]...)
			work = next
		}
	}

	return parseNumber(work[0])
}

func indexOf(tokens []string, target string) int {
	for i, t := range tokens {
		if t == target {
			return i
		}
	}
	return -1
}

func lastIndexOf(tokens []string, target string) int {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i] == target {
			return i
		}
	}
	return -1
}

func indexOfFrom(tokens []string, target string, from int) int {
	for i := from; i < len(tokens); i++ {
		if tokens[i] == target {
			return i
		}
	}
	return -1
}
