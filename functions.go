package calc

import (
	"math"
	"sort"
	"strings"
)

// VariantFunc is the shape both user-defined and built-in functions
// implement: a typed argument vector in, a number out.
type VariantFunc func(VariantList) (float64, error)

// FunctionFactory is the built-in function registry. Resolution is
// lazy and memoized under the lowercased name, mirroring the teacher's
// BuiltInFunctions.Call dispatch-by-name (builtin.go) but keyed
// through a memo map instead of a re-evaluated switch on every call.
type FunctionFactory struct {
	memo map[string]VariantFunc
}

func NewFunctionFactory() *FunctionFactory {
	return &FunctionFactory{memo: make(map[string]VariantFunc)}
}

// Lookup resolves name case-insensitively. The zero value is cached
// too (as a nil entry) so repeated misses don't re-run the switch.
func (f *FunctionFactory) Lookup(name string) (VariantFunc, bool) {
	lower := strings.ToLower(name)
	if fn, ok := f.memo[lower]; ok {
		return fn, fn != nil
	}
	fn := f.resolve(lower)
	f.memo[lower] = fn
	return fn, fn != nil
}

func (f *FunctionFactory) resolve(lower string) VariantFunc {
	switch lower {
	case "abs":
		return unary(math.Abs)
	case "acos", "arccos":
		return unary(math.Acos)
	case "asin", "arcsin":
		return unary(math.Asin)
	case "atan", "arctan":
		return unary(math.Atan)
	case "atan2":
		return binary(math.Atan2)
	case "ceil", "ceiling":
		return unary(math.Ceil)
	case "cos":
		return unary(math.Cos)
	case "cosh":
		return unary(math.Cosh)
	case "exp":
		return unary(math.Exp)
	case "floor":
		return unary(math.Floor)
	case "pow":
		return binary(math.Pow)
	case "rem":
		return binary(math.Remainder)
	case "root":
		return binary(func(a, b float64) float64 { return math.Pow(a, 1/b) })
	case "round":
		return unary(roundHalfAwayFromZero)
	case "sign":
		return unary(signOf)
	case "sin":
		return unary(math.Sin)
	case "sinh":
		return unary(math.Sinh)
	case "sqrt":
		return unary(math.Sqrt)
	case "tan":
		return unary(math.Tan)
	case "tanh":
		return unary(math.Tanh)
	case "trunc", "truncate":
		return unary(math.Trunc)
	case "sum":
		return biSum
	case "average":
		return biAverage
	case "max":
		return biMax
	case "min":
		return biMin
	case "median":
		return biMedian
	case "mode":
		return biMode
	case "range":
		return biRange
	case "stdev":
		return biStdev
	case "variance":
		return biVariance
	case "countif":
		return biCountif
	default:
		return nil
	}
}

func unary(fn func(float64) float64) VariantFunc {
	return func(vl VariantList) (float64, error) {
		if err := vl.Assert(VariantNumber); err != nil {
			return 0, err
		}
		return fn(vl.NumberAt(0)), nil
	}
}

func binary(fn func(float64, float64) float64) VariantFunc {
	return func(vl VariantList) (float64, error) {
		if err := vl.Assert(VariantNumber, VariantNumber); err != nil {
			return 0, err
		}
		return fn(vl.NumberAt(0), vl.NumberAt(1)), nil
	}
}

func roundHalfAwayFromZero(x float64) float64 {
	if x < 0 {
		return -math.Floor(-x + 0.5)
	}
	return math.Floor(x + 0.5)
}

func signOf(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func biSum(vl VariantList) (float64, error) {
	sum := 0.0
	for _, v := range vl.ToDoubleArray() {
		sum += v
	}
	return sum, nil
}

func biAverage(vl VariantList) (float64, error) {
	vals := vl.ToDoubleArray()
	if len(vals) == 0 {
		return 0, nil
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals)), nil
}

func biMax(vl VariantList) (float64, error) {
	vals := vl.ToDoubleArray()
	if len(vals) == 0 {
		return 0, nil
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m, nil
}

func biMin(vl VariantList) (float64, error) {
	vals := vl.ToDoubleArray()
	if len(vals) == 0 {
		return 0, nil
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m, nil
}

func biMedian(vl VariantList) (float64, error) {
	vals := append([]float64{}, vl.ToDoubleArray()...)
	if len(vals) == 0 {
		return 0, nil
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid], nil
	}
	return (vals[mid-1] + vals[mid]) / 2, nil
}

func biMode(vl VariantList) (float64, error) {
	vals := vl.ToDoubleArray()
	counts := make(map[float64]int, len(vals))
	for _, v := range vals {
		counts[v]++
	}
	best, bestCount := 0.0, 0
	sorted := append([]float64{}, vals...)
	sort.Float64s(sorted)
	for _, v := range sorted {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best, nil
}

func biRange(vl VariantList) (float64, error) {
	vals := vl.ToDoubleArray()
	if len(vals) == 0 {
		return 0, nil
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo, nil
}

// welfordVariance computes the sample variance (n-1 denominator) with
// a single-pass Welford update, per spec.md §4.4.
func welfordVariance(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	mean, m2 := 0.0, 0.0
	for i, v := range vals {
		n := float64(i + 1)
		delta := v - mean
		mean += delta / n
		m2 += delta * (v - mean)
	}
	return m2 / float64(len(vals)-1)
}

func biVariance(vl VariantList) (float64, error) {
	return welfordVariance(vl.ToDoubleArray()), nil
}

func biStdev(vl VariantList) (float64, error) {
	v := welfordVariance(vl.ToDoubleArray())
	if math.Abs(v) < tolerance {
		return 0, nil
	}
	return math.Sqrt(v), nil
}

// biCountif implements the countif semantics of spec.md §4.4. The
// argument vector, as built by rewriteCountif (preprocess.go) and
// dispatchFunction's per-argument wrap rule (evaluator.go), is the
// range's values followed by a numeric sentinel and the comparison
// operand: [...values, sentinel, operand]. See DESIGN.md for how this
// differs from a literal reading of spec.md's "matcher" wording.
func biCountif(vl VariantList) (float64, error) {
	if len(vl) < 2 {
		return 0, newError(ErrCountifArity, "countif function requires at least two parameters")
	}
	sentinel := vl[len(vl)-2]
	operand := retypeVariant(vl[len(vl)-1])
	values := vl[:len(vl)-2]

	count := 0.0
	for _, raw := range values {
		if raw.Kind == VariantString && raw.Str == "" {
			continue
		}
		cmp := retypeVariant(raw).CompareTo(operand)
		switch int(sentinel.Num) {
		case 1:
			if cmp > 0 {
				count++
			}
		case -1:
			if cmp < 0 {
				count++
			}
		case 2:
			if cmp >= 0 {
				count++
			}
		case -2:
			if cmp <= 0 {
				count++
			}
		case 3:
			if cmp != 0 {
				count++
			}
		default:
			if cmp == 0 {
				count++
			}
		}
	}
	return count, nil
}
