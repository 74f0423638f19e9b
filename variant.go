package calc

import (
	"fmt"
	"strconv"
	"strings"
)

// VariantKind tags the payload carried by a Variant, mirroring the
// teacher's CellType enum (cell.go) but for the calculator's own
// tagged-union value model instead of a spreadsheet cell's stored type.
type VariantKind int

const (
	VariantEmpty VariantKind = iota
	VariantNumber
	VariantBoolean
	VariantString
)

func (k VariantKind) String() string {
	switch k {
	case VariantNumber:
		return "number"
	case VariantBoolean:
		return "boolean"
	case VariantString:
		return "string"
	default:
		return "empty"
	}
}

// Variant is the tagged value passed to built-in and user-defined
// functions. Exactly one of Num/Bool/Str carries data, selected by Kind.
type Variant struct {
	Kind VariantKind
	Num  float64
	Bool bool
	Str  string
}

func NumberVariant(v float64) Variant  { return Variant{Kind: VariantNumber, Num: v} }
func BooleanVariant(v bool) Variant    { return Variant{Kind: VariantBoolean, Bool: v} }
func StringVariant(v string) Variant   { return Variant{Kind: VariantString, Str: v} }
func EmptyVariant() Variant            { return Variant{Kind: VariantEmpty} }

// CompareTo compares two variants. Variants of different Kind always
// compare as "not equal", encoded as -1 -- the same sentinel used for
// "less than" among same-kind comparisons. Callers that need a real
// ordering only ever call CompareTo on same-kind variants; countif is
// the only caller that relies on the cross-kind collapse.
func (v Variant) CompareTo(other Variant) int {
	if v.Kind != other.Kind {
		return -1
	}
	switch v.Kind {
	case VariantNumber:
		switch {
		case v.Num < other.Num:
			return -1
		case v.Num > other.Num:
			return 1
		default:
			return 0
		}
	case VariantBoolean:
		switch {
		case v.Bool == other.Bool:
			return 0
		case !v.Bool && other.Bool:
			return -1
		default:
			return 1
		}
	case VariantString:
		a, b := strings.ToLower(v.Str), strings.ToLower(other.Str)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	default: // VariantEmpty
		return 0
	}
}

// VariantList is the argument vector passed to a VariantFunc.
type VariantList []Variant

// NumberAt returns the Number payload at i, or 0 if i is out of range
// or the element is not a Number.
func (vl VariantList) NumberAt(i int) float64 {
	if i < 0 || i >= len(vl) {
		return 0
	}
	if vl[i].Kind != VariantNumber {
		return 0
	}
	return vl[i].Num
}

// Assert fails if vl has fewer elements than len(types), or if any of
// the first len(types) elements doesn't carry the expected Kind.
func (vl VariantList) Assert(types ...VariantKind) error {
	if len(vl) < len(types) {
		return newError(ErrArgumentCount, fmt.Sprintf("expected %d parameters", len(types)))
	}
	for i, t := range types {
		if vl[i].Kind != t {
			return newError(ErrArgumentType, fmt.Sprintf("parameter %d is not of type %s", i+1, t))
		}
	}
	return nil
}

// ToDoubleArray keeps Number entries and parses numeric-valued String
// entries; everything else (Boolean, Empty, non-numeric String) is
// dropped.
func (vl VariantList) ToDoubleArray() []float64 {
	out := make([]float64, 0, len(vl))
	for _, v := range vl {
		switch v.Kind {
		case VariantNumber:
			out = append(out, v.Num)
		case VariantString:
			if f, err := strconv.ParseFloat(v.Str, 64); err == nil {
				out = append(out, f)
			}
		}
	}
	return out
}

// retypeVariant re-infers the Kind of a String variant by trying a
// number parse, then a true/false parse, falling back to the string
// itself. Numbers, booleans and empties pass through unchanged.
//
// The calculator's preprocessors can only ever produce String variants
// for non-numeric tokens (see evaluator.go's per-argument wrap rule),
// so a cell value like "True" and a literal "true" in the expression
// both arrive as VariantString. countif needs them compared as the
// same Kind to match like against like; this is the single place that
// reconciles the two.
func retypeVariant(v Variant) Variant {
	if v.Kind != VariantString {
		return v
	}
	if f, err := strconv.ParseFloat(v.Str, 64); err == nil {
		return NumberVariant(f)
	}
	switch strings.ToLower(v.Str) {
	case "true":
		return BooleanVariant(true)
	case "false":
		return BooleanVariant(false)
	}
	return v
}
