package calc

import "math"

// Tracer is an optional debug hook a host can install to observe the
// token stream at each preprocessing/evaluation phase boundary. The
// teacher module carries no logging dependency anywhere in its ~9500
// lines (logging is squarely a host concern per spec.md §1), so this
// mirrors its Clock/RandomGenerator injectable-interface pattern
// (builtin.go) instead of reaching for a logging library that nothing
// in the retrieval pack grounds for this package.
type Tracer interface {
	Trace(step string, tokens []string)
}

// Calculator owns the variable, operator and function tables and
// exposes the spec.md §6 external interface. A Calculator is not
// thread-safe (spec.md §5): registration methods mutate tables in
// place, and a Compute call must not be re-entered from within its own
// cell provider callback.
type Calculator struct {
	variables     map[string]float64
	operators     []operatorEntry
	userFunctions map[string]VariantFunc
	factory       *FunctionFactory
	cellProvider  CellProviderFunc
	tracer        Tracer

	// VariableDeclarator is the keyword ProgrammaticallyParse looks for
	// to recognize a variable declaration. Defaults to "let".
	VariableDeclarator string
}

// NewCalculator constructs a Calculator preloaded with the constants
// of spec.md §6 and the built-in operator table in its fixed
// precedence order.
func NewCalculator() *Calculator {
	return &Calculator{
		variables: map[string]float64{
			"pi":       3.14159265358979,
			"tao":      6.28318530717959,
			"e":        2.71828182845905,
			"phi":      1.61803398874989,
			"major":    0.61803398874989,
			"minor":    0.38196601125011,
			"pitograd": 57.2957795130823,
			"piofgrad": 0.01745329251994,
		},
		operators:          defaultOperators(),
		userFunctions:      make(map[string]VariantFunc),
		factory:            NewFunctionFactory(),
		VariableDeclarator: "let",
	}
}

// SetVariable binds name to value. Variable names are case-sensitive.
func (c *Calculator) SetVariable(name string, value float64) {
	c.variables[name] = value
}

// GetVariable returns the bound value, or NaN if name is unbound.
func (c *Calculator) GetVariable(name string) float64 {
	if v, ok := c.variables[name]; ok {
		return v
	}
	return math.NaN()
}

// AddFunction registers a user-defined function, checked ahead of the
// built-in factory and matched case-sensitively.
func (c *Calculator) AddFunction(name string, fn VariantFunc) {
	c.userFunctions[name] = fn
}

// AddOperator appends a host operator to the tail of the precedence
// table, i.e. at the lowest precedence.
func (c *Calculator) AddOperator(symbol string, fn OperatorFunc) {
	c.operators = append(c.operators, operatorEntry{Symbol: symbol, Fn: fn})
}

// SetCellProvider installs the host callback used to resolve cell
// references and ranges. A Calculator with no provider installed
// fails any cell reference with ErrInvalidParameter.
func (c *Calculator) SetCellProvider(fn CellProviderFunc) {
	c.cellProvider = fn
}

// SetTracer installs an optional phase-boundary trace hook.
func (c *Calculator) SetTracer(t Tracer) {
	c.tracer = t
}

func (c *Calculator) trace(step string, tokens []string) {
	if c.tracer != nil {
		c.tracer.Trace(step, tokens)
	}
}

func (c *Calculator) operatorSymbols(tok string) bool {
	return isOperatorSymbol(c.operators, tok)
}

func (c *Calculator) lookupFunction(name string) (VariantFunc, bool) {
	if fn, ok := c.userFunctions[name]; ok {
		return fn, true
	}
	return c.factory.Lookup(name)
}

// Compute evaluates expression and returns its numeric result. It is
// a blocking, synchronous call (spec.md §5): the host's cell provider
// callback, if any, is invoked inline from within it.
func (c *Calculator) Compute(expression string) (float64, error) {
	tokens := Tokenize(expression, c.operatorSymbols)
	c.trace("tokenize", tokens)

	tokens, err := substituteVariablesAndCells(tokens, c.variables, c.cellProvider)
	if err != nil {
		return 0, err
	}
	c.trace("substitute", tokens)

	tokens, err = rewriteCountif(tokens)
	if err != nil {
		return 0, err
	}
	c.trace("countif", tokens)

	hasRelative := indexOfFuncOpen(tokens, "cell", 0) != -1
	tokens, err = rewriteRelativeCells(tokens, c.variables, c.operators)
	if err != nil {
		return 0, err
	}
	if hasRelative {
		// cell(...) leaves a bare address; one that is not a range
		// endpoint is resolved through the host like any other cell.
		tokens, err = substituteVariablesAndCells(tokens, nil, c.cellProvider)
		if err != nil {
			return 0, err
		}
	}
	c.trace("relative-cell", tokens)

	tokens, err = expandRanges(tokens, c.cellProvider)
	if err != nil {
		return 0, err
	}
	c.trace("range", tokens)

	result, err := Evaluate(tokens, c.operators, c.lookupFunction)
	if err != nil {
		return 0, err
	}
	c.trace("result", []string{formatNumber(result)})
	return result, nil
}
