package calc

import (
	"regexp"
	"strings"
)

// blockCommentPattern strips #{...}# block comments; lineCommentPattern strips a
// trailing #... to end of line. Implemented with stdlib regexp: no
// example repo or other_examples file in the retrieval pack implements
// this kind of ad hoc comment stripping, so there is nothing to ground
// a third-party text-processing dependency on for this narrow,
// non-core surface (see DESIGN.md).
var (
	blockCommentPattern = regexp.MustCompile(`#\{[^}]*\}#`)
	lineCommentPattern  = regexp.MustCompile(`#[^\n]*`)
)

func stripComments(expr string) string {
	expr = blockCommentPattern.ReplaceAllString(expr, "")
	expr = lineCommentPattern.ReplaceAllString(expr, "")
	return expr
}

// typoCorrections is the fixed table of identifier-boundary-aware,
// case-insensitive spelling fixes ProgrammaticallyParse applies when
// correct is true.
var typoCorrections = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`(?i)\bsqr\b`), "sqrt"},
	{regexp.MustCompile(`(?i)\barctan2\b`), "atan2"},
	{regexp.MustCompile(`(?i)\barcsin\b`), "asin"},
	{regexp.MustCompile(`(?i)\barccos\b`), "acos"},
	{regexp.MustCompile(`(?i)\barctan\b`), "atan"},
}

func applyTypoCorrections(expr string) string {
	for _, c := range typoCorrections {
		expr = c.pattern.ReplaceAllString(expr, c.repl)
	}
	return expr
}

// declarationPattern matches "<declarator> NAME (= | be | :=) EXPR"
// with the declarator, name and separator each bounded by whitespace,
// per spec.md §9's recommended fix for the `be`-substring ambiguity
// (a variable literally named "albeit" must not be mis-split on its
// embedded "be").
func declarationPattern(declarator string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^\s*` + regexp.QuoteMeta(declarator) + `\s+([A-Za-z][A-Za-z0-9]*)\s+(?:=|be|:=)\s+(.+)$`)
}

// bareDeclarationPattern matches the declarator-less "NAME := EXPR"
// form spec.md §9 also requires ProgrammaticallyParse to bind.
var bareDeclarationPattern = regexp.MustCompile(`(?i)^\s*([A-Za-z][A-Za-z0-9]*)\s*:=\s*(.+)$`)

// ProgrammaticallyParse is the ambient declaration/comment surface
// layered in front of Compute (spec.md §4.6, §6). identify_comments
// strips #{...}# block and #... line-tail comments; correct applies a
// small typo table; a recognized "let NAME = EXPR" / "let NAME be
// EXPR" / "let NAME := EXPR" / "NAME := EXPR" declaration binds NAME
// via SetVariable and returns the bound value. Anything else is
// delegated to Compute.
func (c *Calculator) ProgrammaticallyParse(expression string, correct bool, identifyComments bool) (float64, error) {
	expr := expression
	if identifyComments {
		expr = stripComments(expr)
	}
	if correct {
		expr = applyTypoCorrections(expr)
	}

	declarator := c.VariableDeclarator
	if declarator == "" {
		declarator = "let"
	}

	if m := declarationPattern(declarator).FindStringSubmatch(expr); m != nil {
		return c.bindDeclaration(m[1], m[2])
	}
	if m := bareDeclarationPattern.FindStringSubmatch(expr); m != nil {
		return c.bindDeclaration(m[1], m[2])
	}

	return c.Compute(expr)
}

func (c *Calculator) bindDeclaration(name, rhs string) (float64, error) {
	val, err := c.Compute(strings.TrimSpace(rhs))
	if err != nil {
		return 0, err
	}
	c.SetVariable(name, val)
	return val, nil
}
