package calc

import "strings"

// presubstitutions are literal, ordered string replacements applied to
// the raw expression before scanning begins (spec.md §4.1). Order is
// significant: "--" only becomes "+" after "+-" and "-+" have already
// been folded to "-".
var presubstitutions = []struct{ from, to string }{
	{"+-", "-"},
	{"-+", "-"},
	{"--", "+"},
	{"==", "="},
	{">=", geqChar},
	{"<=", leqChar},
	{"!=", neqChar},
}

func normalizeExpression(expr string) string {
	for _, sub := range presubstitutions {
		expr = strings.ReplaceAll(expr, sub.from, sub.to)
	}
	return expr
}

func isDigitRune(r rune) bool { return r >= '0' && r <= '9' }

func isLetterRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isAlnumRune(r rune) bool { return isLetterRune(r) || isDigitRune(r) }

func isWhitespaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// Tokenize turns a raw expression into a flat, mutable token list.
// Tokens are bare strings by design (spec.md §3: "Token -- opaque
// string slot ... classified only by inspection"), unlike the
// teacher's structured Token{Type,Value,Pos} (lexer.go) -- there is no
// static token type to track here, since every later stage reclassifies
// a token by looking at its text. operatorSymbols supplies the known
// operator glyphs (built-in plus host-added) used to decide whether
// the previously emitted token counts as an operator for sign-folding.
func Tokenize(expr string, operatorSymbols func(string) bool) []string {
	runes := []rune(normalizeExpression(expr))
	n := len(runes)

	var tokens []string
	var lastChar rune
	isFirst := true

	emit := func(tok string) {
		tokens = append(tokens, tok)
		tokRunes := []rune(tok)
		lastChar = tokRunes[len(tokRunes)-1]
		isFirst = false
	}

	i := 0
	for i < n {
		ch := runes[i]
		if isWhitespaceRune(ch) {
			i++
			continue
		}

		switch {
		case isLetterRune(ch):
			start := i
			for i < n && isAlnumRune(runes[i]) {
				i++
			}
			ident := string(runes[start:i])
			if lastChar == ')' || isDigitRune(lastChar) {
				tokens = append(tokens, "*")
			}
			emit(ident)

		case isDigitRune(ch) || ch == '.':
			start := i
			for i < n && (isDigitRune(runes[i]) || runes[i] == '.') {
				i++
			}
			emit(string(runes[start:i]))

		case ch == '+' || ch == '-':
			foldable := i+1 < n && (isDigitRune(runes[i+1]) || runes[i+1] == '.')
			if foldable {
				lastTok := ""
				if len(tokens) > 0 {
					lastTok = tokens[len(tokens)-1]
				}
				cond := isFirst || (lastTok != "" && operatorSymbols(lastTok)) || lastChar == '('
				if cond {
					start := i
					i++
					for i < n && (isDigitRune(runes[i]) || runes[i] == '.') {
						i++
					}
					emit(string(runes[start:i]))
					continue
				}
			}
			emit(string(ch))
			i++

		case ch == '(':
			if lastChar == ')' || isDigitRune(lastChar) {
				tokens = append(tokens, "*")
			}
			emit("(")
			i++

		default:
			emit(string(ch))
			i++
		}
	}

	return tokens
}
