package calc

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// cellAddressPattern matches a bare cell address (letters + row number,
// no leading zero), case-insensitively. Grounded on the teacher's
// isCell helper (lexer.go) which does the same split by hand; here the
// split is expressed directly as the regexp spec.md §3 specifies.
var cellAddressPattern = regexp.MustCompile(`^[A-Za-z]+[1-9][0-9]*$`)

func isCellAddress(tok string) bool {
	return cellAddressPattern.MatchString(tok)
}

// splitCellAddress splits a validated cell address into its column
// letters (uppercased) and row number.
func splitCellAddress(addr string) (letters string, row int, err error) {
	i := 0
	for i < len(addr) && isASCIILetter(addr[i]) {
		i++
	}
	letters = strings.ToUpper(addr[:i])
	row, err = strconv.Atoi(addr[i:])
	return letters, row, err
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// columnIndexToLetters and lettersToColumnIndex are the bijection of
// spec.md §3 (1->A, 26->Z, 27->AA, ...). Rather than hand-roll
// bijective base-26 arithmetic, this reuses excelize's own column
// codec -- the same conversion excelize's formula engine relies on
// internally for cell addressing.
func columnIndexToLetters(idx int) (string, error) {
	return excelize.ColumnNumberToName(idx)
}

func lettersToColumnIndex(letters string) (int, error) {
	return excelize.ColumnNameToNumber(letters)
}
