// Package gridprovider is a minimal in-memory cell-value host,
// standing in for the real table model spec.md §1 explicitly leaves to
// the embedding host. It is grounded on the teacher's cell-storage
// idiom (worksheet.go, storage.go) but reduced to the calculator's
// actual contract: one lookup callback returning a string or absent,
// nothing more.
package gridprovider

import (
	"strconv"
	"strings"
)

// Grid is a simple address -> string map implementing the calculator's
// cell-provider contract. Used by cmd/calcsh and by tests as a
// stand-in host; never by the core calc package itself.
type Grid struct {
	cells map[string]string
}

func New() *Grid {
	return &Grid{cells: make(map[string]string)}
}

// Set stores value at address, normalizing the address to uppercase
// the way the calculator's cell-address codec does.
func (g *Grid) Set(address, value string) {
	g.cells[strings.ToUpper(address)] = value
}

// Lookup implements calc.CellProviderFunc.
func (g *Grid) Lookup(address string) (string, bool) {
	v, ok := g.cells[strings.ToUpper(address)]
	return v, ok
}

// FillColumn sets every cell in column col between rowFrom and rowTo
// (inclusive), each cell's value computed from its row number, useful
// for populating large ranges in tests without enumerating every
// address by hand.
func (g *Grid) FillColumn(col string, rowFrom, rowTo int, value func(row int) string) {
	for r := rowFrom; r <= rowTo; r++ {
		g.Set(col+strconv.Itoa(r), value(r))
	}
}
