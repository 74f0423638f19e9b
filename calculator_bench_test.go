package calc

import (
	"strconv"
	"testing"

	"github.com/tablecalc/exprcalc/gridprovider"
)

func BenchmarkComputeSimpleArithmetic(b *testing.B) {
	c, _ := newTestCalculator()
	for i := 0; i < b.N; i++ {
		if _, err := c.Compute("(27^2)^4"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkComputeDeepNesting(b *testing.B) {
	c, _ := newTestCalculator()
	expr := "1"
	for i := 0; i < 50; i++ {
		expr = "(" + expr + "+1)"
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Compute(expr); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkComputeLargeRangeSum(b *testing.B) {
	c, grid := newTestCalculator()
	for r := 1; r <= 1000; r++ {
		grid.Set("A"+strconv.Itoa(r), strconv.Itoa(r))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Compute("sum(A1:A1000)"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkComputeCountifOverLargeRange(b *testing.B) {
	c, grid := newTestCalculator()
	for r := 1; r <= 1000; r++ {
		grid.Set("A"+strconv.Itoa(r), strconv.Itoa(r))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Compute("countif(A1:A1000, >500)"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkComputeManySmallExpressions(b *testing.B) {
	c, grid := newTestCalculator()
	grid.Set("A1", "1")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for row := 1; row <= 100; row++ {
			expr := "A1*" + strconv.Itoa(row) + "+" + strconv.Itoa(row)
			if _, err := c.Compute(expr); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkComputeRelativeCellChain(b *testing.B) {
	c, grid := newTestCalculator()
	for r := 1; r <= 20; r++ {
		grid.Set("A"+strconv.Itoa(r), strconv.Itoa(r))
	}
	c.SetVariable("col", 1)
	c.SetVariable("row", 10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Compute("cell(0,-9)+cell(0,-8)+cell(0,-7)"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGridFillColumn(b *testing.B) {
	for i := 0; i < b.N; i++ {
		grid := gridprovider.New()
		grid.FillColumn("A", 1, 1000, func(row int) string { return strconv.Itoa(row) })
	}
}
