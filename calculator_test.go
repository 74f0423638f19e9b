package calc

import (
	"math"
	"testing"

	"github.com/tablecalc/exprcalc/gridprovider"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newTestCalculator() (*Calculator, *gridprovider.Grid) {
	c := NewCalculator()
	grid := gridprovider.New()
	c.SetCellProvider(grid.Lookup)
	return c, grid
}

func TestComputeArithmetic(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"(27^2)^4", 282429536481},
		{"3(7+3)", 30},
		{"2+3=1+4", 1},
		{".25+.25", 0.5},
		{"2+2*2", 6},
		{"10%3", 1},
		{"-5+3", -2},
		{"5+-3", 2},
		{"5--3", 8},
		{"5+ +3", 8},
	}
	c, _ := newTestCalculator()
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			got, err := c.Compute(tc.expr)
			if err != nil {
				t.Fatalf("Compute(%q) returned error: %v", tc.expr, err)
			}
			if !near(got, tc.want) {
				t.Errorf("Compute(%q) = %v, want %v", tc.expr, got, tc.want)
			}
		})
	}
}

func TestComputeWhitespaceInsensitive(t *testing.T) {
	c, _ := newTestCalculator()
	a, err := c.Compute("1+2*3")
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Compute(" 1 +  2 *   3 ")
	if err != nil {
		t.Fatal(err)
	}
	if !near(a, b) {
		t.Errorf("whitespace changed result: %v vs %v", a, b)
	}
}

func TestComputeDivisionByZero(t *testing.T) {
	c, _ := newTestCalculator()

	got, err := c.Compute("1/0")
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(got, 1) {
		t.Errorf("1/0 = %v, want +Inf", got)
	}

	got, err = c.Compute("-1/0")
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(got, -1) {
		t.Errorf("-1/0 = %v, want -Inf", got)
	}

	got, err = c.Compute("0/0")
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(got) {
		t.Errorf("0/0 = %v, want NaN", got)
	}
}

func TestComputeConstantsAndVariables(t *testing.T) {
	c, _ := newTestCalculator()
	got, err := c.Compute("pi")
	if err != nil {
		t.Fatal(err)
	}
	if !near(got, 3.14159265358979) {
		t.Errorf("pi = %v", got)
	}

	c.SetVariable("x", 10)
	got, err = c.Compute("x*2")
	if err != nil {
		t.Fatal(err)
	}
	if !near(got, 20) {
		t.Errorf("x*2 = %v, want 20", got)
	}
}

func TestComputeCellReference(t *testing.T) {
	c, grid := newTestCalculator()
	grid.Set("A1", "5")
	grid.Set("A2", "7")
	got, err := c.Compute("A1+A2")
	if err != nil {
		t.Fatal(err)
	}
	if !near(got, 12) {
		t.Errorf("A1+A2 = %v, want 12", got)
	}
}

func TestComputeCellReferenceMissing(t *testing.T) {
	c, _ := newTestCalculator()
	if _, err := c.Compute("A1+1"); err == nil {
		t.Fatal("expected error for unresolved cell reference")
	}
}

func TestComputeRange(t *testing.T) {
	c, grid := newTestCalculator()
	for r := 1; r <= 9; r++ {
		grid.FillColumn("A", r, r, func(row int) string { return formatNumber(float64(row)) })
	}
	got, err := c.Compute("sum(A1:A9)")
	if err != nil {
		t.Fatal(err)
	}
	if !near(got, 45) {
		t.Errorf("sum(A1:A9) = %v, want 45", got)
	}
}

func TestComputeRangeSymmetric(t *testing.T) {
	c, grid := newTestCalculator()
	grid.Set("A1", "1")
	grid.Set("A2", "2")
	grid.Set("A3", "3")

	forward, err := c.Compute("sum(A1:A3)")
	if err != nil {
		t.Fatal(err)
	}
	backward, err := c.Compute("sum(A3:A1)")
	if err != nil {
		t.Fatal(err)
	}
	if !near(forward, backward) {
		t.Errorf("sum(A1:A3)=%v but sum(A3:A1)=%v", forward, backward)
	}
}

func TestComputeRelativeCell(t *testing.T) {
	c, grid := newTestCalculator()
	grid.Set("B3", "99")
	c.SetVariable("col", 1)
	c.SetVariable("row", 2)
	got, err := c.Compute("cell(1,1)")
	if err != nil {
		t.Fatal(err)
	}
	if !near(got, 99) {
		t.Errorf("cell(1,1) = %v, want 99", got)
	}
}

func TestComputeRelativeCellIdentity(t *testing.T) {
	c, grid := newTestCalculator()
	grid.Set("A1", "42")
	c.SetVariable("col", 1)
	c.SetVariable("row", 1)
	got, err := c.Compute("cell(0,0)")
	if err != nil {
		t.Fatal(err)
	}
	if !near(got, 42) {
		t.Errorf("cell(0,0) = %v, want 42", got)
	}
}

func TestComputeCountifComparators(t *testing.T) {
	c, grid := newTestCalculator()
	grid.Set("A1", "1")
	grid.Set("A2", "5")
	grid.Set("A3", "10")
	grid.Set("A4", "15")

	got, err := c.Compute("countif(A1:A4, <10)")
	if err != nil {
		t.Fatal(err)
	}
	if !near(got, 2) {
		t.Errorf("countif < 10 = %v, want 2", got)
	}

	got, err = c.Compute("countif(A1:A4, >=10)")
	if err != nil {
		t.Fatal(err)
	}
	if !near(got, 2) {
		t.Errorf("countif >= 10 = %v, want 2", got)
	}
}

func TestComputeCountifBoolean(t *testing.T) {
	c, grid := newTestCalculator()
	grid.Set("A1", "true")
	grid.Set("A2", "false")
	grid.Set("A3", "true")

	got, err := c.Compute("countif(A1:A3, true)")
	if err != nil {
		t.Fatal(err)
	}
	if !near(got, 2) {
		t.Errorf("countif true = %v, want 2", got)
	}
}

func TestComputeUserFunction(t *testing.T) {
	c, _ := newTestCalculator()
	c.AddFunction("double", func(vl VariantList) (float64, error) {
		if err := vl.Assert(VariantNumber); err != nil {
			return 0, err
		}
		return vl.NumberAt(0) * 2, nil
	})
	got, err := c.Compute("double(21)")
	if err != nil {
		t.Fatal(err)
	}
	if !near(got, 42) {
		t.Errorf("double(21) = %v, want 42", got)
	}
}

func TestComputeCustomOperator(t *testing.T) {
	c, _ := newTestCalculator()
	c.AddOperator("@", func(a, b float64) float64 { return a*10 + b })
	got, err := c.Compute("2@3")
	if err != nil {
		t.Fatal(err)
	}
	if !near(got, 23) {
		t.Errorf("2@3 = %v, want 23", got)
	}
}

func TestCellAddressCodecRoundTrip(t *testing.T) {
	cases := []struct {
		idx     int
		letters string
	}{
		{1, "A"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
	}
	for _, tc := range cases {
		letters, err := columnIndexToLetters(tc.idx)
		if err != nil {
			t.Fatal(err)
		}
		if letters != tc.letters {
			t.Errorf("columnIndexToLetters(%d) = %s, want %s", tc.idx, letters, tc.letters)
		}
		idx, err := lettersToColumnIndex(tc.letters)
		if err != nil {
			t.Fatal(err)
		}
		if idx != tc.idx {
			t.Errorf("lettersToColumnIndex(%s) = %d, want %d", tc.letters, idx, tc.idx)
		}
	}
}

func TestComputeUnbalancedParens(t *testing.T) {
	c, _ := newTestCalculator()
	if _, err := c.Compute("sum(1,2"); err == nil {
		t.Fatal("expected error for unclosed paren")
	}
}

func TestComputeInvalidRange(t *testing.T) {
	c, _ := newTestCalculator()
	if _, err := c.Compute(":A1"); err == nil {
		t.Fatal("expected error for range missing left endpoint")
	}
}

func TestVariantCompareCrossKind(t *testing.T) {
	if NumberVariant(1).CompareTo(StringVariant("1")) == 0 {
		t.Error("cross-kind variants must never compare equal")
	}
}

func TestProgrammaticallyParseDeclaration(t *testing.T) {
	c, _ := newTestCalculator()
	got, err := c.ProgrammaticallyParse("let x = 2+3", true, true)
	if err != nil {
		t.Fatal(err)
	}
	if !near(got, 5) {
		t.Errorf("let x = 2+3 returned %v, want 5", got)
	}
	if !near(c.GetVariable("x"), 5) {
		t.Errorf("x was not bound, got %v", c.GetVariable("x"))
	}
}

func TestProgrammaticallyParseStripsComments(t *testing.T) {
	c, _ := newTestCalculator()
	got, err := c.ProgrammaticallyParse("1+1 # add one and one", true, true)
	if err != nil {
		t.Fatal(err)
	}
	if !near(got, 2) {
		t.Errorf("got %v, want 2", got)
	}
}

func TestProgrammaticallyParseCorrectsTypo(t *testing.T) {
	c, _ := newTestCalculator()
	got, err := c.ProgrammaticallyParse("sqr(16)", true, false)
	if err != nil {
		t.Fatal(err)
	}
	if !near(got, 4) {
		t.Errorf("sqr(16) = %v, want 4", got)
	}
}

func TestProgrammaticallyParseDoesNotMisfireOnSubstring(t *testing.T) {
	c, _ := newTestCalculator()
	c.SetVariable("albeit", 7)
	got, err := c.ProgrammaticallyParse("albeit+1", true, true)
	if err != nil {
		t.Fatal(err)
	}
	if !near(got, 8) {
		t.Errorf("albeit+1 = %v, want 8 (declaration pattern should not fire on embedded 'be')", got)
	}
}
