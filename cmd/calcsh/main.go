// Command calcsh is a small REPL over the calculator engine, grounded
// on the retrieval pack's shell/REPL examples (michaelmacinnis-oh),
// which use peterh/liner for line editing and docopt-go for its
// usage-string-driven flag parsing. It is a manual-testing and
// fuzz-corpus-generation harness, not part of the core engine.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/peterh/liner"

	calc "github.com/tablecalc/exprcalc"
	"github.com/tablecalc/exprcalc/gridprovider"
)

const usage = `calcsh

Usage:
  calcsh [-e EXPR]
  calcsh -h

Options:
  -e, --eval=EXPR  Evaluate EXPR and exit instead of starting a REPL.
  -h, --help       Display this help.
`

func main() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	c := calc.NewCalculator()
	grid := gridprovider.New()
	seedDemoGrid(grid)
	c.SetCellProvider(grid.Lookup)

	if expr, _ := opts.String("--eval"); expr != "" {
		runOne(c, expr)
		return
	}

	if !isatty() {
		runPipe(c)
		return
	}

	runREPL(c)
}

func seedDemoGrid(grid *gridprovider.Grid) {
	grid.Set("A1", "1")
	grid.Set("A2", "2")
	grid.Set("A3", "3")
}

func runOne(c *calc.Calculator, expr string) {
	result, err := c.ProgrammaticallyParse(expr, true, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(formatResult(result))
}

func runPipe(c *calc.Calculator) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result, err := c.ProgrammaticallyParse(line, true, true)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(formatResult(result))
	}
}

func runREPL(c *calc.Calculator) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("calc> ")
		if err != nil {
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			return
		}
		line.AppendHistory(input)

		result, err := c.ProgrammaticallyParse(input, true, true)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(formatResult(result))
	}
}

func formatResult(f float64) string {
	return fmt.Sprintf("%v", f)
}

func isatty() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
