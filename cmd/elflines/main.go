// Package main provides a minimal test-harness CLI for the source-line
// extractor: it reads one object-file path from standard input, extracts
// rows matching a fixed filter, and prints them followed by the status code.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/scigolib/elfline"
	"github.com/scigolib/elfline/events"
)

func main() {
	os.Exit(run())
}

func run() int {
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintf(os.Stderr, "no path given on stdin: %v\n", err)
		return 3
	}
	path := strings.TrimSpace(line)

	emit := events.NewConsole(os.Stderr)

	rows, err := elfline.Symbols(path, []string{"POUS.c"}, "", emit)

	for _, row := range rows {
		fmt.Printf("%s:%d %s is_stmt=%d basic_block=%d view=%d\n",
			row.File, row.Line, row.Address, row.IsStmt, row.BasicBlock, row.View)
	}

	code := elfline.SymbolsExitCode(err)
	fmt.Printf("status %d\n", code)
	return code
}
