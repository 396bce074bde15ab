package main

import (
	"context"
	"os"

	"github.com/shopctl/shopctl/internal/cmd"
)

// Seams for the tests below; main wires the real implementations.
var (
	execute  = cmd.Execute
	exitFrom = cmd.ExitCode
	exit     = os.Exit
)

func run(args []string) int {
	if err := execute(context.Background(), args); err != nil {
		return exitFrom(err)
	}
	return 0
}

func main() {
	exit(run(os.Args[1:]))
}
