package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/bodrovis/taxjar/internal/cmd"
)

var (
	executeCmd  = cmd.Execute
	mapExitCode = cmd.ExitCode
	terminate   = os.Exit
)

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return mapExitCode(executeCmd(ctx, args))
}

func main() {
	terminate(run(os.Args[1:]))
}
