package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
)

var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			pterm.Println()
			pterm.Println(pterm.Gray("Interrupted. Bye!"))
			os.Exit(0)
		}
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}
