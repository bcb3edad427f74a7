// Package main is the entry point of the datagrid command.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/domonda/go-datagrid/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
