// stockctl administra el inventario desde la terminal: migraciones, catálogo, ajustes y tokens.
//
// Uso: go run ./cmd/stockctl [--store postgres|memory] <comando>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/coffee-stock-api/internal/interfaces/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, closeRuntime := cli.NewRootCmd(cli.DefaultOptions())
	err := root.ExecuteContext(ctx)
	closeRuntime()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
