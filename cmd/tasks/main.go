// Command tasks is the CLI entrypoint.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nibzard/tasks-go/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cmd.Run(ctx, os.Args[1:])
	interrupted := ctx.Err() != nil
	stop()

	if err != nil {
		if interrupted {
			fmt.Fprintln(os.Stderr, "\nInterrupted")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
