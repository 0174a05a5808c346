package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lotocart/database"
)

// Execute dispatches the command line. A bare invocation runs the service
// until SIGINT/SIGTERM; the "migrate" subcommand runs schema commands and
// exits.
func Execute(args []string) error {
	if len(args) > 0 && args[0] == "migrate" {
		return runMigration(args[1:])
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx)
}

func runMigration(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: lotocart migrate [up|down|status] [steps]")
	}

	switch args[0] {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(args) > 1 {
			steps = args[1]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", args[0])
	}
}
