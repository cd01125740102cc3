// Package main is the entry point for the toypas-cli application.
// It initializes the root command and registers the pi, procedure chain, interpreter
// and run history sub-commands, then executes the command-line interface.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	commands "github.com/MGTheTrain/toypas/cmd/toypas-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "toypas-cli",
		Short: "Pi approximation, procedure chain generation and toy-language interpreter",
		Long: `toypas-cli bundles small tools around a Pascal-like toy language.
It approximates pi with the Leibniz series, generates long procedure chains that
stress the interpreter, and runs toy-language programs.

Pass --history-db to record every run in a SQLite database and inspect it with list-runs.`,
		SilenceUsage: true,
	}

	if err := commands.InitCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Interrupts cancel long running programs instead of killing the process
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
