package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/toypas/internal/domain/procgen"
	"github.com/MGTheTrain/toypas/internal/domain/program"

	"github.com/spf13/cobra"
)

// programOptions reads the interpreter debug flags shared by run-program and stress-test
func programOptions(cmd *cobra.Command) (program.Options, error) {
	flags := cmd.Flags()
	opts := program.Options{
		Stdout: cmd.OutOrStdout(),
		Trace:  cmd.ErrOrStderr(),
	}

	var err error
	if opts.PrintTokens, err = flags.GetBool("print-tokens"); err != nil {
		return opts, fmt.Errorf("invalid print-tokens flag: %w", err)
	}
	if opts.DumpVars, err = flags.GetBool("dump-vars"); err != nil {
		return opts, fmt.Errorf("invalid dump-vars flag: %w", err)
	}
	if opts.ShowSymbolTable, err = flags.GetBool("show-symbol-table"); err != nil {
		return opts, fmt.Errorf("invalid show-symbol-table flag: %w", err)
	}
	if opts.ShowConditions, err = flags.GetBool("show-conditions"); err != nil {
		return opts, fmt.Errorf("invalid show-conditions flag: %w", err)
	}
	if opts.StaticTypeChecking, err = flags.GetBool("static-type-checking"); err != nil {
		return opts, fmt.Errorf("invalid static-type-checking flag: %w", err)
	}
	if opts.MaxCallDepth, err = flags.GetInt("max-call-depth"); err != nil {
		return opts, fmt.Errorf("invalid max-call-depth flag: %w", err)
	}
	return opts, nil
}

// RunProgramCmd interprets a toy-language source file
func (commandHandler *CommandHandler) RunProgramCmd(cmd *cobra.Command, _ []string) error {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return fmt.Errorf("invalid input-file flag: %w", err)
	}

	source, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		return fmt.Errorf("failed to read program: %w", err)
	}

	opts, err := programOptions(cmd)
	if err != nil {
		return err
	}

	_, err = commandHandler.executionService.RunProgram(cmd.Context(), filepath.Base(inputFilePath), string(source), opts)
	return err
}

// StressTestCmd runs a generated procedure chain through the interpreter
func (commandHandler *CommandHandler) StressTestCmd(cmd *cobra.Command, _ []string) error {
	upperBound, err := cmd.Flags().GetInt("upper-bound")
	if err != nil {
		return fmt.Errorf("invalid upper-bound flag: %w", err)
	}

	opts, err := programOptions(cmd)
	if err != nil {
		return err
	}

	run, err := commandHandler.executionService.StressTest(cmd.Context(), upperBound, opts)
	if err != nil {
		return err
	}
	commandHandler.logger.Info(fmt.Sprintf("Stress test with %d procedures finished in %s", upperBound, run.Duration))
	return nil
}

func addInterpreterFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("print-tokens", "", false, "Trace every consumed token")
	cmd.Flags().BoolP("dump-vars", "", false, "Trace variable lookups and dump frames")
	cmd.Flags().BoolP("show-symbol-table", "", false, "Trace scopes and symbol definitions")
	cmd.Flags().BoolP("show-conditions", "", false, "Trace evaluated conditions")
	cmd.Flags().BoolP("static-type-checking", "", false, "Reject ANY-typed values in typed positions")
	cmd.Flags().IntP("max-call-depth", "", 0, "Maximum call depth (0 uses the configured limit)")
}

// InitProgramCommands registers the interpreter commands
func InitProgramCommands(rootCmd *cobra.Command, handler *CommandHandler) {
	var runProgramCmd = &cobra.Command{
		Use:   "run-program",
		Short: "Run a toy-language program",
		Args:  cobra.NoArgs,
		RunE:  handler.RunProgramCmd,
	}
	runProgramCmd.Flags().StringP("input-file", "", "", "Path to the program source")
	_ = runProgramCmd.MarkFlagRequired("input-file")
	addInterpreterFlags(runProgramCmd)
	rootCmd.AddCommand(runProgramCmd)

	var stressTestCmd = &cobra.Command{
		Use:   "stress-test",
		Short: "Generate a procedure chain and run it",
		Args:  cobra.NoArgs,
		RunE:  handler.StressTestCmd,
	}
	stressTestCmd.Flags().IntP("upper-bound", "", procgen.DefaultUpperBound, "Exclusive upper bound of the procedure chain")
	addInterpreterFlags(stressTestCmd)
	rootCmd.AddCommand(stressTestCmd)
}
