package commands

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/toypas/internal/domain/procgen"

	"github.com/spf13/cobra"
)

// GenerateProceduresCmd writes a procedure chain program to stdout or a file
func (commandHandler *CommandHandler) GenerateProceduresCmd(cmd *cobra.Command, _ []string) (err error) {
	upperBound, err := cmd.Flags().GetInt("upper-bound")
	if err != nil {
		return fmt.Errorf("invalid upper-bound flag: %w", err)
	}
	outputFilePath, err := cmd.Flags().GetString("output-file")
	if err != nil {
		return fmt.Errorf("invalid output-file flag: %w", err)
	}

	if outputFilePath == "" {
		_, err = commandHandler.executionService.GenerateProcedures(cmd.Context(), upperBound, cmd.OutOrStdout())
		return err
	}

	file, err := os.OpenFile(filepath.Clean(outputFilePath), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	w := bufio.NewWriter(file)
	if _, err = commandHandler.executionService.GenerateProcedures(cmd.Context(), upperBound, w); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	commandHandler.logger.Info("Procedure chain saved to ", outputFilePath)
	return nil
}

// InitProcGenCommands registers the procedure chain commands
func InitProcGenCommands(rootCmd *cobra.Command, handler *CommandHandler) {
	var generateProceduresCmd = &cobra.Command{
		Use:   "generate-procedures",
		Short: "Generate a chain of toy-language procedures",
		Args:  cobra.NoArgs,
		RunE:  handler.GenerateProceduresCmd,
	}
	generateProceduresCmd.Flags().IntP("upper-bound", "", procgen.DefaultUpperBound, "Exclusive upper bound of the procedure chain")
	generateProceduresCmd.Flags().StringP("output-file", "", "", "Path to the generated program (stdout when empty)")
	rootCmd.AddCommand(generateProceduresCmd)
}
