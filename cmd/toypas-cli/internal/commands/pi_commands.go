package commands

import (
	"fmt"

	"github.com/MGTheTrain/toypas/internal/domain/pi"

	"github.com/spf13/cobra"
)

// CalculatePiCmd prints the Leibniz approximation of pi
func (commandHandler *CommandHandler) CalculatePiCmd(cmd *cobra.Command, _ []string) error {
	iterations, err := cmd.Flags().GetInt("iterations")
	if err != nil {
		return fmt.Errorf("invalid iterations flag: %w", err)
	}

	value, _, err := commandHandler.executionService.CalculatePi(cmd.Context(), iterations)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
	return err
}

// InitPiCommands registers the pi commands
func InitPiCommands(rootCmd *cobra.Command, handler *CommandHandler) {
	var calculatePiCmd = &cobra.Command{
		Use:   "calculate-pi",
		Short: "Approximate pi with the Leibniz series",
		Args:  cobra.NoArgs,
		RunE:  handler.CalculatePiCmd,
	}
	calculatePiCmd.Flags().IntP("iterations", "", pi.DefaultIterations, "Number of series iterations")
	rootCmd.AddCommand(calculatePiCmd)
}
