package commands

import (
	"encoding/json"
	"fmt"

	"github.com/MGTheTrain/toypas/internal/domain/runs"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats of list-runs
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ListRunsCmd prints recorded runs, newest first
func (commandHandler *CommandHandler) ListRunsCmd(cmd *cobra.Command, _ []string) error {
	if commandHandler.runMetadataService == nil {
		return errHistoryDisabled
	}

	kind, err := cmd.Flags().GetString("kind")
	if err != nil {
		return fmt.Errorf("invalid kind flag: %w", err)
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("invalid limit flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("invalid format flag: %w", err)
	}

	query := runs.NewRunMetaQuery()
	query.Kind = kind
	query.Limit = limit
	if err := query.Validate(); err != nil {
		return err
	}

	list, err := commandHandler.runMetadataService.List(cmd.Context(), query)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*runs.RunMeta{}
	}

	out := cmd.OutOrStdout()
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(list); err != nil {
			return fmt.Errorf("failed to encode runs: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q: use %s or %s", format, FormatJSON, FormatYAML)
	}
}

// DeleteRunCmd removes a recorded run
func (commandHandler *CommandHandler) DeleteRunCmd(cmd *cobra.Command, _ []string) error {
	if commandHandler.runMetadataService == nil {
		return errHistoryDisabled
	}

	runID, err := cmd.Flags().GetString("id")
	if err != nil {
		return fmt.Errorf("invalid id flag: %w", err)
	}

	if err := commandHandler.runMetadataService.DeleteByID(cmd.Context(), runID); err != nil {
		return err
	}
	commandHandler.logger.Info("Deleted run ", runID)
	return nil
}

// InitHistoryCommands registers the run history commands
func InitHistoryCommands(rootCmd *cobra.Command, handler *CommandHandler) {
	var listRunsCmd = &cobra.Command{
		Use:   "list-runs",
		Short: "List recorded runs",
		Args:  cobra.NoArgs,
		RunE:  handler.ListRunsCmd,
	}
	listRunsCmd.Flags().StringP("kind", "", "", "Only list runs of this kind (pi, procgen, program, stress)")
	listRunsCmd.Flags().IntP("limit", "", 20, "Maximum number of runs")
	listRunsCmd.Flags().StringP("format", "", FormatJSON, "Output format (json, yaml)")
	rootCmd.AddCommand(listRunsCmd)

	var deleteRunCmd = &cobra.Command{
		Use:   "delete-run",
		Short: "Delete a recorded run",
		Args:  cobra.NoArgs,
		RunE:  handler.DeleteRunCmd,
	}
	deleteRunCmd.Flags().StringP("id", "", "", "ID of the run to delete")
	_ = deleteRunCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(deleteRunCmd)
}
