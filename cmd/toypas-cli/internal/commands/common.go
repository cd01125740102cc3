package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MGTheTrain/toypas/internal/app"
	"github.com/MGTheTrain/toypas/internal/domain/runs"
	"github.com/MGTheTrain/toypas/internal/infrastructure/codegen"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter"
	"github.com/MGTheTrain/toypas/internal/infrastructure/numeric"
	"github.com/MGTheTrain/toypas/internal/infrastructure/persistence"
	"github.com/MGTheTrain/toypas/internal/pkg/config"
	"github.com/MGTheTrain/toypas/internal/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// errHistoryDisabled is returned by history commands run without --history-db
var errHistoryDisabled = errors.New("run history is disabled: pass --history-db")

func setupLogger(level string) (logger.Logger, error) {
	if err := logger.InitLogger(config.NewCLILoggerSettings(level)); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// CommandHandler holds the services shared by all sub-commands.
// They are built once the global flags are parsed.
type CommandHandler struct {
	executionService runs.ExecutionService
	// runMetadataService is nil unless a history database is configured
	runMetadataService runs.RunMetadataService
	db                 *gorm.DB
	logger             logger.Logger
}

// setup builds the services for the given log level and optional SQLite history path
func (commandHandler *CommandHandler) setup(logLevel, historyDB string) error {
	loggerInstance, err := setupLogger(logLevel)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}

	var runRepo runs.RunRepository
	if historyDB != "" {
		db, err := persistence.NewDBConnection(config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  historyDB,
		})
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		if err := persistence.Migrate(db); err != nil {
			_ = persistence.CloseDB(db)
			return fmt.Errorf("failed to migrate history database: %w", err)
		}
		commandHandler.db = db

		runRepo, err = persistence.NewGormRunRepository(db, loggerInstance)
		if err != nil {
			return fmt.Errorf("failed to create run repository: %w", err)
		}

		commandHandler.runMetadataService, err = app.NewRunMetadataService(runRepo, loggerInstance)
		if err != nil {
			return fmt.Errorf("failed to create run metadata service: %w", err)
		}
	}

	calculator, err := numeric.NewLeibnizCalculator(loggerInstance)
	if err != nil {
		return fmt.Errorf("failed to create pi calculator: %w", err)
	}

	generator, err := codegen.NewProcedureChainGenerator(loggerInstance)
	if err != nil {
		return fmt.Errorf("failed to create procedure chain generator: %w", err)
	}

	interp, err := interpreter.NewTreeWalkingInterpreter(loggerInstance)
	if err != nil {
		return fmt.Errorf("failed to create interpreter: %w", err)
	}

	commandHandler.executionService, err = app.NewExecutionService(calculator, generator, interp, runRepo, config.NewDefaultExecutionSettings(), loggerInstance)
	if err != nil {
		return fmt.Errorf("failed to create execution service: %w", err)
	}

	commandHandler.logger = loggerInstance
	return nil
}

// close releases the history database when one was opened
func (commandHandler *CommandHandler) close() error {
	if commandHandler.db == nil {
		return nil
	}
	err := persistence.CloseDB(commandHandler.db)
	commandHandler.db = nil
	return err
}

// InitCommands registers the global flags and every command group with the root command.
func InitCommands(rootCmd *cobra.Command) error {
	handler := &CommandHandler{}

	rootCmd.PersistentFlags().StringP("log-level", "", config.LogLevelError, "Log level ("+strings.Join(config.LogLevels, ", ")+")")
	rootCmd.PersistentFlags().StringP("history-db", "", "", "Path to a SQLite database recording every run")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		logLevel, err := cmd.Flags().GetString("log-level")
		if err != nil {
			return fmt.Errorf("invalid log-level flag: %w", err)
		}
		historyDB, err := cmd.Flags().GetString("history-db")
		if err != nil {
			return fmt.Errorf("invalid history-db flag: %w", err)
		}
		return handler.setup(logLevel, historyDB)
	}
	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return handler.close()
	}

	InitPiCommands(rootCmd, handler)
	InitProcGenCommands(rootCmd, handler)
	InitProgramCommands(rootCmd, handler)
	InitHistoryCommands(rootCmd, handler)

	return nil
}
