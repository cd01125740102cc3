//go:build integration
// +build integration

package app

import (
	"testing"

	"github.com/MGTheTrain/toypas/internal/domain/runs"
	"github.com/MGTheTrain/toypas/internal/infrastructure/codegen"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter"
	"github.com/MGTheTrain/toypas/internal/infrastructure/numeric"
	"github.com/MGTheTrain/toypas/internal/infrastructure/persistence"
	"github.com/MGTheTrain/toypas/internal/pkg/config"
	"github.com/MGTheTrain/toypas/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// ServicesTestContext bundles the services under test and the repository backing them
type ServicesTestContext struct {
	ExecutionService   runs.ExecutionService
	RunMetadataService runs.RunMetadataService
	RunRepo            runs.RunRepository
}

// SetupTestServices wires the services against a fresh database of dbType
func SetupTestServices(t *testing.T, dbType string) *ServicesTestContext {
	t.Helper()

	dbCtx := persistence.SetupTestDB(t, dbType)
	logger := testutil.SetupTestLogger(t)

	calculator, err := numeric.NewLeibnizCalculator(logger)
	require.NoError(t, err)

	generator, err := codegen.NewProcedureChainGenerator(logger)
	require.NoError(t, err)

	interp, err := interpreter.NewTreeWalkingInterpreter(logger)
	require.NoError(t, err)

	executionService, err := NewExecutionService(calculator, generator, interp, dbCtx.RunRepo, config.NewDefaultExecutionSettings(), logger)
	require.NoError(t, err)

	runMetadataService, err := NewRunMetadataService(dbCtx.RunRepo, logger)
	require.NoError(t, err)

	return &ServicesTestContext{
		ExecutionService:   executionService,
		RunMetadataService: runMetadataService,
		RunRepo:            dbCtx.RunRepo,
	}
}
