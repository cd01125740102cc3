package runs

import (
	"context"
	"io"

	"github.com/MGTheTrain/toypas/internal/domain/program"
)

// ExecutionService runs the bundled tools and records each execution.
type ExecutionService interface {
	// CalculatePi approximates pi with the given number of Leibniz iterations.
	// It returns the approximation and the recorded run.
	CalculatePi(ctx context.Context, iterations int) (float64, *RunMeta, error)

	// GenerateProcedures writes a procedure-chain program with the given exclusive upper bound to w.
	GenerateProcedures(ctx context.Context, upperBound int, w io.Writer) (*RunMeta, error)

	// RunProgram interprets source. Builtin output goes to opts.Stdout.
	RunProgram(ctx context.Context, name, source string, opts program.Options) (*RunMeta, error)

	// StressTest generates a procedure chain and feeds it straight into the interpreter.
	StressTest(ctx context.Context, upperBound int, opts program.Options) (*RunMeta, error)
}

// RunMetadataService defines methods for retrieving and deleting recorded runs.
type RunMetadataService interface {
	// List retrieves recorded runs considering a query filter when set.
	List(ctx context.Context, query *RunMetaQuery) ([]*RunMeta, error)

	// GetByID retrieves a recorded run by ID.
	GetByID(ctx context.Context, runID string) (*RunMeta, error)

	// DeleteByID deletes a recorded run by ID.
	DeleteByID(ctx context.Context, runID string) error
}

// RunRepository defines the interface for RunMeta persistence
type RunRepository interface {
	// Create adds a new RunMeta to the database
	Create(ctx context.Context, run *RunMeta) error
	// List lists RunMetas in the database with optional filter
	List(ctx context.Context, query *RunMetaQuery) ([]*RunMeta, error)
	// GetByID retrieves a RunMeta from the database by ID
	GetByID(ctx context.Context, runID string) (*RunMeta, error)
	// DeleteByID deletes a RunMeta in the database by ID
	DeleteByID(ctx context.Context, runID string) error
}
