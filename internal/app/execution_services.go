package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/MGTheTrain/toypas/internal/domain/pi"
	"github.com/MGTheTrain/toypas/internal/domain/procgen"
	"github.com/MGTheTrain/toypas/internal/domain/program"
	"github.com/MGTheTrain/toypas/internal/domain/runs"
	"github.com/MGTheTrain/toypas/internal/pkg/bufutil"
	"github.com/MGTheTrain/toypas/internal/pkg/config"
	"github.com/MGTheTrain/toypas/internal/pkg/logger"
	"github.com/MGTheTrain/toypas/internal/pkg/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// LeibnizRunName names pi runs in the history
const LeibnizRunName = "leibniz"

// executionService implements the ExecutionService interface
type executionService struct {
	calculator  pi.Calculator
	generator   procgen.Generator
	interpreter program.Interpreter
	// runRepo is optional; runs are only recorded when it is set
	runRepo  runs.RunRepository
	settings config.ExecutionSettings
	logger   logger.Logger
}

// NewExecutionService creates a new instance of ExecutionService
func NewExecutionService(
	calculator pi.Calculator,
	generator procgen.Generator,
	interpreter program.Interpreter,
	runRepo runs.RunRepository,
	settings config.ExecutionSettings,
	logger logger.Logger,
) (runs.ExecutionService, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid execution settings: %w", err)
	}
	return &executionService{
		calculator:  calculator,
		generator:   generator,
		interpreter: interpreter,
		runRepo:     runRepo,
		settings:    settings,
		logger:      logger,
	}, nil
}

func (s *executionService) newRun(kind, name string, parameter int64) *runs.RunMeta {
	return &runs.RunMeta{
		ID:              uuid.NewString(),
		DateTimeCreated: time.Now(),
		Kind:            kind,
		Name:            name,
		Parameter:       parameter,
	}
}

// finish completes run, updates metrics and stores the run when a repository is configured.
// The error of the operation takes precedence over a recording failure.
func (s *executionService) finish(ctx context.Context, run *runs.RunMeta, started time.Time, result string, opErr error) error {
	elapsed := time.Since(started)
	run.Finish(elapsed, result, opErr)
	metrics.ObserveRun(run.Kind, elapsed.Seconds(), opErr)

	if opErr != nil {
		s.logger.Warn(fmt.Sprintf("%s run %s failed after %s: %v", run.Kind, run.ID, elapsed, opErr))
	} else {
		s.logger.Info(fmt.Sprintf("%s run %s succeeded in %s", run.Kind, run.ID, elapsed))
	}

	if s.runRepo == nil {
		return opErr
	}
	// A cancelled request still gets its outcome recorded
	if err := s.runRepo.Create(context.WithoutCancel(ctx), run); err != nil {
		s.logger.Error(fmt.Sprintf("failed to record run %s: %v", run.ID, err))
		if opErr == nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
	}
	return opErr
}

func (s *executionService) programOptions(opts program.Options) program.Options {
	if opts.MaxCallDepth <= 0 || opts.MaxCallDepth > s.settings.MaxCallDepth {
		opts.MaxCallDepth = s.settings.MaxCallDepth
	}
	return opts
}

func (s *executionService) checkUpperBound(upperBound int) error {
	if upperBound < 1 || upperBound > s.settings.MaxUpperBound {
		return fmt.Errorf("%w: upper bound must be between 1 and %d, got %d", runs.ErrInvalidParameter, s.settings.MaxUpperBound, upperBound)
	}
	return nil
}

// CalculatePi approximates pi with the given number of Leibniz iterations.
func (s *executionService) CalculatePi(ctx context.Context, iterations int) (float64, *runs.RunMeta, error) {
	if iterations < 0 || iterations > s.settings.MaxPiIterations {
		return 0, nil, fmt.Errorf("%w: iterations must be between 0 and %d, got %d", runs.ErrInvalidParameter, s.settings.MaxPiIterations, iterations)
	}
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	run := s.newRun(runs.KindPi, LeibnizRunName, int64(iterations))
	started := time.Now()
	value := s.calculator.Approximate(iterations)

	if err := s.finish(ctx, run, started, fmt.Sprint(value), nil); err != nil {
		return value, run, err
	}
	return value, run, nil
}

// GenerateProcedures writes a procedure chain to w.
func (s *executionService) GenerateProcedures(ctx context.Context, upperBound int, w io.Writer) (*runs.RunMeta, error) {
	if err := s.checkUpperBound(upperBound); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run := s.newRun(runs.KindProcGen, fmt.Sprintf("chain-%d", upperBound), int64(upperBound))
	started := time.Now()
	blocks, err := s.generator.Generate(w, upperBound)
	metrics.ProceduresGenerated.Add(float64(blocks))

	result := fmt.Sprintf("%d procedures generated", blocks)
	return run, s.finish(ctx, run, started, result, err)
}

// RunProgram interprets source and records its output.
func (s *executionService) RunProgram(ctx context.Context, name, source string, opts program.Options) (*runs.RunMeta, error) {
	if len(source) > s.settings.MaxSourceBytes {
		return nil, fmt.Errorf("%w: source of %d bytes exceeds the limit of %d bytes", runs.ErrInvalidParameter, len(source), s.settings.MaxSourceBytes)
	}
	if name == "" {
		name = "inline"
	}

	run := s.newRun(runs.KindProgram, name, int64(len(source)))
	output := bufutil.NewBoundedBuffer(runs.MaxResultBytes)
	opts = s.programOptions(opts)
	if opts.Stdout != nil {
		opts.Stdout = io.MultiWriter(opts.Stdout, output)
	} else {
		opts.Stdout = output
	}

	started := time.Now()
	metrics.SourceBytesInterpreted.Add(float64(len(source)))
	_, err := s.interpreter.Run(ctx, source, opts)

	return run, s.finish(ctx, run, started, output.String(), err)
}

// StressTest streams a generated procedure chain into the interpreter.
func (s *executionService) StressTest(ctx context.Context, upperBound int, opts program.Options) (*runs.RunMeta, error) {
	if err := s.checkUpperBound(upperBound); err != nil {
		return nil, err
	}

	run := s.newRun(runs.KindStress, fmt.Sprintf("stress-%d", upperBound), int64(upperBound))
	output := bufutil.NewBoundedBuffer(runs.MaxResultBytes)
	opts = s.programOptions(opts)
	if opts.Stdout != nil {
		opts.Stdout = io.MultiWriter(opts.Stdout, output)
	} else {
		opts.Stdout = output
	}

	started := time.Now()
	pr, pw := io.Pipe()
	g, gctx := errgroup.WithContext(ctx)

	var blocks int
	g.Go(func() error {
		n, err := s.generator.Generate(pw, upperBound)
		blocks = n
		pw.CloseWithError(err)
		return err
	})

	var result *program.Result
	g.Go(func() error {
		src, err := io.ReadAll(pr)
		if err != nil {
			return fmt.Errorf("failed to read generated program: %w", err)
		}
		metrics.SourceBytesInterpreted.Add(float64(len(src)))
		result, err = s.interpreter.Run(gctx, string(src), opts)
		return err
	})

	err := g.Wait()
	metrics.ProceduresGenerated.Add(float64(blocks))
	if err == nil && result != nil {
		s.logger.Debug(fmt.Sprintf("Stress program %s declared %d procedures", result.ProgramName, result.Procedures))
	}

	return run, s.finish(ctx, run, started, output.String(), err)
}
