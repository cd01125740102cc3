//go:build unit
// +build unit

package v1

import (
	"context"
	"io"

	"github.com/MGTheTrain/toypas/internal/domain/program"
	"github.com/MGTheTrain/toypas/internal/domain/runs"

	"github.com/stretchr/testify/mock"
)

// MockExecutionService is a mock implementation of ExecutionService
type MockExecutionService struct {
	mock.Mock
}

func (m *MockExecutionService) CalculatePi(ctx context.Context, iterations int) (float64, *runs.RunMeta, error) {
	args := m.Called(ctx, iterations)
	if args.Get(1) == nil {
		return args.Get(0).(float64), nil, args.Error(2)
	}
	return args.Get(0).(float64), args.Get(1).(*runs.RunMeta), args.Error(2)
}

func (m *MockExecutionService) GenerateProcedures(ctx context.Context, upperBound int, w io.Writer) (*runs.RunMeta, error) {
	args := m.Called(ctx, upperBound, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*runs.RunMeta), args.Error(1)
}

func (m *MockExecutionService) RunProgram(ctx context.Context, name, source string, opts program.Options) (*runs.RunMeta, error) {
	args := m.Called(ctx, name, source, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*runs.RunMeta), args.Error(1)
}

func (m *MockExecutionService) StressTest(ctx context.Context, upperBound int, opts program.Options) (*runs.RunMeta, error) {
	args := m.Called(ctx, upperBound, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*runs.RunMeta), args.Error(1)
}

// MockRunMetadataService is a mock implementation of RunMetadataService
type MockRunMetadataService struct {
	mock.Mock
}

func (m *MockRunMetadataService) List(ctx context.Context, query *runs.RunMetaQuery) ([]*runs.RunMeta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*runs.RunMeta), args.Error(1)
}

func (m *MockRunMetadataService) GetByID(ctx context.Context, runID string) (*runs.RunMeta, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*runs.RunMeta), args.Error(1)
}

func (m *MockRunMetadataService) DeleteByID(ctx context.Context, runID string) error {
	args := m.Called(ctx, runID)
	return args.Error(0)
}
