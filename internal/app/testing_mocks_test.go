//go:build unit
// +build unit

package app

import (
	"context"

	"github.com/MGTheTrain/toypas/internal/domain/runs"

	"github.com/stretchr/testify/mock"
)

// MockRunRepository is a mock implementation of RunRepository
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) Create(ctx context.Context, run *runs.RunMeta) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) List(ctx context.Context, query *runs.RunMetaQuery) ([]*runs.RunMeta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*runs.RunMeta), args.Error(1)
}

func (m *MockRunRepository) GetByID(ctx context.Context, runID string) (*runs.RunMeta, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*runs.RunMeta), args.Error(1)
}

func (m *MockRunRepository) DeleteByID(ctx context.Context, runID string) error {
	args := m.Called(ctx, runID)
	return args.Error(0)
}
