package app

import (
	"context"
	"fmt"

	"github.com/MGTheTrain/toypas/internal/domain/runs"
	"github.com/MGTheTrain/toypas/internal/pkg/logger"
)

// runMetadataService implements the RunMetadataService interface for listing and deleting recorded runs
type runMetadataService struct {
	runRepo runs.RunRepository
	logger  logger.Logger
}

// NewRunMetadataService creates a new RunMetadataService instance
func NewRunMetadataService(runRepo runs.RunRepository, logger logger.Logger) (runs.RunMetadataService, error) {
	if runRepo == nil {
		return nil, fmt.Errorf("run repository cannot be nil")
	}
	return &runMetadataService{
		runRepo: runRepo,
		logger:  logger,
	}, nil
}

// List retrieves recorded runs matching query
func (s *runMetadataService) List(ctx context.Context, query *runs.RunMetaQuery) ([]*runs.RunMeta, error) {
	list, err := s.runRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return list, nil
}

// GetByID retrieves a recorded run by its ID
func (s *runMetadataService) GetByID(ctx context.Context, runID string) (*runs.RunMeta, error) {
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve run: %w", err)
	}
	return run, nil
}

// DeleteByID deletes a recorded run by its ID
func (s *runMetadataService) DeleteByID(ctx context.Context, runID string) error {
	if err := s.runRepo.DeleteByID(ctx, runID); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	s.logger.Info("Deleted run ", runID)
	return nil
}
