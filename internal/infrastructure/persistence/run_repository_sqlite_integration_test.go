//go:build integration
// +build integration

package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MGTheTrain/toypas/internal/domain/runs"
	"github.com/MGTheTrain/toypas/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/toypas/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSqliteRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	run := CreateTestRun(t, runs.KindPi, "leibniz")

	err := ctx.RunRepo.Create(context.Background(), run)
	require.NoError(t, err)

	var created models.RunModel
	err = ctx.DB.First(&created, "id = ?", run.ID).Error
	require.NoError(t, err)
	assert.Equal(t, run.ID, created.ID)
	assert.Equal(t, run.Kind, created.Kind)
	assert.Equal(t, int64(time.Millisecond), created.Duration)
}

func TestRunSqliteRepository_GetByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	msg := "Semantic error on line 1: duplicate identifier X"
	run := CreateTestRun(t, runs.KindProgram, "dup.pas")
	run.Finish(3*time.Millisecond, "", errors.New(msg))

	require.NoError(t, ctx.RunRepo.Create(context.Background(), run))

	fetched, err := ctx.RunRepo.GetByID(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, fetched.ID)
	assert.Equal(t, runs.StatusFailed, fetched.Status)
	require.NotNil(t, fetched.ErrorMessage)
	assert.Equal(t, msg, *fetched.ErrorMessage)
	assert.Equal(t, 3*time.Millisecond, fetched.Duration)
}

func TestRunRepository_Create_InvalidRun(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	err := ctx.RunRepo.Create(context.Background(), &runs.RunMeta{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestRunRepository_GetByID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.RunRepo.GetByID(context.Background(), "non-existent-id")
	require.Error(t, err)
	assert.True(t, errors.Is(err, runs.ErrRunNotFound))
}

func TestRunRepository_List_WithFilters(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	base := time.Now().Add(-time.Hour)
	for i, kind := range []string{runs.KindPi, runs.KindProcGen, runs.KindPi, runs.KindStress} {
		run := CreateTestRun(t, kind, "")
		run.DateTimeCreated = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, ctx.RunRepo.Create(context.Background(), run))
	}

	all, err := ctx.RunRepo.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, runs.KindStress, all[0].Kind, "newest run comes first")

	query := runs.NewRunMetaQuery()
	query.Kind = runs.KindPi
	pis, err := ctx.RunRepo.List(context.Background(), query)
	require.NoError(t, err)
	assert.Len(t, pis, 2)

	query = runs.NewRunMetaQuery()
	query.Limit = 1
	query.Offset = 1
	page, err := ctx.RunRepo.List(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, runs.KindPi, page[0].Kind)
}

func TestRunRepository_List_InvalidQuery(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.RunRepo.List(context.Background(), &runs.RunMetaQuery{SortBy: "id; DROP TABLE runs"})
	assert.Error(t, err)
}

func TestRunRepository_DeleteByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	run := CreateTestRun(t, runs.KindProcGen, "chain")
	require.NoError(t, ctx.RunRepo.Create(context.Background(), run))

	require.NoError(t, ctx.RunRepo.DeleteByID(context.Background(), run.ID))

	_, err := ctx.RunRepo.GetByID(context.Background(), run.ID)
	assert.True(t, errors.Is(err, runs.ErrRunNotFound))

	err = ctx.RunRepo.DeleteByID(context.Background(), run.ID)
	assert.True(t, errors.Is(err, runs.ErrRunNotFound))
}
