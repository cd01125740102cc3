package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MGTheTrain/toypas/internal/domain/runs"

	"github.com/gin-gonic/gin"
)

// RunHandler defines the interface for handling run history operations
type RunHandler interface {
	ListMetadata(ctx *gin.Context)
	GetMetadataByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

// runHandler struct holds the services
type runHandler struct {
	runMetadataService runs.RunMetadataService
}

// NewRunHandler creates a new RunHandler
func NewRunHandler(runMetadataService runs.RunMetadataService) RunHandler {
	return &runHandler{
		runMetadataService: runMetadataService,
	}
}

// ListMetadata handles the GET request to list recorded runs
// @Summary List recorded runs
// @Description Fetch recorded runs, optionally filtered by kind, status, name and creation date.
// @Tags Run
// @Produce json
// @Param kind query string false "Run kind"
// @Param status query string false "Run status"
// @Param name query string false "Run name"
// @Param dateTimeCreated query string false "Runs created since (RFC3339)"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Param sortBy query string false "Sort by"
// @Param sortOrder query string false "Sort order"
// @Success 200 {array} RunMetaResponse
// @Failure 400 {object} ErrorResponse
// @Router /runs [get]
func (handler *runHandler) ListMetadata(ctx *gin.Context) {
	query := runs.NewRunMetaQuery()

	if kind := ctx.Query("kind"); len(kind) > 0 {
		query.Kind = kind
	}

	if status := ctx.Query("status"); len(status) > 0 {
		query.Status = status
	}

	if name := ctx.Query("name"); len(name) > 0 {
		query.Name = name
	}

	if dateTimeCreated := ctx.Query("dateTimeCreated"); len(dateTimeCreated) > 0 {
		parsedTime, err := time.Parse(time.RFC3339, dateTimeCreated)
		if err == nil {
			query.DateTimeCreated = parsedTime
		}
	}

	var err error
	if query.Limit, err = intQuery(ctx, "limit", 0); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}
	if query.Offset, err = intQuery(ctx, "offset", 0); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("validation failed: %v", err.Error())})
		return
	}

	runMetas, err := handler.runMetadataService.List(ctx, query)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("list query failed: %v", err.Error())})
		return
	}

	var listResponse = []RunMetaResponse{}
	for _, runMeta := range runMetas {
		listResponse = append(listResponse, NewRunMetaResponse(runMeta))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetMetadataByID handles the GET request to retrieve a recorded run by ID
// @Summary Retrieve a recorded run by ID
// @Tags Run
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} RunMetaResponse
// @Failure 404 {object} ErrorResponse
// @Router /runs/{id} [get]
func (handler *runHandler) GetMetadataByID(ctx *gin.Context) {
	runID := ctx.Param("id")

	runMeta, err := handler.runMetadataService.GetByID(ctx, runID)
	if err != nil {
		if errors.Is(err, runs.ErrRunNotFound) {
			ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("run with id %s not found", runID)})
			return
		}
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, NewRunMetaResponse(runMeta))
}

// DeleteByID handles the DELETE request to delete a recorded run by ID
// @Summary Delete a recorded run by ID
// @Tags Run
// @Param id path string true "Run ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /runs/{id} [delete]
func (handler *runHandler) DeleteByID(ctx *gin.Context) {
	runID := ctx.Param("id")

	if err := handler.runMetadataService.DeleteByID(ctx, runID); err != nil {
		if errors.Is(err, runs.ErrRunNotFound) {
			ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("run with id %s not found", runID)})
			return
		}
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
		return
	}

	ctx.Status(http.StatusNoContent)
	ctx.Writer.WriteHeaderNow()
}
