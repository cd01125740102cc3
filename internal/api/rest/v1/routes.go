package v1

import (
	"time"

	"github.com/MGTheTrain/toypas/internal/domain/runs"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	executionService runs.ExecutionService,
	runMetadataService runs.RunMetadataService,
	executionTimeout time.Duration) {

	v1 := r.Group(BasePath) // lookup in version file

	// Execution Routes
	executionHandler := NewExecutionHandler(executionService, executionTimeout)
	v1.GET("/pi", executionHandler.CalculatePi)
	v1.GET("/procedures", executionHandler.GenerateProcedures)
	v1.POST("/programs/run", executionHandler.RunProgram)
	v1.POST("/stress", executionHandler.StressTest)

	// Runs Routes
	runHandler := NewRunHandler(runMetadataService)
	v1.GET("/runs", runHandler.ListMetadata)
	v1.GET("/runs/:id", runHandler.GetMetadataByID)
	v1.DELETE("/runs/:id", runHandler.DeleteByID)
}
