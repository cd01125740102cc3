package v1

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MGTheTrain/toypas/internal/domain/pi"
	"github.com/MGTheTrain/toypas/internal/domain/procgen"
	"github.com/MGTheTrain/toypas/internal/domain/program"
	"github.com/MGTheTrain/toypas/internal/domain/runs"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/diag"
	"github.com/MGTheTrain/toypas/internal/pkg/bufutil"

	"github.com/gin-gonic/gin"
)

// MaxResponseOutputBytes caps the program output returned in a response body
const MaxResponseOutputBytes = 1 << 20

// ExecutionHandler defines the interface for running the bundled tools
type ExecutionHandler interface {
	CalculatePi(ctx *gin.Context)
	GenerateProcedures(ctx *gin.Context)
	RunProgram(ctx *gin.Context)
	StressTest(ctx *gin.Context)
}

// executionHandler struct holds the services
type executionHandler struct {
	executionService runs.ExecutionService
	timeout          time.Duration
}

// NewExecutionHandler creates a new ExecutionHandler. Every execution is cancelled after timeout.
func NewExecutionHandler(executionService runs.ExecutionService, timeout time.Duration) ExecutionHandler {
	return &executionHandler{
		executionService: executionService,
		timeout:          timeout,
	}
}

// intQuery reads an integer query parameter, falling back to def when it is absent
func intQuery(ctx *gin.Context, name string, def int) (int, error) {
	raw := ctx.Query(name)
	if len(raw) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query parameter %s must be an integer, got %q", name, raw)
	}
	return n, nil
}

// statusFor maps an execution error to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, runs.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	if _, ok := diag.KindOf(err); ok {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func errorResponseFor(run *runs.RunMeta, err error) ErrorResponse {
	resp := ErrorResponse{Message: err.Error()}
	if run != nil {
		resp.RunID = run.ID
	}
	return resp
}

// CalculatePi handles the GET request approximating pi
// @Summary Approximate pi
// @Description Approximate pi with a fixed number of Leibniz series iterations.
// @Tags Execution
// @Produce json
// @Param iterations query int false "Number of iterations" default(1000000)
// @Success 200 {object} PiResponse
// @Failure 400 {object} ErrorResponse
// @Router /pi [get]
func (handler *executionHandler) CalculatePi(ctx *gin.Context) {
	iterations, err := intQuery(ctx, "iterations", pi.DefaultIterations)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	execCtx, cancel := context.WithTimeout(ctx.Request.Context(), handler.timeout)
	defer cancel()

	value, run, err := handler.executionService.CalculatePi(execCtx, iterations)
	if err != nil {
		ctx.JSON(statusFor(err), errorResponseFor(run, err))
		return
	}

	ctx.JSON(http.StatusOK, PiResponse{
		Iterations: iterations,
		Value:      value,
		Text:       strconv.FormatFloat(value, 'g', -1, 64),
		Run:        NewRunMetaResponse(run),
	})
}

// GenerateProcedures handles the GET request producing a procedure chain program
// @Summary Generate a procedure chain
// @Description Generate a toy-language program whose procedures call each other in a chain.
// @Tags Execution
// @Produce plain
// @Param upperBound query int false "Exclusive upper bound of the chain" default(10000)
// @Success 200 {string} string "Program source"
// @Failure 400 {object} ErrorResponse
// @Router /procedures [get]
func (handler *executionHandler) GenerateProcedures(ctx *gin.Context) {
	upperBound, err := intQuery(ctx, "upperBound", procgen.DefaultUpperBound)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	execCtx, cancel := context.WithTimeout(ctx.Request.Context(), handler.timeout)
	defer cancel()

	var source bytes.Buffer
	run, err := handler.executionService.GenerateProcedures(execCtx, upperBound, &source)
	if err != nil {
		ctx.JSON(statusFor(err), errorResponseFor(run, err))
		return
	}

	ctx.Header("X-Run-ID", run.ID)
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", source.Bytes())
}

// RunProgram handles the POST request interpreting a program
// @Summary Run a toy-language program
// @Description Interpret the submitted source and return everything it printed.
// @Tags Execution
// @Accept json
// @Produce json
// @Param requestBody body RunProgramRequest true "Program"
// @Success 200 {object} ProgramRunResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /programs/run [post]
func (handler *executionHandler) RunProgram(ctx *gin.Context) {
	var request RunProgramRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid program data: %v", err.Error())})
		return
	}
	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	execCtx, cancel := context.WithTimeout(ctx.Request.Context(), handler.timeout)
	defer cancel()

	output := bufutil.NewBoundedBuffer(MaxResponseOutputBytes)
	run, err := handler.executionService.RunProgram(execCtx, request.Name, request.Source, program.Options{
		StaticTypeChecking: request.StaticTypeChecking,
		MaxCallDepth:       request.MaxCallDepth,
		Stdout:             output,
	})
	if err != nil {
		ctx.JSON(statusFor(err), errorResponseFor(run, err))
		return
	}

	ctx.JSON(http.StatusOK, ProgramRunResponse{
		Output:          output.String(),
		OutputTruncated: output.Truncated(),
		Run:             NewRunMetaResponse(run),
	})
}

// StressTest handles the POST request running a generated procedure chain
// @Summary Stress test the interpreter
// @Description Generate a procedure chain and run it through the interpreter.
// @Tags Execution
// @Accept json
// @Produce json
// @Param requestBody body StressTestRequest false "Stress test parameters"
// @Success 200 {object} ProgramRunResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /stress [post]
func (handler *executionHandler) StressTest(ctx *gin.Context) {
	request := StressTestRequest{UpperBound: procgen.DefaultUpperBound}

	if ctx.Request.Body != nil && ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid stress test data: %v", err.Error())})
			return
		}
	}
	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}
	if request.UpperBound == 0 {
		request.UpperBound = procgen.DefaultUpperBound
	}

	execCtx, cancel := context.WithTimeout(ctx.Request.Context(), handler.timeout)
	defer cancel()

	output := bufutil.NewBoundedBuffer(MaxResponseOutputBytes)
	run, err := handler.executionService.StressTest(execCtx, request.UpperBound, program.Options{
		StaticTypeChecking: request.StaticTypeChecking,
		MaxCallDepth:       request.MaxCallDepth,
		Stdout:             output,
	})
	if err != nil {
		ctx.JSON(statusFor(err), errorResponseFor(run, err))
		return
	}

	ctx.JSON(http.StatusOK, ProgramRunResponse{
		Output:          output.String(),
		OutputTruncated: output.Truncated(),
		Run:             NewRunMetaResponse(run),
	})
}
