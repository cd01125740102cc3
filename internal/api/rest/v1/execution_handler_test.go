//go:build unit
// +build unit

package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MGTheTrain/toypas/internal/domain/pi"
	"github.com/MGTheTrain/toypas/internal/domain/procgen"
	"github.com/MGTheTrain/toypas/internal/domain/program"
	"github.com/MGTheTrain/toypas/internal/domain/runs"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/diag"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRun(kind string) *runs.RunMeta {
	return &runs.RunMeta{
		ID:     "3f1e2d4c-8a6b-4c1d-9e2f-0a1b2c3d4e5f",
		Kind:   kind,
		Name:   "test",
		Status: runs.StatusSucceeded,
	}
}

func performRequest(handler gin.HandlerFunc, method, target string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, body)
	handler(c)
	return w
}

func TestExecutionHandler_CalculatePi_Default(t *testing.T) {
	mockService := new(MockExecutionService)
	handler := NewExecutionHandler(mockService, time.Second)

	mockService.On("CalculatePi", mock.Anything, pi.DefaultIterations).
		Return(3.1415916535897743, newTestRun(runs.KindPi), nil)

	w := performRequest(handler.CalculatePi, http.MethodGet, "/pi", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp PiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "3.1415916535897743", resp.Text)
	assert.Equal(t, pi.DefaultIterations, resp.Iterations)
	mockService.AssertExpectations(t)
}

func TestExecutionHandler_CalculatePi_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		serviceErr error
		wantStatus int
	}{
		{"Not an integer", "/pi?iterations=abc", nil, http.StatusBadRequest},
		{"Out of range", "/pi?iterations=-1", fmt.Errorf("%w: negative", runs.ErrInvalidParameter), http.StatusBadRequest},
		{"Timed out", "/pi?iterations=5", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"Unexpected", "/pi?iterations=5", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockExecutionService)
			handler := NewExecutionHandler(mockService, time.Second)
			if tt.serviceErr != nil {
				mockService.On("CalculatePi", mock.Anything, mock.Anything).Return(0.0, nil, tt.serviceErr)
			}

			w := performRequest(handler.CalculatePi, http.MethodGet, tt.target, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), "message")
			mockService.AssertExpectations(t)
		})
	}
}

func TestExecutionHandler_GenerateProcedures(t *testing.T) {
	mockService := new(MockExecutionService)
	handler := NewExecutionHandler(mockService, time.Second)

	mockService.On("GenerateProcedures", mock.Anything, 3, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = args.Get(2).(io.Writer).Write([]byte("program Main;"))
		}).
		Return(newTestRun(runs.KindProcGen), nil)

	w := performRequest(handler.GenerateProcedures, http.MethodGet, "/procedures?upperBound=3", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "program Main;", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.NotEmpty(t, w.Header().Get("X-Run-ID"))
	mockService.AssertExpectations(t)
}

func TestExecutionHandler_GenerateProcedures_DefaultBound(t *testing.T) {
	mockService := new(MockExecutionService)
	handler := NewExecutionHandler(mockService, time.Second)

	mockService.On("GenerateProcedures", mock.Anything, procgen.DefaultUpperBound, mock.Anything).
		Return(newTestRun(runs.KindProcGen), nil)

	w := performRequest(handler.GenerateProcedures, http.MethodGet, "/procedures", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestExecutionHandler_RunProgram(t *testing.T) {
	mockService := new(MockExecutionService)
	handler := NewExecutionHandler(mockService, time.Second)

	mockService.On("RunProgram", mock.Anything, "hello", "program Hello; begin end.", mock.MatchedBy(func(opts program.Options) bool {
		return opts.StaticTypeChecking && opts.Stdout != nil
	})).
		Run(func(args mock.Arguments) {
			opts := args.Get(3).(program.Options)
			_, _ = opts.Stdout.Write([]byte("Hello World\n"))
		}).
		Return(newTestRun(runs.KindProgram), nil)

	body := bytes.NewBufferString(`{"name":"hello","source":"program Hello; begin end.","staticTypeChecking":true}`)
	w := performRequest(handler.RunProgram, http.MethodPost, "/programs/run", body)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ProgramRunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Hello World\n", resp.Output)
	mockService.AssertExpectations(t)
}

func TestExecutionHandler_RunProgram_Errors(t *testing.T) {
	failed := newTestRun(runs.KindProgram)
	failed.Status = runs.StatusFailed

	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantRunID  bool
	}{
		{"Malformed JSON", `{"source":`, nil, http.StatusBadRequest, false},
		{"Missing source", `{"name":"p"}`, nil, http.StatusBadRequest, false},
		{"Program rejected", `{"source":"program P; begin x := 1 end."}`, diag.Semanticf(1, "symbol not found for variable X"), http.StatusUnprocessableEntity, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockExecutionService)
			handler := NewExecutionHandler(mockService, time.Second)
			if tt.serviceErr != nil {
				mockService.On("RunProgram", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(failed, tt.serviceErr)
			}

			w := performRequest(handler.RunProgram, http.MethodPost, "/programs/run", bytes.NewBufferString(tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Message)
			assert.Equal(t, tt.wantRunID, resp.RunID != "")
			mockService.AssertExpectations(t)
		})
	}
}

func TestExecutionHandler_StressTest(t *testing.T) {
	tests := []struct {
		name      string
		body      io.Reader
		wantBound int
	}{
		{"No body", nil, procgen.DefaultUpperBound},
		{"Explicit bound", bytes.NewBufferString(`{"upperBound":42}`), 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockExecutionService)
			handler := NewExecutionHandler(mockService, time.Second)
			mockService.On("StressTest", mock.Anything, tt.wantBound, mock.Anything).Return(newTestRun(runs.KindStress), nil)

			w := performRequest(handler.StressTest, http.MethodPost, "/stress", tt.body)

			assert.Equal(t, http.StatusOK, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestExecutionHandler_StressTest_InvalidBound(t *testing.T) {
	mockService := new(MockExecutionService)
	handler := NewExecutionHandler(mockService, time.Second)

	w := performRequest(handler.StressTest, http.MethodPost, "/stress", bytes.NewBufferString(`{"upperBound":-1}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "StressTest", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecutionHandler_RunProgram_OutputCapped(t *testing.T) {
	mockService := new(MockExecutionService)
	handler := NewExecutionHandler(mockService, time.Second)

	mockService.On("RunProgram", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			opts := args.Get(3).(program.Options)
			chunk := bytes.Repeat([]byte("x"), 4096)
			for written := 0; written <= MaxResponseOutputBytes; written += len(chunk) {
				n, err := opts.Stdout.Write(chunk)
				require.NoError(t, err)
				require.Equal(t, len(chunk), n)
			}
		}).
		Return(newTestRun(runs.KindProgram), nil)

	body := bytes.NewBufferString(`{"source":"program P; begin while (1) do print(\"x\") end."}`)
	w := performRequest(handler.RunProgram, http.MethodPost, "/programs/run", body)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ProgramRunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Output, MaxResponseOutputBytes)
	assert.True(t, resp.OutputTruncated)
	mockService.AssertExpectations(t)
}

func TestExecutionHandler_StressTest_OutputNotTruncated(t *testing.T) {
	mockService := new(MockExecutionService)
	handler := NewExecutionHandler(mockService, time.Second)

	mockService.On("StressTest", mock.Anything, procgen.DefaultUpperBound, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = args.Get(2).(program.Options).Stdout.Write([]byte("5.000000\n"))
		}).
		Return(newTestRun(runs.KindStress), nil)

	w := performRequest(handler.StressTest, http.MethodPost, "/stress", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ProgramRunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "5.000000\n", resp.Output)
	assert.False(t, resp.OutputTruncated)
}
