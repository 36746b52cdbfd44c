package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wecode-dev/wecode-server/internal/metrics"
	"github.com/wecode-dev/wecode-server/internal/runner"
)

// ExecHandlers provides the code-execution REST endpoint. Execution is a
// plain request/response exchange with the originating caller; results are
// never broadcast into a room.
type ExecHandlers struct {
	runner  runner.Runner
	metrics *metrics.Metrics
	log     *zerolog.Logger
}

// NewExecHandlers creates a new exec handlers instance.
func NewExecHandlers(run runner.Runner, m *metrics.Metrics, logger *zerolog.Logger) *ExecHandlers {
	return &ExecHandlers{
		runner:  run,
		metrics: m,
		log:     logger,
	}
}

// ExecuteRequest represents the execute request body.
type ExecuteRequest struct {
	Language string `json:"language" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Stdin    string `json:"stdin,omitempty"`
}

// ExecuteResponse represents a completed run.
type ExecuteResponse struct {
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compileOutput,omitempty"`
	Status        string `json:"status"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Execute runs the submitted program on the execution backend.
// POST /api/execute
func (h *ExecHandlers) Execute(c *gin.Context) {
	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid execute request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "language and code are required"})
		return
	}

	res, err := h.runner.Execute(c.Request.Context(), req.Language, req.Code, req.Stdin)
	if err != nil {
		switch {
		case errors.Is(err, runner.ErrUnsupportedLanguage):
			h.metrics.ObserveExecution("unsupported")
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, runner.ErrTimeout):
			h.metrics.ObserveExecution("timeout")
			c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: err.Error()})
		case errors.Is(err, runner.ErrUnavailable):
			h.metrics.ObserveExecution("unavailable")
			h.log.Error().Err(err).Msg("execution backend unavailable")
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: "execution service unavailable"})
		default:
			h.metrics.ObserveExecution("error")
			h.log.Error().Err(err).Msg("execution failed")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		}
		return
	}

	h.metrics.ObserveExecution(res.Status)
	c.JSON(http.StatusOK, ExecuteResponse{
		Stdout:        res.Stdout,
		Stderr:        res.Stderr,
		CompileOutput: res.CompileOutput,
		Status:        res.Status,
	})
}
