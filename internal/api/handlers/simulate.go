package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"minion-profit/internal/api/models"
	"minion-profit/internal/data"
	"minion-profit/internal/model"

	"github.com/gin-gonic/gin"
)

// Simulator runs one task.
type Simulator interface {
	Run(ctx context.Context, t model.Task) (*model.Result, error)
}

// SimulateHandler handles single-setup simulations
type SimulateHandler struct {
	sim Simulator
}

// NewSimulateHandler creates a new simulate handler
func NewSimulateHandler(sim Simulator) *SimulateHandler {
	return &SimulateHandler{sim: sim}
}

// Simulate handles POST /api/v1/simulate
func (h *SimulateHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", err.Error()))
		return
	}

	res, err := h.sim.Run(c.Request.Context(), req.Task)
	if err != nil {
		log.Printf("[API] Simulation of %s failed: %v", req.Task.Key(), err)
		status, body := simulationError(err)
		c.JSON(status, body)
		return
	}
	if !req.IncludeBulk {
		*res = res.WithoutBulk()
	}
	c.JSON(http.StatusOK, res)
}

// simulationError maps the failure taxonomy to a status code.
func simulationError(err error) (int, models.ErrorResponse) {
	var apiErr *data.APIError
	if errors.As(err, &apiErr) {
		statusCode := http.StatusBadGateway
		if apiErr.StatusCode == http.StatusTooManyRequests {
			statusCode = http.StatusTooManyRequests
		}
		return statusCode, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: map[string]interface{}{
					"status_code": apiErr.StatusCode,
					"retry_after": apiErr.RetryAfter,
				},
			},
		}
	}

	reason := model.Reason(err)
	switch reason {
	case model.ReasonConfiguration:
		return http.StatusBadRequest, models.NewError("INVALID_TASK", err.Error())
	case model.ReasonNotFound, model.ReasonPriceUnavailable:
		return http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "PRICE_UNAVAILABLE",
				Message: err.Error(),
				Details: map[string]interface{}{"reason": reason},
			},
		}
	case model.ReasonFetch:
		return http.StatusBadGateway, models.NewError("DATA_FETCH_ERROR", err.Error())
	}
	return http.StatusInternalServerError, models.NewError("SIMULATION_ERROR", err.Error())
}
