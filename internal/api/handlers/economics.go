package handlers

import (
	"net/http"

	"laes-sim/internal/airprops"
	"laes-sim/internal/api/models"
	"laes-sim/internal/econ"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EconomicsHandler serves the economic analysis endpoint.
type EconomicsHandler struct {
	air airprops.Provider
}

func NewEconomicsHandler(air airprops.Provider) *EconomicsHandler {
	return &EconomicsHandler{air: air}
}

// RunEconomics handles POST /api/v1/economics.
func (h *EconomicsHandler) RunEconomics(c *gin.Context) {
	var req models.EconomicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	cfg, err := buildConfig(req.Config)
	if err != nil {
		badRequest(c, "INVALID_CONFIG", err)
		return
	}

	result, err := econ.Compute(h.air, cfg)
	if err != nil {
		badRequest(c, "CYCLE_ERROR", err)
		return
	}

	c.JSON(http.StatusOK, models.EconomicsResponse{
		ID:     uuid.NewString(),
		Status: "completed",
		Result: result,
	})
}
