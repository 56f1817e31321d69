package handlers

import (
	"net/http"

	"laes-sim/internal/airprops"
	"laes-sim/internal/api/models"
	"laes-sim/internal/thermo"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CycleHandler serves the steady-state cycle endpoints.
type CycleHandler struct {
	air airprops.Provider
}

func NewCycleHandler(air airprops.Provider) *CycleHandler {
	return &CycleHandler{air: air}
}

// RunRTE handles POST /api/v1/rte.
func (h *CycleHandler) RunRTE(c *gin.Context) {
	var req models.RTERequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	cfg, err := buildConfig(req.Config)
	if err != nil {
		badRequest(c, "INVALID_CONFIG", err)
		return
	}

	result, err := thermo.RTE(h.air, cfg)
	if err != nil {
		badRequest(c, "CYCLE_ERROR", err)
		return
	}
	// Zero yield means infinite specific consumption, which has no JSON
	// representation. Report the operating point instead.
	if result.LiquefactionNoCold.LiquidYield <= 0 || result.LiquefactionWithCold.LiquidYield <= 0 {
		errJSON(c, http.StatusUnprocessableEntity, "INFEASIBLE_OPERATING_POINT",
			"liquefaction cycle produces no liquid at this operating point; see warnings in logs")
		return
	}

	c.JSON(http.StatusOK, models.RTEResponse{
		ID:     uuid.NewString(),
		Status: "completed",
		Result: result,
	})
}
