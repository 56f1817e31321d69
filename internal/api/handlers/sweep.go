package handlers

import (
	"fmt"
	"net/http"
	"runtime"

	"laes-sim/internal/airprops"
	"laes-sim/internal/analysis"
	"laes-sim/internal/api/models"
	"laes-sim/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxSweepSteps = 200

// SweepHandler serves parameter sweeps.
type SweepHandler struct {
	air airprops.Provider
}

func NewSweepHandler(air airprops.Provider) *SweepHandler {
	return &SweepHandler{air: air}
}

// RunSweep handles GET /api/v1/sweep.
func (h *SweepHandler) RunSweep(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	steps := req.Steps
	if steps == 0 {
		steps = 10
	}
	if steps < 2 || steps > maxSweepSteps {
		errJSON(c, http.StatusBadRequest, "INVALID_REQUEST",
			fmt.Sprintf("steps must be in [2, %d]", maxSweepSteps))
		return
	}

	values := make([]float64, steps)
	for i := range values {
		values[i] = req.From + (req.To-req.From)*float64(i)/float64(steps-1)
	}

	base := config.Default()
	points, err := analysis.Sweep(h.air, &base, req.Param, values, runtime.NumCPU())
	if err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	c.JSON(http.StatusOK, models.SweepResponse{
		ID:     uuid.NewString(),
		Status: "completed",
		Param:  req.Param,
		Points: points,
	})
}
