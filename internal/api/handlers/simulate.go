package handlers

import (
	"net/http"

	"laes-sim/internal/airprops"
	"laes-sim/internal/api/models"
	"laes-sim/internal/sim"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SimulateHandler serves the transient simulation endpoint.
type SimulateHandler struct {
	air airprops.Provider
}

func NewSimulateHandler(air airprops.Provider) *SimulateHandler {
	return &SimulateHandler{air: air}
}

// RunSimulation handles POST /api/v1/simulate.
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	cfg, err := buildConfig(req.Config)
	if err != nil {
		badRequest(c, "INVALID_CONFIG", err)
		return
	}

	schedule, err := resolveSchedule(req)
	if err != nil {
		badRequest(c, "INVALID_SCHEDULE", err)
		return
	}

	dtHours := req.DtHours
	if dtHours == 0 {
		dtHours = 1
	}
	initialTankPct := req.InitialTankPct
	if initialTankPct == 0 {
		initialTankPct = sim.DefaultInitialTankPct
	}

	simulator, err := sim.New(h.air, cfg)
	if err != nil {
		errJSON(c, http.StatusUnprocessableEntity, "INFEASIBLE_OPERATING_POINT", err.Error())
		return
	}
	result, err := simulator.Run(c.Request.Context(), schedule, dtHours, initialTankPct)
	if err != nil {
		badRequest(c, "SIMULATION_ERROR", err)
		return
	}

	resp := models.SimulateResponse{
		ID:     uuid.NewString(),
		Status: "completed",
		Result: result,
	}
	if req.IncludeHistory {
		resp.History = simulator.History()
	}
	c.JSON(http.StatusOK, resp)
}

func resolveSchedule(req models.SimulateRequest) (sim.Schedule, error) {
	if len(req.Schedule) > 0 {
		schedule := make(sim.Schedule, 0, len(req.Schedule))
		for _, ph := range req.Schedule {
			mode, err := sim.ParseMode(ph.Mode)
			if err != nil {
				return nil, err
			}
			schedule = append(schedule, sim.Phase{Mode: mode, DurationHours: ph.DurationHours})
		}
		return schedule, schedule.Validate()
	}

	name := req.ScheduleName
	if name == "" {
		name = "default"
	}
	schedule, ok := sim.PredefinedSchedule(name)
	if !ok {
		return nil, unknownScheduleError(name)
	}
	return schedule, nil
}

type unknownScheduleError string

func (e unknownScheduleError) Error() string {
	return "unknown schedule " + string(e)
}
