package models

import (
	"laes-sim/internal/analysis"
	"laes-sim/internal/econ"
	"laes-sim/internal/sim"
	"laes-sim/internal/thermo"
)

// RTEResponse wraps the coupled-cycle solution.
type RTEResponse struct {
	ID     string           `json:"id"`
	Status string           `json:"status"`
	Result thermo.RTEResult `json:"result"`
}

// SimulateResponse wraps a schedule run. History is included only on
// request.
type SimulateResponse struct {
	ID      string               `json:"id"`
	Status  string               `json:"status"`
	Result  sim.Result           `json:"result"`
	History []sim.TimeStepRecord `json:"history,omitempty"`
}

// EconomicsResponse wraps the economic analysis.
type EconomicsResponse struct {
	ID     string        `json:"id"`
	Status string        `json:"status"`
	Result econ.Analysis `json:"result"`
}

// SweepResponse wraps a parameter sweep.
type SweepResponse struct {
	ID     string                `json:"id"`
	Status string                `json:"status"`
	Param  string                `json:"param"`
	Points []analysis.SweepPoint `json:"points"`
}

// ScheduleInfo describes one predefined schedule.
type ScheduleInfo struct {
	Name       string      `json:"name"`
	TotalHours float64     `json:"total_hours"`
	Phases     []sim.Phase `json:"phases"`
}

// SchedulesResponse lists the predefined schedules.
type SchedulesResponse struct {
	Schedules []ScheduleInfo `json:"schedules"`
}

// ErrorResponse is the error envelope for all endpoints.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
