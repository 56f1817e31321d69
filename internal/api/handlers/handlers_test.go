package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gotest.tools/v3/assert"

	"laes-sim/internal/airprops"
	"laes-sim/internal/api/models"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	air := airprops.New()

	api := r.Group("/api/v1")
	api.POST("/rte", NewCycleHandler(air).RunRTE)
	api.POST("/simulate", NewSimulateHandler(air).RunSimulation)
	api.POST("/economics", NewEconomicsHandler(air).RunEconomics)
	api.GET("/sweep", NewSweepHandler(air).RunSweep)
	api.GET("/schedules", ListSchedules)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRTEEndpoint(t *testing.T) {
	r := testRouter()
	w := doJSON(t, r, http.MethodPost, "/api/v1/rte", `{}`)
	assert.Equal(t, w.Code, http.StatusOK)

	var resp models.RTEResponse
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, resp.Status, "completed")
	assert.Assert(t, resp.ID != "")
	assert.Assert(t, resp.Result.RTEWithCold > 0 && resp.Result.RTEWithCold < 1)
}

func TestRTEEndpointWithOverride(t *testing.T) {
	r := testRouter()
	w := doJSON(t, r, http.MethodPost, "/api/v1/rte", `{"config":{"eta_compressor":0.9}}`)
	assert.Equal(t, w.Code, http.StatusOK)
}

func TestRTEEndpointRejectsInvalidConfig(t *testing.T) {
	r := testRouter()
	w := doJSON(t, r, http.MethodPost, "/api/v1/rte", `{"config":{"eta_compressor":2}}`)
	assert.Equal(t, w.Code, http.StatusBadRequest)

	var resp models.ErrorResponse
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, resp.Error.Code, "INVALID_CONFIG")
}

func TestRTEEndpointInfeasiblePoint(t *testing.T) {
	r := testRouter()
	// Regeneration too weak to reach the two-phase dome.
	w := doJSON(t, r, http.MethodPost, "/api/v1/rte", `{"config":{"hx_effectiveness":0.5}}`)
	assert.Equal(t, w.Code, http.StatusUnprocessableEntity)

	var resp models.ErrorResponse
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, resp.Error.Code, "INFEASIBLE_OPERATING_POINT")
}

func TestSimulateEndpoint(t *testing.T) {
	r := testRouter()
	body := `{"schedule_name":"default","dt_hours":1,"include_history":true}`
	w := doJSON(t, r, http.MethodPost, "/api/v1/simulate", body)
	assert.Equal(t, w.Code, http.StatusOK)

	var resp models.SimulateResponse
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, resp.Status, "completed")
	assert.Equal(t, len(resp.History), 24)
	assert.Assert(t, resp.Result.TotalEnergyInKWh > 0)
	assert.Assert(t, resp.Result.TotalEnergyOutKWh < resp.Result.TotalEnergyInKWh)
}

func TestSimulateEndpointExplicitSchedule(t *testing.T) {
	r := testRouter()
	body := `{"schedule":[{"mode":"charge","duration_hours":4},{"mode":"discharge","duration_hours":2}]}`
	w := doJSON(t, r, http.MethodPost, "/api/v1/simulate", body)
	assert.Equal(t, w.Code, http.StatusOK)
}

func TestSimulateEndpointUnknownSchedule(t *testing.T) {
	r := testRouter()
	w := doJSON(t, r, http.MethodPost, "/api/v1/simulate", `{"schedule_name":"lunch_break"}`)
	assert.Equal(t, w.Code, http.StatusBadRequest)

	var resp models.ErrorResponse
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, resp.Error.Code, "INVALID_SCHEDULE")
}

func TestEconomicsEndpoint(t *testing.T) {
	r := testRouter()
	w := doJSON(t, r, http.MethodPost, "/api/v1/economics", `{}`)
	assert.Equal(t, w.Code, http.StatusOK)

	var resp models.EconomicsResponse
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Assert(t, resp.Result.CAPEX.Total > 0)
}

func TestSweepEndpoint(t *testing.T) {
	r := testRouter()
	w := doJSON(t, r, http.MethodGet,
		"/api/v1/sweep?param=hx_effectiveness&from=0.85&to=0.95&steps=3", "")
	assert.Equal(t, w.Code, http.StatusOK)

	var resp models.SweepResponse
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, len(resp.Points), 3)
	assert.Equal(t, resp.Points[0].Value, 0.85)
	assert.Equal(t, resp.Points[2].Value, 0.95)
}

func TestSweepEndpointUnknownParam(t *testing.T) {
	r := testRouter()
	w := doJSON(t, r, http.MethodGet, "/api/v1/sweep?param=warp_factor&from=0&to=1", "")
	assert.Equal(t, w.Code, http.StatusBadRequest)
}

func TestSchedulesEndpoint(t *testing.T) {
	r := testRouter()
	w := doJSON(t, r, http.MethodGet, "/api/v1/schedules", "")
	assert.Equal(t, w.Code, http.StatusOK)

	var resp models.SchedulesResponse
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, len(resp.Schedules), 3)
}
