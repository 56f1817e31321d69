package analysis

import (
	"testing"

	"gotest.tools/v3/assert"

	"laes-sim/internal/airprops"
	"laes-sim/internal/config"
)

func TestSweepPreservesOrder(t *testing.T) {
	cfg := config.Default()
	values := []float64{0.80, 0.85, 0.90}

	points, err := Sweep(airprops.New(), &cfg, "hx_effectiveness", values, 2)
	assert.NilError(t, err)
	assert.Equal(t, len(points), len(values))

	for i, pt := range points {
		assert.Equal(t, pt.Value, values[i])
		assert.NilError(t, pt.Err)
		assert.Assert(t, pt.RTEWithCold > 0)
		assert.Assert(t, pt.LiquidYield > 0)
	}

	// Better regeneration means better round-trip efficiency.
	assert.Assert(t, points[2].RTEWithCold > points[0].RTEWithCold)
}

func TestSweepReportsInfeasiblePoints(t *testing.T) {
	cfg := config.Default()

	points, err := Sweep(airprops.New(), &cfg, "hx_effectiveness", []float64{0.9, 1.5}, 1)
	assert.NilError(t, err)
	assert.NilError(t, points[0].Err)
	assert.Assert(t, points[1].Err != nil, "out-of-range value must fail per-point")
	assert.Assert(t, points[1].ErrorMessage != "")
}

func TestSweepUnknownParam(t *testing.T) {
	cfg := config.Default()
	_, err := Sweep(airprops.New(), &cfg, "warp_factor", []float64{1}, 1)
	assert.Assert(t, err != nil)
}

func TestSweepNoValues(t *testing.T) {
	cfg := config.Default()
	_, err := Sweep(airprops.New(), &cfg, "hx_effectiveness", nil, 1)
	assert.Assert(t, err != nil)
}

func TestSweepableParamsSorted(t *testing.T) {
	params := SweepableParams()
	assert.Assert(t, len(params) > 5)
	for i := 1; i < len(params); i++ {
		assert.Assert(t, params[i-1] < params[i], "params must be sorted")
	}
	found := false
	for _, p := range params {
		if p == "hx_effectiveness" {
			found = true
		}
	}
	assert.Assert(t, found)
}

func TestSweepDoesNotMutateBase(t *testing.T) {
	cfg := config.Default()
	before := cfg

	_, err := Sweep(airprops.New(), &cfg, "eta_compressor", []float64{0.7, 0.8}, 2)
	assert.NilError(t, err)
	assert.Equal(t, cfg, before)
}
