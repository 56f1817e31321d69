package sim

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"laes-sim/internal/airprops"
	"laes-sim/internal/config"
)

func newSimulator(t *testing.T) *Simulator {
	t.Helper()
	cfg := config.Default()
	s, err := New(airprops.New(), &cfg)
	assert.NilError(t, err)
	return s
}

func TestRunRecordCount(t *testing.T) {
	s := newSimulator(t)
	schedule := Schedule{{ModeCharge, 8}, {ModeDischarge, 4}}

	res, err := s.Run(context.Background(), schedule, 1, 50)
	assert.NilError(t, err)

	history := s.History()
	assert.Equal(t, len(history), 12)
	for i, rec := range history {
		assert.Equal(t, rec.TimeHours, float64(i))
	}
	assert.Equal(t, history[0].Mode, ModeCharge)
	assert.Equal(t, history[11].Mode, ModeDischarge)

	// 8 h at full charge power.
	cfg := config.Default()
	assert.Equal(t, res.TotalEnergyInKWh, cfg.ChargePowerKW()*8)
}

func TestRunEnergyBalance(t *testing.T) {
	s := newSimulator(t)
	schedule, _ := PredefinedSchedule("default")

	res, err := s.Run(context.Background(), schedule, 1, 50)
	assert.NilError(t, err)

	assert.Assert(t, res.TotalEnergyInKWh > 0)
	assert.Assert(t, res.TotalEnergyOutKWh > 0)
	assert.Assert(t, res.TotalEnergyOutKWh < res.TotalEnergyInKWh)
	assert.Assert(t, res.RoundTripEfficiency > 0 && res.RoundTripEfficiency < 1)

	assert.Assert(t, res.TotalLiquidProducedKg > 0)
	assert.Assert(t, res.TotalLiquidConsumedKg > 0)
	assert.Assert(t, res.TotalBoiloffKg > 0)
	assert.Assert(t, res.FinalTankLevelPct >= 0 && res.FinalTankLevelPct <= 100)
}

func TestIdleOnlyAccruesLosses(t *testing.T) {
	s := newSimulator(t)
	schedule := Schedule{{ModeIdle, 24}}

	res, err := s.Run(context.Background(), schedule, 1, 50)
	assert.NilError(t, err)

	assert.Equal(t, res.TotalEnergyInKWh, 0.0)
	assert.Equal(t, res.TotalEnergyOutKWh, 0.0)
	assert.Equal(t, res.TotalLiquidProducedKg, 0.0)
	assert.Equal(t, res.TotalLiquidConsumedKg, 0.0)

	// A day of boil-off eats into the initial fill.
	assert.Assert(t, res.TotalBoiloffKg > 0)
	assert.Assert(t, res.FinalTankLevelPct < 50)
}

func TestColdStoreCouplesCycles(t *testing.T) {
	s := newSimulator(t)
	schedule, _ := PredefinedSchedule("two_day")

	_, err := s.Run(context.Background(), schedule, 1, 50)
	assert.NilError(t, err)

	cold := s.ColdStore()
	assert.Assert(t, cold.TotalChargedJ > 0, "discharge must bank cold")
	assert.Assert(t, cold.TotalDischargedJ > 0, "charge must spend banked cold")

	hot := s.HotStore()
	assert.Assert(t, hot.TotalChargedJ > 0)
	assert.Assert(t, hot.TotalDischargedJ > 0)
}

func TestTankShortfallThrottlesOutput(t *testing.T) {
	s := newSimulator(t)

	// Start nearly empty: only the min level plus a sliver.
	res, err := s.Run(context.Background(), Schedule{{ModeDischarge, 4}}, 1, 11)
	assert.NilError(t, err)

	cfg := config.Default()
	full := cfg.DischargePowerKW() * 4
	assert.Assert(t, res.TotalEnergyOutKWh < full,
		"starved tank must deliver less than nameplate: %v >= %v", res.TotalEnergyOutKWh, full)
}

func TestRunRejectsBadInput(t *testing.T) {
	s := newSimulator(t)

	_, err := s.Run(context.Background(), Schedule{{ModeCharge, 8}}, 0, 50)
	assert.Assert(t, err != nil)

	_, err = s.Run(context.Background(), Schedule{}, 1, 50)
	assert.Assert(t, err != nil)
}

func TestRunContextCancellation(t *testing.T) {
	s := newSimulator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, Schedule{{ModeCharge, 8}}, 1, 50)
	assert.Assert(t, errors.Is(err, context.Canceled))
}

func TestResetClearsRunState(t *testing.T) {
	s := newSimulator(t)
	schedule, _ := PredefinedSchedule("default")

	_, err := s.Run(context.Background(), schedule, 1, 50)
	assert.NilError(t, err)
	assert.Assert(t, len(s.History()) > 0)

	assert.NilError(t, s.Reset(75))
	assert.Equal(t, len(s.History()), 0)
	assert.Equal(t, s.Tank().Level(), 0.75)
	assert.Equal(t, s.Tank().TotalChargedKg, 0.0)
	assert.Equal(t, s.ColdStore().EnergyJ, 0.0)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.ChargePowerMW = -1
	_, err := New(airprops.New(), &cfg)
	assert.Assert(t, err != nil)

	_, err = New(nil, &cfg)
	assert.Assert(t, err != nil)
}

func TestWriteHistoryCSV(t *testing.T) {
	s := newSimulator(t)
	_, err := s.Run(context.Background(), Schedule{{ModeCharge, 2}, {ModeDischarge, 1}}, 1, 50)
	assert.NilError(t, err)

	var sb strings.Builder
	assert.NilError(t, WriteHistoryCSV(&sb, s.History()))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	assert.Equal(t, len(lines), 4) // header + 3 steps
	assert.Assert(t, strings.HasPrefix(lines[0], "time_hours,mode,"))
	assert.Assert(t, strings.Contains(lines[1], ",charge,"))
	assert.Assert(t, strings.Contains(lines[3], ",discharge,"))
}
