package model

import (
	"math"
	"testing"

	"gotest.tools/v3/assert"
)

func TestThermalStorageChargeToHalf(t *testing.T) {
	s, err := NewThermalStorage(1e9, 0, 1.0)
	assert.NilError(t, err)

	stored := s.Charge(5e8)
	assert.Equal(t, stored, 5e8)
	assert.Equal(t, s.SOC(), 0.5)
}

func TestThermalStorageChargeDischarge(t *testing.T) {
	s, err := NewThermalStorage(1e9, 0, 1.0)
	assert.NilError(t, err)

	s.Charge(1e9)
	delivered := s.Discharge(5e8)
	assert.Equal(t, delivered, 5e8)
	assert.Equal(t, s.SOC(), 0.5)
}

func TestThermalStorageOverflow(t *testing.T) {
	s, err := NewThermalStorage(1e9, 0, 1.0)
	assert.NilError(t, err)

	stored := s.Charge(2e9)
	assert.Equal(t, stored, 1e9)
	assert.Equal(t, s.EnergyJ, 1e9)
	assert.Equal(t, s.OverflowJ, 1e9)
}

func TestThermalStorageRoundTripEfficiency(t *testing.T) {
	const eff = 0.9
	s, err := NewThermalStorage(1e12, 0, eff)
	assert.NilError(t, err)

	in := 1e9
	s.Charge(in)
	out := s.Discharge(1e12) // ask for everything

	got := out / in
	if math.Abs(got-eff) > 1e-9 {
		t.Fatalf("round-trip efficiency %.6f, want %.6f", got, eff)
	}
	assert.Assert(t, s.EnergyJ < 1e-6)
}

func TestThermalStorageDischargeClampsToStored(t *testing.T) {
	s, err := NewThermalStorage(1e9, 0, 1.0)
	assert.NilError(t, err)

	s.Charge(1e8)
	delivered := s.Discharge(5e8)
	assert.Equal(t, delivered, 1e8)
	assert.Equal(t, s.EnergyJ, 0.0)
}

func TestThermalStorageLossDecay(t *testing.T) {
	const rate = 1e-5
	s, err := NewThermalStorage(1e9, rate, 1.0)
	assert.NilError(t, err)

	s.Charge(1e9)
	lost := s.ApplyLosses(3600)

	want := 1e9 * math.Exp(-rate*3600)
	if math.Abs(s.EnergyJ-want) > 1 {
		t.Fatalf("energy after losses %.0f, want %.0f", s.EnergyJ, want)
	}
	assert.Equal(t, lost, 1e9-s.EnergyJ)
	assert.Equal(t, s.TotalLostJ, lost)
}

func TestThermalStorageValidation(t *testing.T) {
	cases := []struct {
		name                    string
		capacity, lossRate, eff float64
	}{
		{"zero capacity", 0, 0, 1},
		{"negative loss rate", 1e9, -1, 1},
		{"zero efficiency", 1e9, 0, 0},
		{"efficiency above one", 1e9, 0, 1.1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewThermalStorage(c.capacity, c.lossRate, c.eff)
			assert.Assert(t, err != nil)
		})
	}
}

func TestTankChargeDischarge(t *testing.T) {
	tank, err := NewTank(100000, 0.1, 0)
	assert.NilError(t, err)

	stored := tank.Charge(50000)
	assert.Equal(t, stored, 50000.0)
	assert.Equal(t, tank.Level(), 0.5)

	// The minimum operable level holds back 10% of capacity.
	withdrawn := tank.Discharge(100000)
	if math.Abs(withdrawn-40000) > 1e-6 {
		t.Fatalf("withdrawn %.6f, want 40000", withdrawn)
	}
	if math.Abs(tank.MassKg-10000) > 1e-6 {
		t.Fatalf("mass %.6f, want 10000", tank.MassKg)
	}
}

func TestTankChargeClampsToCapacity(t *testing.T) {
	tank, err := NewTank(100000, 0, 0)
	assert.NilError(t, err)

	stored := tank.Charge(150000)
	assert.Equal(t, stored, 100000.0)
	assert.Equal(t, tank.Level(), 1.0)
}

func TestTankBoiloffDecay(t *testing.T) {
	const rate = 2e-8
	tank, err := NewTank(100000, 0, rate)
	assert.NilError(t, err)

	tank.Charge(100000)
	lost := tank.ApplyBoiloff(86400)

	want := 100000 * math.Exp(-rate*86400)
	if math.Abs(tank.MassKg-want) > 1e-6 {
		t.Fatalf("mass after boiloff %.6f, want %.6f", tank.MassKg, want)
	}
	assert.Equal(t, tank.TotalBoiloffKg, lost)
	assert.Assert(t, lost > 0)
}

func TestTankLifetimeCounters(t *testing.T) {
	tank, err := NewTank(100000, 0, 0)
	assert.NilError(t, err)

	tank.Charge(60000)
	tank.Discharge(20000)
	tank.Charge(30000)

	assert.Equal(t, tank.TotalChargedKg, 90000.0)
	assert.Equal(t, tank.TotalDischargedKg, 20000.0)
	assert.Equal(t, tank.MassKg, 70000.0)
}

func TestTankValidation(t *testing.T) {
	_, err := NewTank(0, 0.1, 0)
	assert.Assert(t, err != nil)
	_, err = NewTank(100000, 1.0, 0)
	assert.Assert(t, err != nil)
	_, err = NewTank(100000, 0.1, -1)
	assert.Assert(t, err != nil)
}
