package model

import (
	"errors"
	"math"
)

// ThermalStorage is a capacity-bounded thermal energy reservoir with a
// round-trip efficiency split evenly between charge and discharge and a
// continuous exponential self-loss.
//
// Invariant: 0 <= Energy <= Capacity, enforced by clamping, never by failure.
// Callers must read the returned actually-transferred amounts; requests
// saturate at available headroom.
type ThermalStorage struct {
	CapacityJ    float64 // fixed at construction
	LossRatePerS float64
	ChargeEff    float64 // sqrt of round-trip efficiency
	DischargeEff float64

	EnergyJ float64

	// Lifetime counters, monotonically increasing.
	TotalChargedJ    float64
	TotalDischargedJ float64
	TotalLostJ       float64
	OverflowJ        float64
}

// NewThermalStorage validates parameters and returns an empty store. The
// round-trip efficiency is split as sqrt(eff) on charge and discharge.
func NewThermalStorage(capacityJ, lossRatePerS, efficiency float64) (*ThermalStorage, error) {
	if capacityJ <= 0 {
		return nil, errors.New("capacity must be > 0")
	}
	if lossRatePerS < 0 {
		return nil, errors.New("loss rate must be >= 0")
	}
	if efficiency <= 0 || efficiency > 1 {
		return nil, errors.New("efficiency must be in (0, 1]")
	}
	eff := math.Sqrt(efficiency)
	return &ThermalStorage{
		CapacityJ:    capacityJ,
		LossRatePerS: lossRatePerS,
		ChargeEff:    eff,
		DischargeEff: eff,
	}, nil
}

// SOC is the state of charge as a fraction [0,1].
func (s *ThermalStorage) SOC() float64 {
	if s.CapacityJ <= 0 {
		return 0
	}
	return s.EnergyJ / s.CapacityJ
}

// Charge stores energyJ (pre-efficiency) and returns the amount actually
// stored. Energy beyond remaining capacity is rejected and counted as
// overflow.
func (s *ThermalStorage) Charge(energyJ float64) float64 {
	afterLoss := energyJ * s.ChargeEff
	available := s.CapacityJ - s.EnergyJ
	stored := math.Min(afterLoss, available)
	s.EnergyJ += stored
	s.TotalChargedJ += energyJ
	s.OverflowJ += afterLoss - stored
	return stored
}

// Discharge delivers up to requestedJ and returns the post-efficiency amount
// actually delivered, limited by the stored energy.
func (s *ThermalStorage) Discharge(requestedJ float64) float64 {
	storedNeeded := requestedJ / s.DischargeEff
	used := math.Min(storedNeeded, s.EnergyJ)
	delivered := used * s.DischargeEff
	s.EnergyJ -= used
	s.TotalDischargedJ += delivered
	return delivered
}

// ApplyLosses decays the stored energy exponentially over dtS seconds and
// returns the energy lost.
func (s *ThermalStorage) ApplyLosses(dtS float64) float64 {
	before := s.EnergyJ
	s.EnergyJ *= math.Exp(-s.LossRatePerS * dtS)
	lost := before - s.EnergyJ
	s.TotalLostJ += lost
	return lost
}
