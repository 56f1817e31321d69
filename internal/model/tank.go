package model

import (
	"errors"
	"math"
)

// Tank is a capacity-bounded liquid-air mass reservoir with a minimum
// operable level (cryogenic pump NPSH) and continuous boil-off.
//
// Invariant: 0 <= Mass <= Capacity; withdrawals never reduce the mass below
// MinLevelFrac × Capacity. Both are enforced by clamping.
type Tank struct {
	CapacityKg      float64
	MinLevelFrac    float64
	BoiloffRatePerS float64

	MassKg float64

	TotalChargedKg    float64
	TotalDischargedKg float64
	TotalBoiloffKg    float64
}

// NewTank validates parameters and returns an empty tank.
func NewTank(capacityKg, minLevelFrac, boiloffRatePerS float64) (*Tank, error) {
	if capacityKg <= 0 {
		return nil, errors.New("capacity must be > 0")
	}
	if minLevelFrac < 0 || minLevelFrac >= 1 {
		return nil, errors.New("min level fraction must be in [0, 1)")
	}
	if boiloffRatePerS < 0 {
		return nil, errors.New("boiloff rate must be >= 0")
	}
	return &Tank{
		CapacityKg:      capacityKg,
		MinLevelFrac:    minLevelFrac,
		BoiloffRatePerS: boiloffRatePerS,
	}, nil
}

// Level is the fill fraction [0,1].
func (t *Tank) Level() float64 {
	return t.MassKg / t.CapacityKg
}

// AvailableKg is the mass withdrawable above the minimum operable level.
func (t *Tank) AvailableKg() float64 {
	return math.Max(0, t.MassKg-t.MinLevelFrac*t.CapacityKg)
}

// Charge adds massKg, clamped to remaining capacity, and returns the mass
// actually stored.
func (t *Tank) Charge(massKg float64) float64 {
	stored := math.Min(massKg, t.CapacityKg-t.MassKg)
	t.MassKg += stored
	t.TotalChargedKg += stored
	return stored
}

// Discharge withdraws up to massKg, clamped to the available mass above the
// minimum level, and returns the mass actually withdrawn.
func (t *Tank) Discharge(massKg float64) float64 {
	withdrawn := math.Min(massKg, t.AvailableKg())
	t.MassKg -= withdrawn
	t.TotalDischargedKg += withdrawn
	return withdrawn
}

// ApplyBoiloff decays the stored mass exponentially over dtS seconds and
// returns the mass lost.
func (t *Tank) ApplyBoiloff(dtS float64) float64 {
	before := t.MassKg
	t.MassKg *= math.Exp(-t.BoiloffRatePerS * dtS)
	lost := before - t.MassKg
	t.TotalBoiloffKg += lost
	return lost
}
