package sim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"laes-sim/internal/airprops"
	"laes-sim/internal/config"
	"laes-sim/internal/model"
	"laes-sim/internal/thermo"
)

const (
	// DefaultInitialTankPct is the tank fill level applied on reset when the
	// caller does not override it.
	DefaultInitialTankPct = 50.0

	// maxColdPerKgJ caps how much stored cold one kg of processed air may
	// exploit, preventing over-extraction beyond a plausible HX rate.
	maxColdPerKgJ = 150e3

	// heatShortfallThreshold: below this fraction of required heat the
	// delivered power is throttled by the heat-availability fraction.
	heatShortfallThreshold = 0.9

	// hotStorageMargin oversizes the hot store relative to one full
	// discharge.
	hotStorageMargin = 1.5
)

// Simulator steps a LAES plant through an operating schedule, driving the
// cycle solvers with live storage state each step. It exclusively owns its
// tank and both thermal stores; the cycle solvers stay pure and receive only
// scalars.
//
// Steps within one run are strictly ordered: step n's storage state is the
// exclusive input to step n+1.
type Simulator struct {
	cfg *config.Plant
	air airprops.Provider

	// Cycle performance precomputed at construction.
	liqNoCold     thermo.LiquefactionResult
	dischargePerf thermo.DischargeResult

	specificOutputJPerKg float64 // discharge net work per kg liquid
	heatPerKgJ           float64 // discharge heat demand per kg liquid
	coldPerKgJ           float64 // recoverable cold per kg liquid

	tank *model.Tank
	hot  *model.ThermalStorage
	cold *model.ThermalStorage

	history           []TimeStepRecord
	totalEnergyInKWh  float64
	totalEnergyOutKWh float64
}

// New validates the configuration, precomputes the cycle performance and
// sizes the storage subsystems.
func New(air airprops.Provider, cfg *config.Plant) (*Simulator, error) {
	if air == nil {
		return nil, errors.New("air property provider is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	liqNoCold, err := thermo.Liquefaction(air, cfg, 0)
	if err != nil {
		return nil, fmt.Errorf("liquefaction cycle: %w", err)
	}
	if liqNoCold.NetWorkJPerKg <= 0 {
		return nil, errors.New("liquefaction cycle consumes no net work; cannot convert charge power to air flow")
	}
	dis, err := thermo.Discharge(air, cfg)
	if err != nil {
		return nil, fmt.Errorf("discharge cycle: %w", err)
	}
	if dis.NetWorkJPerKg <= 0 {
		return nil, errors.New("discharge cycle produces no net work")
	}

	s := &Simulator{
		cfg:                  cfg,
		air:                  air,
		liqNoCold:            liqNoCold,
		dischargePerf:        dis,
		specificOutputJPerKg: dis.NetWorkJPerKg,
		heatPerKgJ:           dis.HeatConsumedJPerKg,
		coldPerKgJ:           dis.ColdRecoverableJPerKg,
	}
	if err := s.Reset(DefaultInitialTankPct); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset recreates all storage subsystems and clears the run state. The tank
// starts at initialTankPct, the hot store at 50% SOC, the cold store empty.
func (s *Simulator) Reset(initialTankPct float64) error {
	cfg := s.cfg

	tank, err := model.NewTank(cfg.TankCapacityKg(), cfg.TankMinLevelPct/100, cfg.BoiloffRatePerS())
	if err != nil {
		return fmt.Errorf("tank: %w", err)
	}

	// Hot store sized for one full discharge plus margin.
	liquidRateKgPerS := cfg.DischargePowerKW() * 1000 / s.specificOutputJPerKg
	hotCapacityJ := s.heatPerKgJ * liquidRateKgPerS * cfg.StorageDurationHours * config.SecondsPerHour * hotStorageMargin
	hot, err := model.NewThermalStorage(hotCapacityJ, cfg.HotLossRatePerS(), cfg.HotStorageEfficiency)
	if err != nil {
		return fmt.Errorf("hot storage: %w", err)
	}

	// Cold store sized for the recycle benefit of half a tank.
	coldCapacityJ := s.coldPerKgJ * cfg.TankCapacityKg() * 0.5
	cold, err := model.NewThermalStorage(coldCapacityJ, cfg.ColdLossRatePerS(), cfg.ColdStorageEfficiency)
	if err != nil {
		return fmt.Errorf("cold storage: %w", err)
	}

	tank.MassKg = initialTankPct / 100 * tank.CapacityKg
	hot.EnergyJ = hot.CapacityJ * 0.5

	s.tank = tank
	s.hot = hot
	s.cold = cold
	s.history = nil
	s.totalEnergyInKWh = 0
	s.totalEnergyOutKWh = 0
	return nil
}

// stepFunc handles one mode's mass/energy transfers for a single step.
type stepFunc func(s *Simulator, rec *TimeStepRecord, dtS, dtHours float64) error

// stepHandlers is the closed dispatch table over operating modes.
var stepHandlers = map[Mode]stepFunc{
	ModeCharge:    (*Simulator).stepCharge,
	ModeDischarge: (*Simulator).stepDischarge,
	ModeIdle:      (*Simulator).stepIdle,
}

// Run resets the simulator and executes the schedule with fixed steps of
// dtHours. The context is checked between steps only, never mid-step, so an
// interrupted run has no partially-applied transfers.
func (s *Simulator) Run(ctx context.Context, schedule Schedule, dtHours, initialTankPct float64) (Result, error) {
	if dtHours <= 0 {
		return Result{}, errors.New("dt_hours must be > 0")
	}
	if err := schedule.Validate(); err != nil {
		return Result{}, err
	}
	if err := s.Reset(initialTankPct); err != nil {
		return Result{}, err
	}

	dtS := dtHours * config.SecondsPerHour
	timeHours := 0.0

	for _, phase := range schedule {
		handler, ok := stepHandlers[phase.Mode]
		if !ok {
			return Result{}, fmt.Errorf("no handler for mode %s", phase.Mode)
		}
		nSteps := int(phase.DurationHours / dtHours)
		for i := 0; i < nSteps; i++ {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			rec := TimeStepRecord{TimeHours: timeHours, Mode: phase.Mode}
			if err := handler(s, &rec, dtS, dtHours); err != nil {
				return Result{}, fmt.Errorf("step at t=%.2fh (%s): %w", timeHours, phase.Mode, err)
			}

			// Losses accrue in every mode, including idle.
			rec.BoiloffKg = s.tank.ApplyBoiloff(dtS)
			s.hot.ApplyLosses(dtS)
			s.cold.ApplyLosses(dtS)

			rec.TankLevelPct = s.tank.Level() * 100
			rec.HotSOCPct = s.hot.SOC() * 100
			rec.ColdSOCPct = s.cold.SOC() * 100

			s.history = append(s.history, rec)
			timeHours += dtHours
		}
	}
	return s.results(), nil
}

func (s *Simulator) stepCharge(rec *TimeStepRecord, dtS, dtHours float64) error {
	powerKW := s.cfg.ChargePowerKW()
	rec.PowerInKW = powerKW

	// Cold available from storage, per kg of air about to be processed.
	airRateKgPerS := powerKW * 1000 / s.liqNoCold.NetWorkJPerKg
	airToProcessKg := airRateKgPerS * dtS
	coldPerKg := 0.0
	if s.cold.EnergyJ > 0 && airToProcessKg > 0 {
		coldPerKg = math.Min(s.cold.EnergyJ/airToProcessKg, maxColdPerKgJ)
	}

	liq, err := thermo.Liquefaction(s.air, s.cfg, coldPerKg)
	if err != nil {
		return err
	}

	energyInJ := powerKW * 1000 * dtS
	airProcessedKg := energyInJ / liq.NetWorkJPerKg
	liquidProducedKg := airProcessedKg * liq.LiquidYield

	rec.LiquidProducedKg = s.tank.Charge(liquidProducedKg)
	s.hot.Charge(liq.HeatRejectedJPerKg * airProcessedKg)
	s.cold.Discharge(liq.ColdUsedJPerKg * airProcessedKg)

	rec.EnergyInKWh = powerKW * dtHours
	s.totalEnergyInKWh += rec.EnergyInKWh
	return nil
}

func (s *Simulator) stepDischarge(rec *TimeStepRecord, dtS, dtHours float64) error {
	targetPowerKW := s.cfg.DischargePowerKW()

	liquidNeededKg := targetPowerKW * 1000 / s.specificOutputJPerKg * dtS
	liquidConsumedKg := s.tank.Discharge(liquidNeededKg)
	rec.LiquidConsumedKg = liquidConsumedKg

	// A tank shortfall linearly throttles the delivered power.
	powerFraction := 0.0
	if liquidNeededKg > 0 {
		powerFraction = liquidConsumedKg / liquidNeededKg
	}
	actualPowerKW := targetPowerKW * powerFraction

	// A heat shortfall below the threshold throttles further.
	heatNeededJ := s.heatPerKgJ * liquidConsumedKg
	heatDeliveredJ := s.hot.Discharge(heatNeededJ)
	if heatNeededJ > 0 && heatDeliveredJ < heatNeededJ*heatShortfallThreshold {
		actualPowerKW *= heatDeliveredJ / heatNeededJ
	}
	rec.PowerOutKW = actualPowerKW

	// Cold generated during evaporation feeds the next charge cycle.
	s.cold.Charge(s.coldPerKgJ * liquidConsumedKg)

	rec.EnergyOutKWh = actualPowerKW * dtHours
	s.totalEnergyOutKWh += rec.EnergyOutKWh
	return nil
}

func (s *Simulator) stepIdle(rec *TimeStepRecord, dtS, dtHours float64) error {
	// No mass or energy transfer; losses are applied by the step loop.
	return nil
}

func (s *Simulator) results() Result {
	rte := 0.0
	if s.totalEnergyInKWh > 0 {
		rte = s.totalEnergyOutKWh / s.totalEnergyInKWh
	}
	return Result{
		TotalEnergyInKWh:      s.totalEnergyInKWh,
		TotalEnergyOutKWh:     s.totalEnergyOutKWh,
		RoundTripEfficiency:   rte,
		TankEfficiency:        1 - s.tank.TotalBoiloffKg/math.Max(s.tank.TotalChargedKg, 1),
		HotStorageEfficiency:  1 - s.hot.TotalLostJ/math.Max(s.hot.TotalChargedJ, 1),
		ColdStorageEfficiency: 1 - s.cold.TotalLostJ/math.Max(s.cold.TotalChargedJ, 1),
		TotalLiquidProducedKg: s.tank.TotalChargedKg,
		TotalLiquidConsumedKg: s.tank.TotalDischargedKg,
		TotalBoiloffKg:        s.tank.TotalBoiloffKg,
		FinalTankLevelPct:     s.tank.Level() * 100,
	}
}

// History returns the per-step time series of the last run.
func (s *Simulator) History() []TimeStepRecord { return s.history }

// Tank exposes the owned liquid-air tank, mainly for inspection in tests.
func (s *Simulator) Tank() *model.Tank { return s.tank }

// HotStore exposes the owned hot thermal store.
func (s *Simulator) HotStore() *model.ThermalStorage { return s.hot }

// ColdStore exposes the owned cold thermal store.
func (s *Simulator) ColdStore() *model.ThermalStorage { return s.cold }

// Liquefaction returns the zero-recycle liquefaction performance computed at
// construction.
func (s *Simulator) Liquefaction() thermo.LiquefactionResult { return s.liqNoCold }

// Discharge returns the discharge-cycle performance computed at construction.
func (s *Simulator) Discharge() thermo.DischargeResult { return s.dischargePerf }
