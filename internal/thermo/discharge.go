package thermo

import (
	"fmt"
	"math"

	"laes-sim/internal/airprops"
	"laes-sim/internal/config"
)

// tColdRecoveryEndK is the temperature up to which pumped liquid yields
// useful cold for the next liquefaction cycle (-50°C). Above it the stream
// is too warm to pre-cool the charge cycle.
const tColdRecoveryEndK = 223.15

// DischargeResult is the power-recovery cycle performance per kg of liquid
// air. A value object recomputed on every call.
type DischargeResult struct {
	NetWorkJPerKg         float64 `json:"net_work_J_per_kg"`
	NetWorkKWhPerKg       float64 `json:"net_work_kWh_per_kg"`
	TurbineWorkJPerKg     float64 `json:"turbine_work_J_per_kg"`
	PumpWorkJPerKg        float64 `json:"pump_work_J_per_kg"`
	HeatConsumedJPerKg    float64 `json:"heat_consumed_J_per_kg"`
	ColdRecoverableJPerKg float64 `json:"cold_recoverable_J_per_kg"`
}

// Discharge evaluates the power-recovery cycle: cryogenic pump, cold
// recovery, evaporation and superheating from stored compression heat, then
// multi-stage turbine expansion with full reheat between all stages except
// the last.
func Discharge(air airprops.Provider, cfg *config.Plant) (DischargeResult, error) {
	pHigh := cfg.PDischargePa()
	pLow := config.PAmbientPa
	tSuperheat := cfg.TSuperheatK()
	var res DischargeResult

	// Saturated liquid from the tank.
	tLiquid, err := air.TemperatureFromQuality(pLow, 0)
	if err != nil {
		return res, fmt.Errorf("liquid air state: %w", err)
	}
	hLiquid, err := air.EnthalpyFromQuality(pLow, 0)
	if err != nil {
		return res, fmt.Errorf("liquid air enthalpy: %w", err)
	}

	// Cryogenic pump: incompressible work v·ΔP/η.
	rho, err := air.Density(tLiquid, pLow)
	if err != nil {
		return res, fmt.Errorf("liquid air density: %w", err)
	}
	res.PumpWorkJPerKg = (pHigh - pLow) / (rho * cfg.EtaPump)
	hAfterPump := hLiquid + res.PumpWorkJPerKg

	// Cold recovery as the liquid warms toward the recovery cutoff.
	hColdEnd, err := air.Enthalpy(tColdRecoveryEndK, pHigh)
	if err != nil {
		return res, fmt.Errorf("cold recovery state: %w", err)
	}
	res.ColdRecoverableJPerKg = hColdEnd - hAfterPump

	// Evaporation and superheating from stored compression heat.
	hSuperheat, err := air.Enthalpy(tSuperheat, pHigh)
	if err != nil {
		return res, fmt.Errorf("superheat state: %w", err)
	}
	res.HeatConsumedJPerKg = hSuperheat - hAfterPump

	// Equal-ratio turbine train with reheat between all stages but the last.
	nStages := cfg.NTurbineStages
	prStage := math.Pow(pHigh/pLow, 1.0/float64(nStages))

	tCurrent := tSuperheat
	pCurrent := pHigh
	for i := 0; i < nStages; i++ {
		pNext := pCurrent / prStage
		stage, err := TurbineStage(air, tCurrent, pCurrent, pNext, cfg.EtaTurbine)
		if err != nil {
			return res, fmt.Errorf("turbine stage %d: %w", i+1, err)
		}
		res.TurbineWorkJPerKg += stage.WorkJPerKg

		if i < nStages-1 {
			hReheat, err := air.Enthalpy(tSuperheat, pNext)
			if err != nil {
				return res, fmt.Errorf("reheat %d: %w", i+1, err)
			}
			res.HeatConsumedJPerKg += hReheat - stage.HOutJPerKg
			tCurrent = tSuperheat
		}
		pCurrent = pNext
	}

	res.NetWorkJPerKg = res.TurbineWorkJPerKg - res.PumpWorkJPerKg
	res.NetWorkKWhPerKg = res.NetWorkJPerKg / 3.6e6
	return res, nil
}
