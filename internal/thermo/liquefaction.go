package thermo

import (
	"fmt"
	"math"

	"laes-sim/internal/airprops"
	"laes-sim/internal/config"
)

const (
	// nominalLiquidYield is the fixed yield estimate used only for the
	// mass-balance weighting of the cold-return temperature. This is a
	// documented one-pass estimate, not an iterated fixed point; changing it
	// to an iterative solve would change the steady-state RTE.
	nominalLiquidYield = 0.30

	// coldReturnFallbackK is used when the derived cold-return estimate
	// cannot be evaluated.
	coldReturnFallbackK = 200.0

	// coldFloorFallbackK bounds cold-recycle pre-cooling when the
	// high-pressure saturation temperature is unavailable (supercritical
	// charge pressure).
	coldFloorFallbackK = 105.0

	// coldFloorApproachK is the margin above the high-pressure saturation
	// temperature that cold-recycle pre-cooling must respect.
	coldFloorApproachK = 2.0
)

// LiquefactionResult is the performance of one Claude-cycle evaluation,
// per kg of compressed air unless noted. A value object recomputed on every
// call.
type LiquefactionResult struct {
	LiquidYield                 float64  `json:"liquid_yield"`
	NetWorkJPerKg               float64  `json:"net_work_J_per_kg"`
	SpecificConsumptionJPerKg   float64  `json:"specific_consumption_J_per_kg"`
	SpecificConsumptionKWhPerKg float64  `json:"specific_consumption_kWh_per_kg"`
	CompressionWorkJPerKg       float64  `json:"compression_work_J_per_kg"`
	TurbineWorkJPerKg           float64  `json:"turbine_work_J_per_kg"`
	HeatRejectedJPerKg          float64  `json:"heat_rejected_J_per_kg"`
	ColdUsedJPerKg              float64  `json:"cold_used_J_per_kg"`
	TColdReturnK                float64  `json:"t_cold_return_K"`
	TBeforeJTK                  float64  `json:"t_before_jt_K"`
	Warnings                    []string `json:"warnings,omitempty"`
}

// Liquefaction evaluates the Claude liquefaction cycle: multi-stage
// intercooled compression, regenerative cooling against the return gas,
// optional cold-recycle pre-cooling, a bypass cryo-turbine flow split, and a
// Joule-Thomson expansion into the two-phase region.
//
// coldAvailableJPerKg is recycled cold energy per kg of compressed air (>= 0).
// Cold is only applied when it improves specific consumption; when the
// saturation floor clamps the usable cold so hard that the cycle gets worse,
// the cold store is bypassed and the cold-free result is returned with
// ColdUsedJPerKg = 0. An infeasible throttle outlet degrades to zero liquid
// yield with a warning rather than an error.
func Liquefaction(air airprops.Provider, cfg *config.Plant, coldAvailableJPerKg float64) (LiquefactionResult, error) {
	pHigh := cfg.PChargePa()
	pLow := config.PAmbientPa
	var res LiquefactionResult

	// 1. Multi-stage compression with intercooling to a fixed target.
	nStages := cfg.NCompressorStages
	prStage := math.Pow(pHigh/pLow, 1.0/float64(nStages))

	tCurrent := cfg.TAmbientK()
	pCurrent := pLow
	for i := 0; i < nStages; i++ {
		pNext := pCurrent * prStage
		stage, err := CompressorStage(air, tCurrent, pCurrent, pNext, cfg.EtaCompressor)
		if err != nil {
			return res, fmt.Errorf("compressor stage %d: %w", i+1, err)
		}
		res.CompressionWorkJPerKg += stage.WorkJPerKg

		hCooled, err := air.Enthalpy(config.TIntercoolK, pNext)
		if err != nil {
			return res, fmt.Errorf("intercooler %d: %w", i+1, err)
		}
		res.HeatRejectedJPerKg += stage.HOutJPerKg - hCooled

		tCurrent = config.TIntercoolK
		pCurrent = pNext
	}

	// 2. Effective cold-return temperature for the first regenerative HX:
	// mass/enthalpy-weighted mix of the estimated bypass-turbine exhaust and
	// saturated separator vapor, weighted with the nominal yield estimate.
	res.TColdReturnK = coldReturnTemperature(air, cfg, tCurrent, pHigh, pLow)

	// 3. Cool toward the return-gas temperature, scaled by HX effectiveness.
	tAfterHX1 := tCurrent - cfg.HXEffectiveness*(tCurrent-res.TColdReturnK)

	// 4. Cold-recycle pre-cooling, clamped at an approach above the
	// high-pressure saturation temperature.
	tAfterCold := tAfterHX1
	if coldAvailableJPerKg > 0 {
		hBefore, err := air.Enthalpy(tAfterHX1, pHigh)
		if err != nil {
			return res, fmt.Errorf("cold recycle inlet: %w", err)
		}
		tFloor := coldFloorFallbackK
		if tSat, err := air.TemperatureFromQuality(pHigh, 0); err == nil {
			tFloor = tSat + coldFloorApproachK
		}
		hMin, err := air.Enthalpy(tFloor, pHigh)
		if err != nil {
			return res, fmt.Errorf("cold recycle floor: %w", err)
		}
		hAfter := math.Max(hBefore-coldAvailableJPerKg, hMin)
		tAfterCold, err = air.TemperatureFromEnthalpy(hAfter, pHigh)
		if err != nil {
			return res, fmt.Errorf("cold recycle outlet: %w", err)
		}
		res.ColdUsedJPerKg = hBefore - hAfter
	}

	// 5. Flow split: bypass stream through the cryo-turbine, main stream
	// through the second HX into the J-T valve.
	bypassFrac := cfg.BypassFraction
	mainFrac := 1 - bypassFrac

	bypass, err := TurbineStage(air, tAfterCold, pHigh, pLow, cfg.EtaCryoTurbine)
	if err != nil {
		return res, fmt.Errorf("bypass turbine: %w", err)
	}
	res.TurbineWorkJPerKg = bypass.WorkJPerKg * bypassFrac

	res.TBeforeJTK = tAfterCold - cfg.HXEffectiveness*(tAfterCold-bypass.TOutK)

	// 6. J-T expansion and phase separation. An outlet outside the two-phase
	// dome is an infeasible operating point, not a crash.
	liquidFracJT := 0.0
	hBeforeJT, err := air.Enthalpy(res.TBeforeJTK, pHigh)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("throttle inlet state unavailable (%v); liquid yield set to 0", err))
	} else {
		quality, err := air.QualityFromEnthalpy(pLow, hBeforeJT)
		switch {
		case err != nil:
			res.Warnings = append(res.Warnings, fmt.Sprintf("throttle outlet quality unavailable (%v); liquid yield set to 0", err))
		case quality < 0 || quality > 1:
			res.Warnings = append(res.Warnings, fmt.Sprintf("throttle outlet quality %.3f outside [0,1]; liquid yield set to 0", quality))
		default:
			liquidFracJT = 1 - quality
		}
	}
	res.LiquidYield = mainFrac * liquidFracJT

	// 7. Net work and specific consumption.
	res.NetWorkJPerKg = res.CompressionWorkJPerKg - res.TurbineWorkJPerKg
	if res.LiquidYield > 0 {
		res.SpecificConsumptionJPerKg = res.NetWorkJPerKg / res.LiquidYield
	} else {
		res.SpecificConsumptionJPerKg = math.Inf(1)
	}
	res.SpecificConsumptionKWhPerKg = res.SpecificConsumptionJPerKg / 3.6e6

	// 8. At subcritical charge pressures the floor clamp can leave only a
	// sliver of usable cold while the colder bypass-turbine inlet cuts the
	// recovered work; the yield gain then no longer covers the net-work rise.
	// The cold store is bypassed whenever the cold-free cycle is cheaper.
	if coldAvailableJPerKg > 0 {
		base, baseErr := Liquefaction(air, cfg, 0)
		if baseErr == nil && base.SpecificConsumptionJPerKg < res.SpecificConsumptionJPerKg {
			return base, nil
		}
	}

	return res, nil
}

// coldReturnTemperature derives the return-gas temperature seen by the first
// regenerative heat exchanger. The bypass exhaust is estimated by expanding
// from the post-intercooling temperature; the separator vapor is saturated at
// the low pressure. The nominal liquid yield enters the mass balance only.
func coldReturnTemperature(air airprops.Provider, cfg *config.Plant, tIntercool, pHigh, pLow float64) float64 {
	wBypass := cfg.BypassFraction
	wVapor := math.Max(0, 1-cfg.BypassFraction-nominalLiquidYield)
	if wBypass+wVapor <= 0 {
		return coldReturnFallbackK
	}

	bypass, err := TurbineStage(air, tIntercool, pHigh, pLow, cfg.EtaCryoTurbine)
	if err != nil {
		return coldReturnFallbackK
	}
	hVapor, err := air.EnthalpyFromQuality(pLow, 1)
	if err != nil {
		return coldReturnFallbackK
	}

	hMix := (wBypass*bypass.HOutJPerKg + wVapor*hVapor) / (wBypass + wVapor)
	tMix, err := air.TemperatureFromEnthalpy(hMix, pLow)
	if err != nil {
		return coldReturnFallbackK
	}
	return tMix
}
