package thermo

import (
	"laes-sim/internal/airprops"
)

// StageResult is the outlet state of a single compression or expansion stage.
// Produced and consumed within one cycle evaluation; never persisted.
type StageResult struct {
	TOutK      float64 // outlet temperature [K]
	HOutJPerKg float64 // outlet specific enthalpy [J/kg]
	WorkJPerKg float64 // specific work, input for compressor / output for turbine [J/kg]
}

// CompressorStage evaluates one isentropic-efficiency-corrected compression
// stage:
//
//	w_isentropic = h(s_in, P_out) - h_in
//	w_actual     = w_isentropic / η
//	h_out        = h_in + w_actual
func CompressorStage(air airprops.Provider, tInK, pInPa, pOutPa, eta float64) (StageResult, error) {
	hIn, err := air.Enthalpy(tInK, pInPa)
	if err != nil {
		return StageResult{}, err
	}
	sIn, err := air.Entropy(tInK, pInPa)
	if err != nil {
		return StageResult{}, err
	}
	hOutIsen, err := air.EnthalpyFromEntropy(sIn, pOutPa)
	if err != nil {
		return StageResult{}, err
	}
	wActual := (hOutIsen - hIn) / eta
	hOut := hIn + wActual
	tOut, err := air.TemperatureFromEnthalpy(hOut, pOutPa)
	if err != nil {
		return StageResult{}, err
	}
	return StageResult{TOutK: tOut, HOutJPerKg: hOut, WorkJPerKg: wActual}, nil
}

// TurbineStage mirrors CompressorStage for expansion:
//
//	w_isentropic = h_in - h(s_in, P_out)
//	w_actual     = w_isentropic × η
//	h_out        = h_in - w_actual
func TurbineStage(air airprops.Provider, tInK, pInPa, pOutPa, eta float64) (StageResult, error) {
	hIn, err := air.Enthalpy(tInK, pInPa)
	if err != nil {
		return StageResult{}, err
	}
	sIn, err := air.Entropy(tInK, pInPa)
	if err != nil {
		return StageResult{}, err
	}
	hOutIsen, err := air.EnthalpyFromEntropy(sIn, pOutPa)
	if err != nil {
		return StageResult{}, err
	}
	wActual := (hIn - hOutIsen) * eta
	hOut := hIn - wActual
	tOut, err := air.TemperatureFromEnthalpy(hOut, pOutPa)
	if err != nil {
		return StageResult{}, err
	}
	return StageResult{TOutK: tOut, HOutJPerKg: hOut, WorkJPerKg: wActual}, nil
}
