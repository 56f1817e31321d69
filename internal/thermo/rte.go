package thermo

import (
	"laes-sim/internal/airprops"
	"laes-sim/internal/config"
)

// RTEResult couples the two cycles through the cold-recycle feedback at
// steady state. RTE is dimensionless: discharge net work over liquefaction
// specific consumption, both per kg of liquid air.
type RTEResult struct {
	RTENoCold      float64 `json:"rte_no_cold"`
	RTEWithCold    float64 `json:"rte_with_cold"`
	ImprovementPct float64 `json:"improvement_pct"`

	LiquefactionNoCold   LiquefactionResult `json:"liquefaction_no_cold"`
	LiquefactionWithCold LiquefactionResult `json:"liquefaction_with_cold"`
	Discharge            DischargeResult    `json:"discharge"`
}

// RTE evaluates round-trip efficiency with and without cold recycle. The
// recycled cold equals the discharge cycle's recoverable cold degraded by the
// cold store's round-trip efficiency, closing the feedback loop between the
// two cycles.
func RTE(air airprops.Provider, cfg *config.Plant) (RTEResult, error) {
	var res RTEResult

	liqNoCold, err := Liquefaction(air, cfg, 0)
	if err != nil {
		return res, err
	}
	dis, err := Discharge(air, cfg)
	if err != nil {
		return res, err
	}

	coldAvailable := dis.ColdRecoverableJPerKg * cfg.ColdStorageEfficiency
	liqWithCold, err := Liquefaction(air, cfg, coldAvailable)
	if err != nil {
		return res, err
	}

	res.LiquefactionNoCold = liqNoCold
	res.LiquefactionWithCold = liqWithCold
	res.Discharge = dis

	// Division by +Inf yields 0 at zero liquid yield, which is the intended
	// degraded value for an infeasible operating point.
	res.RTENoCold = dis.NetWorkJPerKg / liqNoCold.SpecificConsumptionJPerKg
	res.RTEWithCold = dis.NetWorkJPerKg / liqWithCold.SpecificConsumptionJPerKg
	if res.RTENoCold > 0 {
		res.ImprovementPct = (res.RTEWithCold/res.RTENoCold - 1) * 100
	}
	return res, nil
}
