// Package econ prices a LAES plant: parametric CAPEX, annual cash flow from
// arbitrage plus a capacity payment, and the usual project metrics (NPV,
// simple payback, LCOS). Cost bases are parametric estimates with wide
// uncertainty; treat absolute numbers as screening-level.
package econ

import (
	"encoding/json"
	"math"

	"laes-sim/internal/airprops"
	"laes-sim/internal/config"
	"laes-sim/internal/thermo"
)

// Parametric cost bases, $ unless noted.
const (
	compressorPerKW   = 500
	turbinePerKW      = 400
	cryoTankPerM3     = 800
	hotStoragePerKWh  = 30
	coldStoragePerKWh = 45
	hxPerKWThermal    = 75

	bopFraction     = 0.20
	installFraction = 0.25

	maintenanceFraction      = 0.015
	insuranceFraction        = 0.005
	capacityPaymentPerKWYear = 50

	annualDegradation    = 0.995
	defaultCyclesPerYear = 365

	joulesPerKWh = 3.6e6
)

// CAPEX is an itemized capital-cost breakdown.
type CAPEX struct {
	Compressor     float64 `json:"compressor"`
	Turbine        float64 `json:"turbine"`
	CryoTank       float64 `json:"cryo_tank"`
	HotStorage     float64 `json:"hot_storage"`
	ColdStorage    float64 `json:"cold_storage"`
	HeatExchangers float64 `json:"heat_exchangers"`
	EquipmentTotal float64 `json:"equipment_total"`
	BOP            float64 `json:"bop"`
	Installation   float64 `json:"installation"`
	Total          float64 `json:"total"`
	PerKW          float64 `json:"per_kW"`
	PerKWh         float64 `json:"per_kWh"`
}

// Cashflow is one representative operating year.
type Cashflow struct {
	Maintenance     float64 `json:"maintenance"`
	Insurance       float64 `json:"insurance"`
	ElectricityCost float64 `json:"electricity_cost"`
	TotalOpex       float64 `json:"total_opex"`
	EnergyRevenue   float64 `json:"energy_revenue"`
	CapacityRevenue float64 `json:"capacity_revenue"`
	TotalRevenue    float64 `json:"total_revenue"`
	NetCashFlow     float64 `json:"net_cash_flow"`
	EnergyInMWh     float64 `json:"energy_in_MWh"`
	EnergyOutMWh    float64 `json:"energy_out_MWh"`
}

// Analysis bundles the full economic result.
type Analysis struct {
	CAPEX    CAPEX    `json:"capex"`
	Cashflow Cashflow `json:"cashflow"`

	NPV          float64 `json:"npv"`
	PaybackYears float64 `json:"payback_years"`
	LCOSPerMWh   float64 `json:"lcos_per_MWh"`
	RTE          float64 `json:"rte"`
}

// MarshalJSON emits null for an infinite payback or LCOS; IEEE infinities
// have no JSON encoding.
func (a Analysis) MarshalJSON() ([]byte, error) {
	type alias Analysis
	out := struct {
		alias
		PaybackYears *float64 `json:"payback_years"`
		LCOSPerMWh   *float64 `json:"lcos_per_MWh"`
	}{alias: alias(a)}
	if !math.IsInf(a.PaybackYears, 0) {
		v := a.PaybackYears
		out.PaybackYears = &v
	}
	if !math.IsInf(a.LCOSPerMWh, 0) {
		v := a.LCOSPerMWh
		out.LCOSPerMWh = &v
	}
	return json.Marshal(out)
}

// ComputeCAPEX sizes the plant components from the discharge-cycle heat and
// cold duties and prices them parametrically.
func ComputeCAPEX(cfg *config.Plant, dis thermo.DischargeResult) CAPEX {
	tankM3 := cfg.TankCapacityM3()
	hotStorageKWh := cfg.TankCapacityKg() * dis.HeatConsumedJPerKg / joulesPerKWh
	coldStorageKWh := cfg.TankCapacityKg() * dis.ColdRecoverableJPerKg / joulesPerKWh

	c := CAPEX{
		Compressor:  compressorPerKW * cfg.ChargePowerKW(),
		Turbine:     turbinePerKW * cfg.DischargePowerKW(),
		CryoTank:    cryoTankPerM3 * tankM3,
		HotStorage:  hotStoragePerKWh * hotStorageKWh,
		ColdStorage: coldStoragePerKWh * coldStorageKWh,
	}
	c.HeatExchangers = hxPerKWThermal * hotStorageKWh / cfg.StorageDurationHours
	c.EquipmentTotal = c.Compressor + c.Turbine + c.CryoTank + c.HotStorage + c.ColdStorage + c.HeatExchangers
	c.BOP = c.EquipmentTotal * bopFraction
	c.Installation = c.EquipmentTotal * installFraction
	c.Total = c.EquipmentTotal + c.BOP + c.Installation
	c.PerKW = c.Total / cfg.DischargePowerKW()
	c.PerKWh = c.Total / (cfg.StorageCapacityMWh() * 1000)
	return c
}

// ComputeCashflow builds one representative operating year from the daily
// cycle count, the arbitrage spread and the capacity payment.
func ComputeCashflow(cfg *config.Plant, capex CAPEX, rte float64, cyclesPerYear int) Cashflow {
	if cyclesPerYear <= 0 {
		cyclesPerYear = defaultCyclesPerYear
	}

	cf := Cashflow{
		Maintenance: capex.Total * maintenanceFraction,
		Insurance:   capex.Total * insuranceFraction,
	}
	cf.EnergyInMWh = cfg.ChargePowerMW * cfg.StorageDurationHours * float64(cyclesPerYear)
	cf.EnergyOutMWh = cf.EnergyInMWh * rte

	cf.ElectricityCost = cf.EnergyInMWh * cfg.PriceOffpeakMWh
	cf.TotalOpex = cf.Maintenance + cf.Insurance + cf.ElectricityCost

	cf.EnergyRevenue = cf.EnergyOutMWh * cfg.PriceOnpeakMWh
	cf.CapacityRevenue = cfg.DischargePowerKW() * capacityPaymentPerKWYear
	cf.TotalRevenue = cf.EnergyRevenue + cf.CapacityRevenue
	cf.NetCashFlow = cf.TotalRevenue - cf.TotalOpex
	return cf
}

// Compute runs the full analysis. The RTE is taken from the coupled cycle
// solution with cold recycle.
func Compute(air airprops.Provider, cfg *config.Plant) (Analysis, error) {
	rteRes, err := thermo.RTE(air, cfg)
	if err != nil {
		return Analysis{}, err
	}
	return ComputeWithRTE(cfg, rteRes.Discharge, rteRes.RTEWithCold), nil
}

// ComputeWithRTE runs the analysis against an externally supplied efficiency,
// e.g. one observed in a transient run.
func ComputeWithRTE(cfg *config.Plant, dis thermo.DischargeResult, rte float64) Analysis {
	capex := ComputeCAPEX(cfg, dis)
	cashflow := ComputeCashflow(cfg, capex, rte, defaultCyclesPerYear)

	r := cfg.DiscountRate
	n := cfg.ProjectYears

	// Capital recovery factor for levelizing the CAPEX.
	crf := r * math.Pow(1+r, float64(n)) / (math.Pow(1+r, float64(n)) - 1)

	npv := -capex.Total
	for year := 1; year <= n; year++ {
		degradation := math.Pow(annualDegradation, float64(year))
		npv += cashflow.NetCashFlow * degradation / math.Pow(1+r, float64(year))
	}

	payback := math.Inf(1)
	if cashflow.NetCashFlow > 0 {
		payback = capex.Total / cashflow.NetCashFlow
	}

	lcos := math.Inf(1)
	if cashflow.EnergyOutMWh > 0 {
		annualCost := capex.Total*crf + cashflow.TotalOpex
		lcos = annualCost / cashflow.EnergyOutMWh
	}

	return Analysis{
		CAPEX:        capex,
		Cashflow:     cashflow,
		NPV:          npv,
		PaybackYears: payback,
		LCOSPerMWh:   lcos,
		RTE:          rte,
	}
}
