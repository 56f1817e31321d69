package sim

// TimeStepRecord is an immutable snapshot of one simulated step. Appended
// sequentially by the simulator; read-only to downstream consumers. Storage
// states reflect the post-loss end of the step.
type TimeStepRecord struct {
	TimeHours float64 `json:"time_hours"`
	Mode      Mode    `json:"mode"`

	PowerInKW  float64 `json:"power_in_kw"`
	PowerOutKW float64 `json:"power_out_kw"`

	TankLevelPct float64 `json:"tank_level_pct"`
	HotSOCPct    float64 `json:"hot_soc_pct"`
	ColdSOCPct   float64 `json:"cold_soc_pct"`

	LiquidProducedKg float64 `json:"liquid_produced_kg"`
	LiquidConsumedKg float64 `json:"liquid_consumed_kg"`
	BoiloffKg        float64 `json:"boiloff_kg"`

	EnergyInKWh  float64 `json:"energy_in_kwh"`
	EnergyOutKWh float64 `json:"energy_out_kwh"`
}

// Result aggregates a full schedule run. Subsystem efficiencies are
// 1 - cumulative_loss / cumulative_throughput.
type Result struct {
	TotalEnergyInKWh      float64 `json:"total_energy_in_kWh"`
	TotalEnergyOutKWh     float64 `json:"total_energy_out_kWh"`
	RoundTripEfficiency   float64 `json:"round_trip_efficiency"`
	TankEfficiency        float64 `json:"tank_efficiency"`
	HotStorageEfficiency  float64 `json:"hot_storage_efficiency"`
	ColdStorageEfficiency float64 `json:"cold_storage_efficiency"`
	TotalLiquidProducedKg float64 `json:"total_liquid_produced_kg"`
	TotalLiquidConsumedKg float64 `json:"total_liquid_consumed_kg"`
	TotalBoiloffKg        float64 `json:"total_boiloff_kg"`
	FinalTankLevelPct     float64 `json:"final_tank_level_pct"`
}
