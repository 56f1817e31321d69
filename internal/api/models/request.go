package models

// ConfigOverride mirrors the plant configuration as an optional JSON
// overlay. Zero fields keep their defaults; the handler merges it onto the
// default plant before validation.
type ConfigOverride struct {
	ChargePowerMW        float64 `json:"charge_power_mw,omitempty"`
	DischargePowerMW     float64 `json:"discharge_power_mw,omitempty"`
	StorageDurationHours float64 `json:"storage_duration_hours,omitempty"`

	TankCapacityTonnes float64 `json:"tank_capacity_tonnes,omitempty"`
	TankMinLevelPct    float64 `json:"tank_min_level_pct,omitempty"`
	BoiloffPctPerDay   float64 `json:"boiloff_pct_per_day,omitempty"`

	PChargeBar        float64 `json:"p_charge_bar,omitempty"`
	PDischargeBar     float64 `json:"p_discharge_bar,omitempty"`
	TAmbientC         float64 `json:"t_ambient_c,omitempty"`
	TSuperheatC       float64 `json:"t_superheat_c,omitempty"`
	NCompressorStages int     `json:"n_compressor_stages,omitempty"`
	NTurbineStages    int     `json:"n_turbine_stages,omitempty"`
	BypassFraction    float64 `json:"bypass_fraction,omitempty"`

	EtaCompressor   float64 `json:"eta_compressor,omitempty"`
	EtaCryoTurbine  float64 `json:"eta_cryo_turbine,omitempty"`
	EtaTurbine      float64 `json:"eta_turbine,omitempty"`
	EtaPump         float64 `json:"eta_pump,omitempty"`
	HXEffectiveness float64 `json:"hx_effectiveness,omitempty"`

	HotStorageLossPctPerDay  float64 `json:"hot_storage_loss_pct_per_day,omitempty"`
	HotStorageEfficiency     float64 `json:"hot_storage_efficiency,omitempty"`
	ColdStorageLossPctPerDay float64 `json:"cold_storage_loss_pct_per_day,omitempty"`
	ColdStorageEfficiency    float64 `json:"cold_storage_efficiency,omitempty"`

	PriceOffpeakMWh float64 `json:"price_offpeak_mwh,omitempty"`
	PriceOnpeakMWh  float64 `json:"price_onpeak_mwh,omitempty"`
	DiscountRate    float64 `json:"discount_rate,omitempty"`
	ProjectYears    int     `json:"project_years,omitempty"`
}

// RTERequest is the body of POST /api/v1/rte.
type RTERequest struct {
	Config *ConfigOverride `json:"config,omitempty"`
}

// SchedulePhase is one schedule entry in a simulate request.
type SchedulePhase struct {
	Mode          string  `json:"mode" binding:"required"`
	DurationHours float64 `json:"duration_hours" binding:"required"`
}

// SimulateRequest is the body of POST /api/v1/simulate. Either a named
// predefined schedule or an explicit phase list; an explicit list wins.
type SimulateRequest struct {
	Config         *ConfigOverride `json:"config,omitempty"`
	Schedule       []SchedulePhase `json:"schedule,omitempty"`
	ScheduleName   string          `json:"schedule_name,omitempty"`
	DtHours        float64         `json:"dt_hours,omitempty"`
	InitialTankPct float64         `json:"initial_tank_pct,omitempty"`
	IncludeHistory bool            `json:"include_history,omitempty"`
}

// EconomicsRequest is the body of POST /api/v1/economics.
type EconomicsRequest struct {
	Config *ConfigOverride `json:"config,omitempty"`
}

// SweepRequest binds the query parameters of GET /api/v1/sweep.
type SweepRequest struct {
	Param string  `form:"param" binding:"required"`
	From  float64 `form:"from" binding:"required"`
	To    float64 `form:"to" binding:"required"`
	Steps int     `form:"steps,omitempty"`
}
