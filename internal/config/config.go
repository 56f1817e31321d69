package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Physical constants. Read-only, never mutated after startup.
const (
	SecondsPerHour = 3600.0
	HoursPerDay    = 24.0
	HoursPerYear   = 8760.0

	// PAmbientPa is standard atmospheric pressure.
	PAmbientPa = 101325.0

	// TIntercoolK is the intercooler outlet temperature, fixed at 35°C.
	// Standard industrial intercooling target.
	TIntercoolK = 308.15

	// RhoLiquidAir is the density of liquid air at its boiling point [kg/m³].
	RhoLiquidAir = 875.0
)

// Plant is the complete LAES plant configuration (YAML shape).
// Units follow the field suffixes: MW, hours, tonnes, %, bar, °C.
// Derived quantities (kW, Pa, K, 1/s) are pure functions of these base
// fields, recomputed on read.
type Plant struct {
	// Plant sizing
	ChargePowerMW        float64 `yaml:"charge_power_mw"`
	DischargePowerMW     float64 `yaml:"discharge_power_mw"`
	StorageDurationHours float64 `yaml:"storage_duration_hours"`

	// Tank
	TankCapacityTonnes float64 `yaml:"tank_capacity_tonnes"`
	TankMinLevelPct    float64 `yaml:"tank_min_level_pct"`
	BoiloffPctPerDay   float64 `yaml:"boiloff_pct_per_day"`

	// Cycle parameters
	PChargeBar        float64 `yaml:"p_charge_bar"`
	PDischargeBar     float64 `yaml:"p_discharge_bar"`
	TAmbientC         float64 `yaml:"t_ambient_c"`
	TSuperheatC       float64 `yaml:"t_superheat_c"`
	NCompressorStages int     `yaml:"n_compressor_stages"`
	NTurbineStages    int     `yaml:"n_turbine_stages"`
	BypassFraction    float64 `yaml:"bypass_fraction"`

	// Component efficiencies
	EtaCompressor   float64 `yaml:"eta_compressor"`
	EtaCryoTurbine  float64 `yaml:"eta_cryo_turbine"`
	EtaTurbine      float64 `yaml:"eta_turbine"`
	EtaPump         float64 `yaml:"eta_pump"`
	HXEffectiveness float64 `yaml:"hx_effectiveness"`

	// Thermal storage
	HotStorageLossPctPerDay  float64 `yaml:"hot_storage_loss_pct_per_day"`
	HotStorageEfficiency     float64 `yaml:"hot_storage_efficiency"`
	ColdStorageLossPctPerDay float64 `yaml:"cold_storage_loss_pct_per_day"`
	ColdStorageEfficiency    float64 `yaml:"cold_storage_efficiency"`

	// Economics
	PriceOffpeakMWh float64 `yaml:"price_offpeak_mwh"`
	PriceOnpeakMWh  float64 `yaml:"price_onpeak_mwh"`
	DiscountRate    float64 `yaml:"discount_rate"`
	ProjectYears    int     `yaml:"project_years"`
}

// Default returns the reference plant configuration: a 10 MW / 4 h plant with
// a 200 t tank, 50 bar Claude-cycle charge pressure and a 70 bar recovery
// cycle with 4 reheat turbine stages.
func Default() Plant {
	return Plant{
		ChargePowerMW:        10.0,
		DischargePowerMW:     10.0,
		StorageDurationHours: 4.0,

		TankCapacityTonnes: 200.0,
		TankMinLevelPct:    10.0,
		BoiloffPctPerDay:   0.2,

		PChargeBar:        50.0,
		PDischargeBar:     70.0,
		TAmbientC:         25.0,
		TSuperheatC:       250.0,
		NCompressorStages: 3,
		NTurbineStages:    4,
		BypassFraction:    0.45,

		EtaCompressor:   0.85,
		EtaCryoTurbine:  0.80,
		EtaTurbine:      0.85,
		EtaPump:         0.75,
		HXEffectiveness: 0.90,

		HotStorageLossPctPerDay:  1.0,
		HotStorageEfficiency:     0.90,
		ColdStorageLossPctPerDay: 5.0,
		ColdStorageEfficiency:    0.85,

		PriceOffpeakMWh: 30.0,
		PriceOnpeakMWh:  80.0,
		DiscountRate:    0.08,
		ProjectYears:    25,
	}
}

// Load reads a YAML plant file over the defaults and validates the result.
// Fields absent from the file keep their default values.
func Load(path string) (*Plant, error) {
	p, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("plant config invalid: %w", err)
	}
	return p, nil
}

// LoadUnchecked loads a plant file without validating it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Plant, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := Default()
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Merge overlays non-zero fields from override onto base.
// Used when applying request-level overrides onto the default plant.
// Note: zero is a meaningful value for a few fields (e.g. boiloff rate); a
// request wanting an explicit zero should send a full config instead.
func Merge(base, override Plant) Plant {
	out := base
	if override.ChargePowerMW != 0 {
		out.ChargePowerMW = override.ChargePowerMW
	}
	if override.DischargePowerMW != 0 {
		out.DischargePowerMW = override.DischargePowerMW
	}
	if override.StorageDurationHours != 0 {
		out.StorageDurationHours = override.StorageDurationHours
	}
	if override.TankCapacityTonnes != 0 {
		out.TankCapacityTonnes = override.TankCapacityTonnes
	}
	if override.TankMinLevelPct != 0 {
		out.TankMinLevelPct = override.TankMinLevelPct
	}
	if override.BoiloffPctPerDay != 0 {
		out.BoiloffPctPerDay = override.BoiloffPctPerDay
	}
	if override.PChargeBar != 0 {
		out.PChargeBar = override.PChargeBar
	}
	if override.PDischargeBar != 0 {
		out.PDischargeBar = override.PDischargeBar
	}
	if override.TAmbientC != 0 {
		out.TAmbientC = override.TAmbientC
	}
	if override.TSuperheatC != 0 {
		out.TSuperheatC = override.TSuperheatC
	}
	if override.NCompressorStages != 0 {
		out.NCompressorStages = override.NCompressorStages
	}
	if override.NTurbineStages != 0 {
		out.NTurbineStages = override.NTurbineStages
	}
	if override.BypassFraction != 0 {
		out.BypassFraction = override.BypassFraction
	}
	if override.EtaCompressor != 0 {
		out.EtaCompressor = override.EtaCompressor
	}
	if override.EtaCryoTurbine != 0 {
		out.EtaCryoTurbine = override.EtaCryoTurbine
	}
	if override.EtaTurbine != 0 {
		out.EtaTurbine = override.EtaTurbine
	}
	if override.EtaPump != 0 {
		out.EtaPump = override.EtaPump
	}
	if override.HXEffectiveness != 0 {
		out.HXEffectiveness = override.HXEffectiveness
	}
	if override.HotStorageLossPctPerDay != 0 {
		out.HotStorageLossPctPerDay = override.HotStorageLossPctPerDay
	}
	if override.HotStorageEfficiency != 0 {
		out.HotStorageEfficiency = override.HotStorageEfficiency
	}
	if override.ColdStorageLossPctPerDay != 0 {
		out.ColdStorageLossPctPerDay = override.ColdStorageLossPctPerDay
	}
	if override.ColdStorageEfficiency != 0 {
		out.ColdStorageEfficiency = override.ColdStorageEfficiency
	}
	if override.PriceOffpeakMWh != 0 {
		out.PriceOffpeakMWh = override.PriceOffpeakMWh
	}
	if override.PriceOnpeakMWh != 0 {
		out.PriceOnpeakMWh = override.PriceOnpeakMWh
	}
	if override.DiscountRate != 0 {
		out.DiscountRate = override.DiscountRate
	}
	if override.ProjectYears != 0 {
		out.ProjectYears = override.ProjectYears
	}
	return out
}

// Validate rejects configurations that cannot describe a physical plant.
// Called once at construction; runtime conditions degrade gracefully instead.
func (p *Plant) Validate() error {
	if p == nil {
		return errors.New("config is nil")
	}
	if p.ChargePowerMW <= 0 {
		return errors.New("charge_power_mw must be > 0")
	}
	if p.DischargePowerMW <= 0 {
		return errors.New("discharge_power_mw must be > 0")
	}
	if p.StorageDurationHours <= 0 {
		return errors.New("storage_duration_hours must be > 0")
	}
	if p.TankCapacityTonnes <= 0 {
		return errors.New("tank_capacity_tonnes must be > 0")
	}
	if p.TankMinLevelPct < 0 || p.TankMinLevelPct >= 100 {
		return errors.New("tank_min_level_pct must be in [0, 100)")
	}
	if p.BoiloffPctPerDay < 0 {
		return errors.New("boiloff_pct_per_day must be >= 0")
	}
	if p.PChargePa() <= PAmbientPa {
		return errors.New("p_charge_bar must exceed ambient pressure")
	}
	if p.PDischargePa() <= PAmbientPa {
		return errors.New("p_discharge_bar must exceed ambient pressure")
	}
	if p.NCompressorStages < 1 {
		return errors.New("n_compressor_stages must be >= 1")
	}
	if p.NTurbineStages < 1 {
		return errors.New("n_turbine_stages must be >= 1")
	}
	if p.BypassFraction < 0 || p.BypassFraction >= 1 {
		return errors.New("bypass_fraction must be in [0, 1)")
	}
	for _, eta := range []struct {
		name string
		val  float64
	}{
		{"eta_compressor", p.EtaCompressor},
		{"eta_cryo_turbine", p.EtaCryoTurbine},
		{"eta_turbine", p.EtaTurbine},
		{"eta_pump", p.EtaPump},
		{"hx_effectiveness", p.HXEffectiveness},
		{"hot_storage_efficiency", p.HotStorageEfficiency},
		{"cold_storage_efficiency", p.ColdStorageEfficiency},
	} {
		if eta.val <= 0 || eta.val > 1 {
			return fmt.Errorf("%s must be in (0, 1]", eta.name)
		}
	}
	if p.HotStorageLossPctPerDay < 0 || p.ColdStorageLossPctPerDay < 0 {
		return errors.New("storage loss rates must be >= 0")
	}
	if p.PriceOffpeakMWh < 0 || p.PriceOnpeakMWh < 0 {
		return errors.New("electricity prices must be >= 0")
	}
	if p.DiscountRate < 0 {
		return errors.New("discount_rate must be >= 0")
	}
	if p.ProjectYears < 1 {
		return errors.New("project_years must be >= 1")
	}
	return nil
}

// Derived quantities. Pure functions of the base fields.

func (p *Plant) ChargePowerKW() float64    { return p.ChargePowerMW * 1000 }
func (p *Plant) DischargePowerKW() float64 { return p.DischargePowerMW * 1000 }

// StorageCapacityMWh is the nominal storage capacity at full discharge.
func (p *Plant) StorageCapacityMWh() float64 {
	return p.DischargePowerMW * p.StorageDurationHours
}

func (p *Plant) TankCapacityKg() float64 { return p.TankCapacityTonnes * 1000 }
func (p *Plant) TankCapacityM3() float64 { return p.TankCapacityKg() / RhoLiquidAir }

func (p *Plant) PChargePa() float64    { return p.PChargeBar * 1e5 }
func (p *Plant) PDischargePa() float64 { return p.PDischargeBar * 1e5 }

func (p *Plant) TAmbientK() float64   { return p.TAmbientC + 273.15 }
func (p *Plant) TSuperheatK() float64 { return p.TSuperheatC + 273.15 }

func (p *Plant) BoiloffRatePerS() float64 {
	return (p.BoiloffPctPerDay / 100) / (HoursPerDay * SecondsPerHour)
}

func (p *Plant) HotLossRatePerS() float64 {
	return (p.HotStorageLossPctPerDay / 100) / (HoursPerDay * SecondsPerHour)
}

func (p *Plant) ColdLossRatePerS() float64 {
	return (p.ColdStorageLossPctPerDay / 100) / (HoursPerDay * SecondsPerHour)
}

// Summary returns a human-readable configuration report.
func (p *Plant) Summary() string {
	return fmt.Sprintf(`LAES Plant Configuration
  Charge Power:       %.1f MW
  Discharge Power:    %.1f MW
  Storage Duration:   %.1f h (%.1f MWh)
  Tank Capacity:      %.0f t (%.0f m³), min level %.0f%%, boil-off %.2f%%/day
  Charge Pressure:    %.0f bar (%d stages, bypass %.2f)
  Discharge Pressure: %.0f bar (%d stages, superheat %.0f°C)
  Efficiencies:       comp %.0f%%, turb %.0f%%, cryo-turb %.0f%%, pump %.0f%%, HX %.0f%%
  Hot Store:          %.1f%%/day loss, η %.0f%%
  Cold Store:         %.1f%%/day loss, η %.0f%%
  Prices:             $%.0f/MWh off-peak, $%.0f/MWh on-peak
  Economics:          %.0f%% discount, %d years`,
		p.ChargePowerMW, p.DischargePowerMW,
		p.StorageDurationHours, p.StorageCapacityMWh(),
		p.TankCapacityTonnes, p.TankCapacityM3(), p.TankMinLevelPct, p.BoiloffPctPerDay,
		p.PChargeBar, p.NCompressorStages, p.BypassFraction,
		p.PDischargeBar, p.NTurbineStages, p.TSuperheatC,
		p.EtaCompressor*100, p.EtaTurbine*100, p.EtaCryoTurbine*100, p.EtaPump*100, p.HXEffectiveness*100,
		p.HotStorageLossPctPerDay, p.HotStorageEfficiency*100,
		p.ColdStorageLossPctPerDay, p.ColdStorageEfficiency*100,
		p.PriceOffpeakMWh, p.PriceOnpeakMWh,
		p.DiscountRate*100, p.ProjectYears)
}
