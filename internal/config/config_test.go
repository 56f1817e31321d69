package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestDerivedQuantities(t *testing.T) {
	cfg := Default()

	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"charge power kW", cfg.ChargePowerKW(), 10000},
		{"discharge power kW", cfg.DischargePowerKW(), 10000},
		{"storage capacity MWh", cfg.StorageCapacityMWh(), 40},
		{"tank capacity kg", cfg.TankCapacityKg(), 200000},
		{"charge pressure Pa", cfg.PChargePa(), 5e6},
		{"discharge pressure Pa", cfg.PDischargePa(), 7e6},
		{"ambient temperature K", cfg.TAmbientK(), 298.15},
		{"superheat temperature K", cfg.TSuperheatK(), 523.15},
	}
	for _, c := range cases {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s: got %v, want %v", c.name, c.got, c.want)
		}
	}

	// 0.2%/day boiloff as a per-second decay rate.
	wantRate := 0.002 / 86400
	if math.Abs(cfg.BoiloffRatePerS()-wantRate) > 1e-15 {
		t.Errorf("boiloff rate: got %v, want %v", cfg.BoiloffRatePerS(), wantRate)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Plant)
		substr string
	}{
		{"zero charge power", func(p *Plant) { p.ChargePowerMW = 0 }, "charge_power_mw"},
		{"negative duration", func(p *Plant) { p.StorageDurationHours = -1 }, "storage_duration_hours"},
		{"min level too high", func(p *Plant) { p.TankMinLevelPct = 100 }, "tank_min_level_pct"},
		{"charge pressure at ambient", func(p *Plant) { p.PChargeBar = 1 }, "p_charge_bar"},
		{"zero compressor stages", func(p *Plant) { p.NCompressorStages = 0 }, "n_compressor_stages"},
		{"bypass fraction of one", func(p *Plant) { p.BypassFraction = 1 }, "bypass_fraction"},
		{"hx above one", func(p *Plant) { p.HXEffectiveness = 1.5 }, "hx_effectiveness"},
		{"zero pump efficiency", func(p *Plant) { p.EtaPump = 0 }, "eta_pump"},
		{"negative boiloff", func(p *Plant) { p.BoiloffPctPerDay = -1 }, "boiloff_pct_per_day"},
		{"zero project years", func(p *Plant) { p.ProjectYears = 0 }, "project_years"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), c.substr) {
				t.Fatalf("error %q does not name %q", err, c.substr)
			}
		})
	}
}

func TestMergeOverlaysNonZeroFields(t *testing.T) {
	base := Default()
	merged := Merge(base, Plant{PChargeBar: 60, EtaCompressor: 0.9})

	if merged.PChargeBar != 60 {
		t.Fatalf("override not applied: %v", merged.PChargeBar)
	}
	if merged.EtaCompressor != 0.9 {
		t.Fatalf("override not applied: %v", merged.EtaCompressor)
	}
	if merged.DischargePowerMW != base.DischargePowerMW {
		t.Fatal("untouched field must keep its default")
	}
	if merged.HXEffectiveness != base.HXEffectiveness {
		t.Fatal("untouched field must keep its default")
	}
}

func TestLoadOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plant.yaml")
	data := "charge_power_mw: 20\np_charge_bar: 60\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ChargePowerMW != 20 {
		t.Fatalf("charge_power_mw: got %v, want 20", cfg.ChargePowerMW)
	}
	if cfg.PChargeBar != 60 {
		t.Fatalf("p_charge_bar: got %v, want 60", cfg.PChargeBar)
	}
	if cfg.EtaCompressor != Default().EtaCompressor {
		t.Fatal("absent fields must keep defaults")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plant.yaml")
	if err := os.WriteFile(path, []byte("hx_effectiveness: 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected invalid config to be rejected")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSummaryNamesKeyParameters(t *testing.T) {
	cfg := Default()
	s := cfg.Summary()
	for _, want := range []string{"10.0 MW", "50 bar", "200 t"} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary missing %q:\n%s", want, s)
		}
	}
}
