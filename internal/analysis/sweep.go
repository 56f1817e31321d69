// Package analysis runs parameter sweeps over the coupled cycle model, for
// sensitivity studies and design-point screening.
package analysis

import (
	"fmt"
	"sort"
	"sync"

	"laes-sim/internal/airprops"
	"laes-sim/internal/config"
	"laes-sim/internal/thermo"
)

// SweepPoint is one evaluated parameter value. A point where the cycle is
// infeasible carries Err and zeroed metrics.
type SweepPoint struct {
	Value        float64 `json:"value"`
	RTENoCold    float64 `json:"rte_no_cold"`
	RTEWithCold  float64 `json:"rte_with_cold"`
	LiquidYield  float64 `json:"liquid_yield"`
	ErrorMessage string  `json:"error,omitempty"`

	Err error `json:"-"`
}

// paramSetters maps sweepable parameter names to config mutations. Each
// setter works on a private copy.
var paramSetters = map[string]func(*config.Plant, float64){
	"hx_effectiveness":        func(c *config.Plant, v float64) { c.HXEffectiveness = v },
	"eta_compressor":          func(c *config.Plant, v float64) { c.EtaCompressor = v },
	"eta_turbine":             func(c *config.Plant, v float64) { c.EtaTurbine = v },
	"eta_cryo_turbine":        func(c *config.Plant, v float64) { c.EtaCryoTurbine = v },
	"eta_pump":                func(c *config.Plant, v float64) { c.EtaPump = v },
	"p_charge_bar":            func(c *config.Plant, v float64) { c.PChargeBar = v },
	"p_discharge_bar":         func(c *config.Plant, v float64) { c.PDischargeBar = v },
	"bypass_fraction":         func(c *config.Plant, v float64) { c.BypassFraction = v },
	"t_superheat_c":           func(c *config.Plant, v float64) { c.TSuperheatC = v },
	"t_ambient_c":             func(c *config.Plant, v float64) { c.TAmbientC = v },
	"cold_storage_efficiency": func(c *config.Plant, v float64) { c.ColdStorageEfficiency = v },
}

// SweepableParams lists the parameter names accepted by Sweep, sorted.
func SweepableParams() []string {
	names := make([]string, 0, len(paramSetters))
	for name := range paramSetters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sweep evaluates the coupled RTE across values of one named parameter,
// fanning the points out over at most workers goroutines. Results come back
// in input order. Infeasible points are reported per-point, not as a sweep
// failure.
func Sweep(air airprops.Provider, base *config.Plant, param string, values []float64, workers int) ([]SweepPoint, error) {
	setter, ok := paramSetters[param]
	if !ok {
		return nil, fmt.Errorf("unknown sweep parameter %q (see SweepableParams)", param)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no sweep values given")
	}
	if workers <= 0 {
		workers = 4
	}
	if workers > len(values) {
		workers = len(values)
	}

	points := make([]SweepPoint, len(values))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				points[i] = evalPoint(air, base, setter, values[i])
			}
		}()
	}
	for i := range values {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return points, nil
}

func evalPoint(air airprops.Provider, base *config.Plant, setter func(*config.Plant, float64), value float64) SweepPoint {
	cfg := *base
	setter(&cfg, value)

	pt := SweepPoint{Value: value}
	if err := cfg.Validate(); err != nil {
		pt.Err = err
		pt.ErrorMessage = err.Error()
		return pt
	}
	res, err := thermo.RTE(air, &cfg)
	if err != nil {
		pt.Err = err
		pt.ErrorMessage = err.Error()
		return pt
	}
	pt.RTENoCold = res.RTENoCold
	pt.RTEWithCold = res.RTEWithCold
	pt.LiquidYield = res.LiquefactionWithCold.LiquidYield
	return pt
}
