package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"laes-sim/internal/airprops"
	"laes-sim/internal/config"
	"laes-sim/internal/econ"
	"laes-sim/internal/sim"
	"laes-sim/internal/thermo"
)

// Demo:
// - Load a plant configuration (defaults or --config YAML)
// - Solve both cycles and print the coupled RTE
// - Run a one-day schedule and print the energy balance
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	scheduleName := flag.String("schedule", "default", "Predefined schedule name")
	dt := flag.Float64("dt", 1, "Time step in hours")
	outCSV := flag.String("out", "", "Optional path to write history CSV")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		cfg = *loaded
	}

	air := airprops.New()

	fmt.Println(cfg.Summary())

	// Steady-state cycles.
	rte, err := thermo.RTE(air, &cfg)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Liquid yield:        %.4f (no cold) -> %.4f (with cold)\n",
		rte.LiquefactionNoCold.LiquidYield, rte.LiquefactionWithCold.LiquidYield)
	fmt.Printf("Specific consumption: %.4f kWh/kg\n", rte.LiquefactionWithCold.SpecificConsumptionKWhPerKg)
	fmt.Printf("Discharge net work:   %.4f kWh/kg\n", rte.Discharge.NetWorkKWhPerKg)
	fmt.Printf("RTE:                  %.1f%% -> %.1f%% with cold recycle\n\n",
		rte.RTENoCold*100, rte.RTEWithCold*100)

	// Transient run.
	schedule, ok := sim.PredefinedSchedule(*scheduleName)
	if !ok {
		panic(fmt.Sprintf("unknown schedule %q", *scheduleName))
	}
	simulator, err := sim.New(air, &cfg)
	if err != nil {
		panic(err)
	}
	res, err := simulator.Run(context.Background(), schedule, *dt, sim.DefaultInitialTankPct)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Schedule %q: %.0f kWh in, %.0f kWh out (RTE %.1f%%), tank %.1f%% -> done\n",
		*scheduleName, res.TotalEnergyInKWh, res.TotalEnergyOutKWh,
		res.RoundTripEfficiency*100, res.FinalTankLevelPct)

	if *outCSV != "" {
		f, err := os.Create(*outCSV)
		if err != nil {
			panic(err)
		}
		defer f.Close()
		if err := sim.WriteHistoryCSV(f, simulator.History()); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote %d steps to %s\n", len(simulator.History()), *outCSV)
	}

	// Screening economics off the coupled RTE.
	analysis := econ.ComputeWithRTE(&cfg, rte.Discharge, rte.RTEWithCold)
	fmt.Printf("CAPEX $%.0f, NPV $%.0f, payback %.1f years\n",
		analysis.CAPEX.Total, analysis.NPV, analysis.PaybackYears)
}
