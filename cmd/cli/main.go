package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"laes-sim/internal/airprops"
	"laes-sim/internal/analysis"
	"laes-sim/internal/config"
	"laes-sim/internal/econ"
	"laes-sim/internal/sim"
	"laes-sim/internal/thermo"
)

var (
	configPath string
	jsonOut    bool
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	good    = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "laes",
		Short: "LAES plant performance model",
		Long: `Liquid air energy storage plant model: coupled liquefaction and
power-recovery cycles, transient schedule simulation, and screening-level
economics.`,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "plant configuration YAML (defaults used when omitted)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "emit raw JSON instead of a formatted report")

	rootCmd.AddCommand(rteCmd())
	rootCmd.AddCommand(simulateCmd())
	rootCmd.AddCommand(econCmd())
	rootCmd.AddCommand(sweepCmd())
	rootCmd.AddCommand(schedulesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Plant, error) {
	if configPath == "" {
		cfg := config.Default()
		return &cfg, nil
	}
	return config.Load(configPath)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func rteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rte",
		Short: "Solve the coupled cycles and report round-trip efficiency",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			res, err := thermo.RTE(airprops.New(), cfg)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(res)
			}

			heading.Println("Round-Trip Efficiency")
			fmt.Println(cfg.Summary())
			fmt.Printf("  Liquid yield (no cold):    %.4f\n", res.LiquefactionNoCold.LiquidYield)
			fmt.Printf("  Liquid yield (with cold):  %.4f\n", res.LiquefactionWithCold.LiquidYield)
			fmt.Printf("  Specific consumption:      %.4f kWh/kg\n", res.LiquefactionWithCold.SpecificConsumptionKWhPerKg)
			fmt.Printf("  Discharge net work:        %.4f kWh/kg\n", res.Discharge.NetWorkKWhPerKg)
			fmt.Printf("  RTE without cold recycle:  %.1f%%\n", res.RTENoCold*100)
			good.Printf("  RTE with cold recycle:     %.1f%%\n", res.RTEWithCold*100)
			fmt.Printf("  Cold recycle benefit:      +%.1f%%\n", res.ImprovementPct)
			for _, w := range res.LiquefactionWithCold.Warnings {
				warn.Printf("  warning: %s\n", w)
			}
			return nil
		},
	}
}

func simulateCmd() *cobra.Command {
	var (
		dtHours        float64
		initialTankPct float64
		csvPath        string
	)
	cmd := &cobra.Command{
		Use:   "simulate [schedule]",
		Short: "Run a transient schedule simulation",
		Long: `Run the plant through an operating schedule with fixed time steps.

The schedule argument names a predefined schedule (see "laes schedules");
it defaults to "default".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "default"
			if len(args) == 1 {
				name = args[0]
			}
			schedule, ok := sim.PredefinedSchedule(name)
			if !ok {
				return fmt.Errorf("unknown schedule %q (available: %v)", name, sim.PredefinedNames())
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			simulator, err := sim.New(airprops.New(), cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := simulator.Run(ctx, schedule, dtHours, initialTankPct)
			if err != nil {
				return err
			}

			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := sim.WriteHistoryCSV(f, simulator.History()); err != nil {
					return err
				}
			}

			if jsonOut {
				return printJSON(res)
			}

			heading.Printf("Simulation: %s (%.0f h, dt=%.2f h)\n", name, schedule.TotalHours(), dtHours)
			fmt.Printf("  Energy in:           %.1f kWh\n", res.TotalEnergyInKWh)
			fmt.Printf("  Energy out:          %.1f kWh\n", res.TotalEnergyOutKWh)
			good.Printf("  Round-trip eff:      %.1f%%\n", res.RoundTripEfficiency*100)
			fmt.Printf("  Liquid produced:     %.0f kg\n", res.TotalLiquidProducedKg)
			fmt.Printf("  Liquid consumed:     %.0f kg\n", res.TotalLiquidConsumedKg)
			fmt.Printf("  Boil-off:            %.0f kg\n", res.TotalBoiloffKg)
			fmt.Printf("  Final tank level:    %.1f%%\n", res.FinalTankLevelPct)
			if csvPath != "" {
				fmt.Printf("  History written to %s (%d steps)\n", csvPath, len(simulator.History()))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&dtHours, "dt", 1, "time step in hours")
	cmd.Flags().Float64Var(&initialTankPct, "tank-pct", sim.DefaultInitialTankPct, "initial tank level in percent")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write per-step history CSV to this path")
	return cmd
}

func econCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "econ",
		Short: "Screening-level economic analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			res, err := econ.Compute(airprops.New(), cfg)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(res)
			}

			heading.Println("Capital Costs")
			fmt.Printf("  Compressor:        $%12.0f\n", res.CAPEX.Compressor)
			fmt.Printf("  Turbine:           $%12.0f\n", res.CAPEX.Turbine)
			fmt.Printf("  Cryogenic tank:    $%12.0f\n", res.CAPEX.CryoTank)
			fmt.Printf("  Hot storage:       $%12.0f\n", res.CAPEX.HotStorage)
			fmt.Printf("  Cold storage:      $%12.0f\n", res.CAPEX.ColdStorage)
			fmt.Printf("  Heat exchangers:   $%12.0f\n", res.CAPEX.HeatExchangers)
			fmt.Printf("  BOP + install:     $%12.0f\n", res.CAPEX.BOP+res.CAPEX.Installation)
			fmt.Printf("  Total:             $%12.0f  ($%.0f/kW, $%.0f/kWh)\n",
				res.CAPEX.Total, res.CAPEX.PerKW, res.CAPEX.PerKWh)

			heading.Println("Annual Cash Flow")
			fmt.Printf("  OPEX:              $%12.0f\n", res.Cashflow.TotalOpex)
			fmt.Printf("  Revenue:           $%12.0f\n", res.Cashflow.TotalRevenue)
			fmt.Printf("  Net:               $%12.0f\n", res.Cashflow.NetCashFlow)

			heading.Println("Metrics")
			fmt.Printf("  RTE:               %.1f%%\n", res.RTE*100)
			fmt.Printf("  NPV:               $%12.0f\n", res.NPV)
			if math.IsInf(res.PaybackYears, 1) {
				warn.Println("  Payback:           never (negative cash flow)")
			} else {
				fmt.Printf("  Payback:           %.1f years\n", res.PaybackYears)
			}
			if math.IsInf(res.LCOSPerMWh, 1) {
				warn.Println("  LCOS:              undefined (no energy delivered)")
			} else {
				fmt.Printf("  LCOS:              $%.0f/MWh\n", res.LCOSPerMWh)
			}
			return nil
		},
	}
}

func sweepCmd() *cobra.Command {
	var (
		from, to float64
		steps    int
		workers  int
	)
	cmd := &cobra.Command{
		Use:   "sweep <param>",
		Short: "Sweep one parameter and report RTE sensitivity",
		Long: fmt.Sprintf(`Evaluate the coupled cycles across a range of one parameter.

Sweepable parameters: %v`, analysis.SweepableParams()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 2 {
				return fmt.Errorf("steps must be >= 2")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			values := make([]float64, steps)
			for i := range values {
				values[i] = from + (to-from)*float64(i)/float64(steps-1)
			}
			points, err := analysis.Sweep(airprops.New(), cfg, args[0], values, workers)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(points)
			}

			heading.Printf("Sweep: %s in [%g, %g]\n", args[0], from, to)
			fmt.Printf("  %12s  %12s  %12s  %12s\n", "value", "rte_no_cold", "rte_with_cold", "yield")
			for _, pt := range points {
				if pt.Err != nil {
					warn.Printf("  %12.4f  infeasible: %s\n", pt.Value, pt.ErrorMessage)
					continue
				}
				fmt.Printf("  %12.4f  %12.4f  %12.4f  %12.4f\n",
					pt.Value, pt.RTENoCold, pt.RTEWithCold, pt.LiquidYield)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&from, "from", 0, "range start")
	cmd.Flags().Float64Var(&to, "to", 0, "range end")
	cmd.Flags().IntVar(&steps, "steps", 10, "number of points")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "parallel workers")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func schedulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedules",
		Short: "List predefined operating schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := sim.PredefinedNames()
			if jsonOut {
				out := map[string]sim.Schedule{}
				for _, name := range names {
					s, _ := sim.PredefinedSchedule(name)
					out[name] = s
				}
				return printJSON(out)
			}
			for _, name := range names {
				s, _ := sim.PredefinedSchedule(name)
				heading.Printf("%s (%.0f h)\n", name, s.TotalHours())
				for _, ph := range s {
					fmt.Printf("  %-10s %4.0f h\n", ph.Mode, ph.DurationHours)
				}
			}
			return nil
		},
	}
}
