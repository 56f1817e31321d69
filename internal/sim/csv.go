package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var csvHeader = []string{
	"time_hours",
	"mode",
	"power_in_kw",
	"power_out_kw",
	"tank_level_pct",
	"hot_soc_pct",
	"cold_soc_pct",
	"liquid_produced_kg",
	"liquid_consumed_kg",
	"boiloff_kg",
	"energy_in_kwh",
	"energy_out_kwh",
}

// WriteHistoryCSV streams a run's time series as CSV, one row per step.
func WriteHistoryCSV(w io.Writer, history []TimeStepRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range history {
		row := []string{
			fmtFloat(rec.TimeHours),
			rec.Mode.String(),
			fmtFloat(rec.PowerInKW),
			fmtFloat(rec.PowerOutKW),
			fmtFloat(rec.TankLevelPct),
			fmtFloat(rec.HotSOCPct),
			fmtFloat(rec.ColdSOCPct),
			fmtFloat(rec.LiquidProducedKg),
			fmtFloat(rec.LiquidConsumedKg),
			fmtFloat(rec.BoiloffKg),
			fmtFloat(rec.EnergyInKWh),
			fmtFloat(rec.EnergyOutKWh),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
