package thermo

import (
	"testing"

	"laes-sim/internal/airprops"
)

const pAtm = 101325.0

func TestCompressorStage(t *testing.T) {
	air := airprops.New()
	res, err := CompressorStage(air, 300, pAtm, 5*pAtm, 0.85)
	if err != nil {
		t.Fatal(err)
	}
	if res.WorkJPerKg <= 0 {
		t.Fatalf("compression work must be positive, got %.0f", res.WorkJPerKg)
	}
	if res.TOutK <= 300 {
		t.Fatalf("compression must heat the gas, got %.1f K", res.TOutK)
	}
}

func TestCompressorStageEfficiencyPenalty(t *testing.T) {
	air := airprops.New()
	ideal, err := CompressorStage(air, 300, pAtm, 5*pAtm, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	actual, err := CompressorStage(air, 300, pAtm, 5*pAtm, 0.75)
	if err != nil {
		t.Fatal(err)
	}
	if actual.WorkJPerKg <= ideal.WorkJPerKg {
		t.Fatalf("lower efficiency must cost more work: %.0f <= %.0f",
			actual.WorkJPerKg, ideal.WorkJPerKg)
	}
}

func TestTurbineStage(t *testing.T) {
	air := airprops.New()
	res, err := TurbineStage(air, 500, 5*pAtm, pAtm, 0.85)
	if err != nil {
		t.Fatal(err)
	}
	if res.WorkJPerKg <= 0 {
		t.Fatalf("expansion work must be positive, got %.0f", res.WorkJPerKg)
	}
	if res.TOutK >= 500 {
		t.Fatalf("expansion must cool the gas, got %.1f K", res.TOutK)
	}
}
