package airprops

import (
	"fmt"
	"math"
)

// Correlation constants for air treated as a pseudo-pure fluid.
// Caloric baseline is ideal-gas with a pressure departure h_dep = -k(P-P0)/T²
// and the thermodynamically consistent entropy departure -(2k/3T³)(P-P0).
// Saturation pressure follows a Clausius-Clapeyron fit through the normal
// boiling point; latent heat follows the Watson relation.
const (
	tCritK  = 132.63  // critical temperature [K]
	pCritPa = 3.786e6 // critical pressure [Pa]
	tBoilK  = 78.9    // normal boiling point [K]
	hfgBoil = 205e3   // latent heat at the normal boiling point [J/kg]

	cpGas = 1005.0 // gas specific heat [J/(kg·K)]
	cpLiq = 2000.0 // subcooled liquid specific heat [J/(kg·K)]
	rGas  = 287.05 // specific gas constant [J/(kg·K)]
	kDep  = 200.0  // enthalpy departure coefficient [J·K²/(kg·Pa)]

	tRefK  = 273.15
	pRefPa = 101325.0
	hRef   = 400e3  // h(tRef, pRef) [J/kg]
	sRef   = 3796.0 // s(tRef, pRef) [J/(kg·K)]

	rhoLiqBoil = 875.0 // saturated liquid density at the boiling point [kg/m³]

	tMinK  = 55.0
	tMaxK  = 2500.0
	pMinPa = 1e3
	pMaxPa = 1e8
)

// satExponent solves ln(Psat/Pc) = B(1 - Tc/T) through the boiling point.
var satExponent = math.Log(pRefPa/pCritPa) / (1 - tCritK/tBoilK)

// Correlation is the built-in Provider implementation. It is stateless and
// safe for concurrent use.
type Correlation struct{}

// New returns the built-in correlation-based air property provider.
func New() *Correlation { return &Correlation{} }

func (Correlation) gasEnthalpy(tK, pPa float64) float64 {
	return hRef + cpGas*(tK-tRefK) - kDep*(pPa-pRefPa)/(tK*tK)
}

func (Correlation) gasEntropy(tK, pPa float64) float64 {
	return sRef + cpGas*math.Log(tK/tRefK) - rGas*math.Log(pPa/pRefPa) -
		(2*kDep/(3*tK*tK*tK))*(pPa-pRefPa)
}

// satTemperature inverts the Clausius-Clapeyron fit. Fails above the critical
// pressure, where no saturation state exists.
func (Correlation) satTemperature(pPa float64) (float64, error) {
	if pPa >= pCritPa {
		return 0, &LookupError{Op: "satTemperature", Reason: fmt.Sprintf("pressure %.3g Pa is supercritical (Pc=%.3g Pa)", pPa, pCritPa)}
	}
	if pPa < pMinPa {
		return 0, &LookupError{Op: "satTemperature", Reason: fmt.Sprintf("pressure %.3g Pa below correlation range", pPa)}
	}
	t := tCritK / (1 - math.Log(pPa/pCritPa)/satExponent)
	if t < tMinK {
		return 0, &LookupError{Op: "satTemperature", Reason: fmt.Sprintf("saturation temperature %.1f K below correlation range", t)}
	}
	return t, nil
}

// latentHeat is the Watson relation anchored at the normal boiling point.
func (Correlation) latentHeat(tSatK float64) float64 {
	if tSatK >= tCritK {
		return 0
	}
	return hfgBoil * math.Pow((tCritK-tSatK)/(tCritK-tBoilK), 0.38)
}

// satLine returns (Tsat, hf, hg) at pPa.
func (c Correlation) satLine(pPa float64) (tSat, hF, hG float64, err error) {
	tSat, err = c.satTemperature(pPa)
	if err != nil {
		return 0, 0, 0, err
	}
	hG = c.gasEnthalpy(tSat, pPa)
	hF = hG - c.latentHeat(tSat)
	return tSat, hF, hG, nil
}

func checkRange(op string, tK, pPa float64) error {
	if pPa < pMinPa || pPa > pMaxPa {
		return &LookupError{Op: op, Reason: fmt.Sprintf("pressure %.3g Pa outside [%.0g, %.0g]", pPa, pMinPa, pMaxPa)}
	}
	if tK != 0 && (tK < tMinK || tK > tMaxK) {
		return &LookupError{Op: op, Reason: fmt.Sprintf("temperature %.1f K outside [%.0f, %.0f]", tK, tMinK, tMaxK)}
	}
	return nil
}

func (c Correlation) Enthalpy(tK, pPa float64) (float64, error) {
	if err := checkRange("enthalpy", tK, pPa); err != nil {
		return 0, err
	}
	if pPa < pCritPa {
		if tSat, hF, _, err := c.satLine(pPa); err == nil && tK < tSat {
			// Compressed liquid branch.
			return hF + cpLiq*(tK-tSat), nil
		}
	}
	return c.gasEnthalpy(tK, pPa), nil
}

func (c Correlation) Entropy(tK, pPa float64) (float64, error) {
	if err := checkRange("entropy", tK, pPa); err != nil {
		return 0, err
	}
	if pPa < pCritPa {
		if tSat, err := c.satTemperature(pPa); err == nil && tK < tSat {
			sG := c.gasEntropy(tSat, pPa)
			sF := sG - c.latentHeat(tSat)/tSat
			return sF + cpLiq*math.Log(tK/tSat), nil
		}
	}
	return c.gasEntropy(tK, pPa), nil
}

func (c Correlation) EnthalpyFromEntropy(sJPerKgK, pPa float64) (float64, error) {
	if err := checkRange("enthalpyFromEntropy", 0, pPa); err != nil {
		return 0, err
	}
	lo, hi := tMinK, tMaxK
	if pPa < pCritPa {
		tSat, hF, hG, err := c.satLine(pPa)
		if err == nil {
			sG := c.gasEntropy(tSat, pPa)
			sFG := c.latentHeat(tSat) / tSat
			sF := sG - sFG
			switch {
			case sJPerKgK < sF:
				t := tSat * math.Exp((sJPerKgK-sF)/cpLiq)
				if t < tMinK {
					return 0, &LookupError{Op: "enthalpyFromEntropy", Reason: "entropy below correlation range"}
				}
				return hF + cpLiq*(t-tSat), nil
			case sJPerKgK <= sG:
				q := (sJPerKgK - sF) / sFG
				return hF + q*(hG-hF), nil
			}
			lo = tSat
		}
	}
	t, err := bisect(lo, hi, sJPerKgK, func(tK float64) float64 { return c.gasEntropy(tK, pPa) })
	if err != nil {
		return 0, &LookupError{Op: "enthalpyFromEntropy", Reason: err.Error()}
	}
	return c.gasEnthalpy(t, pPa), nil
}

func (c Correlation) TemperatureFromEnthalpy(hJPerKg, pPa float64) (float64, error) {
	if err := checkRange("temperatureFromEnthalpy", 0, pPa); err != nil {
		return 0, err
	}
	lo, hi := tMinK, tMaxK
	if pPa < pCritPa {
		tSat, hF, hG, err := c.satLine(pPa)
		if err == nil {
			switch {
			case hJPerKg < hF:
				t := tSat + (hJPerKg-hF)/cpLiq
				if t < tMinK {
					return 0, &LookupError{Op: "temperatureFromEnthalpy", Reason: "enthalpy below correlation range"}
				}
				return t, nil
			case hJPerKg <= hG:
				return tSat, nil
			}
			lo = tSat
		}
	}
	t, err := bisect(lo, hi, hJPerKg, func(tK float64) float64 { return c.gasEnthalpy(tK, pPa) })
	if err != nil {
		return 0, &LookupError{Op: "temperatureFromEnthalpy", Reason: err.Error()}
	}
	return t, nil
}

func (c Correlation) TemperatureFromQuality(pPa, q float64) (float64, error) {
	if q < 0 || q > 1 {
		return 0, &LookupError{Op: "temperatureFromQuality", Reason: fmt.Sprintf("quality %.3f outside [0,1]", q)}
	}
	return c.satTemperature(pPa)
}

func (c Correlation) EnthalpyFromQuality(pPa, q float64) (float64, error) {
	if q < 0 || q > 1 {
		return 0, &LookupError{Op: "enthalpyFromQuality", Reason: fmt.Sprintf("quality %.3f outside [0,1]", q)}
	}
	_, hF, hG, err := c.satLine(pPa)
	if err != nil {
		return 0, err
	}
	return hF + q*(hG-hF), nil
}

func (c Correlation) QualityFromEnthalpy(pPa, hJPerKg float64) (float64, error) {
	_, hF, hG, err := c.satLine(pPa)
	if err != nil {
		return 0, err
	}
	return (hJPerKg - hF) / (hG - hF), nil
}

func (c Correlation) Density(tK, pPa float64) (float64, error) {
	if err := checkRange("density", tK, pPa); err != nil {
		return 0, err
	}
	if pPa < pCritPa {
		if tSat, err := c.satTemperature(pPa); err == nil && tK <= tSat {
			rho := rhoLiqBoil - 1.8*(tK-tBoilK)
			if rho < 400 {
				rho = 400
			}
			return rho, nil
		}
	}
	return pPa / (rGas * tK), nil
}

// bisect solves f(t) = target for t in [lo, hi]; f must be monotonically
// increasing, which both gasEnthalpy and gasEntropy are in temperature.
func bisect(lo, hi, target float64, f func(float64) float64) (float64, error) {
	fLo, fHi := f(lo), f(hi)
	if target < fLo || target > fHi {
		return 0, fmt.Errorf("target %.6g outside bracket [%.6g, %.6g]", target, fLo, fHi)
	}
	for i := 0; i < 200; i++ {
		mid := 0.5 * (lo + hi)
		if f(mid) < target {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < 1e-7 {
			break
		}
	}
	return 0.5 * (lo + hi), nil
}
