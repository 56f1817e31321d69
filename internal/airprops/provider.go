package airprops

import "fmt"

// Provider supplies real-gas property lookups for air. All temperatures are
// in K, pressures in Pa, specific enthalpy in J/kg, specific entropy in
// J/(kg·K), density in kg/m³, quality as a vapor mass fraction.
//
// Implementations must return a *LookupError when the requested state lies
// outside their valid phase/pressure/temperature range (for example, a
// saturation property queried at supercritical pressure). Callers treat a
// LookupError as a recoverable condition, not a fatal one.
type Provider interface {
	// Enthalpy returns h(T, P) for single-phase air.
	Enthalpy(tK, pPa float64) (float64, error)

	// Entropy returns s(T, P) for single-phase air.
	Entropy(tK, pPa float64) (float64, error)

	// EnthalpyFromEntropy returns h at (S, P), resolving into the two-phase
	// dome when the state lands there.
	EnthalpyFromEntropy(sJPerKgK, pPa float64) (float64, error)

	// TemperatureFromEnthalpy returns T at (H, P). Inside the two-phase dome
	// this is the saturation temperature.
	TemperatureFromEnthalpy(hJPerKg, pPa float64) (float64, error)

	// TemperatureFromQuality returns the saturation temperature at P.
	TemperatureFromQuality(pPa, q float64) (float64, error)

	// EnthalpyFromQuality returns h on the saturation line at (P, Q).
	EnthalpyFromQuality(pPa, q float64) (float64, error)

	// QualityFromEnthalpy returns the vapor quality at (P, H). The returned
	// value may fall outside [0,1] when the state is single-phase; callers
	// decide how to treat that.
	QualityFromEnthalpy(pPa, hJPerKg float64) (float64, error)

	// Density returns rho(T, P).
	Density(tK, pPa float64) (float64, error)
}

// LookupError reports a property query outside the provider's valid range.
type LookupError struct {
	Op     string
	Reason string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("air property lookup %s: %s", e.Op, e.Reason)
}

// IsLookupError reports whether err is a recoverable property-lookup failure.
func IsLookupError(err error) bool {
	_, ok := err.(*LookupError)
	return ok
}
