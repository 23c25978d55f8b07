package risk

// PressureSafetyThreshold is the fixed safety limit in bar. It is a domain
// constant shared by the TBE estimate and the alert message, not per-line
// configuration.
const PressureSafetyThreshold = 10.0

// EstimateTBE linearly extrapolates the minutes remaining until pressure
// reaches the safety threshold. It returns nil when the pressure is already
// at or past the threshold, when it is flat or falling, or when the
// extrapolation comes out negative.
func EstimateTBE(currentPressure, vitP float64) *float64 {
	if currentPressure >= PressureSafetyThreshold {
		return nil
	}
	if vitP <= 0 {
		return nil
	}

	minutes := (PressureSafetyThreshold - currentPressure) / vitP
	if minutes < 0 {
		return nil
	}
	return &minutes
}
