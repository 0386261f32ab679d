package progress

import "math"

// Severity bands for KPI achievement, presentation only.
const (
	BandLow    = "low"
	BandMedium = "medium"
	BandHigh   = "high"
)

// KPIAchievement returns current/target as a percentage capped at 100. A
// zero target yields 0 rather than dividing.
func KPIAchievement(current, target float64) int {
	if target == 0 {
		return 0
	}
	percent := int(math.Round(current / target * 100))
	if percent > 100 {
		percent = 100
	}
	return percent
}

// KPIBand classifies an achievement percentage: <30 low, 30-69 medium,
// 70 and up high.
func KPIBand(percent int) string {
	switch {
	case percent >= 70:
		return BandHigh
	case percent >= 30:
		return BandMedium
	default:
		return BandLow
	}
}
