package simulation

import (
	"math"

	"github.com/Carmen-Shannon/oxy-orrery/common"
)

// Scale controls step a display value in [scaleStepMin, scaleStepMax]. A display value of 1 maps to the default
// scale, and the two halves of the range map linearly onto different output ranges.
const (
	scaleStepMin  = 0.5
	scaleStepMax  = 2.0
	scaleStep     = 0.1
	timeScaleStep = 0.5
	timeScaleMax  = 10.0
)

// sizeScaleFor maps a size display value to a radius multiplier: 0.5 → 0, 1 → 2, 2 → 3.
func sizeScaleFor(display float64) float64 {
	if display <= 1 {
		return (display - 0.5) / 0.5 * 2
	}
	return 2 + (display-1)*1
}

// distanceScaleFor maps a distance display value to an orbit multiplier: 0.5 → 0.5, 1 → 1.8, 2 → 2.
func distanceScaleFor(display float64) float64 {
	if display <= 1 {
		return 0.5 + (display-0.5)/0.5*1.3
	}
	return 1.8 + (display-1)*0.2
}

// stepDisplay moves a display value by n steps, rounded to the step grid and clamped to the range.
func stepDisplay(display float64, n int) float64 {
	v := math.Round((display+float64(n)*scaleStep)/scaleStep) * scaleStep
	return common.Clamp(v, scaleStepMin, scaleStepMax)
}

// stepTimeScale moves the time scale by n steps within [0, timeScaleMax].
func stepTimeScale(scale float64, n int) float64 {
	return common.Clamp(scale+float64(n)*timeScaleStep, 0, timeScaleMax)
}
