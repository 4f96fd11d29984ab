package matching

import (
	"fmt"

	"mentor-collab/internal/domain"
)

// Thresholds define los cortes para clasificar un promedio de evaluaciones.
// Un promedio que no supera StrengthAbove ni baja de WeaknessBelow queda
// Neutral y no participa en ningun tier.
type Thresholds struct {
	StrengthAbove float64
	WeaknessBelow float64
}

// DefaultThresholds reproduce la regla historica: >3 fortaleza, <3 debilidad, 3 neutral.
func DefaultThresholds() Thresholds {
	return Thresholds{StrengthAbove: 3, WeaknessBelow: 3}
}

func (t Thresholds) Validate() error {
	if t.WeaknessBelow > t.StrengthAbove {
		return fmt.Errorf("weakness threshold %.2f is above strength threshold %.2f", t.WeaknessBelow, t.StrengthAbove)
	}
	if t.StrengthAbove >= domain.MaxRating {
		return fmt.Errorf("strength threshold %.2f leaves no rating able to qualify", t.StrengthAbove)
	}
	if t.WeaknessBelow <= domain.MinRating {
		return fmt.Errorf("weakness threshold %.2f leaves no rating able to qualify", t.WeaknessBelow)
	}
	return nil
}

func (t Thresholds) Classify(average float64) domain.Polarity {
	switch {
	case average > t.StrengthAbove:
		return domain.PolarityStrength
	case average < t.WeaknessBelow:
		return domain.PolarityWeakness
	default:
		return domain.PolarityNeutral
	}
}
