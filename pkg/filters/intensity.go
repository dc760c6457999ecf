package filters

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Intensity bounds of the standard editor's strength slider.
const (
	MinIntensity     = 0.1
	MaxIntensity     = 2.0
	IntensityStep    = 0.1
	DefaultIntensity = 1.0
)

var ErrIntensityRange = errors.New("intensity out of range")

var numericLiteral = regexp.MustCompile(`\d+(\.\d+)?`)

// ScaleIntensity multiplies every unsigned numeric literal of expr by factor.
// Operation names, units, signs and punctuation are left as they are, and the
// results are not clamped: the renderer is expected to saturate.
func ScaleIntensity(expr string, factor float64) string {
	return numericLiteral.ReplaceAllStringFunc(expr, func(lit string) string {
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return lit
		}
		return FmtNum(v * factor)
	})
}

var intensityTag = "gte=" + FmtNum(MinIntensity) + ",lte=" + FmtNum(MaxIntensity)

// ValidateIntensity checks f against [MinIntensity, MaxIntensity].
func ValidateIntensity(f float64) error {
	if err := validate.Var(f, intensityTag); err != nil {
		return fmt.Errorf("%w: %s (allowed %s..%s)", ErrIntensityRange, FmtNum(f), FmtNum(MinIntensity), FmtNum(MaxIntensity))
	}
	return nil
}
