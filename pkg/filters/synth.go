package filters

import "strings"

// Synthesize composes the slider state into one effect expression. Each rule
// contributes only when its field is away from neutral, and rules always run
// in the same order regardless of the order the sliders were moved in.
// Highlights, shadows, whites, blacks and dehaze are display-only.
func Synthesize(a Adjustments) string {
	var ops []string

	if a.Brightness != 100 {
		ops = append(ops, op("brightness", a.Brightness, "%"))
	}
	if a.Contrast != 100 {
		ops = append(ops, op("contrast", a.Contrast, "%"))
	}
	if a.Saturation != 100 {
		ops = append(ops, op("saturate", a.Saturation, "%"))
	}
	if a.Hue != 0 {
		ops = append(ops, op("hue-rotate", a.Hue, "deg"))
	}
	if a.Exposure != 0 {
		factor := 1 + a.Exposure/100
		ops = append(ops, op("brightness", factor*100, "%"))
	}
	if a.Vibrance != 0 {
		factor := 1 + a.Vibrance/100
		ops = append(ops, op("saturate", factor*100, "%"))
	}
	switch {
	case a.Temperature > 0:
		ops = append(ops, op("sepia", a.Temperature/5, "%"))
	case a.Temperature < 0:
		ops = append(ops, op("hue-rotate", a.Temperature/2, "deg"))
	}
	if a.Tint != 0 {
		ops = append(ops, op("hue-rotate", a.Tint/3, "deg"))
	}
	if a.Clarity != 0 {
		factor := 1 + a.Clarity/200
		ops = append(ops, op("contrast", factor*100, "%"))
	}

	if len(ops) == 0 {
		return NoneExpression
	}
	return joinOps(ops)
}

// Resolve picks the active expression of the advanced editor: an explicitly
// selected preset wins verbatim, otherwise the sliders are synthesized.
func Resolve(selected string, a Adjustments) string {
	if selected == "" || selected == NoneExpression {
		return Synthesize(a)
	}
	return selected
}

func op(name string, v float64, unit string) string {
	return name + "(" + FmtNum(v) + unit + ")"
}

func joinOps(ops []string) string {
	return strings.Join(ops, " ")
}
