package ffmpeg

import (
	"fmt"
	"math"

	"thirdcoast.systems/darkroom/pkg/filters"
)

// CompileCSS converts parsed CSS filter functions into an ffmpeg filter chain
// with the same visual result as the browser's filter property. The chain is
// empty when no op changes the picture.
func CompileCSS(ops []filters.Op) ([]Option, error) {
	var opts []Option

	for i, op := range ops {
		filterOpts, err := compileOp(op)
		if err != nil {
			return nil, fmt.Errorf("filter[%d] (%s): %w", i, op.Name, err)
		}
		opts = append(opts, filterOpts...)
	}

	if len(opts) == 0 {
		return nil, nil
	}

	// Work in RGBA so opacity and the alpha coefficient survive the chain.
	return append([]Option{PixelFormatFilter("rgba")}, opts...), nil
}

// compileOp converts a single CSS filter function into one or more ffmpeg Options.
func compileOp(op filters.Op) ([]Option, error) {
	a := op.Amount()

	switch op.Name {

	case "brightness":
		if a == 1 {
			return nil, nil
		}
		return []Option{Linear(a, 0)}, nil

	case "contrast":
		if a == 1 {
			return nil, nil
		}
		return []Option{Linear(a, 255*(0.5-0.5*a))}, nil

	case "invert":
		a = clamp01(a)
		if a == 0 {
			return nil, nil
		}
		return []Option{Linear(1-2*a, 255*a)}, nil

	case "saturate":
		if a == 1 {
			return nil, nil
		}
		return saturateChain(a), nil

	case "hue-rotate":
		deg := math.Mod(a, 360)
		if deg == 0 {
			return nil, nil
		}
		return []Option{Mix(HueRotateMatrix(deg))}, nil

	case "sepia":
		a = clamp01(a)
		if a == 0 {
			return nil, nil
		}
		return []Option{Mix(SepiaMatrix(a))}, nil

	case "grayscale":
		a = clamp01(a)
		if a == 0 {
			return nil, nil
		}
		return []Option{Mix(GrayscaleMatrix(a))}, nil

	case "opacity":
		a = clamp01(a)
		if a == 1 {
			return nil, nil
		}
		m := IdentityMatrix
		m.Alpha = a
		return []Option{Mix(m)}, nil

	case "blur":
		if a <= 0 {
			return nil, nil
		}
		return []Option{GaussianBlur(a)}, nil

	default:
		return nil, fmt.Errorf("unknown filter function: %s", op.Name)
	}
}

// saturateChain builds a chain of saturation matrices. Saturation composes
// multiplicatively and the mixer only accepts coefficients within MixerLimit,
// so factors whose matrix does not fit are halved into steps of 2.
func saturateChain(factor float64) []Option {
	if factor < 0 || math.IsInf(factor, 0) || math.IsNaN(factor) {
		return nil
	}
	var opts []Option
	remaining := factor
	for !SaturateMatrix(remaining).InRange() {
		opts = append(opts, Mix(SaturateMatrix(2.0)))
		remaining /= 2.0
	}
	if remaining != 1.0 {
		opts = append(opts, Mix(SaturateMatrix(remaining)))
	}
	return opts
}

// Luminance weights of the Filter Effects colour matrices.
const (
	lumR = 0.213
	lumG = 0.715
	lumB = 0.072
)

// SaturateMatrix returns the saturate(s) matrix.
func SaturateMatrix(s float64) ColorMatrix {
	return ColorMatrix{
		M: [3][3]float64{
			{lumR + (1-lumR)*s, lumG - lumG*s, lumB - lumB*s},
			{lumR - lumR*s, lumG + (1-lumG)*s, lumB - lumB*s},
			{lumR - lumR*s, lumG - lumG*s, lumB + (1-lumB)*s},
		},
		Alpha: 1,
	}
}

// HueRotateMatrix returns the hue-rotate matrix for an angle in degrees.
func HueRotateMatrix(deg float64) ColorMatrix {
	rad := deg * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return ColorMatrix{
		M: [3][3]float64{
			{lumR + c*(1-lumR) - s*lumR, lumG - c*lumG - s*lumG, lumB - c*lumB + s*(1-lumB)},
			{lumR - c*lumR + s*0.143, lumG + c*(1-lumG) + s*0.140, lumB - c*lumB - s*0.283},
			{lumR - c*lumR - s*(1-lumR), lumG - c*lumG + s*lumG, lumB + c*(1-lumB) + s*lumB},
		},
		Alpha: 1,
	}
}

// SepiaMatrix returns the sepia matrix for an amount in 0..1.
func SepiaMatrix(amount float64) ColorMatrix {
	k := 1 - amount
	return ColorMatrix{
		M: [3][3]float64{
			{0.393 + 0.607*k, 0.769 - 0.769*k, 0.189 - 0.189*k},
			{0.349 - 0.349*k, 0.686 + 0.314*k, 0.168 - 0.168*k},
			{0.272 - 0.272*k, 0.534 - 0.534*k, 0.131 + 0.869*k},
		},
		Alpha: 1,
	}
}

// GrayscaleMatrix returns the grayscale matrix for an amount in 0..1.
func GrayscaleMatrix(amount float64) ColorMatrix {
	k := 1 - amount
	return ColorMatrix{
		M: [3][3]float64{
			{0.2126 + 0.7874*k, 0.7152 - 0.7152*k, 0.0722 - 0.0722*k},
			{0.2126 - 0.2126*k, 0.7152 + 0.2848*k, 0.0722 - 0.0722*k},
			{0.2126 - 0.2126*k, 0.7152 - 0.7152*k, 0.0722 + 0.9278*k},
		},
		Alpha: 1,
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
