package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"
)

// ColorMatrix is a 3x3 RGB mixing matrix plus an alpha gain, the shape
// colorchannelmixer accepts. Rows are output channels.
type ColorMatrix struct {
	M     [3][3]float64
	Alpha float64
}

// IdentityMatrix leaves every channel unchanged.
var IdentityMatrix = ColorMatrix{
	M:     [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	Alpha: 1,
}

// MixerLimit is the largest coefficient magnitude colorchannelmixer accepts.
const MixerLimit = 2.0

// InRange reports whether every coefficient fits the mixer's range.
func (m ColorMatrix) InRange() bool {
	for _, row := range m.M {
		for _, v := range row {
			if v < -MixerLimit || v > MixerLimit {
				return false
			}
		}
	}
	return m.Alpha >= -MixerLimit && m.Alpha <= MixerLimit
}

// String returns the ffmpeg filter string.
func (m ColorMatrix) String() string {
	names := [3][3]string{{"rr", "rg", "rb"}, {"gr", "gg", "gb"}, {"br", "bg", "bb"}}
	parts := make([]string, 0, 10)
	for i := range 3 {
		for j := range 3 {
			parts = append(parts, names[i][j]+"="+coef(m.M[i][j]))
		}
	}
	if m.Alpha != 1 {
		parts = append(parts, "aa="+coef(m.Alpha))
	}
	return "colorchannelmixer=" + strings.Join(parts, ":")
}

// Mix adds a colorchannelmixer filter.
func Mix(m ColorMatrix) Option {
	return Filter(m.String())
}

// LinearFilter maps every colour channel through clip(val*Slope+Intercept),
// with val and the result in 0..255.
type LinearFilter struct {
	Slope     float64
	Intercept float64
}

// String returns the ffmpeg filter string.
func (l LinearFilter) String() string {
	expr := "val*" + coef(l.Slope)
	switch {
	case l.Intercept > 0:
		expr += "+" + coef(l.Intercept)
	case l.Intercept < 0:
		expr += "-" + coef(-l.Intercept)
	}
	expr = "'clip(" + expr + ",0,255)'"
	return fmt.Sprintf("lutrgb=r=%s:g=%s:b=%s", expr, expr, expr)
}

// Linear adds a per-channel linear transfer via lutrgb.
func Linear(slope, intercept float64) Option {
	return Filter(LinearFilter{Slope: slope, Intercept: intercept}.String())
}

// GaussianBlur adds a gblur filter with the given standard deviation in pixels.
func GaussianBlur(sigma float64) Option {
	return Filter("gblur=sigma=" + coef(sigma))
}

// PixelFormatFilter converts frames to pix inside the filter chain.
func PixelFormatFilter(pix string) Option {
	return Filter("format=" + pix)
}

// coef formats a filter coefficient with up to six decimals and no
// trailing zeros.
func coef(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
