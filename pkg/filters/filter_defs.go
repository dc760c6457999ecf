package filters

import (
	"fmt"
	"strconv"
)

// AdjustmentGroup is the panel an adjustment slider is rendered in.
type AdjustmentGroup string

const (
	GroupBasic AdjustmentGroup = "basic"
	GroupColor AdjustmentGroup = "color"
	GroupTone  AdjustmentGroup = "tone"
)

// AdjustmentField describes one slider of the advanced editor.
type AdjustmentField struct {
	Key     string
	Label   string
	Group   AdjustmentGroup
	Min     float64
	Max     float64
	Step    float64
	Neutral float64
	Unit    string
	// Inert fields are shown but never reach the synthesized expression.
	Inert bool
}

// AdjustmentFields lists the sliders in panel order.
var AdjustmentFields = []AdjustmentField{
	{Key: "exposure", Label: "Exposure", Group: GroupBasic, Min: -100, Max: 100, Step: 1, Unit: "%"},
	{Key: "highlights", Label: "Highlights", Group: GroupBasic, Min: -100, Max: 100, Step: 1, Unit: "%", Inert: true},
	{Key: "shadows", Label: "Shadows", Group: GroupBasic, Min: -100, Max: 100, Step: 1, Unit: "%", Inert: true},
	{Key: "whites", Label: "Whites", Group: GroupBasic, Min: -100, Max: 100, Step: 1, Unit: "%", Inert: true},
	{Key: "blacks", Label: "Blacks", Group: GroupBasic, Min: -100, Max: 100, Step: 1, Unit: "%", Inert: true},

	{Key: "temperature", Label: "Temperature", Group: GroupColor, Min: -100, Max: 100, Step: 1, Unit: "°"},
	{Key: "tint", Label: "Tint", Group: GroupColor, Min: -100, Max: 100, Step: 1, Unit: "%"},
	{Key: "vibrance", Label: "Vibrance", Group: GroupColor, Min: -100, Max: 100, Step: 1, Unit: "%"},
	{Key: "saturation", Label: "Saturation", Group: GroupColor, Min: 0, Max: 200, Step: 1, Neutral: 100, Unit: "%"},
	{Key: "hue", Label: "Hue", Group: GroupColor, Min: -180, Max: 180, Step: 1, Unit: "°"},

	{Key: "brightness", Label: "Brightness", Group: GroupTone, Min: 0, Max: 200, Step: 1, Neutral: 100, Unit: "%"},
	{Key: "contrast", Label: "Contrast", Group: GroupTone, Min: 0, Max: 200, Step: 1, Neutral: 100, Unit: "%"},
	{Key: "clarity", Label: "Clarity", Group: GroupTone, Min: -100, Max: 100, Step: 1, Unit: "%"},
	{Key: "dehaze", Label: "Dehaze", Group: GroupTone, Min: -100, Max: 100, Step: 1, Unit: "%", Inert: true},
}

// FindAdjustmentField returns the slider definition for key.
func FindAdjustmentField(key string) (AdjustmentField, bool) {
	for _, f := range AdjustmentFields {
		if f.Key == key {
			return f, true
		}
	}
	return AdjustmentField{}, false
}

// FieldsInGroup returns the sliders of one panel in order.
func FieldsInGroup(g AdjustmentGroup) []AdjustmentField {
	var out []AdjustmentField
	for _, f := range AdjustmentFields {
		if f.Group == g {
			out = append(out, f)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Template helpers
// ---------------------------------------------------------------------------

// FmtNum formats a float with the shortest representation that round-trips
// and no exponent, which is also how browsers stringify CSS numbers.
func FmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Readout renders a slider value with its unit for display.
func Readout(v float64, unit string) string {
	return FmtNum(v) + unit
}

// IntensityPercent renders an intensity factor as a whole percentage.
func IntensityPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}
