package filters

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnknownAdjustment = errors.New("unknown adjustment")
	ErrAdjustmentRange   = errors.New("adjustment out of range")
)

// Adjustments is the slider state of the advanced editor. The validate tags
// are the authoritative bounds; AdjustmentFields mirrors them for rendering.
type Adjustments struct {
	Brightness  float64 `json:"brightness" validate:"min=0,max=200"`
	Contrast    float64 `json:"contrast" validate:"min=0,max=200"`
	Saturation  float64 `json:"saturation" validate:"min=0,max=200"`
	Hue         float64 `json:"hue" validate:"min=-180,max=180"`
	Exposure    float64 `json:"exposure" validate:"min=-100,max=100"`
	Highlights  float64 `json:"highlights" validate:"min=-100,max=100"`
	Shadows     float64 `json:"shadows" validate:"min=-100,max=100"`
	Whites      float64 `json:"whites" validate:"min=-100,max=100"`
	Blacks      float64 `json:"blacks" validate:"min=-100,max=100"`
	Temperature float64 `json:"temperature" validate:"min=-100,max=100"`
	Tint        float64 `json:"tint" validate:"min=-100,max=100"`
	Vibrance    float64 `json:"vibrance" validate:"min=-100,max=100"`
	Clarity     float64 `json:"clarity" validate:"min=-100,max=100"`
	Dehaze      float64 `json:"dehaze" validate:"min=-100,max=100"`
}

var validate = validator.New()

// DefaultAdjustments returns the neutral slider state.
func DefaultAdjustments() Adjustments {
	return Adjustments{
		Brightness: 100,
		Contrast:   100,
		Saturation: 100,
	}
}

// IsNeutral reports whether every field holds its neutral value.
func (a Adjustments) IsNeutral() bool {
	return a == DefaultAdjustments()
}

// Validate checks every field against its declared range.
func (a Adjustments) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("%w: %v", ErrAdjustmentRange, err)
	}
	return nil
}

// Get returns the value of the named field.
func (a *Adjustments) Get(key string) (float64, error) {
	p := a.field(key)
	if p == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAdjustment, key)
	}
	return *p, nil
}

// Set assigns one named field. The state is left untouched when the key is
// unknown or the value falls outside the field's range.
func (a *Adjustments) Set(key string, value float64) error {
	next := *a
	p := next.field(key)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownAdjustment, key)
	}
	*p = value
	if err := validate.Struct(next); err != nil {
		return fmt.Errorf("%w: %s=%s", ErrAdjustmentRange, key, FmtNum(value))
	}
	*a = next
	return nil
}

func (a *Adjustments) field(key string) *float64 {
	switch key {
	case "brightness":
		return &a.Brightness
	case "contrast":
		return &a.Contrast
	case "saturation":
		return &a.Saturation
	case "hue":
		return &a.Hue
	case "exposure":
		return &a.Exposure
	case "highlights":
		return &a.Highlights
	case "shadows":
		return &a.Shadows
	case "whites":
		return &a.Whites
	case "blacks":
		return &a.Blacks
	case "temperature":
		return &a.Temperature
	case "tint":
		return &a.Tint
	case "vibrance":
		return &a.Vibrance
	case "clarity":
		return &a.Clarity
	case "dehaze":
		return &a.Dehaze
	default:
		return nil
	}
}
