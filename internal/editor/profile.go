package editor

import (
	"fmt"

	"thirdcoast.systems/darkroom/pkg/filters"
)

// View names one of the two editing surfaces.
type View string

const (
	ViewStandard View = "standard"
	ViewAdvanced View = "advanced"
)

// Views lists every view in display order.
var Views = []View{ViewStandard, ViewAdvanced}

// ParseView validates a view name taken from a URL.
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewStandard, ViewAdvanced:
		return View(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
	}
}

// Default upload caps.
const (
	DefaultStandardMaxUpload int64 = 15 << 20
	DefaultAdvancedMaxUpload int64 = 20 << 20
)

// Profile is everything that differs between the two views.
type Profile struct {
	View           View
	Title          string
	Tagline        string
	MaxUpload      int64
	DownloadPrefix string
	TypeError      string
	Catalog        []filters.FilterPreset

	Categories          bool // category switcher over Catalog
	Enhancements        bool // one-click enhancement presets
	Intensity           bool // global strength slider
	Adjustments         bool // parametric sliders
	Curves              bool // tone curve selection
	BeforeAfter         bool // split before/after preview
	ResetFilterOnUpload bool
}

// Profiles maps each view to its profile.
type Profiles map[View]Profile

// NewProfiles builds the two view profiles with the given upload caps.
// Non-positive caps fall back to the defaults.
func NewProfiles(standardMax, advancedMax int64) Profiles {
	if standardMax <= 0 {
		standardMax = DefaultStandardMaxUpload
	}
	if advancedMax <= 0 {
		advancedMax = DefaultAdvancedMaxUpload
	}
	return Profiles{
		ViewStandard: {
			View:                ViewStandard,
			Title:               "Photo Editor",
			Tagline:             "Quick looks and one-click enhancements",
			MaxUpload:           standardMax,
			DownloadPrefix:      "edited-",
			TypeError:           "Please select a valid image file (PNG, JPEG, GIF, etc.)",
			Catalog:             filters.StandardFilters,
			Categories:          true,
			Enhancements:        true,
			Intensity:           true,
			ResetFilterOnUpload: true,
		},
		ViewAdvanced: {
			View:           ViewAdvanced,
			Title:          "Studio Editor",
			Tagline:        "Professional adjustments and colour grading",
			MaxUpload:      advancedMax,
			DownloadPrefix: "studio-edited-",
			TypeError:      "Please select a valid image file",
			Catalog:        filters.StudioFilters,
			Adjustments:    true,
			Curves:         true,
			BeforeAfter:    true,
		},
	}
}

// MaxUpload returns the largest cap across views.
func (p Profiles) MaxUpload() int64 {
	var max int64
	for _, prof := range p {
		if prof.MaxUpload > max {
			max = prof.MaxUpload
		}
	}
	return max
}
