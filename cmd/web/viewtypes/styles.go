package viewtypes

// ============================================================================
// SHARED CSS CLASS CONSTANTS
// Reusable class strings from static/dist/main.css used across templates.
// Templates look them up by name with {{cls "Name"}}.
// ============================================================================

// SectionLabel is the standard label style for panel headings.
var SectionLabel = "section-label"

// GhostButtonSm is a small ghost-style button (outlined, no fill).
var GhostButtonSm = "btn btn-ghost btn-sm"

// PrimaryButton is the filled call-to-action button.
var PrimaryButton = "btn btn-primary"

// PageHeading is the main h1 heading style for top-level pages.
var PageHeading = "page-heading"

// SubHeading is for secondary headings (h2 level) within pages.
var SubHeading = "sub-heading"

// InfoBoxClass is the standard info/detail panel container.
var InfoBoxClass = "info-box"

// ErrorBoxClass is the inline error banner.
var ErrorBoxClass = "info-box error-box"

// PresetCardClass is a clickable filter or enhancement card.
var PresetCardClass = "preset-card"

// PresetCardActiveClass marks the selected card.
var PresetCardActiveClass = "preset-card is-active"

// Chip is a category or curve toggle.
var Chip = "chip"

// ChipActive marks the selected chip.
var ChipActive = "chip is-active"

// SliderRow lays out a label, range input and readout.
var SliderRow = "slider-row"

// Styles indexes the class constants by name for templates.
var Styles = map[string]string{
	"SectionLabel":          SectionLabel,
	"GhostButtonSm":         GhostButtonSm,
	"PrimaryButton":         PrimaryButton,
	"PageHeading":           PageHeading,
	"SubHeading":            SubHeading,
	"InfoBoxClass":          InfoBoxClass,
	"ErrorBoxClass":         ErrorBoxClass,
	"PresetCardClass":       PresetCardClass,
	"PresetCardActiveClass": PresetCardActiveClass,
	"Chip":                  Chip,
	"ChipActive":            ChipActive,
	"SliderRow":             SliderRow,
}
