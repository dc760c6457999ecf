package filters

// FilterPreset is a named, immutable effect expression shown as a one-click look.
type FilterPreset struct {
	Name        string
	Expression  string
	Category    string
	Description string
}

// EnhancementPreset is a canned photo enhancement. Selecting one activates
// the space-joined Filters; Intensity is the recommended strength shown next
// to it.
type EnhancementPreset struct {
	Name        string
	Filters     []string
	Description string
	Intensity   float64
}

// CurvePoint is one control point of a tone curve, both axes in 0..255.
type CurvePoint struct {
	X int
	Y int
}

// CurvePreset is a named tone curve. Curves are selectable in the advanced
// editor but are not part of the synthesized expression.
type CurvePreset struct {
	Name   string
	Points []CurvePoint
}

// CategoryAll selects every preset regardless of category.
const CategoryAll = "All"

// NoneExpression is the neutral effect expression.
const NoneExpression = "none"

// StandardFilters is the catalog of the standard editor.
var StandardFilters = []FilterPreset{
	// Basic
	{Name: "Original", Expression: "none", Category: "Basic", Description: "No filter applied"},
	{Name: "Grayscale", Expression: "grayscale(100%)", Category: "Basic", Description: "Black and white effect"},
	{Name: "Sepia", Expression: "sepia(100%)", Category: "Basic", Description: "Vintage warm tone"},
	{Name: "Invert", Expression: "invert(100%)", Category: "Basic", Description: "Inverted colors"},

	// Enhancement
	{Name: "Bright", Expression: "brightness(150%)", Category: "Enhancement", Description: "Enhanced brightness"},
	{Name: "Dark", Expression: "brightness(50%)", Category: "Enhancement", Description: "Reduced brightness"},
	{Name: "High Contrast", Expression: "contrast(150%)", Category: "Enhancement", Description: "Enhanced contrast"},
	{Name: "Low Contrast", Expression: "contrast(50%)", Category: "Enhancement", Description: "Reduced contrast"},
	{Name: "Saturate", Expression: "saturate(200%)", Category: "Enhancement", Description: "Enhanced colors"},
	{Name: "Desaturate", Expression: "saturate(50%)", Category: "Enhancement", Description: "Reduced colors"},

	// Artistic
	{Name: "Vintage", Expression: "sepia(50%) contrast(120%) brightness(110%)", Category: "Artistic", Description: "Classic vintage look"},
	{Name: "Cinematic", Expression: "contrast(130%) saturate(120%) brightness(105%)", Category: "Artistic", Description: "Movie-like effect"},
	{Name: "Noir", Expression: "grayscale(100%) contrast(150%) brightness(80%)", Category: "Artistic", Description: "Film noir style"},
	{Name: "Dreamy", Expression: "blur(1px) saturate(120%) brightness(110%)", Category: "Artistic", Description: "Soft dreamy effect"},
	{Name: "Retro", Expression: "sepia(30%) saturate(150%) hue-rotate(10deg)", Category: "Artistic", Description: "Retro color scheme"},

	// Color
	{Name: "Warm", Expression: "sepia(20%) saturate(130%) hue-rotate(-10deg)", Category: "Color", Description: "Warm color temperature"},
	{Name: "Cool", Expression: "hue-rotate(180deg) saturate(120%)", Category: "Color", Description: "Cool color temperature"},
	{Name: "Golden Hour", Expression: "sepia(40%) saturate(140%) brightness(115%)", Category: "Color", Description: "Golden hour lighting"},
	{Name: "Blue Hour", Expression: "hue-rotate(200deg) saturate(110%) brightness(90%)", Category: "Color", Description: "Blue hour mood"},

	// Special
	{Name: "Blur", Expression: "blur(2px)", Category: "Special", Description: "Soft blur effect"},
	{Name: "Sharp", Expression: "contrast(110%) saturate(110%)", Category: "Special", Description: "Enhanced sharpness"},
	{Name: "Glow", Expression: "brightness(120%) saturate(130%)", Category: "Special", Description: "Soft glow effect"},
	{Name: "Fade", Expression: "contrast(80%) brightness(120%)", Category: "Special", Description: "Faded vintage look"},
	{Name: "Dramatic", Expression: "contrast(180%) brightness(90%) saturate(130%)", Category: "Special", Description: "High drama effect"},
	{Name: "Moody", Expression: "brightness(85%) contrast(130%) saturate(110%)", Category: "Special", Description: "Dark moody atmosphere"},
}

// StudioFilters is the catalog of the advanced editor.
var StudioFilters = []FilterPreset{
	// Studio
	{Name: "Studio Portrait", Expression: "contrast(110%) saturate(105%) brightness(108%)", Category: "Studio", Description: "Professional portrait enhancement"},
	{Name: "Fashion Editorial", Expression: "contrast(120%) saturate(115%) brightness(110%) hue-rotate(-5deg)", Category: "Studio", Description: "High-fashion editorial look"},
	{Name: "Product Photography", Expression: "contrast(105%) saturate(100%) brightness(115%)", Category: "Studio", Description: "Clean product photography"},
	{Name: "Beauty Retouch", Expression: "contrast(108%) saturate(110%) brightness(105%) blur(0.5px)", Category: "Studio", Description: "Soft beauty enhancement"},
	{Name: "Commercial", Expression: "contrast(115%) saturate(120%) brightness(112%)", Category: "Studio", Description: "Commercial photography style"},

	// Cinematic
	{Name: "Teal & Orange", Expression: "hue-rotate(15deg) saturate(130%) contrast(125%)", Category: "Cinematic", Description: "Hollywood cinematic grade"},
	{Name: "Film Noir", Expression: "grayscale(100%) contrast(180%) brightness(85%)", Category: "Cinematic", Description: "Classic film noir"},
	{Name: "Vintage Film", Expression: "sepia(30%) contrast(110%) saturate(90%) brightness(105%)", Category: "Cinematic", Description: "Vintage film stock"},
	{Name: "Blockbuster", Expression: "contrast(130%) saturate(140%) brightness(110%)", Category: "Cinematic", Description: "Summer blockbuster look"},

	// Color Grade
	{Name: "Moody Blue", Expression: "hue-rotate(200deg) saturate(120%) brightness(90%)", Category: "Color Grade", Description: "Cool moody atmosphere"},
	{Name: "Warm Gold", Expression: "sepia(25%) saturate(135%) brightness(115%)", Category: "Color Grade", Description: "Warm golden tones"},
	{Name: "Matte Finish", Expression: "contrast(85%) saturate(110%) brightness(110%)", Category: "Color Grade", Description: "Matte color grading"},
	{Name: "High Key", Expression: "contrast(120%) brightness(130%) saturate(110%)", Category: "Color Grade", Description: "Bright high-key lighting"},
	{Name: "Low Key", Expression: "contrast(150%) brightness(70%) saturate(90%)", Category: "Color Grade", Description: "Dramatic low-key lighting"},
}

// EnhancementPresets are the one-click enhancements of the standard editor.
var EnhancementPresets = []EnhancementPreset{
	{Name: "Auto Enhance", Filters: []string{"contrast(110%)", "saturate(110%)", "brightness(105%)"}, Description: "Automatic photo enhancement", Intensity: 1},
	{Name: "Portrait", Filters: []string{"brightness(108%)", "contrast(105%)", "saturate(115%)"}, Description: "Perfect for portraits", Intensity: 1.2},
	{Name: "Landscape", Filters: []string{"contrast(120%)", "saturate(130%)", "brightness(110%)"}, Description: "Enhanced landscape photos", Intensity: 1.3},
	{Name: "Food", Filters: []string{"saturate(140%)", "brightness(115%)", "contrast(110%)"}, Description: "Make food photos pop", Intensity: 1.4},
	{Name: "Night", Filters: []string{"brightness(130%)", "contrast(115%)", "saturate(90%)"}, Description: "Enhance low-light photos", Intensity: 1.2},
	{Name: "Sunset", Filters: []string{"saturate(150%)", "brightness(120%)", "contrast(110%)"}, Description: "Perfect sunset enhancement", Intensity: 1.5},
}

// CurvePresets are the tone curves offered by the advanced editor.
var CurvePresets = []CurvePreset{
	{Name: "S-Curve", Points: []CurvePoint{{0, 0}, {64, 50}, {128, 128}, {192, 205}, {255, 255}}},
	{Name: "High Contrast", Points: []CurvePoint{{0, 0}, {64, 30}, {128, 128}, {192, 225}, {255, 255}}},
	{Name: "Lifted Blacks", Points: []CurvePoint{{0, 20}, {64, 70}, {128, 128}, {192, 192}, {255, 255}}},
	{Name: "Crushed Whites", Points: []CurvePoint{{0, 0}, {64, 64}, {128, 128}, {192, 220}, {255, 235}}},
}

// Expression returns the preset's filters joined into one expression.
func (p EnhancementPreset) Expression() string {
	if len(p.Filters) == 0 {
		return NoneExpression
	}
	return joinOps(p.Filters)
}

// FindPreset returns the preset with the given name.
func FindPreset(catalog []FilterPreset, name string) (FilterPreset, bool) {
	for _, p := range catalog {
		if p.Name == name {
			return p, true
		}
	}
	return FilterPreset{}, false
}

// FindEnhancement returns the enhancement preset with the given name.
func FindEnhancement(name string) (EnhancementPreset, bool) {
	for _, p := range EnhancementPresets {
		if p.Name == name {
			return p, true
		}
	}
	return EnhancementPreset{}, false
}

// FindCurve returns the curve preset with the given name.
func FindCurve(name string) (CurvePreset, bool) {
	for _, c := range CurvePresets {
		if c.Name == name {
			return c, true
		}
	}
	return CurvePreset{}, false
}

// Categories lists the categories of a catalog in declaration order,
// prefixed with CategoryAll.
func Categories(catalog []FilterPreset) []string {
	out := []string{CategoryAll}
	seen := map[string]struct{}{}
	for _, p := range catalog {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// ByCategory returns the presets of one category, or all of them for
// CategoryAll.
func ByCategory(catalog []FilterPreset, category string) []FilterPreset {
	if category == CategoryAll || category == "" {
		return catalog
	}
	var out []FilterPreset
	for _, p := range catalog {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
