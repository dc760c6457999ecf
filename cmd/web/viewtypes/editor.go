package viewtypes

import (
	"encoding/json"
	"html/template"

	"github.com/dustin/go-humanize"
	"thirdcoast.systems/darkroom/internal/editor"
	"thirdcoast.systems/darkroom/internal/objecturl"
	"thirdcoast.systems/darkroom/pkg/filters"
)

// EditorSignals is the datastar signal set of the editor page. The page seeds
// it from the session and every control posts it back.
type EditorSignals struct {
	Filter      string  `json:"filter"`
	Enhancement string  `json:"enhancement"`
	Category    string  `json:"category"`
	Curve       string  `json:"curve"`
	Intensity   float64 `json:"intensity"`
	Field       string  `json:"field"`
	Value       float64 `json:"value"`
	BeforeAfter bool    `json:"beforeAfter"`
}

// Actions are the endpoints the editor page talks to.
type Actions struct {
	Page        string
	Upload      string
	Clear       string
	Export      string
	Filter      string
	Enhancement string
	Category    string
	Curve       string
	Intensity   string
	Adjustment  string
	Reset       string
	BeforeAfter string
}

func newActions(v editor.View) Actions {
	page := "/editor/" + string(v)
	api := "/api/editor/" + string(v)
	return Actions{
		Page:        page,
		Upload:      page + "/upload",
		Clear:       page + "/clear",
		Export:      page + "/export",
		Filter:      api + "/filter",
		Enhancement: api + "/enhancement",
		Category:    api + "/category",
		Curve:       api + "/curve",
		Intensity:   api + "/intensity",
		Adjustment:  api + "/adjustment",
		Reset:       api + "/reset",
		BeforeAfter: api + "/before-after",
	}
}

type PresetCard struct {
	Name        string
	Value       string // posted as the filter signal
	Description string
	Category    string
	Active      bool
	Style       template.CSS
}

type EnhancementCard struct {
	Name        string
	Description string
	Intensity   string
	Active      bool
}

type Choice struct {
	Name   string
	Active bool
}

type Slider struct {
	Key     string
	Label   string
	Min     string
	Max     string
	Step    string
	Value   string
	Readout string
	Inert   bool
}

type AdjustmentPanel struct {
	Title   string
	Sliders []Slider
}

// ViewLink is an entry of the mode switch.
type ViewLink struct {
	Title   string
	Tagline string
	Href    string
	Active  bool
}

// Editor is everything the editor page and its fragments render.
type Editor struct {
	editor.State
	Actions Actions

	Presets      []PresetCard
	Categories   []Choice
	Enhancements []EnhancementCard
	Curves       []Choice
	Panels       []AdjustmentPanel
	Views        []ViewLink

	IntensityLabel string
	MaxUploadLabel string
	ImageSrc       string
	ImageSize      string
	PreviewStyle   template.CSS
	BeforeStyle    template.CSS
	Signals        string
	Help           Help
}

// Help is the rendered usage notes of a view.
type Help struct {
	HTML    template.HTML
	Summary string
}

// Head is the document head of a page.
type Head struct {
	Title       string
	Description string
}

// Head returns the document head of the editor page.
func (e Editor) Head() Head {
	return Head{Title: e.Profile.Title, Description: e.Help.Summary}
}

// NewEditor builds the page model for a session snapshot.
func NewEditor(st editor.State, profiles editor.Profiles, help Help) Editor {
	p := st.Profile
	e := Editor{
		State:          st,
		Actions:        newActions(st.View),
		Views:          NewViewLinks(profiles, st.View),
		IntensityLabel: filters.IntensityPercent(st.Intensity),
		MaxUploadLabel: editor.SizeLabel(p.MaxUpload),
		PreviewStyle:   FilterStyle(st.Preview.Expression),
		BeforeStyle:    FilterStyle(st.Preview.BeforeExpression),
		Signals:        signalsJSON(st),
		Help:           help,
	}

	if st.Image != nil {
		e.ImageSrc = ImagePath(st.View, st.Image.URL)
		e.ImageSize = humanize.IBytes(uint64(st.Image.Size))
	}

	catalog := p.Catalog
	if p.Categories {
		catalog = filters.ByCategory(p.Catalog, st.Category)
		for _, c := range filters.Categories(p.Catalog) {
			e.Categories = append(e.Categories, Choice{Name: c, Active: c == st.Category})
		}
	}
	if !hasNeutral(p.Catalog) {
		e.Presets = append(e.Presets, PresetCard{
			Name:        "None",
			Value:       filters.NoneExpression,
			Description: "Derive the look from the sliders",
			Active:      st.Filter == filters.NoneExpression,
			Style:       FilterStyle(filters.NoneExpression),
		})
	}
	for _, f := range catalog {
		e.Presets = append(e.Presets, PresetCard{
			Name:        f.Name,
			Value:       f.Name,
			Description: f.Description,
			Category:    f.Category,
			Active:      st.Enhancement == "" && f.Expression == st.Filter,
			Style:       FilterStyle(f.Expression),
		})
	}

	if p.Enhancements {
		for _, en := range filters.EnhancementPresets {
			e.Enhancements = append(e.Enhancements, EnhancementCard{
				Name:        en.Name,
				Description: en.Description,
				Intensity:   filters.IntensityPercent(en.Intensity),
				Active:      en.Name == st.Enhancement,
			})
		}
	}

	if p.Curves {
		e.Curves = append(e.Curves, Choice{Name: filters.NoneExpression, Active: st.Curve == filters.NoneExpression})
		for _, c := range filters.CurvePresets {
			e.Curves = append(e.Curves, Choice{Name: c.Name, Active: c.Name == st.Curve})
		}
	}

	if p.Adjustments {
		for _, g := range []struct {
			group filters.AdjustmentGroup
			title string
		}{
			{filters.GroupBasic, "Basic"},
			{filters.GroupColor, "Color"},
			{filters.GroupTone, "Tone"},
		} {
			panel := AdjustmentPanel{Title: g.title}
			for _, f := range filters.FieldsInGroup(g.group) {
				v, _ := st.Adjustments.Get(f.Key)
				panel.Sliders = append(panel.Sliders, Slider{
					Key:     f.Key,
					Label:   f.Label,
					Min:     filters.FmtNum(f.Min),
					Max:     filters.FmtNum(f.Max),
					Step:    filters.FmtNum(f.Step),
					Value:   filters.FmtNum(v),
					Readout: filters.Readout(v, f.Unit),
					Inert:   f.Inert,
				})
			}
			e.Panels = append(e.Panels, panel)
		}
	}

	return e
}

func hasNeutral(catalog []filters.FilterPreset) bool {
	for _, f := range catalog {
		if f.Expression == filters.NoneExpression {
			return true
		}
	}
	return false
}

// NewViewLinks builds the mode switch with active marking the current view.
func NewViewLinks(profiles editor.Profiles, active editor.View) []ViewLink {
	links := make([]ViewLink, 0, len(editor.Views))
	for _, v := range editor.Views {
		p, ok := profiles[v]
		if !ok {
			continue
		}
		links = append(links, ViewLink{
			Title:   p.Title,
			Tagline: p.Tagline,
			Href:    "/editor/" + string(v),
			Active:  v == active,
		})
	}
	return links
}

// ImagePath is the URL the preview loads a session image from.
func ImagePath(v editor.View, url string) string {
	return "/editor/" + string(v) + "/images/" + objecturl.ID(url)
}

// FilterStyle returns the inline style applying expr. Expressions that do
// not parse fall back to no filter, as a browser would ignore them.
func FilterStyle(expr string) template.CSS {
	if expr == "" || !filters.ValidExpression(expr) {
		expr = filters.NoneExpression
	}
	return template.CSS("filter: " + expr + ";")
}

// Signals returns the signal set mirroring a session snapshot.
func Signals(st editor.State) EditorSignals {
	s := EditorSignals{
		Enhancement: st.Enhancement,
		Category:    st.Category,
		Curve:       st.Curve,
		Intensity:   st.Intensity,
		BeforeAfter: st.BeforeAfter,
	}
	for _, f := range st.Profile.Catalog {
		if st.Enhancement == "" && f.Expression == st.Filter {
			s.Filter = f.Name
			break
		}
	}
	return s
}

func signalsJSON(st editor.State) string {
	b, err := json.Marshal(Signals(st))
	if err != nil {
		return "{}"
	}
	return string(b)
}
