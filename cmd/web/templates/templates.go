package templates

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"
	"thirdcoast.systems/darkroom/cmd/web/viewtypes"
)

//go:embed *.html
var files embed.FS

var funcs = template.FuncMap{
	"cls": func(name string) string {
		return viewtypes.Styles[name]
	},
	"pagehead": func(title, description string) viewtypes.Head {
		return viewtypes.Head{Title: title, Description: description}
	},
}

var pages = template.Must(template.New("").Funcs(funcs).ParseFS(files, "*.html"))

func component(name string, data any) templ.Component {
	return templ.FromGoHTML(pages.Lookup(name), data)
}

// Index is the mode switch landing page.
func Index(views []viewtypes.ViewLink) templ.Component {
	return component("index", views)
}

// EditorPage is the full editor document.
func EditorPage(m viewtypes.Editor) templ.Component {
	return component("editor", m)
}

// Preview is the image pane, patched in place by the editor endpoints.
func Preview(m viewtypes.Editor) templ.Component {
	return component("preview", m)
}

// Controls is the filter and adjustment sidebar.
func Controls(m viewtypes.Editor) templ.Component {
	return component("controls", m)
}

// Status is the inline error banner.
func Status(m viewtypes.Editor) templ.Component {
	return component("status", m)
}
