package templates

import (
	"embed"
	"io/fs"
	"log/slog"

	"thirdcoast.systems/darkroom/cmd/web/viewtypes"
	"thirdcoast.systems/darkroom/internal/editor"
	"thirdcoast.systems/darkroom/pkg/utils/markdown"
)

//go:embed help/*.md
var helpFiles embed.FS

var help = loadHelp(helpFiles)

func loadHelp(fsys fs.FS) map[editor.View]viewtypes.Help {
	out := make(map[editor.View]viewtypes.Help, len(editor.Views))
	for _, v := range editor.Views {
		src, err := fs.ReadFile(fsys, "help/"+string(v)+".md")
		if err != nil {
			slog.Warn("missing help text", "view", v, "error", err)
			continue
		}
		md, err := markdown.NewMarkdown(string(src))
		if err != nil {
			slog.Warn("invalid help text", "view", v, "error", err)
			continue
		}
		out[v] = viewtypes.Help{HTML: md.Render(), Summary: md.PlainText()}
	}
	return out
}

// HelpFor returns the help of view v.
func HelpFor(v editor.View) viewtypes.Help {
	return help[v]
}
