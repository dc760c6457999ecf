package content

import (
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/darkroom/cmd/web/templates"
	"thirdcoast.systems/darkroom/cmd/web/viewtypes"
	"thirdcoast.systems/darkroom/internal/editor"
)

// HandleHomePage renders the mode switch between the editors.
func HandleHomePage(profiles editor.Profiles) echo.HandlerFunc {
	return func(c echo.Context) error {
		return templates.Index(viewtypes.NewViewLinks(profiles, "")).Render(c.Request().Context(), c.Response())
	}
}
