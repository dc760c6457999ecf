package content

import (
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/darkroom/cmd/web/handlers/common"
	"thirdcoast.systems/darkroom/cmd/web/templates"
	"thirdcoast.systems/darkroom/cmd/web/viewtypes"
	"thirdcoast.systems/darkroom/internal/editor"
)

// HandleEditorPage renders the editor of the :view parameter with the
// browser's current session state.
func HandleEditorPage(store *editor.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, store)
		if err != nil {
			return err
		}

		st := s.State()
		m := viewtypes.NewEditor(st, store.Profiles(), templates.HelpFor(st.View))

		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
		return templates.EditorPage(m).Render(c.Request().Context(), c.Response())
	}
}
