package common

import (
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/darkroom/cmd/web/ctxkeys"
	"thirdcoast.systems/darkroom/internal/editor"
)

// EditorID returns the browser's editor session id set by the session
// middleware, or "" if there is none.
func EditorID(c echo.Context) string {
	id, _ := c.Request().Context().Value(ctxkeys.EditorID).(string)
	return id
}

// RequireSession resolves the editing session for the request's browser and
// :view parameter, creating it on first use.
func RequireSession(c echo.Context, store *editor.Store) (*editor.Session, error) {
	view, err := RequireView(c)
	if err != nil {
		return nil, err
	}
	id := EditorID(c)
	if id == "" {
		return nil, ErrUnauthorized()
	}
	s, err := store.Get(id, view)
	if err != nil {
		return nil, ErrNotFound("unknown editor view")
	}
	return s, nil
}

// ViewPath returns the page path of a view.
func ViewPath(v editor.View) string {
	return "/editor/" + string(v)
}
