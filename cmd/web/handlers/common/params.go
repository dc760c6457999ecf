package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/darkroom/internal/editor"
)

// RequireView extracts the :view route parameter or returns a 404 error.
func RequireView(c echo.Context) (editor.View, error) {
	v, err := editor.ParseView(c.Param("view"))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusNotFound, "unknown editor view")
	}
	return v, nil
}
