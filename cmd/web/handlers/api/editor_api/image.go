package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/darkroom/cmd/web/handlers/common"
	"thirdcoast.systems/darkroom/internal/editor"
	"thirdcoast.systems/darkroom/internal/objecturl"
)

// HandleImage serves the bytes behind the session's current image. Images of
// other sessions, and images already replaced or cleared, are not found.
func HandleImage(store *editor.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, store)
		if err != nil {
			return err
		}

		obj, ok := s.ImageData(objecturl.FromID(c.Param("id")))
		if !ok {
			return common.ErrNotFound("image not found")
		}

		// Ids are never reused.
		c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=3600")
		c.Response().Header().Set("X-Content-Type-Options", "nosniff")
		return c.Blob(http.StatusOK, obj.ContentType, obj.Data)
	}
}
