package editor_api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/darkroom/cmd/web/handlers/common"
	"thirdcoast.systems/darkroom/internal/editor"
)

// UploadField is the multipart field carrying the image.
const UploadField = "image"

// HandleUpload loads a new image into the session and returns to the editor.
// Rejections are shown inline on the page.
func HandleUpload(store *editor.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, store)
		if err != nil {
			return err
		}
		profile := s.Profile()
		back := common.ViewPath(profile.View)

		fh, err := c.FormFile(UploadField)
		if err != nil {
			slog.Info("upload without file", "session", s.ID(), "view", profile.View, "error", err)
			return c.Redirect(http.StatusSeeOther, back)
		}

		f, err := fh.Open()
		if err != nil {
			slog.Error("failed to open upload", "session", s.ID(), "error", err)
			return common.ErrInternal("failed to read upload")
		}
		defer f.Close()

		// One byte past the cap is enough to reject an oversized file.
		data, err := io.ReadAll(io.LimitReader(f, profile.MaxUpload+1))
		if err != nil {
			slog.Error("failed to read upload", "session", s.ID(), "error", err)
			return common.ErrInternal("failed to read upload")
		}

		declared := fh.Header.Get(echo.HeaderContentType)
		if err := s.Upload(fh.Filename, declared, data); err != nil {
			slog.Info("upload rejected", "session", s.ID(), "view", profile.View, "file", fh.Filename, "type", declared, "size", fh.Size, "error", err)
		} else {
			slog.Info("image uploaded", "session", s.ID(), "view", profile.View, "file", fh.Filename, "size", fh.Size)
		}

		return c.Redirect(http.StatusSeeOther, back)
	}
}

// HandleClear unloads the session image.
func HandleClear(store *editor.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, store)
		if err != nil {
			return err
		}
		s.Clear()
		return c.Redirect(http.StatusSeeOther, common.ViewPath(s.Profile().View))
	}
}
