package editor_api

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/darkroom/cmd/web/handlers/common"
	"thirdcoast.systems/darkroom/internal/editor"
	"thirdcoast.systems/darkroom/internal/render"
)

// Exporter renders an image with an effect expression applied.
type Exporter interface {
	Export(ctx context.Context, src []byte, expression string) (*render.Result, error)
}

// HandleExport renders the current image with the active expression and
// returns it as a PNG download. On failure the editor is shown again with
// the inline error.
func HandleExport(store *editor.Store, exporter Exporter) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, store)
		if err != nil {
			return err
		}
		back := common.ViewPath(s.Profile().View)

		job, err := s.BeginExport()
		if err != nil {
			slog.Info("export refused", "session", s.ID(), "view", s.Profile().View, "error", err)
			return c.Redirect(http.StatusSeeOther, back)
		}

		start := time.Now()
		res, err := runExport(c.Request().Context(), s, exporter, job)
		if err != nil {
			slog.Error("export failed", "session", s.ID(), "view", s.Profile().View, "expression", job.Expression, "error", err)
			return c.Redirect(http.StatusSeeOther, back)
		}

		name := render.Filename(job.Prefix, job.Filename)
		slog.Info("export finished",
			"session", s.ID(),
			"view", s.Profile().View,
			"file", name,
			"size", humanize.IBytes(uint64(len(res.Data))),
			"width", res.Width,
			"height", res.Height,
			"filtered", res.Filtered,
			"elapsed", time.Since(start),
		)

		c.Response().Header().Set(echo.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": name}))
		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
		return c.Blob(http.StatusOK, "image/png", res.Data)
	}
}

// runExport clears the session's processing flag on every exit, panics
// included.
func runExport(ctx context.Context, s *editor.Session, exporter Exporter, job editor.ExportJob) (res *render.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.FinishExport(fmt.Errorf("export panicked: %v", r))
			panic(r)
		}
		s.FinishExport(err)
	}()
	return exporter.Export(ctx, job.Source, job.Expression)
}
