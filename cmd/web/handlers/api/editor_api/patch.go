package editor_api

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"
	"thirdcoast.systems/darkroom/cmd/web/handlers/common"
	"thirdcoast.systems/darkroom/cmd/web/templates"
	"thirdcoast.systems/darkroom/cmd/web/viewtypes"
	"thirdcoast.systems/darkroom/internal/editor"
)

// pageModel builds the editor page model of s.
func pageModel(store *editor.Store, s *editor.Session) viewtypes.Editor {
	st := s.State()
	return viewtypes.NewEditor(st, store.Profiles(), templates.HelpFor(st.View))
}

// patchEditor streams fresh preview, controls and status fragments plus the
// signal set mirroring the session.
func patchEditor(c echo.Context, store *editor.Store, s *editor.Session) error {
	m := pageModel(store, s)

	common.SetSSEHeaders(c)

	sse := datastar.NewSSE(c.Response().Writer, c.Request())

	if err := sse.PatchElementTempl(templates.Preview(m), datastar.WithSelectorID("preview")); err != nil {
		return err
	}
	if err := sse.PatchElementTempl(templates.Controls(m), datastar.WithSelectorID("controls")); err != nil {
		return err
	}
	if err := sse.PatchElementTempl(templates.Status(m), datastar.WithSelectorID("status")); err != nil {
		return err
	}

	signals, err := json.Marshal(viewtypes.Signals(m.State))
	if err != nil {
		return err
	}
	return sse.PatchSignals(signals)
}

// changeHandler reads the editor signals, applies one change to the session
// and patches the page.
func changeHandler(store *editor.Store, what string, apply func(*editor.Session, viewtypes.EditorSignals) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, store)
		if err != nil {
			return err
		}

		// IMPORTANT: ReadSignals MUST happen BEFORE NewSSE.
		// NewSSE flushes response headers which closes the request body.
		var signals viewtypes.EditorSignals
		if err := datastar.ReadSignals(c.Request(), &signals); err != nil {
			slog.Warn("failed to read editor signals", "change", what, "error", err)
			return common.ErrBadRequest("invalid signals")
		}

		if err := apply(s, signals); err != nil {
			return rejectChange(s, what, err)
		}

		return patchEditor(c, store, s)
	}
}

func rejectChange(s *editor.Session, what string, err error) error {
	slog.Info("editor change rejected", "session", s.ID(), "view", s.Profile().View, "change", what, "error", err)
	if errors.Is(err, editor.ErrNotAvailable) {
		return common.ErrNotFound(err.Error())
	}
	return common.ErrBadRequest(err.Error())
}
