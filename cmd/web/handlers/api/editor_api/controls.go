package editor_api

import (
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/darkroom/cmd/web/handlers/common"
	"thirdcoast.systems/darkroom/cmd/web/viewtypes"
	"thirdcoast.systems/darkroom/internal/editor"
)

// HandleFilter selects a catalog preset from the filter signal.
func HandleFilter(store *editor.Store) echo.HandlerFunc {
	return changeHandler(store, "filter", func(s *editor.Session, sig viewtypes.EditorSignals) error {
		return s.SelectFilter(sig.Filter)
	})
}

// HandleEnhancement selects an enhancement preset from the enhancement signal.
func HandleEnhancement(store *editor.Store) echo.HandlerFunc {
	return changeHandler(store, "enhancement", func(s *editor.Session, sig viewtypes.EditorSignals) error {
		return s.SelectEnhancement(sig.Enhancement)
	})
}

// HandleCategory narrows the preset grid to the category signal.
func HandleCategory(store *editor.Store) echo.HandlerFunc {
	return changeHandler(store, "category", func(s *editor.Session, sig viewtypes.EditorSignals) error {
		return s.SelectCategory(sig.Category)
	})
}

// HandleCurve selects the tone curve named by the curve signal.
func HandleCurve(store *editor.Store) echo.HandlerFunc {
	return changeHandler(store, "curve", func(s *editor.Session, sig viewtypes.EditorSignals) error {
		return s.SelectCurve(sig.Curve)
	})
}

// HandleIntensity applies the intensity signal.
func HandleIntensity(store *editor.Store) echo.HandlerFunc {
	return changeHandler(store, "intensity", func(s *editor.Session, sig viewtypes.EditorSignals) error {
		return s.SetIntensity(sig.Intensity)
	})
}

// HandleAdjustment moves the slider named by the field signal to value.
func HandleAdjustment(store *editor.Store) echo.HandlerFunc {
	return changeHandler(store, "adjustment", func(s *editor.Session, sig viewtypes.EditorSignals) error {
		return s.SetAdjustment(sig.Field, sig.Value)
	})
}

// HandleBeforeAfter applies the beforeAfter signal.
func HandleBeforeAfter(store *editor.Store) echo.HandlerFunc {
	return changeHandler(store, "before-after", func(s *editor.Session, sig viewtypes.EditorSignals) error {
		return s.SetBeforeAfter(sig.BeforeAfter)
	})
}

// HandleReset returns every slider, the preset and the curve to neutral.
// It carries no signals.
func HandleReset(store *editor.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, store)
		if err != nil {
			return err
		}
		if err := s.ResetAdjustments(); err != nil {
			return rejectChange(s, "reset", err)
		}
		return patchEditor(c, store, s)
	}
}
