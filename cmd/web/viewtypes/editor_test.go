package viewtypes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"thirdcoast.systems/darkroom/internal/editor"
	"thirdcoast.systems/darkroom/internal/objecturl"
	"thirdcoast.systems/darkroom/pkg/filters"
)

func snapshot(t *testing.T, view editor.View) (editor.State, editor.Profiles) {
	t.Helper()
	profiles := editor.NewProfiles(0, 0)
	store := editor.NewStore(objecturl.New(), profiles, time.Minute)
	t.Cleanup(store.Close)
	s, err := store.Get(editor.NewID(), view)
	require.NoError(t, err)
	return s.State(), profiles
}

func TestStyles_CardClasses(t *testing.T) {
	assert.Equal(t, "preset-card", Styles["PresetCardClass"])
	assert.Equal(t, "preset-card is-active", Styles["PresetCardActiveClass"])
	for name, class := range Styles {
		assert.NotEmpty(t, class, name)
	}
}

func TestNewEditor_Advanced(t *testing.T) {
	st, profiles := snapshot(t, editor.ViewAdvanced)
	m := NewEditor(st, profiles, Help{})

	require.Len(t, m.Presets, len(filters.StudioFilters)+1)
	assert.Equal(t, filters.NoneExpression, m.Presets[0].Value)
	assert.True(t, m.Presets[0].Active)
	assert.Len(t, m.Panels, 3)
	assert.Len(t, m.Curves, len(filters.CurvePresets)+1)
	assert.Empty(t, m.Enhancements)
	assert.Empty(t, m.ImageSrc)
	assert.Equal(t, "/api/editor/advanced/adjustment", m.Actions.Adjustment)
}

func TestNewEditor_Standard(t *testing.T) {
	st, profiles := snapshot(t, editor.ViewStandard)
	m := NewEditor(st, profiles, Help{Summary: "notes"})

	assert.Len(t, m.Enhancements, len(filters.EnhancementPresets))
	assert.Empty(t, m.Panels)
	assert.NotEmpty(t, m.Categories)
	assert.Equal(t, "notes", m.Head().Description)
	assert.Equal(t, "100%", m.IntensityLabel)
}

func TestFilterStyle(t *testing.T) {
	assert.Equal(t, "filter: brightness(120%);", string(FilterStyle("brightness(120%)")))
	assert.Equal(t, "filter: none;", string(FilterStyle("")))
	assert.Equal(t, "filter: none;", string(FilterStyle("url(x) ; color: red")))
}
