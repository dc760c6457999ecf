package templates

import (
	"bytes"
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"thirdcoast.systems/darkroom/cmd/web/viewtypes"
	"thirdcoast.systems/darkroom/internal/editor"
	"thirdcoast.systems/darkroom/internal/objecturl"
)

func editorModel(t *testing.T, view editor.View) viewtypes.Editor {
	t.Helper()
	profiles := editor.NewProfiles(0, 0)
	store := editor.NewStore(objecturl.New(), profiles, time.Minute)
	t.Cleanup(store.Close)
	s, err := store.Get(editor.NewID(), view)
	require.NoError(t, err)
	return viewtypes.NewEditor(s.State(), profiles, HelpFor(view))
}

func TestControls_MarksActiveCard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Controls(editorModel(t, editor.ViewAdvanced)).Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, `id="controls"`)
	assert.Contains(t, out, "preset-card is-active")
	assert.Contains(t, out, `class="preset-card"`)
}

func TestEditorPage_Renders(t *testing.T) {
	for _, v := range editor.Views {
		t.Run(string(v), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, EditorPage(editorModel(t, v)).Render(context.Background(), &buf))
			assert.Contains(t, buf.String(), `id="preview"`)
			assert.Contains(t, buf.String(), `id="status"`)
		})
	}
}

func TestLoadHelp(t *testing.T) {
	got := loadHelp(fstest.MapFS{
		"help/standard.md": {Data: []byte("# Quick looks\n\nPick a *preset*.")},
	})

	require.Contains(t, got, editor.ViewStandard)
	assert.NotContains(t, got, editor.ViewAdvanced)
	assert.Contains(t, string(got[editor.ViewStandard].HTML), "<em>preset</em>")
	assert.Equal(t, "Quick looks Pick a preset.", got[editor.ViewStandard].Summary)

	for _, v := range editor.Views {
		assert.NotEmpty(t, HelpFor(v).Summary)
	}
}
