package editor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thirdcoast.systems/darkroom/internal/objecturl"
	"thirdcoast.systems/darkroom/internal/render"
	"thirdcoast.systems/darkroom/pkg/filters"
)

func pngOf(t *testing.T, size int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))))
	data := buf.Bytes()
	if size > len(data) {
		data = append(data, make([]byte, size-len(data))...)
	}
	return data
}

func newTestSession(t *testing.T, view View) (*Session, *objecturl.Table) {
	t.Helper()
	urls := objecturl.New()
	store := NewStore(urls, NewProfiles(0, 0), time.Minute)
	s, err := store.Get(NewID(), view)
	require.NoError(t, err)
	return s, urls
}

func TestUpload_Success(t *testing.T) {
	s, urls := newTestSession(t, ViewStandard)

	require.NoError(t, s.Upload("cat.png", "image/png", pngOf(t, 0)))
	st := s.State()
	require.NotNil(t, st.Image)
	assert.Equal(t, "cat.png", st.Image.Name)
	assert.Equal(t, "image/png", st.Image.ContentType)
	assert.Equal(t, 1, urls.Len())
	assert.Empty(t, st.Error)

	obj, ok := s.ImageData(st.Image.URL)
	require.True(t, ok)
	assert.Equal(t, pngOf(t, 0), obj.Data)
}

func TestUpload_ReplacesAndReleases(t *testing.T) {
	s, urls := newTestSession(t, ViewStandard)

	require.NoError(t, s.Upload("a.png", "image/png", pngOf(t, 0)))
	first := s.State().Image.URL
	require.NoError(t, s.Upload("b.png", "image/png", pngOf(t, 0)))
	second := s.State().Image.URL

	assert.NotEqual(t, first, second)
	assert.Equal(t, 1, urls.Len())
	_, ok := urls.Resolve(first)
	assert.False(t, ok)
}

func TestUpload_TypeCheckedBeforeSize(t *testing.T) {
	s, _ := newTestSession(t, ViewStandard)

	err := s.Upload("doc.pdf", "application/pdf", make([]byte, 25<<20))
	require.ErrorIs(t, err, ErrInvalidFileType)
	assert.NotErrorIs(t, err, ErrFileTooLarge)

	st := s.State()
	assert.Nil(t, st.Image)
	assert.Equal(t, "Please select a valid image file (PNG, JPEG, GIF, etc.)", st.Error)

	err = s.Upload("doc.pdf", "application/pdf", make([]byte, 5<<20))
	require.ErrorIs(t, err, ErrInvalidFileType)
}

func TestUpload_SniffedTypeMustBeImage(t *testing.T) {
	s, _ := newTestSession(t, ViewAdvanced)

	err := s.Upload("fake.png", "image/png", []byte("just some text pretending to be a png"))
	require.ErrorIs(t, err, ErrInvalidFileType)
	assert.Equal(t, "Please select a valid image file", s.State().Error)

	err = s.Upload("real.png", "", pngOf(t, 0))
	require.ErrorIs(t, err, ErrInvalidFileType)
}

func TestUpload_SizeCapPerView(t *testing.T) {
	big := pngOf(t, 16<<20)

	std, _ := newTestSession(t, ViewStandard)
	err := std.Upload("big.png", "image/png", big)
	require.ErrorIs(t, err, ErrFileTooLarge)
	assert.Equal(t, "File size must be less than 15MB", std.State().Error)
	assert.Nil(t, std.State().Image)

	adv, _ := newTestSession(t, ViewAdvanced)
	require.NoError(t, adv.Upload("big.png", "image/png", big))

	err = adv.Upload("huge.png", "image/png", pngOf(t, 21<<20))
	require.ErrorIs(t, err, ErrFileTooLarge)
	assert.Equal(t, "File size must be less than 20MB", adv.State().Error)

	// The previously loaded image survives the rejection.
	require.NotNil(t, adv.State().Image)
	assert.Equal(t, "big.png", adv.State().Image.Name)

	// Exactly at the cap is accepted.
	require.NoError(t, std.Upload("edge.png", "image/png", pngOf(t, 15<<20)))
	assert.Empty(t, std.State().Error)
}

func TestUpload_ResetsFilterOnlyInStandard(t *testing.T) {
	std, _ := newTestSession(t, ViewStandard)
	require.NoError(t, std.SelectFilter("Sepia"))
	require.NoError(t, std.Upload("a.png", "image/png", pngOf(t, 0)))
	assert.Equal(t, "none", std.State().Filter)

	adv, _ := newTestSession(t, ViewAdvanced)
	require.NoError(t, adv.SelectFilter("Film Noir"))
	require.NoError(t, adv.Upload("a.png", "image/png", pngOf(t, 0)))
	assert.Equal(t, "grayscale(100%) contrast(180%) brightness(85%)", adv.State().Filter)
}

func TestClear(t *testing.T) {
	s, urls := newTestSession(t, ViewStandard)
	require.NoError(t, s.Upload("a.png", "image/png", pngOf(t, 0)))
	require.NoError(t, s.SelectEnhancement("Food"))

	s.Clear()

	st := s.State()
	assert.Nil(t, st.Image)
	assert.Equal(t, "none", st.Filter)
	assert.Empty(t, st.Enhancement)
	assert.Equal(t, 0, urls.Len())
	assert.False(t, st.Preview.HasImage)

	// Clearing twice is harmless.
	s.Clear()
}

func TestStandardExpression(t *testing.T) {
	s, _ := newTestSession(t, ViewStandard)
	assert.Equal(t, "none", s.Expression())

	require.NoError(t, s.SelectFilter("Vintage"))
	assert.Equal(t, "sepia(50%) contrast(120%) brightness(110%)", s.Expression())

	require.NoError(t, s.SetIntensity(0.5))
	assert.Equal(t, "sepia(25%) contrast(60%) brightness(55%)", s.Expression())

	require.ErrorIs(t, s.SetIntensity(3), filters.ErrIntensityRange)
	assert.Equal(t, 0.5, s.State().Intensity)

	require.NoError(t, s.SelectEnhancement("Auto Enhance"))
	st := s.State()
	assert.Equal(t, "Auto Enhance", st.Enhancement)
	assert.Equal(t, "contrast(110%) saturate(110%) brightness(105%)", st.Filter)

	require.NoError(t, s.SelectFilter("Original"))
	assert.Equal(t, "none", s.Expression())
	assert.Empty(t, s.State().Enhancement)

	require.ErrorIs(t, s.SelectFilter("Film Noir"), ErrUnknownFilter)
	require.ErrorIs(t, s.SelectEnhancement("Nope"), ErrUnknownEnhancement)
}

func TestStandardCategories(t *testing.T) {
	s, _ := newTestSession(t, ViewStandard)
	assert.Equal(t, "All", s.State().Category)
	require.NoError(t, s.SelectCategory("Artistic"))
	assert.Equal(t, "Artistic", s.State().Category)
	require.ErrorIs(t, s.SelectCategory("Cinematic"), ErrUnknownCategory)
}

func TestAdvancedExpression(t *testing.T) {
	s, _ := newTestSession(t, ViewAdvanced)

	require.NoError(t, s.SetAdjustment("brightness", 150))
	require.NoError(t, s.SetAdjustment("temperature", 25))
	assert.Equal(t, "brightness(150%) sepia(5%)", s.Expression())

	// An explicit preset wins verbatim over the sliders.
	require.NoError(t, s.SelectFilter("Teal & Orange"))
	assert.Equal(t, "hue-rotate(15deg) saturate(130%) contrast(125%)", s.Expression())

	require.NoError(t, s.SelectCurve("S-Curve"))
	require.ErrorIs(t, s.SelectCurve("Wobbly"), ErrUnknownCurve)

	require.NoError(t, s.ResetAdjustments())
	st := s.State()
	assert.Equal(t, "none", st.Filter)
	assert.Equal(t, "none", st.Curve)
	assert.True(t, st.Adjustments.IsNeutral())
	assert.Equal(t, "none", s.Expression())

	require.ErrorIs(t, s.SetAdjustment("brightness", 500), filters.ErrAdjustmentRange)
	require.ErrorIs(t, s.SetAdjustment("gamma", 1), filters.ErrUnknownAdjustment)
}

func TestFeatureGating(t *testing.T) {
	std, _ := newTestSession(t, ViewStandard)
	require.ErrorIs(t, std.SetAdjustment("brightness", 120), ErrNotAvailable)
	require.ErrorIs(t, std.ResetAdjustments(), ErrNotAvailable)
	require.ErrorIs(t, std.SelectCurve("S-Curve"), ErrNotAvailable)
	require.ErrorIs(t, std.SetBeforeAfter(true), ErrNotAvailable)

	adv, _ := newTestSession(t, ViewAdvanced)
	require.ErrorIs(t, adv.SetIntensity(1.5), ErrNotAvailable)
	require.ErrorIs(t, adv.SelectEnhancement("Food"), ErrNotAvailable)
	require.ErrorIs(t, adv.SelectCategory("Studio"), ErrNotAvailable)
}

func TestPreview_BeforeAfter(t *testing.T) {
	s, _ := newTestSession(t, ViewAdvanced)
	require.NoError(t, s.Upload("a.png", "image/png", pngOf(t, 0)))
	require.NoError(t, s.SetAdjustment("contrast", 140))
	require.NoError(t, s.SetBeforeAfter(true))

	p := s.Preview()
	assert.True(t, p.HasImage)
	assert.True(t, p.BeforeAfter)
	assert.Equal(t, "contrast(140%)", p.Expression)
	assert.Equal(t, "none", p.BeforeExpression)
	assert.Equal(t, "a.png", p.ImageName)
}

func TestExportLifecycle(t *testing.T) {
	s, _ := newTestSession(t, ViewStandard)

	_, err := s.BeginExport()
	require.ErrorIs(t, err, ErrNoImage)
	assert.False(t, s.Processing())

	require.NoError(t, s.Upload("cat.png", "image/png", pngOf(t, 0)))
	require.NoError(t, s.SelectFilter("Bright"))
	require.NoError(t, s.SetIntensity(2))

	job, err := s.BeginExport()
	require.NoError(t, err)
	assert.Equal(t, "brightness(300%)", job.Expression)
	assert.Equal(t, "cat.png", job.Filename)
	assert.Equal(t, "edited-", job.Prefix)
	assert.NotEmpty(t, job.Source)
	assert.True(t, s.Processing())

	_, err = s.BeginExport()
	require.ErrorIs(t, err, ErrExportInProgress)

	s.FinishExport(fmt.Errorf("%w: empty", render.ErrEncode))
	assert.False(t, s.Processing())
	assert.Equal(t, "Failed to process image", s.State().Error)

	// Retry after a failure is allowed and clears the message.
	_, err = s.BeginExport()
	require.NoError(t, err)
	assert.Empty(t, s.State().Error)
	s.FinishExport(nil)
	assert.False(t, s.Processing())
	assert.Empty(t, s.State().Error)
}

func TestExport_ConcurrentBeginOnlyOneWins(t *testing.T) {
	s, _ := newTestSession(t, ViewAdvanced)
	require.NoError(t, s.Upload("a.png", "image/png", pngOf(t, 0)))

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.BeginExport(); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestStore_GetAndViews(t *testing.T) {
	store := NewStore(objecturl.New(), NewProfiles(0, 0), time.Minute)
	id := NewID()

	a, err := store.Get(id, ViewStandard)
	require.NoError(t, err)
	b, err := store.Get(id, ViewStandard)
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := store.Get(id, ViewAdvanced)
	require.NoError(t, err)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, store.Len())

	_, err = store.Get(id, View("mobile"))
	require.ErrorIs(t, err, ErrUnknownView)

	_, ok := store.Lookup(NewID(), ViewStandard)
	assert.False(t, ok)
}

func TestStore_SweepReleasesIdle(t *testing.T) {
	urls := objecturl.New()
	store := NewStore(urls, NewProfiles(0, 0), time.Minute)

	idle, err := store.Get(NewID(), ViewStandard)
	require.NoError(t, err)
	require.NoError(t, idle.Upload("a.png", "image/png", pngOf(t, 0)))

	busy, err := store.Get(NewID(), ViewAdvanced)
	require.NoError(t, err)
	require.NoError(t, busy.Upload("b.png", "image/png", pngOf(t, 0)))
	_, err = busy.BeginExport()
	require.NoError(t, err)

	require.Equal(t, 0, store.Sweep(), "nothing is idle yet")

	removed := store.sweep(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, urls.Len(), "only the exporting session keeps its image")

	require.ErrorIs(t, idle.Upload("c.png", "image/png", pngOf(t, 0)), ErrSessionClosed)
	assert.Equal(t, 1, urls.Len())
}

func TestStore_Close(t *testing.T) {
	urls := objecturl.New()
	store := NewStore(urls, NewProfiles(0, 0), time.Minute)
	for _, v := range Views {
		s, err := store.Get(NewID(), v)
		require.NoError(t, err)
		require.NoError(t, s.Upload("a.png", "image/png", pngOf(t, 0)))
	}
	require.Equal(t, 2, urls.Len())

	store.Close()
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 0, urls.Len())
}

func TestMessage(t *testing.T) {
	profiles := NewProfiles(0, 3<<19)
	std, adv := profiles[ViewStandard], profiles[ViewAdvanced]

	assert.Equal(t, "", Message(std, nil))
	assert.Equal(t, "File size must be less than 15MB", Message(std, ErrFileTooLarge))
	assert.Equal(t, "File size must be less than 1.5 MiB", Message(adv, ErrFileTooLarge))
	assert.Equal(t, "Failed to load image for processing", Message(std, fmt.Errorf("x: %w", render.ErrDecode)))
	assert.Equal(t, "Failed to process image", Message(std, render.ErrEncode))
	assert.Equal(t, "An export is already in progress", Message(std, ErrExportInProgress))
	assert.NotEmpty(t, Message(std, render.ErrContextUnavailable))
	assert.NotEmpty(t, Message(std, errors.New("boom")))
}

func TestParseView(t *testing.T) {
	v, err := ParseView("advanced")
	require.NoError(t, err)
	assert.Equal(t, ViewAdvanced, v)

	_, err = ParseView("Advanced")
	require.ErrorIs(t, err, ErrUnknownView)

	assert.Equal(t, int64(20<<20), NewProfiles(0, 0).MaxUpload())
}
