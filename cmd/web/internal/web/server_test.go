package web

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"thirdcoast.systems/darkroom/cmd/web/auth"
	"thirdcoast.systems/darkroom/cmd/web/handlers/api/editor_api"
	"thirdcoast.systems/darkroom/internal/editor"
	"thirdcoast.systems/darkroom/internal/objecturl"
	"thirdcoast.systems/darkroom/internal/render"
)

type fakeExporter struct {
	mu     sync.Mutex
	err    error
	panics bool
	calls  []string
}

func (f *fakeExporter) Export(ctx context.Context, src []byte, expression string) (*render.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, expression)
	if f.panics {
		panic("encoder crashed")
	}
	if f.err != nil {
		return nil, f.err
	}
	return &render.Result{Data: src, Width: 2, Height: 2, Filtered: expression != "none"}, nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// browser replays the editor cookie across requests.
type browser struct {
	t      *testing.T
	srv    *Webserver
	cookie *http.Cookie
}

func newBrowser(t *testing.T, exporter editor_api.Exporter) *browser {
	t.Helper()
	store := editor.NewStore(objecturl.New(), editor.NewProfiles(0, 0), 0)
	t.Cleanup(store.Close)

	srv, err := NewWebserver(store, exporter, auth.NewSessionManager("test-secret"))
	require.NoError(t, err)
	return &browser{t: t, srv: srv}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	rec := httptest.NewRecorder()
	b.srv.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionName {
			b.cookie = c
		}
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return b.do(req)
}

func (b *browser) upload(path, name, contentType string, data []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(b.t, err)
	_, err = io.Copy(part, bytes.NewReader(data))
	require.NoError(b.t, err)
	require.NoError(b.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return b.do(req)
}

var imagePathRe = regexp.MustCompile(`/editor/standard/images/[0-9a-f-]+`)

func TestWebserver_Pages(t *testing.T) {
	b := newBrowser(t, &fakeExporter{})

	rec := b.get("/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = b.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Photo Editor")
	assert.Contains(t, rec.Body.String(), "Studio Editor")
	require.NotNil(t, b.cookie)

	rec = b.get("/editor/standard")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="preview"`)
	assert.Contains(t, body, `id="controls"`)
	assert.Contains(t, body, "Vintage")
	assert.Contains(t, body, "Auto Enhance")
	assert.Contains(t, body, "Max 15MB")

	rec = b.get("/editor/advanced")
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "Exposure")
	assert.Contains(t, body, "S-Curve")
	assert.Contains(t, body, "Before / After")
	assert.Contains(t, body, "Max 20MB")

	rec = b.get("/editor/bogus")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = b.get("/static/dist/main.css")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebserver_EditFlow(t *testing.T) {
	exporter := &fakeExporter{}
	b := newBrowser(t, exporter)
	b.get("/editor/standard")
	src := pngBytes(t)

	rec := b.upload("/editor/standard/upload", "photo.png", "image/png", src)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/editor/standard", rec.Header().Get("Location"))

	rec = b.get("/editor/standard")
	require.Equal(t, http.StatusOK, rec.Code)
	imagePath := imagePathRe.FindString(rec.Body.String())
	require.NotEmpty(t, imagePath)

	rec = b.get(imagePath)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, src, rec.Body.Bytes())

	rec = b.post("/api/editor/standard/filter", `{"filter":"Sepia"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, "datastar-patch-signals")
	assert.Contains(t, body, "sepia(100%)")

	rec = b.post("/api/editor/standard/intensity", `{"intensity":0.5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sepia(50%)")

	rec = b.post("/editor/standard/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "edited-photo.png")
	require.Len(t, exporter.calls, 1)
	assert.Equal(t, "sepia(50%)", exporter.calls[0])

	rec = b.post("/editor/standard/clear", "")
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = b.get(imagePath)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebserver_UploadRejected(t *testing.T) {
	b := newBrowser(t, &fakeExporter{})
	b.get("/editor/standard")

	rec := b.upload("/editor/standard/upload", "notes.txt", "text/plain", []byte("hello"))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = b.get("/editor/standard")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please select a valid image file")
	assert.Empty(t, imagePathRe.FindString(rec.Body.String()))
}

func TestWebserver_ExportFailureShowsInlineError(t *testing.T) {
	exporter := &fakeExporter{err: render.ErrEncode}
	b := newBrowser(t, exporter)
	b.get("/editor/standard")
	b.upload("/editor/standard/upload", "photo.png", "image/png", pngBytes(t))

	rec := b.post("/editor/standard/export", "")
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = b.get("/editor/standard")
	assert.Contains(t, rec.Body.String(), "Failed to process image")
	assert.NotContains(t, rec.Body.String(), "Processing…")
}

func TestWebserver_ExportPanicClearsProcessing(t *testing.T) {
	exporter := &fakeExporter{panics: true}
	b := newBrowser(t, exporter)
	b.get("/editor/standard")
	b.upload("/editor/standard/upload", "photo.png", "image/png", pngBytes(t))

	rec := b.post("/editor/standard/export", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = b.get("/editor/standard")
	assert.Contains(t, rec.Body.String(), "Something went wrong, please try again")
	assert.NotContains(t, rec.Body.String(), "Processing…")

	exporter.mu.Lock()
	exporter.panics = false
	exporter.mu.Unlock()

	rec = b.post("/editor/standard/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, exporter.calls, 2)
}

func TestWebserver_ExportWithoutImage(t *testing.T) {
	exporter := &fakeExporter{}
	b := newBrowser(t, exporter)
	b.get("/editor/advanced")

	rec := b.post("/editor/advanced/export", "")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, exporter.calls)

	rec = b.get("/editor/advanced")
	assert.Contains(t, rec.Body.String(), "Please upload an image first")
}

func TestWebserver_ControlErrors(t *testing.T) {
	b := newBrowser(t, &fakeExporter{})
	b.get("/editor/standard")

	rec := b.post("/api/editor/standard/filter", `{"filter":"No Such Look"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = b.post("/api/editor/standard/curve", `{"curve":"S-Curve"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = b.post("/api/editor/standard/intensity", `{"intensity":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = b.post("/api/editor/standard/filter", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebserver_AdvancedControls(t *testing.T) {
	b := newBrowser(t, &fakeExporter{})
	b.get("/editor/advanced")
	b.upload("/editor/advanced/upload", "photo.png", "image/png", pngBytes(t))

	rec := b.post("/api/editor/advanced/adjustment", `{"field":"brightness","value":120}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<code>brightness(120%)</code>")

	rec = b.post("/api/editor/advanced/adjustment", `{"field":"brightness","value":500}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = b.post("/api/editor/advanced/before-after", `{"beforeAfter":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = b.post("/api/editor/advanced/curve", `{"curve":"S-Curve"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = b.post("/api/editor/advanced/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<code>none</code>")
	assert.NotContains(t, rec.Body.String(), "brightness(120%)")

	rec = b.post("/api/editor/advanced/enhancement", `{"enhancement":"Portrait"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebserver_SessionsAreIsolated(t *testing.T) {
	exporter := &fakeExporter{}
	alice := newBrowser(t, exporter)
	alice.get("/editor/standard")
	alice.upload("/editor/standard/upload", "photo.png", "image/png", pngBytes(t))
	imagePath := imagePathRe.FindString(alice.get("/editor/standard").Body.String())
	require.NotEmpty(t, imagePath)

	// A second browser on the same server gets its own cookie.
	bob := &browser{t: t, srv: alice.srv}
	bob.get("/editor/standard")
	require.NotNil(t, bob.cookie)
	assert.NotEqual(t, alice.cookie.Value, bob.cookie.Value)

	rec := bob.get(imagePath)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBodyLimit(t *testing.T) {
	p := editor.NewProfiles(10<<20, 20<<20)
	assert.Equal(t, "42991616", bodyLimit(p))
}
