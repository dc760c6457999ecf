package editor

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"thirdcoast.systems/darkroom/internal/objecturl"
	"thirdcoast.systems/darkroom/pkg/filters"
)

// Image is the currently loaded upload.
type Image struct {
	Name        string
	ContentType string
	Size        int64
	URL         string
}

// Session is the editing state of one browser for one view. All methods are
// safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id      string
	profile Profile
	urls    *objecturl.Table

	image       *Image
	filter      string // selected preset expression, "none" when deriving from sliders
	enhancement string
	category    string
	curve       string
	intensity   float64
	adjustments filters.Adjustments
	beforeAfter bool
	processing  bool
	errMsg      string

	lastUsed time.Time
	closed   bool
}

func newSession(id string, profile Profile, urls *objecturl.Table, now time.Time) *Session {
	return &Session{
		id:          id,
		profile:     profile,
		urls:        urls,
		filter:      filters.NoneExpression,
		category:    filters.CategoryAll,
		curve:       filters.NoneExpression,
		intensity:   filters.DefaultIntensity,
		adjustments: filters.DefaultAdjustments(),
		lastUsed:    now,
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Profile returns the view profile.
func (s *Session) Profile() Profile { return s.profile }

func (s *Session) touch() {
	s.lastUsed = time.Now()
}

// Upload replaces the current image. The declared type and the sniffed
// content must both be images, and the type is checked before the size. A
// rejected upload leaves the current image in place and records the inline
// error.
func (s *Session) Upload(name, declaredType string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.closed {
		return ErrSessionClosed
	}

	sniffed := mimetype.Detect(data)
	if !isImageType(declaredType) || !isImageType(sniffed.String()) {
		return s.reject(fmt.Errorf("%w: declared %q, detected %q", ErrInvalidFileType, declaredType, sniffed.String()))
	}
	if size := int64(len(data)); size > s.profile.MaxUpload {
		return s.reject(fmt.Errorf("%w: %d > %d bytes", ErrFileTooLarge, size, s.profile.MaxUpload))
	}

	s.release()
	contentType := sniffed.String()
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	s.image = &Image{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		URL:         s.urls.Create(data, contentType),
	}
	s.errMsg = ""
	if s.profile.ResetFilterOnUpload {
		s.filter = filters.NoneExpression
		s.enhancement = ""
	}
	return nil
}

func (s *Session) reject(err error) error {
	s.errMsg = Message(s.profile, err)
	return err
}

func isImageType(t string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(t)), "image/")
}

// release revokes the current image reference. Callers hold s.mu.
func (s *Session) release() {
	if s.image == nil {
		return
	}
	s.urls.Revoke(s.image.URL)
	s.image = nil
}

// Clear unloads the image and resets the selected filter.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.release()
	s.filter = filters.NoneExpression
	s.enhancement = ""
	s.errMsg = ""
}

// SelectFilter activates a catalog preset by name. An empty name or "none"
// returns to the neutral expression.
func (s *Session) SelectFilter(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if name == "" || name == filters.NoneExpression {
		s.filter = filters.NoneExpression
		s.enhancement = ""
		return nil
	}
	p, ok := filters.FindPreset(s.profile.Catalog, name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	s.filter = p.Expression
	s.enhancement = ""
	return nil
}

// SelectEnhancement activates an enhancement preset by name.
func (s *Session) SelectEnhancement(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if !s.profile.Enhancements {
		return fmt.Errorf("%w: enhancements", ErrNotAvailable)
	}
	p, ok := filters.FindEnhancement(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEnhancement, name)
	}
	s.filter = p.Expression()
	s.enhancement = p.Name
	return nil
}

// SelectCategory narrows the visible presets.
func (s *Session) SelectCategory(category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if !s.profile.Categories {
		return fmt.Errorf("%w: categories", ErrNotAvailable)
	}
	for _, c := range filters.Categories(s.profile.Catalog) {
		if c == category {
			s.category = category
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
}

// SelectCurve selects a tone curve, or "none".
func (s *Session) SelectCurve(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if !s.profile.Curves {
		return fmt.Errorf("%w: curves", ErrNotAvailable)
	}
	if name != filters.NoneExpression {
		if _, ok := filters.FindCurve(name); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCurve, name)
		}
	}
	s.curve = name
	return nil
}

// SetIntensity sets the global strength factor.
func (s *Session) SetIntensity(f float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if !s.profile.Intensity {
		return fmt.Errorf("%w: intensity", ErrNotAvailable)
	}
	if err := filters.ValidateIntensity(f); err != nil {
		return err
	}
	s.intensity = f
	return nil
}

// SetAdjustment moves one slider.
func (s *Session) SetAdjustment(key string, v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if !s.profile.Adjustments {
		return fmt.Errorf("%w: adjustments", ErrNotAvailable)
	}
	return s.adjustments.Set(key, v)
}

// ResetAdjustments returns sliders, selected filter and curve to neutral.
func (s *Session) ResetAdjustments() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if !s.profile.Adjustments {
		return fmt.Errorf("%w: adjustments", ErrNotAvailable)
	}
	s.adjustments = filters.DefaultAdjustments()
	s.filter = filters.NoneExpression
	s.curve = filters.NoneExpression
	return nil
}

// SetBeforeAfter toggles the split preview.
func (s *Session) SetBeforeAfter(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if !s.profile.BeforeAfter {
		return fmt.Errorf("%w: before/after", ErrNotAvailable)
	}
	s.beforeAfter = on
	return nil
}

// Expression returns the active effect expression.
func (s *Session) Expression() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expression()
}

func (s *Session) expression() string {
	if s.profile.Adjustments {
		return filters.Resolve(s.filter, s.adjustments)
	}
	if s.profile.Intensity {
		return filters.ScaleIntensity(s.filter, s.intensity)
	}
	return s.filter
}

// Preview is what the image pane renders.
type Preview struct {
	HasImage    bool
	ImageURL    string
	ImageName   string
	Expression  string
	BeforeAfter bool
	// BeforeExpression is applied to the "before" half in split mode.
	BeforeExpression string
}

// Preview returns the preview model.
func (s *Session) Preview() Preview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview()
}

func (s *Session) preview() Preview {
	p := Preview{
		Expression:       s.expression(),
		BeforeAfter:      s.beforeAfter,
		BeforeExpression: filters.NoneExpression,
	}
	if s.image != nil {
		p.HasImage = true
		p.ImageURL = s.image.URL
		p.ImageName = s.image.Name
	}
	return p
}

// State is a consistent snapshot of the session for rendering.
type State struct {
	View        View
	Profile     Profile
	Image       *Image
	Filter      string
	Enhancement string
	Category    string
	Curve       string
	Intensity   float64
	Adjustments filters.Adjustments
	BeforeAfter bool
	Processing  bool
	Error       string
	Preview     Preview
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		View:        s.profile.View,
		Profile:     s.profile,
		Filter:      s.filter,
		Enhancement: s.enhancement,
		Category:    s.category,
		Curve:       s.curve,
		Intensity:   s.intensity,
		Adjustments: s.adjustments,
		BeforeAfter: s.beforeAfter,
		Processing:  s.processing,
		Error:       s.errMsg,
		Preview:     s.preview(),
	}
	if s.image != nil {
		img := *s.image
		st.Image = &img
	}
	return st
}

// ImageData returns the bytes behind the session's current image when url
// is that image.
func (s *Session) ImageData(url string) (objecturl.Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.image == nil || s.image.URL != url {
		return objecturl.Object{}, false
	}
	return s.urls.Resolve(url)
}

// ExportJob carries what an export needs, captured when it starts.
type ExportJob struct {
	Source     []byte
	Expression string
	Filename   string
	Prefix     string
}

// BeginExport marks the session as processing and snapshots the job. Only
// one export may be in flight per session.
func (s *Session) BeginExport() (ExportJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.processing {
		return ExportJob{}, ErrExportInProgress
	}
	if s.image == nil {
		return ExportJob{}, s.reject(ErrNoImage)
	}
	obj, ok := s.urls.Resolve(s.image.URL)
	if !ok {
		return ExportJob{}, s.reject(ErrNoImage)
	}

	s.processing = true
	s.errMsg = ""
	return ExportJob{
		Source:     obj.Data,
		Expression: s.expression(),
		Filename:   s.image.Name,
		Prefix:     s.profile.DownloadPrefix,
	}, nil
}

// FinishExport clears the processing flag and records err, if any, as the
// inline error.
func (s *Session) FinishExport(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.processing = false
	if err != nil {
		s.errMsg = Message(s.profile, err)
	}
}

// Processing reports whether an export is in flight.
func (s *Session) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

// idleSince reports whether the session has been unused since before t and
// is not exporting.
func (s *Session) idleSince(t time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.processing && s.lastUsed.Before(t)
}

// Close releases the image reference. The session rejects uploads afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.release()
	s.closed = true
}
