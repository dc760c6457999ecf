package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"thirdcoast.systems/darkroom/internal/render"
)

var (
	ErrUnknownView        = errors.New("unknown editor view")
	ErrInvalidFileType    = errors.New("file is not an image")
	ErrFileTooLarge       = errors.New("file exceeds upload limit")
	ErrNoImage            = errors.New("no image loaded")
	ErrExportInProgress   = errors.New("export already in progress")
	ErrUnknownFilter      = errors.New("unknown filter preset")
	ErrUnknownEnhancement = errors.New("unknown enhancement preset")
	ErrUnknownCategory    = errors.New("unknown filter category")
	ErrUnknownCurve       = errors.New("unknown curve preset")
	ErrNotAvailable       = errors.New("control not available in this view")
	ErrSessionClosed      = errors.New("editing session closed")
)

// Message maps an error to the inline text shown to the user.
func Message(p Profile, err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidFileType):
		return p.TypeError
	case errors.Is(err, ErrFileTooLarge):
		return "File size must be less than " + SizeLabel(p.MaxUpload)
	case errors.Is(err, ErrNoImage):
		return "Please upload an image first"
	case errors.Is(err, ErrExportInProgress):
		return "An export is already in progress"
	case errors.Is(err, context.DeadlineExceeded):
		return "Processing took too long, please try again"
	case errors.Is(err, render.ErrDecode):
		return "Failed to load image for processing"
	case errors.Is(err, render.ErrContextUnavailable):
		return "Image processing is unavailable right now"
	case errors.Is(err, render.ErrEncode):
		return "Failed to process image"
	case errors.Is(err, ErrSessionClosed):
		return "Your editing session expired, please upload the image again"
	default:
		return "Something went wrong, please try again"
	}
}

// SizeLabel renders an upload cap the way the editor advertises it:
// whole mebibytes as "15MB", anything else in IEC units.
func SizeLabel(n int64) string {
	const mib = 1 << 20
	if n > 0 && n%mib == 0 {
		return fmt.Sprintf("%dMB", n/mib)
	}
	return humanize.IBytes(uint64(n))
}
