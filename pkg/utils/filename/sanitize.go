// Package filename provides utilities for sanitizing strings into safe filenames.
package filename

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// invalidCharsRe matches characters not safe for filenames across all major OSes.
var invalidCharsRe = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f\x7f]`)

// multiDash collapses runs of dashes/underscores.
var multiDash = regexp.MustCompile(`[-_]{2,}`)

// DefaultMaxLen is used when Sanitize is called with maxLen <= 0.
const DefaultMaxLen = 120

// Sanitize converts an arbitrary string into a filename-safe name.
// Text is NFC-normalised so names typed on different systems compare equal,
// filesystem-reserved characters and whitespace become dashes, and
// leading/trailing dashes and dots are stripped. The result is truncated to
// maxLen bytes, keeping the extension and never splitting a UTF-8 sequence.
func Sanitize(name string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}

	s := norm.NFC.String(strings.TrimSpace(name))
	if s == "" {
		return ""
	}

	// Replace invalid filesystem characters with dashes.
	s = invalidCharsRe.ReplaceAllString(s, "-")

	// Replace spaces and other whitespace with dashes.
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, s)

	// Collapse consecutive dashes / underscores.
	s = multiDash.ReplaceAllString(s, "-")

	// Strip leading/trailing dashes and dots (avoid hidden files / trailing dots on Windows).
	s = strings.Trim(s, "-.")

	if len(s) > maxLen {
		ext := filepath.Ext(s)
		if len(ext) >= maxLen/2 {
			ext = ""
		}
		s = truncate(strings.TrimSuffix(s, ext), maxLen-len(ext))
		s = strings.TrimRight(s, "-.") + ext
	}

	return s
}

// truncate cuts s to at most n bytes on a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
