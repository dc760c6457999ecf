package render

import "thirdcoast.systems/darkroom/pkg/utils/filename"

// FallbackName is used when the original name sanitises to nothing.
const FallbackName = "image.png"

// Filename composes the download name: prefix followed by the original name.
func Filename(prefix, original string) string {
	name := filename.Sanitize(original, filename.DefaultMaxLen)
	if name == "" {
		name = FallbackName
	}
	return prefix + name
}
