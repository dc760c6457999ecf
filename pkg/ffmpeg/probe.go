package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
)

// ErrNoVideoStream is returned when ffprobe finds nothing decodable as a picture.
var ErrNoVideoStream = errors.New("ffprobe: no video stream")

// ProbeResult contains image metadata.
type ProbeResult struct {
	Width       int    // Natural width in pixels
	Height      int    // Natural height in pixels
	Codec       string // Decoder name (png, mjpeg, webp, ...)
	PixelFormat string // Pixel format (rgba, yuvj420p, ...)
	FormatName  string // Demuxer name (png_pipe, image2, ...)

	// Raw JSON from ffprobe (complete output)
	RawJSON map[string]any
}

// ffprobeOutput matches ffprobe JSON output structure.
type ffprobeOutput struct {
	Format struct {
		Filename   string `json:"filename"`
		FormatName string `json:"format_name"`
	} `json:"format"`
	Streams []struct {
		Index       int    `json:"index"`
		CodecType   string `json:"codec_type"`
		CodecName   string `json:"codec_name"`
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		PixelFormat string `json:"pix_fmt"`
	} `json:"streams"`
}

// Probe runs ffprobe on a file and returns the first picture stream's metadata.
func (t Toolchain) Probe(ctx context.Context, path string) (*ProbeResult, error) {
	args := []string{
		"-hide_banner",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}

	bin := t.ffprobe()
	cmd := exec.CommandContext(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if missingBinary(err) {
			return nil, fmt.Errorf("%w: %s: %v", ErrNotInstalled, bin, err)
		}
		return nil, fmt.Errorf("ffprobe: %w: %s", err, stderr.String())
	}

	return parseProbe(stdout.Bytes())
}

func parseProbe(rawJSON []byte) (*ProbeResult, error) {
	var output ffprobeOutput
	if err := json.Unmarshal(rawJSON, &output); err != nil {
		return nil, fmt.Errorf("ffprobe: failed to parse output: %w", err)
	}

	// Also parse as generic map for RawJSON
	var rawMap map[string]any
	if err := json.Unmarshal(rawJSON, &rawMap); err != nil {
		return nil, fmt.Errorf("ffprobe: failed to parse raw json: %w", err)
	}

	result := &ProbeResult{
		RawJSON:    rawMap,
		FormatName: output.Format.FormatName,
	}

	for _, stream := range output.Streams {
		if stream.CodecType != "video" || stream.Width <= 0 || stream.Height <= 0 {
			continue
		}
		result.Width = stream.Width
		result.Height = stream.Height
		result.Codec = stream.CodecName
		result.PixelFormat = stream.PixelFormat
		return result, nil
	}

	return nil, ErrNoVideoStream
}
