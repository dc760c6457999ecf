// Package render produces the downloadable raster for an editing session:
// the source image at its natural size with the effect expression applied,
// encoded as PNG.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"thirdcoast.systems/darkroom/pkg/ffmpeg"
	"thirdcoast.systems/darkroom/pkg/filters"
)

var (
	ErrDecode             = errors.New("render: source image could not be decoded")
	ErrContextUnavailable = errors.New("render: raster backend unavailable")
	ErrEncode             = errors.New("render: encoded output is empty or invalid")
)

// Runner executes ffmpeg and ffprobe. ffmpeg.Toolchain satisfies it.
type Runner interface {
	Run(ctx context.Context, cmd *ffmpeg.Command) ffmpeg.RunResult
	Probe(ctx context.Context, path string) (*ffmpeg.ProbeResult, error)
}

// Exporter renders images through a Runner.
type Exporter struct {
	runner  Runner
	timeout time.Duration
	tempDir string
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithTimeout bounds a single export. Zero means no bound beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(e *Exporter) { e.timeout = d }
}

// WithTempDir sets where scratch files are written. Defaults to os.TempDir().
func WithTempDir(dir string) Option {
	return func(e *Exporter) { e.tempDir = dir }
}

// NewExporter creates an exporter.
func NewExporter(runner Runner, opts ...Option) *Exporter {
	e := &Exporter{runner: runner}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is one rendered image.
type Result struct {
	Data     []byte
	Width    int
	Height   int
	Filtered bool // false when the expression was neutral or rejected
}

// Export renders src with expression applied. An expression that does not
// parse renders the image unfiltered, the way a browser ignores an invalid
// filter value.
func (e *Exporter) Export(ctx context.Context, src []byte, expression string) (*Result, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	if len(src) == 0 {
		return nil, fmt.Errorf("%w: empty source", ErrDecode)
	}

	dir, err := os.MkdirTemp(e.tempDir, "darkroom-export-*")
	if err != nil {
		return nil, fmt.Errorf("%w: scratch dir: %v", ErrContextUnavailable, err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "source"+mimetype.Detect(src).Extension())
	output := filepath.Join(dir, "export.png")
	if err := os.WriteFile(input, src, 0o600); err != nil {
		return nil, fmt.Errorf("%w: scratch file: %v", ErrContextUnavailable, err)
	}

	width, height, err := e.dimensions(ctx, src, input)
	if err != nil {
		return nil, err
	}

	chain := compile(expression)

	opts := append(chain, ffmpeg.SingleImage, ffmpeg.PNG, ffmpeg.LogLevel("error"))
	cmd := ffmpeg.NewCommand(input, output, opts...)

	start := time.Now()
	res := e.runner.Run(ctx, cmd)
	if res.Err != nil {
		if errors.Is(res.Err, ffmpeg.ErrNotInstalled) {
			return nil, fmt.Errorf("%w: %w", ErrContextUnavailable, res.Err)
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncode, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %w", ErrEncode, res.Err)
	}

	data, err := os.ReadFile(output)
	if err != nil || len(data) == 0 {
		return nil, fmt.Errorf("%w: no output written", ErrEncode)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: output is not a png: %v", ErrEncode, err)
	}
	if cfg.Width != width || cfg.Height != height {
		slog.Warn("export size differs from source",
			"source_width", width, "source_height", height,
			"output_width", cfg.Width, "output_height", cfg.Height)
	}

	slog.Debug("export rendered",
		"width", cfg.Width, "height", cfg.Height,
		"filters", len(cmd.Filters()), "bytes", len(data),
		"elapsed", time.Since(start))

	return &Result{
		Data:     data,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Filtered: len(chain) > 0,
	}, nil
}

// dimensions reads the natural size from the header, falling back to ffprobe
// for formats the image package has no decoder for.
func (e *Exporter) dimensions(ctx context.Context, src []byte, path string) (int, int, error) {
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(src)); err == nil && cfg.Width > 0 && cfg.Height > 0 {
		return cfg.Width, cfg.Height, nil
	}

	probe, err := e.runner.Probe(ctx, path)
	if err != nil {
		if errors.Is(err, ffmpeg.ErrNotInstalled) {
			return 0, 0, fmt.Errorf("%w: %w", ErrContextUnavailable, err)
		}
		return 0, 0, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if probe.Width <= 0 || probe.Height <= 0 {
		return 0, 0, fmt.Errorf("%w: no dimensions", ErrDecode)
	}
	return probe.Width, probe.Height, nil
}

func compile(expression string) []ffmpeg.Option {
	ops, err := filters.ParseExpression(expression)
	if err != nil {
		slog.Warn("rendering unfiltered, expression rejected", "expression", expression, "error", err)
		return nil
	}
	chain, err := ffmpeg.CompileCSS(ops)
	if err != nil {
		slog.Warn("rendering unfiltered, expression not compilable", "expression", expression, "error", err)
		return nil
	}
	return chain
}
