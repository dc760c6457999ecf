package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
)

// ErrNotInstalled is returned when the ffmpeg or ffprobe binary cannot be found.
var ErrNotInstalled = errors.New("ffmpeg: binary not found")

// Toolchain locates the ffmpeg and ffprobe binaries. Empty fields fall back
// to the names on PATH.
type Toolchain struct {
	FFmpeg  string
	FFprobe string
}

func (t Toolchain) ffmpeg() string {
	if t.FFmpeg == "" {
		return "ffmpeg"
	}
	return t.FFmpeg
}

func (t Toolchain) ffprobe() string {
	if t.FFprobe == "" {
		return "ffprobe"
	}
	return t.FFprobe
}

// Check reports ErrNotInstalled when either binary cannot be resolved.
func (t Toolchain) Check() error {
	for _, bin := range []string{t.ffmpeg(), t.ffprobe()} {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrNotInstalled, bin, err)
		}
	}
	return nil
}

// process is a running ffmpeg invocation.
type process struct {
	done   chan struct{}
	err    error
	stderr bytes.Buffer
}

// wait blocks until the process completes and returns any error.
func (p *process) wait() error {
	<-p.done
	return p.err
}

// start launches ffmpeg with args, capturing stderr.
func (t Toolchain) start(ctx context.Context, args []string) (*process, error) {
	bin := t.ffmpeg()
	cmd := exec.CommandContext(ctx, bin, args...)

	p := &process{done: make(chan struct{})}

	cmd.Stderr = &p.stderr

	if err := cmd.Start(); err != nil {
		if missingBinary(err) {
			return nil, fmt.Errorf("%w: %s: %v", ErrNotInstalled, bin, err)
		}
		return nil, fmt.Errorf("ffmpeg: failed to start: %w", err)
	}

	go func() {
		defer close(p.done)
		p.err = cmd.Wait()
		if p.err != nil {
			p.err = &Error{
				Args:   args,
				Stderr: p.stderr.String(),
				Err:    p.err,
			}
		}
	}()

	return p, nil
}

// RunResult contains the outcome of an ffmpeg invocation, including captured stderr.
type RunResult struct {
	// Logs contains the full ffmpeg stderr output.
	// Available regardless of success or failure.
	Logs string
	// Err is non-nil when ffmpeg could not start or exited with a non-zero status.
	Err error
}

// Run executes cmd, waits for completion, and returns stderr output.
func (t Toolchain) Run(ctx context.Context, cmd *Command) RunResult {
	proc, err := t.start(ctx, cmd.Build())
	if err != nil {
		return RunResult{Err: err}
	}
	waitErr := proc.wait()
	return RunResult{
		Logs: proc.stderr.String(),
		Err:  waitErr,
	}
}

func missingBinary(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

// Error represents an ffmpeg execution error with context.
type Error struct {
	Args   []string
	Stderr string
	Err    error
}

// Error implements error.
func (e *Error) Error() string {
	// Extract just the last few lines of stderr for the error message
	lines := strings.Split(strings.TrimSpace(e.Stderr), "\n")
	var lastLines string
	if len(lines) > 3 {
		lastLines = strings.Join(lines[len(lines)-3:], "\n")
	} else {
		lastLines = strings.Join(lines, "\n")
	}

	if lastLines != "" {
		return fmt.Sprintf("ffmpeg: %v: %s", e.Err, lastLines)
	}
	return fmt.Sprintf("ffmpeg: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
