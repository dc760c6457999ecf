// Package ffmpeg provides a composable API for building and executing ffmpeg commands.
package ffmpeg

import "strings"

// Command represents an ffmpeg command being built.
type Command struct {
	input     string
	output    string
	preInput  []string // args before -i
	postInput []string // args after -i
	filters   []string // collected -vf filters
}

// Option modifies a Command. Options are composable and order-independent
// (ffmpeg will receive args in correct order regardless of option order).
type Option interface {
	Apply(cmd *Command)
}

// OptionFunc is a function that implements Option.
type OptionFunc func(cmd *Command)

// Apply implements Option.
func (f OptionFunc) Apply(cmd *Command) { f(cmd) }

// NewCommand creates a command with input/output and applies options.
func NewCommand(input, output string, opts ...Option) *Command {
	cmd := &Command{
		input:  input,
		output: output,
	}
	for _, opt := range opts {
		opt.Apply(cmd)
	}
	return cmd
}

// Output returns the output path.
func (c *Command) Output() string { return c.output }

// Filters returns the collected video filter chain, in order.
func (c *Command) Filters() []string { return c.filters }

// Build returns the complete ffmpeg argument list.
func (c *Command) Build() []string {
	args := []string{"-hide_banner", "-y"}

	args = append(args, c.preInput...)
	args = append(args, "-i", c.input)
	args = append(args, c.postInput...)

	if len(c.filters) > 0 {
		args = append(args, "-vf", strings.Join(c.filters, ","))
	}

	args = append(args, c.output)

	return args
}

// --- Filter Options ---

// Filter adds a video filter to the filter chain.
func Filter(f string) Option {
	return OptionFunc(func(cmd *Command) {
		cmd.filters = append(cmd.filters, f)
	})
}

// --- Output Options ---

// SingleImage writes one frame to a plain (non-sequence) image file.
var SingleImage Option = OptionFunc(func(cmd *Command) {
	cmd.postInput = append(cmd.postInput, "-frames:v", "1", "-update", "1")
})

// PNG encodes the output as an RGBA PNG.
var PNG Option = OptionFunc(func(cmd *Command) {
	cmd.postInput = append(cmd.postInput, "-c:v", "png", "-pix_fmt", "rgba")
})

// --- Misc ---

// LogLevel sets the logging level.
func LogLevel(level string) Option {
	return OptionFunc(func(cmd *Command) {
		// Insert at beginning of preInput so it's early in args
		cmd.preInput = append([]string{"-loglevel", level}, cmd.preInput...)
	})
}
