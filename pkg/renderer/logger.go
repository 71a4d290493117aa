package renderer

import (
	"fmt"
	"io"
	"os"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stderr.
// Stdout is reserved for image data.
type DefaultLogger struct {
	out io.Writer
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(dl.out, format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{out: os.Stderr}
}

// NewWriterLogger creates a logger that writes to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &DefaultLogger{out: w}
}

// discardLogger drops every message
type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}

// NewDiscardLogger returns a logger that drops all output
func NewDiscardLogger() core.Logger {
	return discardLogger{}
}
