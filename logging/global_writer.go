package logging

import (
	"io"
	"os"
	"sync"
)

// globalWriter is an io.Writer that delegates to an underlying writer,
// which can be swapped at runtime in a thread-safe manner.
type globalWriter struct {
	mu sync.RWMutex
	w  io.Writer
}

func (gw *globalWriter) Write(p []byte) (n int, err error) {
	gw.mu.RLock()
	defer gw.mu.RUnlock()
	return gw.w.Write(p)
}

func (gw *globalWriter) Set(w io.Writer) {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	gw.w = w
}

var defaultGlobalWriter = &globalWriter{w: os.Stderr}

// SetGlobalOutput redirects the stderr sink of every logger. The icon picker
// uses it to keep log lines off the alternate screen.
func SetGlobalOutput(w io.Writer) {
	defaultGlobalWriter.Set(w)
}

// GetGlobalOutput returns the shared stderr sink.
func GetGlobalOutput() io.Writer {
	return defaultGlobalWriter
}

// SwapGlobalOutput redirects the sink and returns a func restoring the
// previous writer.
func SwapGlobalOutput(w io.Writer) (restore func()) {
	defaultGlobalWriter.mu.Lock()
	prev := defaultGlobalWriter.w
	defaultGlobalWriter.w = w
	defaultGlobalWriter.mu.Unlock()
	return func() { defaultGlobalWriter.Set(prev) }
}
