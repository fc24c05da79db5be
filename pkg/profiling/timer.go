// Package profiling times the phases of a launcherctl run (pack loading,
// resolution) and can write pprof profiles. Timing is off until Enable.
package profiling

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Span is one timed phase. A nil *Span is valid and records nothing, which
// is what Start returns while timing is disabled.
type Span struct {
	name     string
	start    time.Time
	duration time.Duration

	mu       sync.Mutex
	children []*Span
}

// Stop ends the span. Stopping twice keeps the first duration.
func (s *Span) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.duration == 0 {
		s.duration = time.Since(s.start)
	}
}

// Child starts a nested span. Children of one span may be started from
// different goroutines.
func (s *Span) Child(name string) *Span {
	if s == nil {
		return nil
	}
	child := &Span{name: name, start: time.Now()}
	s.mu.Lock()
	s.children = append(s.children, child)
	s.mu.Unlock()
	return child
}

// Duration is the recorded time, or the time so far for a running span.
func (s *Span) Duration() time.Duration {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.duration == 0 {
		return time.Since(s.start)
	}
	return s.duration
}

type recorder struct {
	mu    sync.Mutex
	start time.Time
	spans []*Span
	on    bool
}

var global = &recorder{}

// Enable turns timing on and starts the run clock.
func Enable() {
	global.mu.Lock()
	defer global.mu.Unlock()
	if global.on {
		return
	}
	global.on = true
	global.start = time.Now()
}

// Enabled reports whether spans are being recorded.
func Enabled() bool {
	global.mu.Lock()
	defer global.mu.Unlock()
	return global.on
}

// Reset turns timing off and forgets every span.
func Reset() {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.on = false
	global.spans = nil
}

// Start begins a top-level span, or returns nil when timing is off.
func Start(name string) *Span {
	global.mu.Lock()
	defer global.mu.Unlock()
	if !global.on {
		return nil
	}
	s := &Span{name: name, start: time.Now()}
	global.spans = append(global.spans, s)
	return s
}

// Summarize writes the span tree with each span's share of the run.
func Summarize(w io.Writer) {
	global.mu.Lock()
	spans := append([]*Span(nil), global.spans...)
	total := time.Since(global.start)
	on := global.on
	global.mu.Unlock()

	if !on {
		return
	}

	fmt.Fprintf(w, "\n--- Timing (%v) ---\n", total.Round(100*time.Microsecond))
	for _, s := range spans {
		printSpan(w, s, 0, total)
	}
}

func printSpan(w io.Writer, s *Span, depth int, total time.Duration) {
	d := s.Duration()
	pct := 0.0
	if total > 0 {
		pct = float64(d) / float64(total) * 100
	}
	fmt.Fprintf(w, "%s- %s (%v, %.1f%%)\n", strings.Repeat("  ", depth), s.name, d.Round(100*time.Microsecond), pct)

	s.mu.Lock()
	children := append([]*Span(nil), s.children...)
	s.mu.Unlock()
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].start.Before(children[j].start)
	})
	for _, c := range children {
		printSpan(w, c, depth+1, total)
	}
}
