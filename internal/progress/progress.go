// Package progress draws the transient status line shown on stderr while a
// long walk, prune or import runs. Nothing is drawn when stderr is not a
// terminal, so piped and scripted runs see only the command's own output.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// minItems is the smallest total worth a counter; short runs finish before
// the line could be read.
const minItems = 5

// tick is the spinner frame interval.
const tick = 120 * time.Millisecond

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func stderrIsTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// line owns one rewritable terminal line.
type line struct {
	w     io.Writer
	width int
}

func (l *line) draw(s string) {
	pad := ""
	if n := l.width - len(s); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	fmt.Fprintf(l.w, "\r%s%s", s, pad)
	l.width = len(s)
}

func (l *line) clear() {
	if l.width == 0 {
		return
	}
	fmt.Fprintf(l.w, "\r%s\r", strings.Repeat(" ", l.width))
	l.width = 0
}

// Counter reports "label... n/total (pct%)" for work of known size.
type Counter struct {
	line
	label   string
	total   int
	current int
	enabled bool
}

// New returns a counter for total items writing to stderr.
func New(label string, total int) *Counter {
	return newCounter(os.Stderr, label, total, stderrIsTTY())
}

func newCounter(w io.Writer, label string, total int, tty bool) *Counter {
	return &Counter{
		line:    line{w: w},
		label:   label,
		total:   total,
		enabled: tty && total >= minItems,
	}
}

// Step records one finished item and redraws the line.
func (c *Counter) Step() {
	c.current++
	if !c.enabled {
		return
	}
	pct := c.current * 100 / c.total
	c.draw(fmt.Sprintf("%s... %d/%d (%d%%)", c.label, c.current, c.total, pct))
}

// Done removes the line so the command's summary starts on a clean row.
func (c *Counter) Done() {
	if c.enabled {
		c.clear()
	}
}

// Spinner animates "⠋ label..." for work of unknown size until stopped.
// It redraws from its own goroutine, so a walk that blocks on a slow mount
// still shows signs of life.
type Spinner struct {
	line
	enabled bool

	mu    sync.Mutex
	label string
	stop  chan struct{}
	done  chan struct{}
}

// NewSpinner returns a spinner writing to stderr.
func NewSpinner(label string) *Spinner {
	return newSpinner(os.Stderr, label, stderrIsTTY())
}

func newSpinner(w io.Writer, label string, tty bool) *Spinner {
	return &Spinner{line: line{w: w}, label: label, enabled: tty}
}

// Start begins the animation. Calling Start on a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled || s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.draw(frames[0] + " " + s.label + "...")
	go s.run(s.stop, s.done)
}

func (s *Spinner) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	t := time.NewTicker(tick)
	defer t.Stop()
	for i := 1; ; i++ {
		select {
		case <-stop:
			return
		case <-t.C:
			s.mu.Lock()
			s.draw(frames[i%len(frames)] + " " + s.label + "...")
			s.mu.Unlock()
		}
	}
}

// SetLabel changes the text shown next to the spinner, e.g. to the
// directory currently being walked.
func (s *Spinner) SetLabel(label string) {
	s.mu.Lock()
	s.label = label
	s.mu.Unlock()
}

// Stop ends the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done

	s.mu.Lock()
	s.clear()
	s.mu.Unlock()
}
