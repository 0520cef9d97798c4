package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var buf bytes.Buffer
	c := newCounter(&buf, "Importing", 5, true)
	for range 5 {
		c.Step()
	}
	assert.Contains(t, buf.String(), "Importing... 5/5 (100%)")

	c.Done()
	assert.True(t, strings.HasSuffix(buf.String(), "\r"), "Done leaves the cursor at column 0")
}

func TestCounter_Quiet(t *testing.T) {
	t.Run("small total", func(t *testing.T) {
		var buf bytes.Buffer
		c := newCounter(&buf, "Importing", minItems-1, true)
		c.Step()
		c.Done()
		assert.Empty(t, buf.String())
	})

	t.Run("not a terminal", func(t *testing.T) {
		var buf bytes.Buffer
		c := newCounter(&buf, "Importing", 100, false)
		c.Step()
		c.Done()
		assert.Empty(t, buf.String())
	})
}

func TestSpinner(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(&buf, "Scanning", true)
	s.Start()
	s.Start()
	s.SetLabel("Scanning /media")
	time.Sleep(3 * tick)
	s.Stop()
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, frames[0]+" Scanning...")
	assert.Contains(t, out, "Scanning /media...")
}

func TestSpinner_NotATerminal(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(&buf, "Scanning", false)
	s.Start()
	s.Stop()
	assert.Empty(t, buf.String())
}

// syncBuffer guards a bytes.Buffer so the test can read it while the
// spinner goroutine may still be writing.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
