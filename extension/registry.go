// registry.go holds the process-wide list of extensions.
//
// Extensions add themselves from init(), so by the time main runs the list
// is complete and never changes again. Order is registration order, which
// is import order in extension/all, and fixes the order of help output.

package extension

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
)

var (
	mu       sync.RWMutex
	registry []Extension
	names    = make(map[string]bool)
)

// Register adds an extension. Two extensions with one name is a wiring
// mistake and panics, as database/sql.Register does.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	name := e.Name()
	if names[name] {
		panic("extension already registered: " + name)
	}
	names[name] = true
	registry = append(registry, e)
}

// All returns the registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Extension(nil), registry...)
}

// Commands builds the top-level commands of every extension. Cobra would
// silently keep both of two commands sharing a name, so a clash panics
// naming both owners.
func Commands() []*cobra.Command {
	owner := make(map[string]string)
	var cmds []*cobra.Command
	for _, e := range All() {
		for _, c := range e.Commands() {
			if prev, ok := owner[c.Name()]; ok {
				panic(fmt.Sprintf("command %q registered by both %s and %s", c.Name(), prev, e.Name()))
			}
			owner[c.Name()] = e.Name()
			cmds = append(cmds, c)
		}
	}
	return cmds
}
