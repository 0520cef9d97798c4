// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full stack:
// command parsing -> extension -> catalog service -> store -> SQLite.
//
// The internal packages carry their own unit tests; these tests prove the
// pieces are wired together, that flags reach the right options and that
// text and JSON output look the way users and scripts expect.
//
// Every test gets its own data directory through FUSEN_DIR and its own HOME,
// so nothing ever touches the real ~/.local/share/fusen.

package cmd

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the fusen binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "fusen-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "fusen"
		if os.PathSeparator == '\\' {
			binaryName = "fusen.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string // working directory for every command
	data   string // FUSEN_DIR
	media  string // where test files live
	binary string
}

// newTestEnv creates a temporary data directory with an initialised catalog
// and an empty media directory.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	binary := buildBinary(t)
	dir := t.TempDir()

	env := &testEnv{
		t:      t,
		dir:    dir,
		data:   filepath.Join(dir, "data"),
		media:  filepath.Join(dir, "media"),
		binary: binary,
	}
	require.NoError(t, os.MkdirAll(env.media, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "home"), 0755))

	env.run("init")

	return env
}

// file creates a file below the media directory and returns its path.
func (e *testEnv) file(rel string) string {
	e.t.Helper()
	p := filepath.Join(e.media, filepath.FromSlash(rel))
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(e.t, os.WriteFile(p, []byte(rel), 0644))
	return p
}

// run executes fusen with the given args and returns its output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("fusen %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes fusen and returns its output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	return e.runStdinErr("", args...)
}

// runStdin executes fusen with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	out, err := e.runStdinErr(input, args...)
	if err != nil {
		e.t.Fatalf("fusen %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runStdinErr executes fusen with stdin input and returns any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		EnvDir+"="+e.data,
		"HOME="+filepath.Join(e.dir, "home"),
		"NO_COLOR=1",
	)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// runJSON executes fusen with -o json and decodes stdout into v.
func (e *testEnv) runJSON(v any, args ...string) {
	e.t.Helper()

	cmd := exec.Command(e.binary, append([]string{"-o", "json"}, args...)...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		EnvDir+"="+e.data,
		"HOME="+filepath.Join(e.dir, "home"),
	)
	out, err := cmd.Output()
	require.NoError(e.t, err, "fusen -o json %v: %s", args, out)
	require.NoError(e.t, json.Unmarshal(out, v), "decode %s", out)
}

// lines splits output into trimmed, non-empty lines.
func lines(out string) []string {
	var result []string
	for _, l := range strings.Split(out, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			result = append(result, l)
		}
	}
	return result
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}
