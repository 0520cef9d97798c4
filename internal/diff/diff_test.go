package diff

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/fusen/internal/catalog"
	"github.com/jpl-au/fusen/internal/exporter"
)

func TestCompute(t *testing.T) {
	r := Compute("a\nb\nc\n", "a\nB\nc\n", "old", "new")
	assert.Equal(t, "  a\n- b\n+ B\n  c\n", r.Diff)
	assert.False(t, r.Same())

	r = Compute("a\n", "a\n", "old", "new")
	assert.True(t, r.Same())
	assert.Equal(t, "new matches old\n", r.Format(false))
}

func TestFormat_CollapsesLongContext(t *testing.T) {
	var lines []string
	for i := range 10 {
		lines = append(lines, string(rune('a'+i)))
	}
	oldText := strings.Join(lines, "\n") + "\n"
	newText := oldText + "z\n"

	out := Compute(oldText, newText, "old", "new").Diff
	assert.Contains(t, out, "  ...\n")
	assert.Contains(t, out, "+ z\n")
	assert.NotContains(t, out, "  e\n")
}

func TestColourise(t *testing.T) {
	out := Colourise("- gone\n+ new\n  same\n")
	assert.Contains(t, out, "\033[31m- gone\033[0m")
	assert.Contains(t, out, "\033[32m+ new\033[0m")
	assert.Contains(t, out, "  same\n")
}

func TestMappings(t *testing.T) {
	oldM := exporter.Mapping{"/a": {"x"}, "/gone": {}}
	newM := exporter.Mapping{"/a": {"x", "y"}, "/new": {"z"}}

	r, err := Mappings(oldM, newM, "catalog", "file")
	require.NoError(t, err)
	assert.Equal(t, []string{"/new"}, r.Only)
	assert.Equal(t, []string{"/gone"}, r.Missing)
	assert.Contains(t, r.Diff, "+   - y\n")
	assert.Contains(t, r.Format(false), "--- catalog\n+++ file\n")
}

func TestRun(t *testing.T) {
	svc, err := catalog.Open(t.TempDir(), catalog.Options{})
	require.NoError(t, err)
	defer svc.Close()
	ctx := context.Background()
	require.NoError(t, svc.AddTags(ctx, []string{"/m/a.mkv"}, []string{"anime"}))

	dir := t.TempDir()
	file := filepath.Join(dir, "tags.yaml")

	t.Run("own export diffs clean", func(t *testing.T) {
		_, err := exporter.Run(ctx, &bytes.Buffer{}, svc, file, exporter.Options{})
		require.NoError(t, err)

		var buf bytes.Buffer
		r, err := Run(ctx, &buf, svc, file, false)
		require.NoError(t, err)
		assert.True(t, r.Same())
		assert.Contains(t, buf.String(), "matches")
	})

	t.Run("file content is canonicalised", func(t *testing.T) {
		// Unsorted keys, a quoted tag and the reserved word.
		content := "/m/z.mkv: [\"my show\"]\n/m/a.mkv: [anime, path]\n"
		require.NoError(t, os.WriteFile(file, []byte(content), 0644))

		var buf bytes.Buffer
		r, err := Run(ctx, &buf, svc, file, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"/m/z.mkv"}, r.Only)
		assert.Contains(t, r.Diff, "+   - my_show\n")
		assert.NotContains(t, r.Diff, "path")
	})
}
