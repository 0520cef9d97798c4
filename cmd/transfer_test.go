package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExport(t *testing.T) {
	env := newTestEnv(t)
	a := env.file("a.mkv")
	b := env.file("b.mkv")
	env.run("tag", "add", a, "anime, favourite")
	env.run("add", b)

	var m map[string][]string
	require.NoError(t, yaml.Unmarshal([]byte(env.run("export")), &m))
	require.Len(t, m, 2)
	assert.Equal(t, []string{"anime", "favourite"}, m[a])
	assert.Contains(t, m, b)
	assert.Empty(t, m[b])

	dst := filepath.Join(env.dir, "tags.yaml")
	out := env.run("export", dst)
	env.contains(out, "Exported 2 paths (2 tags)")
	assert.FileExists(t, dst)

	_, err := env.runErr("export", dst)
	assert.Error(t, err, "existing file needs --force")
	env.run("export", dst, "--force")
}

func TestImport(t *testing.T) {
	env := newTestEnv(t)
	a := env.file("a.mkv")
	b := env.file("b.mkv")
	env.run("tag", "add", a, "dub")

	src := filepath.Join(env.dir, "in.yaml")
	doc := a + ": [anime]\n" + b + ": [film, path]\n/not/a/list: 3\n"
	require.NoError(t, os.WriteFile(src, []byte(doc), 0644))

	out := env.run("import", "--dry-run", src)
	env.contains(out, "Would import: "+a)
	env.equals(env.run("ls"), a)

	out = env.run("import", src)
	env.contains(out, "Imported 2 path(s), skipped 1")
	env.equals(env.run("tag", "ls", a), "dub\nanime")
	env.equals(env.run("tag", "ls", b), "film")
	assert.FileExists(t, src, "source is kept unless deleteFileAfterImport is set")

	env.run("import", "--clear", src)
	env.equals(env.run("tag", "ls", a), "anime")
}

func TestImport_DeleteAfterImport(t *testing.T) {
	env := newTestEnv(t)
	a := env.file("a.mkv")
	env.run("config", "deleteFileAfterImport", "true")

	src := filepath.Join(env.dir, "in.yaml")
	require.NoError(t, os.WriteFile(src, []byte(a+": [anime]\n"), 0644))
	env.run("import", "--keep", src)
	assert.FileExists(t, src)

	env.run("import", src)
	assert.NoFileExists(t, src)
}

func TestImport_Stdin(t *testing.T) {
	env := newTestEnv(t)
	a := env.file("a.mkv")

	env.runStdin(a+": [anime]\n", "import", "-")
	env.equals(env.run("query", "--exact", "anime"), a)
}

func TestImport_NotMapping(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.runStdinErr("- a\n- b\n", "import", "-")
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	env := newTestEnv(t)
	a := env.file("a.mkv")
	b := env.file("b.mkv")
	env.run("tag", "add", a, "anime")

	dst := filepath.Join(env.dir, "tags.yaml")
	env.run("export", dst)
	out := env.run("diff", "--raw", dst)
	assert.NotContains(t, out, "not in the catalog")

	require.NoError(t, os.WriteFile(dst, []byte(a+": [anime, dub]\n"+b+": []\n"), 0644))
	out = env.run("diff", "--raw", dst)
	env.contains(out, "+ ")
	env.contains(out, "dub")
	env.contains(out, "1 path(s) not in the catalog")

	var result struct {
		Only    []string `json:"only_in_file"`
		Missing []string `json:"only_in_catalog"`
	}
	env.runJSON(&result, "diff", dst)
	assert.Equal(t, []string{b}, result.Only)
	assert.Empty(t, result.Missing)
}
