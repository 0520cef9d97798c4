package scan_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/fusen/internal/catalog"
	"github.com/jpl-au/fusen/internal/config"
	"github.com/jpl-au/fusen/internal/scan"
	"github.com/jpl-au/fusen/internal/service"
)

// tree builds:
//
//	root/a.mkv
//	root/.hidden
//	root/notes.part
//	root/sub/b.mkv
//	root/link     -> a.mkv
//	root/broken   -> missing
//	root/dirlink  -> sub
func tree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range []string{"a.mkv", ".hidden", "notes.part", "sub/b.mkv"} {
		p := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "a.mkv"), filepath.Join(root, "link")))
	require.NoError(t, os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "broken")))
	require.NoError(t, os.Symlink(filepath.Join(root, "sub"), filepath.Join(root, "dirlink")))
	return root
}

func rel(root string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		r, _ := filepath.Rel(root, p)
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func setupService(t *testing.T) *catalog.Service {
	t.Helper()
	svc, err := catalog.Open(t.TempDir(), catalog.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestDiscover(t *testing.T) {
	root := tree(t)
	ctx := context.Background()

	t.Run("single level", func(t *testing.T) {
		got, err := scan.Discover(ctx, root, service.NewSet(), scan.Options{Mode: scan.SingleLevel})
		require.NoError(t, err)
		assert.Equal(t, []string{".hidden", "a.mkv", "link", "notes.part"}, rel(root, got))
	})

	t.Run("recursive", func(t *testing.T) {
		got, err := scan.Discover(ctx, root, service.NewSet(), scan.Options{Mode: scan.Recursive})
		require.NoError(t, err)
		assert.Equal(t, []string{".hidden", "a.mkv", "link", "notes.part", "sub/b.mkv"}, rel(root, got))
	})

	t.Run("existing paths are not reported", func(t *testing.T) {
		existing := service.NewSet(filepath.Join(root, "a.mkv"))
		got, err := scan.Discover(ctx, root, existing, scan.Options{Mode: scan.SingleLevel})
		require.NoError(t, err)
		assert.NotContains(t, rel(root, got), "a.mkv")
	})

	t.Run("ignore patterns and hidden", func(t *testing.T) {
		opts := scan.Options{Mode: scan.Recursive, Ignore: []string{"*.part", "sub/"}, SkipHidden: true}
		got, err := scan.Discover(ctx, root, service.NewSet(), opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.mkv", "link"}, rel(root, got))
	})

	t.Run("unreadable subdirectory", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root ignores directory permissions")
		}
		root := tree(t)
		locked := filepath.Join(root, "locked")
		require.NoError(t, os.MkdirAll(locked, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(locked, "c.mkv"), []byte("x"), 0644))
		require.NoError(t, os.Chmod(locked, 0))
		t.Cleanup(func() { os.Chmod(locked, 0755) })

		got, err := scan.Discover(ctx, root, service.NewSet(), scan.Options{Mode: scan.Recursive})
		require.NoError(t, err)
		assert.Equal(t, []string{".hidden", "a.mkv", "link", "notes.part", "sub/b.mkv"}, rel(root, got))
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := scan.Discover(ctx, filepath.Join(root, "nope"), service.NewSet(), scan.Options{})
		assert.Error(t, err)
	})

	t.Run("file as root", func(t *testing.T) {
		_, err := scan.Discover(ctx, filepath.Join(root, "a.mkv"), service.NewSet(), scan.Options{})
		assert.Error(t, err)
	})
}

func TestReconcile_OnlyNewFiles(t *testing.T) {
	root := tree(t)
	svc := setupService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddTags(ctx, []string{filepath.Join(root, "a.mkv")}, []string{"seen"}))

	var buf bytes.Buffer
	res, err := scan.Reconcile(ctx, &buf, svc, []string{root}, scan.Options{Mode: scan.Recursive})
	require.NoError(t, err)
	assert.Equal(t, []string{".hidden", "link", "notes.part", "sub/b.mkv"}, rel(root, res.Added))
	assert.Contains(t, buf.String(), "Added: ")

	// Tags on already tracked files are untouched.
	assert.Equal(t, []string{"seen"}, svc.TagsForPath(ctx, filepath.Join(root, "a.mkv")))

	again, err := scan.Reconcile(ctx, io.Discard, svc, []string{root}, scan.Options{Mode: scan.Recursive})
	require.NoError(t, err)
	assert.True(t, again.Empty())
}

func TestReconcile_OverlappingRootsAddOnce(t *testing.T) {
	root := tree(t)
	svc := setupService(t)

	res, err := scan.Reconcile(context.Background(), io.Discard, svc,
		[]string{root, filepath.Join(root, "sub")}, scan.Options{Mode: scan.Recursive})
	require.NoError(t, err)
	assert.Len(t, res.Added, 5)
}

func TestReconcile_SkipsBadRoot(t *testing.T) {
	root := tree(t)
	svc := setupService(t)
	bad := filepath.Join(root, "nope")

	res, err := scan.Reconcile(context.Background(), io.Discard, svc, []string{bad, root}, scan.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{bad}, res.Skipped)
	assert.NotEmpty(t, res.Added)
}

func TestReconcile_SkipsOverlongPath(t *testing.T) {
	root := t.TempDir()
	short := filepath.Join(root, "a.mkv")
	long := filepath.Join(root, strings.Repeat("x", 200)+".mkv")
	for _, p := range []string{short, long} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}

	svc, err := catalog.Open(t.TempDir(), catalog.Options{MaxPath: len(root) + 50})
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	ctx := context.Background()

	var buf bytes.Buffer
	res, err := scan.Reconcile(ctx, &buf, svc, []string{root}, scan.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{short}, res.Added)
	assert.Equal(t, []string{long}, res.Rejected)
	assert.Equal(t, []string{short}, svc.Paths(ctx).Sorted())
	assert.NotContains(t, buf.String(), long)
}

func TestReconcile_DryRun(t *testing.T) {
	root := tree(t)
	svc := setupService(t)
	ctx := context.Background()

	var buf bytes.Buffer
	res, err := scan.Reconcile(ctx, &buf, svc, []string{root}, scan.Options{DryRun: true})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Added)
	assert.Contains(t, buf.String(), "Would add: ")
	assert.Empty(t, svc.Paths(ctx))
}

func TestPrune(t *testing.T) {
	root := tree(t)
	svc := setupService(t)
	ctx := context.Background()

	a := filepath.Join(root, "a.mkv")
	b := filepath.Join(root, "sub", "b.mkv")
	require.NoError(t, svc.AddTags(ctx, []string{a, b}, []string{"x"}))
	require.NoError(t, os.Remove(b))

	res, err := scan.Prune(ctx, io.Discard, svc, scan.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{b}, res.Removed)
	assert.Equal(t, []string{a}, svc.Paths(ctx).Sorted())
}

func TestPrune_PathOverLoweredLimit(t *testing.T) {
	root := t.TempDir()
	dir := t.TempDir()
	ctx := context.Background()
	short := filepath.Join(root, "a.mkv")
	long := filepath.Join(root, strings.Repeat("x", 200)+".mkv")

	svc, err := catalog.Open(dir, catalog.Options{})
	require.NoError(t, err)
	require.NoError(t, svc.AddPaths(ctx, []string{short, long}))
	require.NoError(t, svc.Close())

	svc, err = catalog.Open(dir, catalog.Options{MaxPath: len(root) + 50})
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	res, err := scan.Prune(ctx, io.Discard, svc, scan.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{short}, res.Removed)
	assert.Equal(t, []string{long}, res.Rejected)
	assert.False(t, svc.Exists(ctx, short))
}

func TestPrune_BrokenSymlinkIsMissing(t *testing.T) {
	root := tree(t)
	svc := setupService(t)
	ctx := context.Background()

	broken := filepath.Join(root, "broken")
	require.NoError(t, svc.AddPaths(ctx, []string{broken}))

	res, err := scan.Prune(ctx, io.Discard, svc, scan.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{broken}, res.Removed)
}

func TestStartup_PrunesThenScans(t *testing.T) {
	root := tree(t)
	svc := setupService(t)
	ctx := context.Background()

	gone := filepath.Join(root, "gone.mkv")
	require.NoError(t, svc.AddPaths(ctx, []string{gone}))

	res, err := scan.Startup(ctx, io.Discard, svc, []string{root}, scan.Options{Mode: scan.SingleLevel})
	require.NoError(t, err)
	assert.Equal(t, []string{gone}, res.Removed)
	assert.False(t, svc.Exists(ctx, gone))
	assert.True(t, svc.Exists(ctx, filepath.Join(root, "a.mkv")))
}

func TestWorker(t *testing.T) {
	root := tree(t)

	t.Run("delivers result", func(t *testing.T) {
		svc := setupService(t)
		wk := scan.Start(context.Background(), io.Discard, svc, []string{root}, scan.JobReconcile, scan.Options{Mode: scan.Recursive})
		out := <-wk.Done()
		require.NoError(t, out.Err)
		assert.Len(t, out.Result.Added, 5)
	})

	t.Run("cancelled walk writes nothing", func(t *testing.T) {
		svc := setupService(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		wk := scan.Start(ctx, io.Discard, svc, []string{root}, scan.JobStartup, scan.Options{Mode: scan.Recursive})
		out := wk.Wait()
		assert.ErrorIs(t, out.Err, context.Canceled)
		assert.Empty(t, svc.Paths(context.Background()))
	})
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default(t.TempDir())
	opts := scan.FromConfig(cfg, nil)
	assert.Equal(t, scan.Recursive, opts.Mode)
	assert.Empty(t, opts.Ignore)

	require.NoError(t, cfg.Set("scanRecursive", "false"))
	require.NoError(t, cfg.Set("scanIgnore", "*.part"))
	opts = scan.FromConfig(cfg, nil)
	assert.Equal(t, scan.SingleLevel, opts.Mode)
	assert.Equal(t, []string{"*.part"}, opts.Ignore)
}
