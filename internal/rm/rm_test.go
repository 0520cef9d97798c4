package rm_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/fusen/internal/catalog"
	"github.com/jpl-au/fusen/internal/rm"
)

func setupService(t *testing.T) *catalog.Service {
	t.Helper()
	svc, err := catalog.Open(t.TempDir(), catalog.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestRun_RemovesPathAndTags(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddPaths(ctx, []string{"/a", "/b"}))
	require.NoError(t, svc.AddTags(ctx, []string{"/a"}, []string{"x"}))

	var buf bytes.Buffer
	result, err := rm.Run(ctx, &buf, svc, []string{"/a"})
	require.NoError(t, err)

	assert.Equal(t, []string{"/a"}, result.Removed)
	assert.Equal(t, int64(2), result.Edges)
	assert.Equal(t, "Removed /a\n", buf.String())
	assert.False(t, svc.Exists(ctx, "/a"))
	assert.Zero(t, svc.PathsWithTag(ctx, "x").Len())
	assert.True(t, svc.Exists(ctx, "/b"))
}

func TestRun_UntrackedIsReportedNotFailed(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddPaths(ctx, []string{"/a"}))

	var buf bytes.Buffer
	result, err := rm.Run(ctx, &buf, svc, []string{"/ghost", "/a"})
	require.NoError(t, err)

	assert.Equal(t, []string{"/a"}, result.Removed)
	assert.Equal(t, []string{"/ghost"}, result.Missing)
	assert.Contains(t, buf.String(), "Not tracked: /ghost")
}

func TestRun_NormalisesInput(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddPaths(ctx, []string{"/media/a.mkv"}))

	result, err := rm.Run(ctx, &bytes.Buffer{}, svc, []string{"/media/./x/../a.mkv"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/media/a.mkv"}, result.Removed)
}

func TestRun_NoPaths(t *testing.T) {
	_, err := rm.Run(context.Background(), &bytes.Buffer{}, setupService(t), nil)
	assert.Error(t, err)
}
