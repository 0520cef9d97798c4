package tag_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/fusen/internal/catalog"
	"github.com/jpl-au/fusen/internal/tag"
)

func setupService(t *testing.T) *catalog.Service {
	t.Helper()
	svc, err := catalog.Open(t.TempDir(), catalog.Options{})
	require.NoError(t, err, "opening catalog")
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestSanitise(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"two words", "two_words"},
		{"o'brien", "o_brien"},
		{`say "hi"`, "say__hi_"},
		{"Mixed-Case", "Mixed-Case"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, tag.Sanitise(tt.in))
		})
	}
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"a", "-b", "my_show"}, tag.Split(" a, -b ,, my show,"))
	assert.Nil(t, tag.Split(" , "))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"drops reserved word", "anime,path,movie", []string{"anime", "movie"}},
		{"drops repeats", "a,b,a", []string{"a", "b"}},
		{"only reserved", "path", []string{}},
		{"empty", "", []string{}},
		{"reserved is case sensitive", "Path", []string{"Path"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tag.Parse(tt.in))
		})
	}
}

func TestAdd(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	var buf bytes.Buffer
	res, err := tag.Add(ctx, &buf, svc, []string{"/m/a.mkv", "/m/b.mkv"}, []string{"anime", "my show"})
	require.NoError(t, err)

	assert.Equal(t, "add", res.Action)
	assert.Equal(t, []string{"anime", "my_show"}, res.Tags)
	assert.Equal(t, []string{"anime", "my_show"}, res.After["/m/a.mkv"])
	assert.Equal(t, "Added \"anime\", \"my_show\" to 2 paths\n", buf.String())
}

func TestAdd_NoUsableTags(t *testing.T) {
	svc := setupService(t)

	_, err := tag.Add(context.Background(), &bytes.Buffer{}, svc, []string{"/m/a.mkv"}, []string{"path", " "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable tags")
	assert.False(t, svc.Exists(context.Background(), "/m/a.mkv"))
}

func TestAdd_NoPaths(t *testing.T) {
	_, err := tag.Add(context.Background(), &bytes.Buffer{}, setupService(t), nil, []string{"x"})
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddPaths(ctx, []string{"/m/a.mkv"}))
	require.NoError(t, svc.AddTags(ctx, []string{"/m/a.mkv"}, []string{"x", "y"}))

	var buf bytes.Buffer
	res, err := tag.Remove(ctx, &buf, svc, []string{"/m/a.mkv"}, []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"y"}, res.After["/m/a.mkv"])
	assert.Equal(t, "Removed \"x\" from /m/a.mkv\n", buf.String())
}

func TestClear(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddTags(ctx, []string{"/m/a.mkv"}, []string{"x", "y"}))

	var buf bytes.Buffer
	_, err := tag.Clear(ctx, &buf, svc, []string{"/m/a.mkv"})
	require.NoError(t, err)
	assert.Equal(t, "Cleared tags on /m/a.mkv\n", buf.String())
	assert.True(t, svc.Exists(ctx, "/m/a.mkv"))
	assert.Empty(t, svc.TagsForPath(ctx, "/m/a.mkv"))
}

func TestList(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddTags(ctx, []string{"/m/a.mkv"}, []string{"zebra"}))
	require.NoError(t, svc.AddTags(ctx, []string{"/m/a.mkv"}, []string{"apple"}))

	var buf bytes.Buffer
	res, err := tag.List(ctx, &buf, svc, "/m/a.mkv")
	require.NoError(t, err)
	assert.Equal(t, "zebra\napple\n", buf.String())
	assert.Equal(t, []string{"zebra", "apple"}, res.Tags)

	t.Run("unknown path is empty", func(t *testing.T) {
		var buf bytes.Buffer
		res, err := tag.List(ctx, &buf, svc, "/nowhere")
		require.NoError(t, err)
		assert.Empty(t, buf.String())
		assert.Equal(t, []string{}, res.Tags)
	})
}
