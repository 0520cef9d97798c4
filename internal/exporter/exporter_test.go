package exporter_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jpl-au/fusen/internal/catalog"
	"github.com/jpl-au/fusen/internal/exporter"
)

func setupService(t *testing.T) *catalog.Service {
	t.Helper()
	svc, err := catalog.Open(t.TempDir(), catalog.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func seed(t *testing.T, svc *catalog.Service) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svc.AddPaths(ctx, []string{"/m/b.mkv", "/m/a.mkv"}))
	require.NoError(t, svc.AddTags(ctx, []string{"/m/a.mkv"}, []string{"zebra"}))
	require.NoError(t, svc.AddTags(ctx, []string{"/m/a.mkv"}, []string{"apple"}))
}

func TestBuild(t *testing.T) {
	svc := setupService(t)
	seed(t, svc)

	m, err := exporter.Build(context.Background(), svc)
	require.NoError(t, err)

	assert.Equal(t, exporter.Mapping{
		"/m/a.mkv": {"zebra", "apple"},
		"/m/b.mkv": {},
	}, m)
	assert.Equal(t, 2, m.Count())
}

func TestBuild_Empty(t *testing.T) {
	m, err := exporter.Build(context.Background(), setupService(t))
	require.NoError(t, err)
	assert.Empty(t, m)

	var buf bytes.Buffer
	require.NoError(t, exporter.Write(&buf, m))
	assert.Equal(t, "{}\n", buf.String())
}

func TestWrite_StableAndDecodable(t *testing.T) {
	m := exporter.Mapping{
		"/z": {"b", "a"},
		"/a": {},
	}

	var one, two bytes.Buffer
	require.NoError(t, exporter.Write(&one, m))
	require.NoError(t, exporter.Write(&two, m))
	assert.Equal(t, one.String(), two.String())

	out := one.String()
	assert.Contains(t, out, "/a: []")
	assert.Less(t, bytes.Index(one.Bytes(), []byte("/a:")), bytes.Index(one.Bytes(), []byte("/z:")))

	var back map[string][]string
	require.NoError(t, yaml.Unmarshal(one.Bytes(), &back))
	assert.Equal(t, []string{"b", "a"}, back["/z"])
	assert.Empty(t, back["/a"])
}

func TestRun_Stdout(t *testing.T) {
	svc := setupService(t)
	seed(t, svc)

	var buf bytes.Buffer
	res, err := exporter.Run(context.Background(), &buf, svc, exporter.Stdout, exporter.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Paths)
	assert.Equal(t, 2, res.Tags)
	assert.Contains(t, buf.String(), "/m/b.mkv: []")
}

func TestRun_File(t *testing.T) {
	svc := setupService(t)
	seed(t, svc)
	dst := filepath.Join(t.TempDir(), "out", "tags.yaml")
	ctx := context.Background()

	var buf bytes.Buffer
	_, err := exporter.Run(ctx, &buf, svc, dst, exporter.Options{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Exported 2 paths")

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- zebra")

	t.Run("existing file needs force", func(t *testing.T) {
		_, err := exporter.Run(ctx, &buf, svc, dst, exporter.Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file exists")

		_, err = exporter.Run(ctx, &buf, svc, dst, exporter.Options{Force: true})
		assert.NoError(t, err)
	})
}
