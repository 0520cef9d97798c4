package config_test

import (
	"os"
	"testing"

	"github.com/jpl-au/fusen/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.ClearOnImport())
	assert.False(t, cfg.DeleteAfterImport())
	assert.True(t, cfg.Recursive())
	assert.Equal(t, "mpv", cfg.ApplicationPath())
	assert.Equal(t, config.DefaultMaxPath, cfg.MaxPath())
	assert.Empty(t, cfg.ScanDirectories)
}

func TestLoad_ReadsKeys(t *testing.T) {
	dir := t.TempDir()
	data := `clearTagsOnImport: true
defaultApplicationPath: vlc
deleteFileAfterImport: true
scanDirectories:
  - /media/films
  - /media/shows
`
	require.NoError(t, os.WriteFile(config.Path(dir), []byte(data), 0644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.ClearOnImport())
	assert.True(t, cfg.DeleteAfterImport())
	assert.Equal(t, "vlc", cfg.ApplicationPath())
	assert.Equal(t, []string{"/media/films", "/media/shows"}, cfg.ScanDirectories)
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(config.Path(dir), []byte("scanDirectories: [unclosed"), 0644))

	_, err := config.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed config file")
}

func TestLoad_InvalidValue(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(config.Path(dir), []byte("maxPathLength: 0\n"), 0644))

	_, err := config.Load(dir)
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}

func TestSetGetSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	require.NoError(t, cfg.Set("clearTagsOnImport", "TRUE"))
	require.NoError(t, cfg.Set("scanDirectories", "/a"+string(os.PathListSeparator)+"/b"))
	require.NoError(t, cfg.Set("maxPathLength", "512"))
	require.NoError(t, cfg.Save())

	loaded, err := config.Load(dir)
	require.NoError(t, err)

	v, err := loaded.Get("clearTagsOnImport")
	require.NoError(t, err)
	assert.Equal(t, "true", v)
	assert.Equal(t, []string{"/a", "/b"}, loaded.ScanDirectories)
	assert.Equal(t, 512, loaded.MaxPath())
	assert.True(t, loaded.IsSet("maxPathLength"))
	assert.False(t, loaded.IsSet("scanIgnore"))
}

func TestSet_Errors(t *testing.T) {
	cfg := config.Default(t.TempDir())

	assert.ErrorIs(t, cfg.Set("nope", "x"), config.ErrUnknownKey)
	assert.ErrorIs(t, cfg.Set("deleteFileAfterImport", "yes"), config.ErrInvalidValue)
	assert.ErrorIs(t, cfg.Set("maxPathLength", "-1"), config.ErrInvalidValue)

	_, err := cfg.Get("nope")
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestScanDirectories(t *testing.T) {
	cfg := config.Default(t.TempDir())

	assert.True(t, cfg.AddScanDirectory("/media"))
	assert.False(t, cfg.AddScanDirectory("/media"))
	assert.True(t, cfg.RemoveScanDirectory("/media"))
	assert.False(t, cfg.RemoveScanDirectory("/media"))
	assert.Empty(t, cfg.ScanDirectories)
}

func TestAll_CoversEveryKey(t *testing.T) {
	all := config.Default(t.TempDir()).All()
	for _, k := range config.ValidKeys() {
		assert.Contains(t, all, k)
	}
}
