package glob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		// Relative patterns match any tail
		{"*.mkv", "/m/anime/a.mkv", true},
		{"*.mkv", "/m/anime/a.mp4", false},
		{"a.mkv", "/m/anime/a.mkv", true},
		{"anime/*.mkv", "/m/anime/a.mkv", true},
		{"anime/*.mkv", "/m/anime/s1/a.mkv", false},
		{"anime/**/*.mkv", "/m/anime/s1/a.mkv", true},

		// Absolute patterns are anchored
		{"/m/*", "/m/a.mkv", true},
		{"/m/*", "/m/anime/a.mkv", false},
		{"/m/**", "/m/anime/a.mkv", true},
		{"/m/**", "/other/a.mkv", false},
		{"/anime/*.mkv", "/m/anime/a.mkv", false},

		// Double star matches zero or more directories
		{"/m/**/a.mkv", "/m/a.mkv", true},
		{"/m/**/a.mkv", "/m/x/y/a.mkv", true},
		{"**/readme", "/docs/readme", true},

		// Question mark and classes
		{"ep?.mkv", "/m/ep1.mkv", true},
		{"ep?.mkv", "/m/ep10.mkv", false},
		{"ep[0-9].mkv", "/m/ep7.mkv", true},
	}

	for _, tc := range tests {
		t.Run(tc.pattern+"_"+tc.path, func(t *testing.T) {
			got, err := Match(tc.pattern, tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatch_InvalidPattern(t *testing.T) {
	_, err := Match("[a-", "/test")
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	got, err := Filter("*.mkv", []string{"/b.mkv", "/a.mp4", "/a.mkv"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/b.mkv", "/a.mkv"}, got)

	_, err = Filter("[", []string{"/a"})
	assert.Error(t, err)
}
