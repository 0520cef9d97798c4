package service_test

import (
	"encoding/json"
	"testing"

	"github.com/jpl-au/fusen/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_Algebra(t *testing.T) {
	s := service.NewSet("a", "b", "c")

	s.Intersect(service.NewSet("b", "c", "d"))
	assert.Equal(t, []string{"b", "c"}, s.Sorted())

	s.Subtract(service.NewSet("c", "z"))
	assert.Equal(t, []string{"b"}, s.Sorted())

	s.Union(service.NewSet("a"))
	assert.Equal(t, []string{"a", "b"}, s.Sorted())
}

func TestSet_CloneIsIndependent(t *testing.T) {
	s := service.NewSet("a")
	c := s.Clone()
	c.Add("b")

	assert.False(t, s.Contains("b"))
	assert.Equal(t, 2, c.Len())
}

func TestSet_JSONIsSorted(t *testing.T) {
	b, err := json.Marshal(service.NewSet("/z", "/a", "/m"))
	require.NoError(t, err)
	assert.JSONEq(t, `["/a","/m","/z"]`, string(b))
}

func TestSet_EmptyJSONIsArray(t *testing.T) {
	b, err := json.Marshal(service.NewSet())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}
