package query_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/jpl-au/fusen/internal/catalog"
	"github.com/jpl-au/fusen/internal/query"
	"github.com/jpl-au/fusen/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSource is an in-memory Source keyed by path.
type memSource map[string][]string

func (m memSource) Paths(context.Context) service.Set {
	s := service.NewSet()
	for p := range m {
		s.Add(p)
	}
	return s
}

func (m memSource) Tags(context.Context) service.Set {
	s := service.NewSet()
	for _, tags := range m {
		for _, t := range tags {
			s.Add(t)
		}
	}
	return s
}

func (m memSource) PathsWithTag(_ context.Context, tag string) service.Set {
	s := service.NewSet()
	for p, tags := range m {
		for _, t := range tags {
			if t == tag {
				s.Add(p)
			}
		}
	}
	return s
}

func fixture() memSource {
	return memSource{
		"/f1": {"a", "b"},
		"/f2": {"a"},
		"/f3": {"b"},
		"/f4": nil,
	}
}

func eval(src query.Source, text string, exact bool) []string {
	return query.Evaluate(context.Background(), src, query.Parse(text), exact).Sorted()
}

func TestParse(t *testing.T) {
	tests := []struct {
		in       string
		pos, neg []string
	}{
		{"", []string{}, []string{}},
		{"a", []string{"a"}, []string{}},
		{" a , -b ", []string{"a"}, []string{"b"}},
		{"a,,a,-", []string{"a"}, []string{}},
		{"path,-path,x", []string{"x"}, []string{}},
		{"sci fi,-it's", []string{"sci_fi"}, []string{"it_s"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			q := query.Parse(tt.in)
			assert.Equal(t, tt.pos, q.Positive)
			assert.Equal(t, tt.neg, q.Negative)
		})
	}
}

func TestQuery_String(t *testing.T) {
	assert.Equal(t, "a,b,-c", query.Parse(" a, -c ,b").String())
}

func TestEvaluate_Exact(t *testing.T) {
	src := fixture()

	t.Run("empty query returns all paths", func(t *testing.T) {
		assert.Equal(t, []string{"/f1", "/f2", "/f3", "/f4"}, eval(src, "", true))
	})

	t.Run("intersection", func(t *testing.T) {
		assert.Equal(t, []string{"/f1"}, eval(src, "a,b", true))
	})

	t.Run("negation", func(t *testing.T) {
		assert.Equal(t, []string{"/f2"}, eval(src, "a,-b", true))
	})

	t.Run("negation only", func(t *testing.T) {
		assert.Equal(t, []string{"/f2", "/f4"}, eval(src, "-b", true))
	})

	t.Run("unknown positive empties result", func(t *testing.T) {
		assert.Empty(t, eval(src, "a,zzz", true))
	})

	t.Run("unknown negative excludes nothing", func(t *testing.T) {
		assert.Equal(t, []string{"/f1", "/f2"}, eval(src, "a,-zzz", true))
	})
}

func TestEvaluate_Substring(t *testing.T) {
	src := memSource{
		"/media/Anime/ep1.mkv": nil,
		"/media/films/x.mkv":   {"anime"},
		"/media/films/y.mkv":   {"drama"},
		"/media/films/z.mkv":   {"anime", "dub"},
	}

	t.Run("adds case-insensitive path matches", func(t *testing.T) {
		got := eval(src, "anime", false)
		assert.Equal(t, []string{"/media/Anime/ep1.mkv", "/media/films/x.mkv", "/media/films/z.mkv"}, got)
	})

	t.Run("substring matches survive negation", func(t *testing.T) {
		// The union happens after the tag algebra.
		got := eval(src, "films,-dub", false)
		assert.Equal(t, []string{"/media/films/x.mkv", "/media/films/y.mkv", "/media/films/z.mkv"}, got)
	})

	t.Run("unknown tag still matches paths", func(t *testing.T) {
		assert.Equal(t, []string{"/media/films/y.mkv"}, eval(src, "y.mkv", false))
	})

	t.Run("exact ignores paths", func(t *testing.T) {
		assert.Empty(t, eval(src, "films", true))
	})
}

func TestEvaluate_AgainstCatalog(t *testing.T) {
	svc, err := catalog.Open(t.TempDir(), catalog.Options{})
	require.NoError(t, err)
	defer svc.Close()
	ctx := context.Background()

	require.NoError(t, svc.AddTags(ctx, []string{"/f1"}, []string{"a", "b"}))
	require.NoError(t, svc.AddTags(ctx, []string{"/f2"}, []string{"a"}))
	require.NoError(t, svc.AddTags(ctx, []string{"/f3"}, []string{"b"}))

	assert.Equal(t, []string{"/f1"}, eval(svc, "a,b", true))
	assert.Equal(t, []string{"/f2"}, eval(svc, "a, -b", true))
	assert.Empty(t, eval(svc, "a,zzz", true))
}

func TestRun_PrintsSorted(t *testing.T) {
	var buf bytes.Buffer
	res := query.Run(context.Background(), &buf, fixture(), "b", true)

	assert.Equal(t, "/f1\n/f3\n", buf.String())
	assert.Equal(t, 2, res.Count)
	assert.True(t, res.Exact)
}
