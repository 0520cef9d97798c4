// read.go implements catalog queries.
//
// Design: query failures are logged and absorbed. A caller asking "which
// files carry tag x" gets an empty answer when the database is unreadable,
// the same answer as for an unknown tag, and the log records why.

package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jpl-au/fusen/internal/service"
	"github.com/jpl-au/fusen/internal/store"
)

// Paths returns every tracked path.
func (s *Service) Paths(ctx context.Context) service.Set {
	paths, err := s.store.Paths(ctx)
	if err != nil {
		s.readFailed("paths", err)
		return service.NewSet()
	}
	return service.NewSet(paths...)
}

// Tags returns every tag in use.
func (s *Service) Tags(ctx context.Context) service.Set {
	tags, err := s.store.Tags(ctx)
	if err != nil {
		s.readFailed("tags", err)
		return service.NewSet()
	}
	return service.NewSet(tags...)
}

// TagsForPath returns the tags on path in insertion order. An invalid path
// has no tags.
func (s *Service) TagsForPath(ctx context.Context, path string) []string {
	p, err := s.NormalisePath(path)
	if err != nil {
		return nil
	}
	tags, err := s.store.TagsForPath(ctx, p)
	if err != nil {
		s.readFailed("tags for path", err, zap.String("path", p))
		return nil
	}
	return tags
}

// PathsWithTag returns the paths carrying tag. The tag is matched exactly
// as stored, so callers pass sanitised labels.
func (s *Service) PathsWithTag(ctx context.Context, tag string) service.Set {
	paths, err := s.store.PathsWithTag(ctx, tag)
	if err != nil {
		s.readFailed("paths with tag", err, zap.String("tag", tag))
		return service.NewSet()
	}
	return service.NewSet(paths...)
}

// Exists reports whether path is tracked.
func (s *Service) Exists(ctx context.Context, path string) bool {
	p, err := s.NormalisePath(path)
	if err != nil {
		return false
	}
	ok, err := s.store.Exists(ctx, p)
	if err != nil {
		s.readFailed("exists", err, zap.String("path", p))
		return false
	}
	return ok
}

// Edges returns the raw relation in insertion order.
func (s *Service) Edges(ctx context.Context) ([]store.Edge, error) {
	edges, err := s.store.Edges(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	return edges, nil
}

// Stats returns aggregate catalog counts.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	st, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	return st, nil
}

func (s *Service) readFailed(op string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("op", op), zap.Error(fmt.Errorf("%w: %w", ErrReadFailed, err)))
	s.log.Warn("read failed, returning empty result", fields...)
}
