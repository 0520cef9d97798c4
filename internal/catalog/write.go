// write.go implements the mutating catalog operations.
//
// Every method validates the whole batch first, then hands it to the store
// as one transaction. A validation error is returned as-is; a storage error
// is wrapped in ErrWriteFailed.

package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jpl-au/fusen/internal/tag"
	"github.com/jpl-au/fusen/internal/validate"
)

// AddPaths tracks each path with a bare edge.
func (s *Service) AddPaths(ctx context.Context, paths []string) error {
	norm, err := s.normalisePaths(paths)
	if err != nil {
		return err
	}
	if err := s.store.AddPaths(ctx, norm); err != nil {
		return s.writeFailed("add paths", len(norm), err)
	}
	return nil
}

// AddTags attaches tags to paths. Tags are sanitised and cleaned first; if
// nothing usable remains the call is a no-op.
func (s *Service) AddTags(ctx context.Context, paths, tags []string) error {
	norm, clean, err := s.prepare(paths, tags)
	if err != nil || len(clean) == 0 {
		return err
	}
	if err := s.store.AddTags(ctx, norm, clean); err != nil {
		return s.writeFailed("add tags", len(norm), err)
	}
	return nil
}

// RemoveTags detaches tags from paths.
func (s *Service) RemoveTags(ctx context.Context, paths, tags []string) error {
	norm, clean, err := s.prepare(paths, tags)
	if err != nil || len(clean) == 0 {
		return err
	}
	if err := s.store.RemoveTags(ctx, norm, clean); err != nil {
		return s.writeFailed("remove tags", len(norm), err)
	}
	return nil
}

// RemovePaths stops tracking each path.
func (s *Service) RemovePaths(ctx context.Context, paths []string) (int64, error) {
	norm, err := s.normalisePaths(paths)
	if err != nil {
		return 0, err
	}
	n, err := s.store.RemovePaths(ctx, norm)
	if err != nil {
		return 0, s.writeFailed("remove paths", len(norm), err)
	}
	return n, nil
}

// ClearTags leaves each path tracked with no tags.
func (s *Service) ClearTags(ctx context.Context, paths []string) error {
	norm, err := s.normalisePaths(paths)
	if err != nil {
		return err
	}
	if err := s.store.ClearTags(ctx, norm); err != nil {
		return s.writeFailed("clear tags", len(norm), err)
	}
	return nil
}

// Vacuum deduplicates and compacts the database.
func (s *Service) Vacuum(ctx context.Context) (int64, error) {
	n, err := s.store.Vacuum(ctx)
	if err != nil {
		return n, s.writeFailed("vacuum", 0, err)
	}
	return n, nil
}

func (s *Service) prepare(paths, tags []string) ([]string, []string, error) {
	norm, err := s.normalisePaths(paths)
	if err != nil {
		return nil, nil, err
	}
	clean := tag.Clean(tags)
	for _, t := range clean {
		if err := validate.Tag(t); err != nil {
			return nil, nil, err
		}
	}
	return norm, clean, nil
}

func (s *Service) writeFailed(op string, n int, err error) error {
	s.log.Error("write failed", zap.String("op", op), zap.Int("paths", n), zap.Error(err))
	return fmt.Errorf("%w: %s: %w", ErrWriteFailed, op, err)
}
