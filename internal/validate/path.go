package validate

import (
	"fmt"
	"strings"

	"github.com/jpl-au/fusen/internal/path"
)

// Path validates a filesystem path and returns the normalised form.
//
// Validation rules:
//   - Empty paths rejected
//   - NUL bytes rejected (no filesystem accepts them)
//   - Max length enforced on the normalised form if maxLen > 0
func Path(p string, maxLen int) (string, error) {
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.ContainsRune(p, 0) {
		return "", fmt.Errorf("%w: null byte in path", ErrInvalidPath)
	}

	norm, err := path.Normalise(p)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	if maxLen > 0 && len(norm) > maxLen {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrPathTooLong, len(norm), maxLen)
	}
	return norm, nil
}
