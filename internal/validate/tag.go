// tag.go implements tag string validation.
//
// Separated from path.go because tags are labels, not locations. They are
// sanitised by the tag package before they get here, so this only guards
// against values that sanitisation cannot repair.

package validate

import (
	"fmt"
	"strings"
)

// Tag validates an already sanitised tag string.
//
// Validation rules:
//   - Empty tags rejected
//   - NUL bytes rejected
//   - The reserved word "path" rejected (it is the import/export key word)
//   - Space, single quote and double quote rejected (sanitisation removes them)
func Tag(t string) error {
	if t == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.ContainsRune(t, 0) {
		return fmt.Errorf("%w: null byte in tag", ErrInvalidTag)
	}
	if t == "path" {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidTag, t)
	}
	if strings.ContainsAny(t, " '\"") {
		return fmt.Errorf("%w: %q contains unsanitised characters", ErrInvalidTag, t)
	}
	return nil
}
