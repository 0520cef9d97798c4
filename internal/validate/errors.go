// errors.go defines sentinel errors for validation failures.
//
// Sentinels rather than error types because a validation failure carries
// no context beyond its category. Detail is added by wrapping with
// fmt.Errorf in the validation functions.

package validate

import "errors"

var (
	ErrInvalidPath = errors.New("invalid path")
	ErrPathTooLong = errors.New("path too long")
	ErrInvalidTag  = errors.New("invalid tag")
)
