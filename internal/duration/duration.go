// Package duration parses the short duration strings accepted by watch
// flags such as --debounce.
//
// Anything time.ParseDuration understands works ("250ms", "1m30s"), and a
// bare number is taken as milliseconds, since the debounce window is nearly
// always set in those.
package duration

import (
	"fmt"
	"strconv"
	"time"
)

// Max bounds a parsed value; a debounce longer than this is a typo.
const Max = time.Hour

// Parse parses s as a positive duration no longer than Max.
func Parse(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		n, nerr := strconv.Atoi(s)
		if nerr != nil {
			return 0, fmt.Errorf("invalid duration %q (use e.g. 500ms, 2s or 500)", s)
		}
		d = time.Duration(n) * time.Millisecond
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}
	if d > Max {
		return 0, fmt.Errorf("duration %q exceeds %s", s, Max)
	}
	return d, nil
}
