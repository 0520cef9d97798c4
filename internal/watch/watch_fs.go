package watch

import "os"

// lstatDir reports whether p is a real directory, not a symlink to one.
// Symlinked directories are not scanned, so they are not watched either.
func lstatDir(p string) (bool, error) {
	info, err := os.Lstat(p)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
