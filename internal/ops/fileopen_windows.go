//go:build windows

package ops

import (
	"os"

	"chalk/internal/errors"
)

// Windows has no O_NOFOLLOW. Symlink creation there needs elevated
// privileges, and ValidatePath already rejects symlinks before the open,
// so these fall through to the plain os calls.

func openFileNoFollow(path string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, flag, perm)
}

func openFileNoFollowRead(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileNotFound(path)
		}
		return nil, err
	}
	return f, nil
}
