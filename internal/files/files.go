// Package files implements generic file tools missing from the standard library.
package files

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Exists returns true if file or directory exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReplaceTilde replaces a leading "~" in path by the user's home directory.
func ReplaceTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	usr, err := user.Current()
	if err != nil {
		return "", errors.Wrapf(err, "failed to get current user to expand %q", path)
	}
	return filepath.Join(usr.HomeDir, strings.TrimPrefix(path, "~")), nil
}
