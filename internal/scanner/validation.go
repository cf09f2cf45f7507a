package scanner

import (
	"fmt"
	"os"
	"path/filepath"
)

// System trees that never hold a movie library. Media mount roots such as
// /mnt, /home or /tmp are allowed.
var protectedPaths = []string{"/", "/bin", "/boot", "/dev", "/etc", "/proc", "/sbin", "/sys", "/usr", "/var"}

// ValidateDirectory checks that path is an existing directory outside the
// system trees. Write permission is not checked here; a failed rename is reported
// per file.
func ValidateDirectory(path string) error {
	if path == "" {
		return fmt.Errorf("directory is empty")
	}

	cleanPath := filepath.Clean(path)
	realPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		realPath = cleanPath
	}

	for _, protected := range protectedPaths {
		if realPath == protected || cleanPath == protected {
			return fmt.Errorf("refusing to rename files in protected path: %s", realPath)
		}
	}

	info, err := os.Stat(realPath)
	if err != nil {
		return fmt.Errorf("directory not accessible: %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", path)
	}

	return nil
}
