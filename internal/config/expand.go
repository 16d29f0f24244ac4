package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// expandUser rewrites a leading "~/" (or a bare "~") to the home directory.
// "~user" forms are not supported and are a configuration error. Other paths
// pass through unchanged.
func expandUser(path, home string) (string, error) {
	switch {
	case path == "~":
		return home, nil
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:]), nil
	case strings.HasPrefix(path, "~"):
		return "", fmt.Errorf("unsupported use of '~': %q", path)
	default:
		return path, nil
	}
}
