// Package desktop applies a chosen image as the desktop background.
package desktop

import (
	"fmt"

	"github.com/reujab/wallpaper"
)

// Sink sets the OS wallpaper from an absolute file path.
type Sink interface {
	Set(path string) error
}

// OS applies the wallpaper through the platform mechanism (AppleScript on
// macOS, SystemParametersInfo on Windows, the session's desktop environment
// on Linux). Failures are reported, not retried.
type OS struct{}

func (OS) Set(path string) error {
	if err := wallpaper.SetFromFile(path); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}
