//go:build !windows
// +build !windows

package capture

import (
	"errors"

	"jordanella.com/market-sniper-go/internal/frame"
)

// ListWindows is only implemented on Windows; other platforms capture by
// screen coordinates and have no window picker.
func ListWindows() []string {
	return nil
}

// ResolveWindowRegion is only implemented on Windows. Callers fall back to
// the configured capture region.
func ResolveWindowRegion(title string) (frame.Region, error) {
	return frame.Region{}, errors.New("window lookup is only supported on windows")
}
