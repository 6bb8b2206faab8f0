//go:build !windows
// +build !windows

package capture

// NewDefault returns the capture provider for this platform.
func NewDefault() Provider {
	return NewScreenshot()
}
