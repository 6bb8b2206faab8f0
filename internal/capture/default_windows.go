//go:build windows
// +build windows

package capture

// NewDefault returns the capture provider for this platform. Windows uses
// the GDI BitBlt path, which returns BGRA directly without a channel swap.
func NewDefault() Provider {
	return NewGDI()
}
