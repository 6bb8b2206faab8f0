package capture

import "jordanella.com/market-sniper-go/internal/frame"

// Provider captures a rectangle of the display as a BGRA frame. Must
// support re-targeting a fixed-size area repeatedly at sustained cadence.
type Provider interface {
	Capture(region frame.Region) (*frame.Frame, error)
}
