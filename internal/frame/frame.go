package frame

import "time"

// BytesPerPixel is the fixed pixel stride of every captured frame (B,G,R,A).
const BytesPerPixel = 4

// Frame holds one captured pixel snapshot in BGRA order, top-down.
type Frame struct {
	Pixels     []byte
	Width      int
	Height     int
	CapturedAt time.Time
}

// Region is an axis-aligned rectangle in source-frame pixel coordinates.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewFrame creates a frame wrapping an existing BGRA buffer.
func NewFrame(pixels []byte, width, height int) *Frame {
	return &Frame{
		Pixels:     pixels,
		Width:      width,
		Height:     height,
		CapturedAt: time.Now(),
	}
}

// Clone returns a deep copy of the frame so the receiver can keep
// overwriting its own buffer.
func (f *Frame) Clone() *Frame {
	if f == nil {
		return nil
	}
	pixels := make([]byte, len(f.Pixels))
	copy(pixels, f.Pixels)
	return &Frame{
		Pixels:     pixels,
		Width:      f.Width,
		Height:     f.Height,
		CapturedAt: f.CapturedAt,
	}
}

// Contains reports whether the region fits entirely inside a source of the
// given dimensions.
func (r Region) Contains(width, height int) bool {
	if r.X < 0 || r.Y < 0 || r.Width <= 0 || r.Height <= 0 {
		return false
	}
	return r.X+r.Width <= width && r.Y+r.Height <= height
}
