package frame

// Crop extracts the pixels inside region from src into a new frame.
// The copy is row-by-row against the source stride; no scaling, no color
// conversion. Returns nil when the region does not fit inside src rather
// than a partial result.
func Crop(src *Frame, region Region) *Frame {
	if src == nil {
		return nil
	}
	if !region.Contains(src.Width, src.Height) {
		return nil
	}

	rowBytes := region.Width * BytesPerPixel
	out := make([]byte, rowBytes*region.Height)
	srcStride := src.Width * BytesPerPixel

	for row := 0; row < region.Height; row++ {
		srcOff := (region.Y+row)*srcStride + region.X*BytesPerPixel
		copy(out[row*rowBytes:(row+1)*rowBytes], src.Pixels[srcOff:srcOff+rowBytes])
	}

	return &Frame{
		Pixels:     out,
		Width:      region.Width,
		Height:     region.Height,
		CapturedAt: src.CapturedAt,
	}
}
