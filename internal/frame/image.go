package frame

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// ToRGBA converts the BGRA frame into a standard image.RGBA.
func (f *Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i := 0; i+3 < len(f.Pixels); i += BytesPerPixel {
		img.Pix[i] = f.Pixels[i+2]   // R
		img.Pix[i+1] = f.Pixels[i+1] // G
		img.Pix[i+2] = f.Pixels[i]   // B
		img.Pix[i+3] = 255
	}
	return img
}

// EncodePNG encodes the frame as PNG bytes.
func (f *Frame) EncodePNG() ([]byte, error) {
	if f == nil || f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("cannot encode empty frame")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, f.ToRGBA()); err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	return buf.Bytes(), nil
}
