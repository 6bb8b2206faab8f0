package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"jordanella.com/market-sniper-go/internal/frame"
)

// Screenshot captures display regions through the cross-platform
// screenshot bindings.
type Screenshot struct{}

// NewScreenshot creates the default capture provider.
func NewScreenshot() *Screenshot {
	return &Screenshot{}
}

// Capture grabs the requested region and converts it to BGRA.
func (s *Screenshot) Capture(region frame.Region) (*frame.Frame, error) {
	img, err := screenshot.CaptureRect(image.Rect(region.X, region.Y, region.X+region.Width, region.Y+region.Height))
	if err != nil {
		return nil, fmt.Errorf("failed to capture region: %w", err)
	}

	width := img.Rect.Dx()
	height := img.Rect.Dy()
	pixels := make([]byte, width*height*frame.BytesPerPixel)

	for y := 0; y < height; y++ {
		rowOff := y * img.Stride
		for x := 0; x < width; x++ {
			src := rowOff + x*4
			dst := (y*width + x) * frame.BytesPerPixel
			pixels[dst] = img.Pix[src+2]   // B
			pixels[dst+1] = img.Pix[src+1] // G
			pixels[dst+2] = img.Pix[src]   // R
			pixels[dst+3] = img.Pix[src+3]
		}
	}

	return frame.NewFrame(pixels, width, height), nil
}
