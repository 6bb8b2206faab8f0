package frame

// Preprocessing constants tuned against in-game market panels. The mode of
// the luminance histogram approximates the panel background; highlight text
// sits a narrow band above it.
const (
	lightBackgroundMode = 100
	highlightLuminance  = 240
	binarizeOffset      = 20
	brightPixelRatio    = 0.005
	flatRange           = 10
)

// Preprocess converts a cropped BGRA frame in place into a high-contrast
// grayscale image tuned for text recognition. The single output channel is
// broadcast to B, G and R; alpha is untouched.
//
// Two strategies are chosen per frame from the luminance histogram:
// strict binarization isolates small bright glyphs on a light panel, while
// auto-levels with polarity correction normalizes everything else so the
// output is always dark text on light ground.
func Preprocess(f *Frame) {
	if f == nil || len(f.Pixels) < BytesPerPixel {
		return
	}

	var histogram [256]int
	minLum, maxLum := 255, 0
	total := 0

	for i := 0; i+3 < len(f.Pixels); i += BytesPerPixel {
		lum := luminance(f.Pixels[i], f.Pixels[i+1], f.Pixels[i+2])
		histogram[lum]++
		if lum < minLum {
			minLum = lum
		}
		if lum > maxLum {
			maxLum = lum
		}
		total++
	}
	if total == 0 {
		return
	}

	mode := 0
	for lum, count := range histogram {
		if count > histogram[mode] {
			mode = lum
		}
	}

	threshold := mode + binarizeOffset
	if threshold > 255 {
		threshold = 255
	}
	brightCount := 0
	for lum := threshold; lum <= 255; lum++ {
		brightCount += histogram[lum]
	}

	binarize := mode > lightBackgroundMode &&
		maxLum > highlightLuminance &&
		float64(brightCount) > brightPixelRatio*float64(total)

	// Dark panels are inverted so the normalized output is always dark
	// text on light ground, which the recognizer is tuned for.
	invert := mode < lightBackgroundMode
	lowBound, highBound := minLum, maxLum
	if invert {
		lowBound, highBound = 255-maxLum, 255-minLum
	}
	span := highBound - lowBound

	for i := 0; i+3 < len(f.Pixels); i += BytesPerPixel {
		lum := luminance(f.Pixels[i], f.Pixels[i+1], f.Pixels[i+2])

		var out byte
		if binarize {
			if lum >= threshold {
				out = 255
			} else {
				out = 0
			}
		} else {
			value := lum
			if invert {
				value = 255 - lum
			}
			var normalized float64
			if span <= flatRange {
				normalized = 0.5
			} else {
				normalized = float64(value-lowBound) / float64(span)
				if normalized < 0 {
					normalized = 0
				} else if normalized > 1 {
					normalized = 1
				}
			}
			out = byte(normalized * 255)
		}

		f.Pixels[i] = out
		f.Pixels[i+1] = out
		f.Pixels[i+2] = out
	}
}

// luminance computes the Rec. 601 weighted luminance of a BGRA pixel.
func luminance(b, g, r byte) int {
	return int(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b))
}
