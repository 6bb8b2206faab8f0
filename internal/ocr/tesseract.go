package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract"

	"jordanella.com/market-sniper-go/internal/frame"
)

// Tesseract wraps a gosseract client as a recognition provider.
type Tesseract struct {
	client *gosseract.Client
}

// NewTesseract creates a Tesseract-backed recognizer for the given
// language (e.g. "eng"). Fails when the tesseract runtime or language
// data is unavailable; callers are expected to degrade rather than abort.
func NewTesseract(language string) (*Tesseract, error) {
	client := gosseract.NewClient()
	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set OCR language %q: %w", language, err)
		}
	}
	// Sparse UI text, not a uniform block of prose.
	if err := client.SetPageSegMode(gosseract.PSM_SPARSE_TEXT); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to configure OCR segmentation: %w", err)
	}
	return &Tesseract{client: client}, nil
}

// Recognize runs word-level recognition over a BGRA bitmap and returns the
// located tokens with bounding boxes in bitmap coordinates.
func (t *Tesseract) Recognize(bgra []byte, width, height int) ([]Token, error) {
	f := &frame.Frame{Pixels: bgra, Width: width, Height: height}
	encoded, err := f.EncodePNG()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare bitmap for OCR: %w", err)
	}

	if err := t.client.SetImageFromBytes(encoded); err != nil {
		return nil, fmt.Errorf("failed to load bitmap into OCR engine: %w", err)
	}

	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR recognition failed: %w", err)
	}

	tokens := make([]Token, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		tokens = append(tokens, Token{
			Text:   text,
			X:      box.Box.Min.X,
			Y:      box.Box.Min.Y,
			Width:  box.Box.Dx(),
			Height: box.Box.Dy(),
		})
	}
	return tokens, nil
}

// Close releases the underlying tesseract client.
func (t *Tesseract) Close() error {
	return t.client.Close()
}
