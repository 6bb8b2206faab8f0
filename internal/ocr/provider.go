package ocr

// Token is one recognized text fragment with its bounding box in
// cropped-region coordinates.
type Token struct {
	Text   string
	X      int
	Y      int
	Width  int
	Height int
}

// Provider performs text recognition on a preprocessed bitmap. A single
// call may take tens of milliseconds; callers treat it as synchronous.
type Provider interface {
	// Recognize extracts located text tokens from a BGRA bitmap.
	Recognize(bgra []byte, width, height int) ([]Token, error)

	// Close releases any resources held by the recognizer.
	Close() error
}

// Topmost returns the token with the smallest bounding-box y, or nil when
// the list is empty. Ties keep the earliest token, so the result is stable
// for a given token order.
func Topmost(tokens []Token) *Token {
	if len(tokens) == 0 {
		return nil
	}
	top := &tokens[0]
	for i := 1; i < len(tokens); i++ {
		if tokens[i].Y < top.Y {
			top = &tokens[i]
		}
	}
	return top
}
