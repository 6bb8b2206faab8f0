package evidence

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jordanella.com/market-sniper-go/internal/frame"
)

func testCrop() *frame.Frame {
	pixels := make([]byte, 4*4*frame.BytesPerPixel)
	for i := range pixels {
		pixels[i] = byte(i)
	}
	return frame.NewFrame(pixels, 4, 4)
}

func TestStoreWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "evidence")
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	path, err := store.Write("Excalibur Sword +5!", testCrop())
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "Excalibur_Sword_5_") {
		t.Errorf("filename = %q, want sanitized item-name prefix", base)
	}
	if !strings.HasSuffix(base, ".png") {
		t.Errorf("filename = %q, want .png suffix", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("evidence file unreadable: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("evidence file is not valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("decoded size = %v, want 4x4", img.Bounds())
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Excalibur Sword", "Excalibur_Sword"},
		{"$1,250 (rare)", "1250_rare"},
		{"***", "evidence"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := sanitize(tt.in); got != tt.want {
			t.Errorf("sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
