package evidence

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jordanella.com/market-sniper-go/internal/frame"
)

// Store writes preprocessed crops to disk as firing evidence. Files are
// named by sanitized item name plus timestamp so the uploader can reference
// them without a separate index.
type Store struct {
	dir string
}

// NewStore creates the evidence directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create evidence directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Write saves the frame as a PNG and returns its absolute path, which
// serves as the evidence reference in outbound payloads.
func (s *Store) Write(itemName string, f *frame.Frame) (string, error) {
	encoded, err := f.EncodePNG()
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s_%s.png", sanitize(itemName), time.Now().Format("20060102_150405"))
	path := filepath.Join(s.dir, filename)

	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return "", fmt.Errorf("failed to write evidence file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}

// sanitize keeps item names filesystem-safe: spaces become underscores and
// everything outside [A-Za-z0-9_] is dropped.
func sanitize(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	var b strings.Builder
	for _, c := range name {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			b.WriteRune(c)
		}
	}
	if b.Len() == 0 {
		return "evidence"
	}
	return b.String()
}
