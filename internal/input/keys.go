package input

import "strings"

// DefaultKey is the action key used when configuration supplies none or an
// unrecognized name.
const DefaultKey = "e"

// ParseKey normalizes a configured key name to a provider key. Accepts
// a–z, 0–9, f1–f12 and a few named keys; anything else falls back to
// DefaultKey.
func ParseKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))

	switch key {
	case "space", "enter", "tab":
		return key
	case "esc", "escape":
		return "esc"
	}

	if len(key) == 1 {
		c := key[0]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			return key
		}
	}

	if len(key) >= 2 && len(key) <= 3 && key[0] == 'f' {
		switch key[1:] {
		case "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12":
			return key
		}
	}

	return DefaultKey
}
