package rules

import (
	"strings"

	"github.com/xrash/smetrics"

	"jordanella.com/market-sniper-go/internal/ocr"
)

// fuzzyThreshold is the minimum normalized edit similarity for a single
// trigger word to match a recognized word. Tolerates one substituted
// character in common item names without accepting unrelated words.
const fuzzyThreshold = 0.85

// Match evaluates the configured rules against one analysis pass worth of
// recognized tokens and returns the first firing, or nil when nothing
// matches. Evaluation is first-match-wins: rule order, then token order,
// at most one firing per pass.
//
// The topmost token (smallest bounding-box y) is treated as the pass's
// attribute label; rules with a required attribute are gated on it.
func Match(tokens []ocr.Token, ruleSet []Rule) *Firing {
	if len(tokens) == 0 {
		return nil
	}

	topmost := ocr.Topmost(tokens)
	attributeText := ""
	if topmost != nil {
		attributeText = topmost.Text
	}
	attributeLower := strings.ToLower(attributeText)

	for i := range ruleSet {
		rule := &ruleSet[i]
		for _, token := range tokens {
			if rule.Attribute != "" {
				if attributeLower == "" || !strings.Contains(attributeLower, strings.ToLower(rule.Attribute)) {
					continue
				}
			}

			text := strings.ToLower(token.Text)
			if !matchesTrigger(text, rule.Triggers) {
				continue
			}

			price := 0.0
			if rule.HasPriceBounds() {
				matched, ok := findPriceInRange(token.Text, rule.MinPrice, rule.MaxPrice)
				if !ok {
					continue
				}
				price = matched
			}

			return &Firing{
				RuleID:      rule.ID,
				MatchedText: token.Text,
				Attribute:   attributeText,
				Price:       price,
			}
		}
	}
	return nil
}

// matchesTrigger reports whether any trigger satisfies the lower-cased
// token text. Triggers containing a space are phrases matched by substring
// containment; single words match exactly or by edit similarity against
// each alphanumeric word of the text.
func matchesTrigger(text string, triggers []string) bool {
	for _, trigger := range triggers {
		keyword := strings.ToLower(trigger)
		if keyword == "" {
			continue
		}

		if strings.Contains(keyword, " ") {
			if strings.Contains(text, keyword) {
				return true
			}
			continue
		}

		words := strings.FieldsFunc(text, func(c rune) bool {
			return !isAlphanumeric(c)
		})
		for _, word := range words {
			if word == keyword || similarity(word, keyword) > fuzzyThreshold {
				return true
			}
		}
	}
	return false
}

// similarity is a normalized edit similarity in [0,1], 1 = identical.
// Jaro-Winkler keeps adjacent-character swaps and single substitutions
// (the two dominant OCR misreads) above the threshold for short item
// names, where a plain Levenshtein ratio drops below it.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	return smetrics.JaroWinkler(a, b, 0.7, 4)
}

func isAlphanumeric(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
