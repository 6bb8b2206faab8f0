package rules

import (
	"regexp"
	"strconv"
	"strings"
)

// priceRun matches runs of digits, commas and periods in recognized text.
var priceRun = regexp.MustCompile(`[\d,\.]+`)

// findPriceInRange scans raw token text for numeric substrings, strips
// thousands separators, and returns the first parsed value that falls
// within the declared bounds. A nil bound is unconstrained on that side.
func findPriceInRange(text string, min, max *float64) (float64, bool) {
	for _, run := range priceRun.FindAllString(text, -1) {
		value, err := strconv.ParseFloat(strings.ReplaceAll(run, ",", ""), 64)
		if err != nil {
			continue
		}
		if min != nil && value < *min {
			continue
		}
		if max != nil && value > *max {
			continue
		}
		return value, true
	}
	return 0, false
}
