package rules

import "time"

// Rule is one configured trigger condition mapped to the global action.
// Rules are plain data, loaded once at engine start and never mutated.
type Rule struct {
	ID       string
	Triggers []string

	// Price bounds. A nil pointer leaves that side unconstrained.
	MinPrice *float64
	MaxPrice *float64

	// Attribute, when set, must appear in the topmost recognized token.
	Attribute string

	// Cooldown is parsed from configuration but not enforced; the engine
	// applies a single global settle delay after any firing instead.
	Cooldown time.Duration
}

// HasPriceBounds reports whether the price gate applies to this rule.
func (r *Rule) HasPriceBounds() bool {
	return r.MinPrice != nil || r.MaxPrice != nil
}

// Firing is the result of a rule matching one recognized token.
type Firing struct {
	RuleID      string
	MatchedText string
	Attribute   string
	Price       float64
}
