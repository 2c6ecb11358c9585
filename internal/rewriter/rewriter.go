// =============================================================================
// C Struct to Rust Converter - Rewrite Engine
// =============================================================================
//
// The rewrite engine threads a single text buffer through every rule in
// order. Each rule is applied globally across the entire buffer (not per
// declaration) and produces a new string; nothing is mutated in place.
//
// Text that no rule matches passes through byte-for-byte. There is no
// detection of partially converted input.
//
// =============================================================================

package rewriter

import (
	"github.com/dlclark/regexp2"
)

// Stats records how many matches each rule replaced during one application.
type Stats struct {
	// Matches holds one entry per applied rule, in application order.
	Matches []RuleMatches
}

// RuleMatches is the match count of a single rule.
type RuleMatches struct {
	Name  string
	Count int
}

// Total returns the number of replacements made by all rules.
func (s Stats) Total() int {
	total := 0
	for _, m := range s.Matches {
		total += m.Count
	}
	return total
}

// Count returns the match count recorded for the named rule, or 0.
func (s Stats) Count(name string) int {
	for _, m := range s.Matches {
		if m.Name == name {
			return m.Count
		}
	}
	return 0
}

// Rewrite applies the fixed rule list to src and returns the result.
func Rewrite(src string) string {
	out, _ := Apply(src, defaultRules)
	return out
}

// RewriteWithStats is Rewrite plus per-rule match counts.
func RewriteWithStats(src string) (string, Stats) {
	return Apply(src, defaultRules)
}

// Apply runs rules over src in the given order.
//
// Matches are counted against the buffer as it stands when the rule runs,
// which is the same set of non-overlapping matches the replacement uses.
func Apply(src string, rules []Rule) (string, Stats) {
	stats := Stats{Matches: make([]RuleMatches, 0, len(rules))}

	code := src
	for _, rule := range rules {
		n := countMatches(rule.Pattern, code)
		if n > 0 {
			// regexp2 only fails on MatchTimeout, which these rules never set.
			if out, err := rule.Pattern.Replace(code, rule.Template, -1, -1); err == nil {
				code = out
			}
		}
		stats.Matches = append(stats.Matches, RuleMatches{Name: rule.Name, Count: n})
	}

	return code, stats
}

func countMatches(re *regexp2.Regexp, s string) int {
	n := 0
	m, _ := re.FindStringMatch(s)
	for m != nil {
		n++
		m, _ = re.FindNextMatch(m)
	}
	return n
}
