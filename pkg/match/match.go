// Package match evaluates titles against parsed rule groups and free-text queries.
package match

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/umputun/briefing/pkg/rules"
)

// Token reports whether the title contains the token. Literal tokens match by
// case-insensitive substring, regex tokens by case-insensitive search.
func Token(title string, tok rules.WordToken) bool {
	if tok.IsRegex && tok.Pattern != nil {
		return tok.Pattern.MatchString(title)
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(tok.Text))
}

// Group reports whether the title satisfies the group: every required word matches,
// at least one normal word matches (if any), and none of the filter words or global
// filters is present.
func Group(title string, g rules.WordGroup, filterWords []rules.WordToken, globalFilters []string) bool {
	lower := strings.ToLower(title)
	for _, gf := range globalFilters {
		if gf != "" && strings.Contains(lower, strings.ToLower(gf)) {
			return false
		}
	}

	for _, fw := range filterWords {
		if Token(title, fw) {
			return false
		}
	}

	for _, req := range g.Required {
		if !Token(title, req) {
			return false
		}
	}

	if len(g.Normal) == 0 {
		return true
	}
	for _, w := range g.Normal {
		if Token(title, w) {
			return true
		}
	}
	return false
}

// RuleSet returns the index of the first group in rs matching the title
func RuleSet(title string, rs *rules.RuleSet) (int, bool) {
	if rs == nil {
		return -1, false
	}
	for i, g := range rs.Groups {
		if Group(title, g, rs.FilterWords, rs.GlobalFilters) {
			return i, true
		}
	}
	return -1, false
}

// Query is a compiled free-text filter: substring AND regex, both case-insensitive.
// A nil Query matches everything.
type Query struct {
	text string
	re   *regexp.Regexp
}

// NewQuery compiles a query filter. Empty query and empty regex are vacuously true.
func NewQuery(query, includeRegex string) (*Query, error) {
	q := &Query{text: strings.ToLower(strings.TrimSpace(query))}
	if includeRegex != "" {
		re, err := regexp.Compile("(?i)" + includeRegex)
		if err != nil {
			return nil, fmt.Errorf("compile include regex %q: %w", includeRegex, err)
		}
		q.re = re
	}
	return q, nil
}

// Match reports whether the title passes both conditions
func (q *Query) Match(title string) bool {
	if q == nil {
		return true
	}
	if q.text != "" && !strings.Contains(strings.ToLower(title), q.text) {
		return false
	}
	if q.re != nil && !q.re.MatchString(title) {
		return false
	}
	return true
}
