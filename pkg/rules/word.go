// Package rules parses keyword rule text into match groups.
//
// Rule text is a sequence of blank-line separated blocks. Each block is either a
// section header switch ([GLOBAL_FILTER] or [WORD_GROUPS]) or a word group.
// Inside a word group a line is one token: "+word" is required, "!word" is a filter,
// "@N" limits the number of displayed titles and anything else is a normal word.
// A word wrapped in slashes (/pattern/) is a case-insensitive regular expression and
// "word => Alias" gives the word a display name.
package rules

import (
	"regexp"
	"strings"
)

var (
	aliasSplitRe = regexp.MustCompile(`\s*=>\s*`)
	regexWordRe  = regexp.MustCompile(`^/(.+)/[a-z]*$`)
)

// WordToken is a single parsed rule word, either a literal keyword or a compiled regex
type WordToken struct {
	Text        string         `json:"text"` // literal keyword, or regex source without delimiters
	IsRegex     bool           `json:"is_regex"`
	Pattern     *regexp.Regexp `json:"-"`
	DisplayName string         `json:"display_name,omitempty"`
}

// Label returns the display name of the token, falling back to its text
func (w WordToken) Label() string {
	if w.DisplayName != "" {
		return w.DisplayName
	}
	return w.Text
}

// ParseWord parses one raw rule word. It never fails: a regex that doesn't compile
// becomes a literal token holding the original wrapped string.
func ParseWord(raw string) WordToken {
	spec, displayName := strings.TrimSpace(raw), ""
	if strings.Contains(raw, "=>") {
		parts := aliasSplitRe.Split(raw, 2)
		spec = strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			displayName = strings.TrimSpace(parts[1])
		}
	}

	if m := regexWordRe.FindStringSubmatch(spec); m != nil {
		// flags after the closing slash are accepted but matching is always case-insensitive
		if re, err := regexp.Compile("(?i)" + m[1]); err == nil {
			return WordToken{Text: m[1], IsRegex: true, Pattern: re, DisplayName: displayName}
		}
	}

	return WordToken{Text: spec, DisplayName: displayName}
}
