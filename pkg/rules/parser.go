package rules

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	sectionGlobalFilter = "GLOBAL_FILTER"
	sectionWordGroups   = "WORD_GROUPS"
)

var blankLineRe = regexp.MustCompile(`\n[ \t]*\n`)

// WordGroup is one OR-of-normal-words and AND-of-required-words unit
type WordGroup struct {
	Required    []WordToken `json:"required"`
	Normal      []WordToken `json:"normal"`
	Key         string      `json:"group_key"`
	DisplayName string      `json:"display_name,omitempty"`
	MaxCount    int         `json:"max_count"`
}

// RuleSet is the result of parsing rule text
type RuleSet struct {
	Groups        []WordGroup `json:"groups"`
	FilterWords   []WordToken `json:"filter_words"`
	GlobalFilters []string    `json:"global_filters"`
}

// Group returns the group with the given display name
func (rs *RuleSet) Group(displayName string) (WordGroup, bool) {
	for _, g := range rs.Groups {
		if g.DisplayName == displayName {
			return g, true
		}
	}
	return WordGroup{}, false
}

// Parse joins rule blocks and parses them into a rule set. Malformed lines are dropped,
// parsing never fails.
func Parse(blocks []string) *RuleSet {
	rs := &RuleSet{}
	section := sectionWordGroups

	content := strings.ReplaceAll(strings.Join(blocks, "\n\n"), "\r\n", "\n")
	for _, block := range blankLineRe.Split(content, -1) {
		lines := blockLines(block)
		if len(lines) == 0 {
			continue
		}

		if name, ok := bracketed(lines[0]); ok {
			if upper := strings.ToUpper(name); upper == sectionGlobalFilter || upper == sectionWordGroups {
				section = upper
				lines = lines[1:]
			}
		}

		if section == sectionGlobalFilter {
			for _, line := range lines {
				if strings.HasPrefix(line, "!") || strings.HasPrefix(line, "+") || strings.HasPrefix(line, "@") {
					continue
				}
				rs.GlobalFilters = append(rs.GlobalFilters, line)
			}
			continue
		}

		if g, ok := rs.parseGroup(lines); ok {
			rs.Groups = append(rs.Groups, g)
		}
	}
	return rs
}

// parseGroup builds a word group from block lines, collecting filter words into the rule set
func (rs *RuleSet) parseGroup(lines []string) (WordGroup, bool) {
	var g WordGroup
	alias := ""
	if len(lines) > 0 {
		if name, ok := bracketed(lines[0]); ok {
			name = strings.TrimSpace(name)
			if upper := strings.ToUpper(name); upper != sectionGlobalFilter && upper != sectionWordGroups {
				alias = name
				lines = lines[1:]
			}
		}
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "@"):
			if n, err := strconv.Atoi(strings.TrimSpace(line[1:])); err == nil && n > 0 {
				g.MaxCount = n
			}
		case strings.HasPrefix(line, "!"):
			if tok := ParseWord(line[1:]); tok.Text != "" {
				rs.FilterWords = append(rs.FilterWords, tok)
			}
		case strings.HasPrefix(line, "+"):
			if tok := ParseWord(line[1:]); tok.Text != "" {
				g.Required = append(g.Required, tok)
			}
		default:
			if tok := ParseWord(line); tok.Text != "" {
				g.Normal = append(g.Normal, tok)
			}
		}
	}

	if len(g.Required) == 0 && len(g.Normal) == 0 {
		return WordGroup{}, false
	}

	if len(g.Normal) > 0 {
		g.Key = joinTokens(g.Normal, " ", WordToken.textOf)
	} else {
		g.Key = joinTokens(g.Required, " ", WordToken.textOf)
	}

	g.DisplayName = alias
	if g.DisplayName == "" {
		all := append(append([]WordToken{}, g.Normal...), g.Required...)
		g.DisplayName = joinTokens(all, " / ", WordToken.Label)
	}
	return g, true
}

func (w WordToken) textOf() string { return w.Text }

func joinTokens(tokens []WordToken, sep string, fn func(WordToken) string) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = fn(t)
	}
	return strings.Join(parts, sep)
}

// blockLines returns trimmed, non-empty, non-comment lines of a block
func blockLines(block string) []string {
	var res []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		res = append(res, line)
	}
	return res
}

// bracketed returns the inner text of a "[...]" line
func bracketed(line string) (string, bool) {
	if len(line) < 2 || !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
		return "", false
	}
	return line[1 : len(line)-1], true
}
