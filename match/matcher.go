// Package match implements flexible function-name matching over a
// callgraph.Graph, adapted from picatz/taint's callgraphutil
// FunctionMatcher. Four strategies are supported: exact, fuzzy
// (substring), glob, and regex.
package match

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// Strategy is a function-name matching strategy.
type Strategy int

const (
	// Exact requires an exact string match (default).
	Exact Strategy = iota
	// Fuzzy uses substring matching.
	Fuzzy
	// Glob uses shell-style pattern matching with *, ?, [].
	Glob
	// Regex uses regular expression matching.
	Regex
)

func (s Strategy) String() string {
	switch s {
	case Exact:
		return "exact"
	case Fuzzy:
		return "fuzzy"
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	default:
		return "unknown"
	}
}

// Matcher matches function names against a pattern under a fixed
// strategy.
type Matcher struct {
	pattern  string
	strategy Strategy
	regex    *regexp.Regexp
}

// New creates a matcher with an explicit strategy.
func New(pattern string, strategy Strategy) (*Matcher, error) {
	m := &Matcher{pattern: pattern, strategy: strategy}
	if strategy == Regex {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		m.regex = re
	}
	return m, nil
}

// Parse creates a matcher from a pattern with an optional strategy
// prefix: "exact:", "fuzzy:", "glob:", or "regex:". A pattern with no
// recognized prefix defaults to exact matching against the whole
// string, including any colon it contains.
func Parse(input string) (*Matcher, error) {
	strategy := Exact
	pattern := input

	if i := strings.Index(input, ":"); i >= 0 {
		switch strings.ToLower(input[:i]) {
		case "exact":
			strategy, pattern = Exact, input[i+1:]
		case "fuzzy", "fuzz", "substring":
			strategy, pattern = Fuzzy, input[i+1:]
		case "glob", "pattern":
			strategy, pattern = Glob, input[i+1:]
		case "regex", "regexp", "re":
			strategy, pattern = Regex, input[i+1:]
		}
	}

	return New(pattern, strategy)
}

// Match reports whether name matches according to the matcher's
// strategy.
func (m *Matcher) Match(name string) bool {
	switch m.strategy {
	case Exact:
		return name == m.pattern
	case Fuzzy:
		return strings.Contains(name, m.pattern)
	case Glob:
		matched, err := path.Match(m.pattern, name)
		if err != nil {
			return name == m.pattern
		}
		return matched
	case Regex:
		return m.regex != nil && m.regex.MatchString(name)
	default:
		return false
	}
}

func (m *Matcher) Strategy() Strategy { return m.strategy }
func (m *Matcher) Pattern() string    { return m.pattern }

func (m *Matcher) String() string {
	return fmt.Sprintf("%s:%s", m.strategy, m.pattern)
}
