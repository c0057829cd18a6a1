// Package pattern matches file and directory names against exclusion patterns.
//
// Patterns apply to base names only, never to relative or absolute paths.
// Three syntaxes are supported:
//
//   - wildcard: a single "*" splits the pattern into a prefix and a suffix,
//     and a leading "!" negates the result
//   - regex: Python-style regular expressions anchored at the start of the name,
//     with lookaround and (?P<name>...) groups
//   - glob: shell globs matched against the whole name, with "!" negation
package pattern

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dlclark/regexp2"
	"github.com/gobwas/glob"
)

const (
	// Wildcard marks the boundary between prefix and suffix in wildcard patterns
	Wildcard = "*"
	// Negation inverts a wildcard or glob pattern when it is the first character
	Negation = "!"
)

// ErrInvalidPattern is returned when a regex or glob pattern fails to compile
var ErrInvalidPattern = errors.New("invalid pattern")

// Syntax selects how patterns are interpreted
type Syntax int

const (
	// SyntaxWildcard is the prefix/suffix wildcard syntax with "!" negation
	SyntaxWildcard Syntax = iota
	// SyntaxRegex matches prefix-anchored regular expressions
	SyntaxRegex
	// SyntaxGlob matches shell globs against the whole name
	SyntaxGlob
)

// String returns the configuration name of the syntax
func (s Syntax) String() string {
	switch s {
	case SyntaxWildcard:
		return "wildcard"
	case SyntaxRegex:
		return "regex"
	case SyntaxGlob:
		return "glob"
	default:
		return "unknown"
	}
}

// ParseSyntax converts a configuration value into a Syntax
func ParseSyntax(value string) (Syntax, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "wildcard":
		return SyntaxWildcard, nil
	case "regex":
		return SyntaxRegex, nil
	case "glob":
		return SyntaxGlob, nil
	default:
		return SyntaxWildcard, fmt.Errorf("unknown pattern syntax %q (want wildcard, regex or glob)", value)
	}
}

// Matcher evaluates names against patterns of a single syntax.
// Compiled regex and glob programs are kept per pattern string.
// A Matcher is safe for concurrent use.
type Matcher struct {
	syntax Syntax

	mu      sync.Mutex
	regexes map[string]*regexp2.Regexp
	globs   map[string]glob.Glob
}

// NewMatcher creates a Matcher for the given syntax
func NewMatcher(syntax Syntax) *Matcher {
	return &Matcher{
		syntax:  syntax,
		regexes: make(map[string]*regexp2.Regexp),
		globs:   make(map[string]glob.Glob),
	}
}

// Syntax returns the syntax the matcher was created with
func (m *Matcher) Syntax() Syntax {
	return m.syntax
}

// Match reports whether name matches pattern.
// Only regex and glob patterns can fail, and only when they do not compile.
func (m *Matcher) Match(pattern, name string) (bool, error) {
	switch m.syntax {
	case SyntaxRegex:
		return m.matchRegex(pattern, name)
	case SyntaxGlob:
		return m.matchGlob(pattern, name)
	default:
		return MatchWildcard(pattern, name), nil
	}
}

// MatchWildcard reports whether name starts with the part of pattern before the
// first "*" and ends with the part after the last "*". Without a "*" the whole
// pattern must be both prefix and suffix.
func MatchWildcard(pattern, name string) bool {
	negate := false
	if strings.HasPrefix(pattern, Negation) {
		negate = true
		pattern = pattern[len(Negation):]
	}

	parts := strings.Split(pattern, Wildcard)
	matched := strings.HasPrefix(name, parts[0]) && strings.HasSuffix(name, parts[len(parts)-1])
	return matched != negate
}

func (m *Matcher) matchRegex(pattern, name string) (bool, error) {
	re, err := m.regex(pattern)
	if err != nil {
		return false, err
	}
	ok, err := re.MatchString(name)
	if err != nil {
		return false, fmt.Errorf("regex %q on %q: %w", pattern, name, err)
	}
	return ok, nil
}

func (m *Matcher) regex(pattern string) (*regexp2.Regexp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if re, ok := m.regexes[pattern]; ok {
		return re, nil
	}

	// \A pins the match to the first character without requiring it to reach the end.
	// RE2 mode accepts (?P<name>...) groups.
	re, err := regexp2.Compile(`\A(?:`+translateEnd(pattern)+`)`, regexp2.RE2)
	if err != nil {
		return nil, fmt.Errorf("%w: regex %q: %v", ErrInvalidPattern, pattern, err)
	}
	m.regexes[pattern] = re
	return re, nil
}

// translateEnd rewrites \Z to \z so it only matches at the very end of the
// name. regexp2's \Z also matches before a trailing newline.
func translateEnd(pattern string) string {
	if !strings.Contains(pattern, `\Z`) {
		return pattern
	}

	var b strings.Builder
	b.Grow(len(pattern))
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '\\' || i+1 == len(pattern) {
			b.WriteByte(c)
			continue
		}
		next := pattern[i+1]
		if next == 'Z' {
			next = 'z'
		}
		b.WriteByte(c)
		b.WriteByte(next)
		i++
	}
	return b.String()
}

func (m *Matcher) matchGlob(pattern, name string) (bool, error) {
	negate := false
	if strings.HasPrefix(pattern, Negation) {
		negate = true
		pattern = pattern[len(Negation):]
	}

	g, err := m.glob(pattern)
	if err != nil {
		return false, err
	}
	return g.Match(name) != negate, nil
}

func (m *Matcher) glob(pattern string) (glob.Glob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if g, ok := m.globs[pattern]; ok {
		return g, nil
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: glob %q: %v", ErrInvalidPattern, pattern, err)
	}
	m.globs[pattern] = g
	return g, nil
}
