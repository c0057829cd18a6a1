package pattern

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchWildcard(t *testing.T) {
	tests := []struct {
		pattern  string
		name     string
		expected bool
	}{
		// prefix and suffix
		{"*.py", "foo.py", true},
		{"*.py", "foo.pyc", false},
		{".*", ".hidden", true},
		{".*", "visible", false},
		{"venv*", "venv3", true},
		{"*~", "backup~", true},
		{"test_*.py", "test_foo.py", true},
		{"test_*.py", "foo_test.py", false},

		// no wildcard
		{"bin", "bin", true},
		{"bin", "binary", false},
		{"bin", "sbin", false},

		// every piece between the first and last wildcard is ignored
		{"a*b*c", "ac", true},
		{"a*b*c", "axxc", true},

		// negation
		{"!*.py", "foo.py", false},
		{"!*.py", "foo.txt", true},
		{"!bin", "bin", false},
		{"!bin", "lib", true},

		{"*", "", true},
		{"", "anything", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.name, func(t *testing.T) {
			result := MatchWildcard(tt.pattern, tt.name)
			if result != tt.expected {
				t.Errorf("MatchWildcard(%q, %q) = %v, want %v", tt.pattern, tt.name, result, tt.expected)
			}
		})
	}
}

func TestMatchWildcardIsPrefixAndSuffix(t *testing.T) {
	names := []string{"", "a", "ab", "abc", "foo.py", ".py", "py.", "setup.cfg", "__init__.py"}
	pieces := []string{"", "a", "b", "c", "foo", ".py", "py", "__"}

	for _, p := range pieces {
		for _, s := range pieces {
			pattern := p + Wildcard + s
			for _, n := range names {
				want := strings.HasPrefix(n, p) && strings.HasSuffix(n, s)
				assert.Equal(t, want, MatchWildcard(pattern, n), "pattern %q name %q", pattern, n)
				assert.Equal(t, !want, MatchWildcard(Negation+pattern, n), "pattern %q name %q", Negation+pattern, n)
			}
		}
	}
}

func TestMatcherRegex(t *testing.T) {
	m := NewMatcher(SyntaxRegex)

	tests := []struct {
		pattern  string
		name     string
		expected bool
	}{
		// anchored at the start only
		{`foo`, "foobar", true},
		{`bar`, "foobar", false},
		{`foo$`, "foobar", false},
		{`.*bar`, "foobar", true},

		// lookahead used by the default sets
		{`.*\.py(?!.)`, "mod.py", true},
		{`.*\.py(?!.)`, "mod.pyc", false},
		{`(?!(.*\.py(?!.)))`, "mod.py", false},
		{`(?!(.*\.py(?!.)))`, "mod.txt", true},
		{`^bin(?!.)`, "bin", true},
		{`^bin(?!.)`, "binary", false},
		{`.*~(?!.)`, "old~", true},

		// alternation stays inside the anchor
		{`a|b`, "cb", false},
		{`a|b`, "bc", true},

		// named groups
		{`(?P<stem>foo)\.py`, "foo.py", true},
		{`(?P<stem>test_\w+)\.py`, "test_a.py", true},
		{`(?P<stem>test_\w+)\.py`, "conftest.py", false},

		// \Z is the absolute end, $ also matches before a final newline
		{`.*\.py\Z`, "mod.py", true},
		{`.*\.py\Z`, "mod.py\n", false},
		{`.*\.py$`, "mod.py\n", true},
		{`a\\Z`, `a\Z`, true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.name, func(t *testing.T) {
			result, err := m.Match(tt.pattern, tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMatcherRegexInvalid(t *testing.T) {
	m := NewMatcher(SyntaxRegex)

	_, err := m.Match(`(unclosed`, "name")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPattern)

	// the failure is not cached as a valid program
	_, err = m.Match(`(unclosed`, "name")
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestMatcherGlob(t *testing.T) {
	m := NewMatcher(SyntaxGlob)

	tests := []struct {
		pattern  string
		name     string
		expected bool
	}{
		{"*.py", "foo.py", true},
		{"*.py", "foo.pyc", false},
		{"test_?.py", "test_a.py", true},
		{"test_?.py", "test_ab.py", false},
		{"{build,dist}", "dist", true},
		{"[!_]*", "_private", false},
		{"!*.py", "foo.txt", true},
		{"!*.py", "foo.py", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.name, func(t *testing.T) {
			result, err := m.Match(tt.pattern, tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMatcherGlobInvalid(t *testing.T) {
	m := NewMatcher(SyntaxGlob)

	_, err := m.Match("[unclosed", "name")
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestParseSyntax(t *testing.T) {
	tests := []struct {
		input    string
		expected Syntax
		wantErr  bool
	}{
		{"", SyntaxWildcard, false},
		{"wildcard", SyntaxWildcard, false},
		{"Regex", SyntaxRegex, false},
		{" glob ", SyntaxGlob, false},
		{"fnmatch", SyntaxWildcard, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseSyntax(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
			if tt.input != "" {
				assert.Equal(t, strings.ToLower(strings.TrimSpace(tt.input)), result.String())
			}
		})
	}
}
