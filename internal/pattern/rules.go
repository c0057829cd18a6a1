package pattern

import (
	"fmt"
	"sort"
)

// Rules decides whether a file or directory name is left out of a collection
type Rules interface {
	ExcludeFile(name string) (bool, error)
	ExcludeDir(name string) (bool, error)
}

// Set is a deduplicated collection of patterns
type Set map[string]struct{}

// NewSet builds a Set from the given pattern lists
func NewSet(lists ...[]string) Set {
	s := make(Set)
	for _, list := range lists {
		s.Add(list...)
	}
	return s
}

// Add inserts patterns into the set
func (s Set) Add(patterns ...string) {
	for _, p := range patterns {
		s[p] = struct{}{}
	}
}

// Contains reports whether the set holds the exact pattern
func (s Set) Contains(pattern string) bool {
	_, ok := s[pattern]
	return ok
}

// Sorted returns the patterns in lexical order
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// anyMatch reports whether at least one of patterns matches name
func anyMatch(m *Matcher, patterns []string, name string) (bool, error) {
	for _, p := range patterns {
		ok, err := m.Match(p, name)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// ExclusionRules excludes a name when any pattern of the matching set matches it.
// Inclusion is expressed through negated patterns such as "!*.py".
type ExclusionRules struct {
	matcher *Matcher
	files   Set
	dirs    Set

	fileList []string
	dirList  []string
}

// NewExclusionRules returns the default exclusion sets for syntax, extended with
// the additional file and directory patterns. Additions never replace defaults.
func NewExclusionRules(syntax Syntax, additionalFiles, additionalDirs []string) *ExclusionRules {
	files := NewSet(DefaultFileExclusions(syntax), additionalFiles)
	dirs := NewSet(DefaultDirExclusions(syntax), additionalDirs)
	return &ExclusionRules{
		matcher:  NewMatcher(syntax),
		files:    files,
		dirs:     dirs,
		fileList: files.Sorted(),
		dirList:  dirs.Sorted(),
	}
}

// ExcludeFile implements Rules
func (r *ExclusionRules) ExcludeFile(name string) (bool, error) {
	return anyMatch(r.matcher, r.fileList, name)
}

// ExcludeDir implements Rules
func (r *ExclusionRules) ExcludeDir(name string) (bool, error) {
	return anyMatch(r.matcher, r.dirList, name)
}

// LegacyRules keeps separate inclusion and exclusion lists. A name is excluded
// when an exclusion pattern matches it or when no inclusion pattern does.
type LegacyRules struct {
	matcher *Matcher

	fileIncludes []string
	fileExcludes []string
	dirIncludes  []string
	dirExcludes  []string
}

// LegacyPatterns holds the four pattern lists of LegacyRules.
// A nil list falls back to the built-in default for the syntax; a non-nil list,
// even an empty one, replaces it.
type LegacyPatterns struct {
	FileIncludes []string
	FileExcludes []string
	DirIncludes  []string
	DirExcludes  []string
}

// NewLegacyRules builds LegacyRules for syntax
func NewLegacyRules(syntax Syntax, p LegacyPatterns) *LegacyRules {
	pick := func(list, fallback []string) []string {
		if list == nil {
			return NewSet(fallback).Sorted()
		}
		return NewSet(list).Sorted()
	}

	return &LegacyRules{
		matcher:      NewMatcher(syntax),
		fileIncludes: pick(p.FileIncludes, defaultLegacyFileInclusions(syntax)),
		fileExcludes: pick(p.FileExcludes, defaultLegacyFileExclusions(syntax)),
		dirIncludes:  pick(p.DirIncludes, defaultLegacyDirInclusions(syntax)),
		dirExcludes:  pick(p.DirExcludes, DefaultDirExclusions(syntax)),
	}
}

// ExcludeFile implements Rules
func (r *LegacyRules) ExcludeFile(name string) (bool, error) {
	return excludeLegacy(r.matcher, r.fileIncludes, r.fileExcludes, name)
}

// ExcludeDir implements Rules
func (r *LegacyRules) ExcludeDir(name string) (bool, error) {
	return excludeLegacy(r.matcher, r.dirIncludes, r.dirExcludes, name)
}

func excludeLegacy(m *Matcher, includes, excludes []string, name string) (bool, error) {
	excluded, err := anyMatch(m, excludes, name)
	if err != nil || excluded {
		return excluded, err
	}
	included, err := anyMatch(m, includes, name)
	if err != nil {
		return false, err
	}
	return !included, nil
}

// Describe renders the rule sets for debug logging
func Describe(r Rules) string {
	switch v := r.(type) {
	case *ExclusionRules:
		return fmt.Sprintf("exclusion(%s) files=%v dirs=%v", v.matcher.Syntax(), v.fileList, v.dirList)
	case *LegacyRules:
		return fmt.Sprintf("legacy(%s) files=+%v-%v dirs=+%v-%v", v.matcher.Syntax(),
			v.fileIncludes, v.fileExcludes, v.dirIncludes, v.dirExcludes)
	default:
		return fmt.Sprintf("%T", r)
	}
}
