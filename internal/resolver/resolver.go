// Package resolver finds the dotted Python module name of a file from the
// search roots (the equivalent of sys.path) that contain it.
package resolver

import (
	"os"
	"path/filepath"
	"strings"
)

// PathsEqual reports whether two cleaned directory paths name the same directory
type PathsEqual func(a, b string) bool

// RootSource provides the search roots at lookup time.
// The resolver never modifies the returned slice.
type RootSource interface {
	Paths() []string
}

// SearchRoots is an ordered list of directories that can hold top-level modules
type SearchRoots []string

// Paths implements RootSource. A *SearchRoots source sees later appends.
func (s SearchRoots) Paths() []string {
	return s
}

// RootsFromEnv splits a PYTHONPATH-style value on the OS list separator,
// skipping empty entries
func RootsFromEnv(value string) SearchRoots {
	var roots SearchRoots
	for _, p := range filepath.SplitList(value) {
		if strings.TrimSpace(p) == "" {
			continue
		}
		roots = append(roots, p)
	}
	return roots
}

// RootsFromPythonPath reads the PYTHONPATH environment variable
func RootsFromPythonPath() SearchRoots {
	return RootsFromEnv(os.Getenv("PYTHONPATH"))
}

// Resolver maps file paths to dotted module names
type Resolver struct {
	roots RootSource
	equal PathsEqual
}

// Option configures a Resolver
type Option func(*Resolver)

// WithPathsEqual replaces the platform path comparison
func WithPathsEqual(eq PathsEqual) Option {
	return func(r *Resolver) {
		if eq != nil {
			r.equal = eq
		}
	}
}

// New creates a Resolver reading its roots from source
func New(source RootSource, opts ...Option) *Resolver {
	r := &Resolver{
		roots: source,
		equal: DefaultPathsEqual,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FindModuleName returns the dotted module name of the file at path.
//
// The walk starts at the file's directory and moves up one level at a time,
// prefixing the directory name at each step. By default the name found at the
// highest root wins; with innermost set the first root found is returned right
// away. The boolean is false when no ancestor is a search root.
func (r *Resolver) FindModuleName(path string, innermost bool) (string, bool) {
	roots := r.cleanRoots()

	name := stem(filepath.Base(path))
	dir := filepath.Dir(path)

	found, ok := "", false
	for {
		if r.isRoot(roots, dir) {
			if innermost {
				return name, true
			}
			found, ok = name, true
		}

		name = filepath.Base(dir) + "." + name

		// the filesystem root itself is never checked
		parent := filepath.Dir(dir)
		if parent == filepath.Dir(parent) {
			break
		}
		dir = parent
	}

	return found, ok
}

func (r *Resolver) cleanRoots() []string {
	if r.roots == nil {
		return nil
	}
	paths := r.roots.Paths()
	cleaned := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		cleaned = append(cleaned, filepath.Clean(p))
	}
	return cleaned
}

func (r *Resolver) isRoot(roots []string, dir string) bool {
	for _, root := range roots {
		if r.equal(root, dir) {
			return true
		}
	}
	return false
}

// FindModuleName resolves path against roots with the platform path comparison
func FindModuleName(path string, roots []string, innermost bool) (string, bool) {
	return New(SearchRoots(roots)).FindModuleName(path, innermost)
}

// stem strips the last extension the way Python's os.path.splitext does:
// leading dots never start an extension
func stem(base string) string {
	i := strings.LastIndex(base, ".")
	if i <= 0 || strings.Trim(base[:i], ".") == "" {
		return base
	}
	return base[:i]
}
