// Package collector finds Python source files in a directory tree.
//
// Only base names are matched against the exclusion rules. Sub-directories are
// descended into when the rules keep them and, unless disabled, when they
// directly contain a package marker file.
package collector

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/tamcore/pycollect/internal/pattern"
)

// Unlimited disables the recursion limit
const Unlimited = -1

// ErrNotDirectory is returned when the search path is not a directory
var ErrNotDirectory = errors.New("not a directory")

// Options are the per-call collection parameters
type Options struct {
	// SearchPath is the directory to collect from. When empty, the directory
	// of the source file calling Collect is used.
	SearchPath string

	// RecursionLimit is the number of directory levels below SearchPath to
	// descend into. 0 collects SearchPath only; Unlimited has no bound.
	RecursionLimit int

	// FollowSymlinks classifies symbolic links by their target. When false,
	// links are neither files nor directories and are skipped.
	FollowSymlinks bool
}

// DefaultOptions returns unlimited recursion that follows symlinks
func DefaultOptions() Options {
	return Options{
		RecursionLimit: Unlimited,
		FollowSymlinks: true,
	}
}

// Collector walks directories applying exclusion rules.
// Its configuration is read-only once built, so concurrent Collect calls are safe.
type Collector struct {
	fs     billy.Filesystem
	rules  pattern.Rules
	marker string
	logger *log.Logger
}

// Option configures a Collector
type Option func(*Collector)

// WithFilesystem sets the filesystem to walk. Paths are absolute within it.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(c *Collector) {
		c.fs = fs
	}
}

// WithRules sets the exclusion strategy
func WithRules(rules pattern.Rules) Option {
	return func(c *Collector) {
		c.rules = rules
	}
}

// WithPackageMarker sets the file a directory must contain to be descended
// into. An empty name turns the check off.
func WithPackageMarker(name string) Option {
	return func(c *Collector) {
		c.marker = name
	}
}

// WithLogger sets the logger receiving debug output about skipped entries
func WithLogger(logger *log.Logger) Option {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Collector. Without options it walks the OS filesystem with the
// default wildcard exclusion rules and requires __init__.py in sub-directories.
func New(opts ...Option) *Collector {
	c := &Collector{
		fs:     osfs.New(string(filepath.Separator)),
		rules:  pattern.NewExclusionRules(pattern.SyntaxWildcard, nil, nil),
		marker: pattern.PackageMarker,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect returns the files under opts.SearchPath that pass the rules.
// Any filesystem or pattern error aborts the whole collection.
//
// Symlink cycles are not detected: with FollowSymlinks set, a tree that links
// back into itself is only bounded by RecursionLimit.
func (c *Collector) Collect(opts Options) (*Result, error) {
	searchPath := opts.SearchPath
	if searchPath == "" {
		searchPath = callerDir(2)
	}

	absPath, err := filepath.Abs(searchPath)
	if err != nil {
		return nil, fmt.Errorf("resolve search path %q: %w", searchPath, err)
	}

	info, err := c.fs.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat search path %q: %w", absPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("search path %q: %w", absPath, ErrNotDirectory)
	}

	c.logger.Debug("collecting",
		"path", absPath,
		"recursion_limit", opts.RecursionLimit,
		"follow_symlinks", opts.FollowSymlinks,
		"package_marker", c.marker,
		"rules", pattern.Describe(c.rules),
	)

	return c.collect(absPath, opts.RecursionLimit, opts.FollowSymlinks)
}

func (c *Collector) collect(dir string, limit int, follow bool) (*Result, error) {
	infos, err := c.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}

	result := NewResult()
	var subdirs []string

	for _, info := range infos {
		name := info.Name()
		path := c.fs.Join(dir, name)

		target, symlink, err := c.resolve(path, info, follow)
		if err != nil {
			return nil, err
		}
		if target == nil {
			continue
		}

		switch {
		case target.Mode().IsRegular():
			excluded, err := c.rules.ExcludeFile(name)
			if err != nil {
				return nil, fmt.Errorf("match file %q: %w", path, err)
			}
			if excluded {
				c.logger.Debug("excluded file", "path", path)
				continue
			}
			result.Add(Entry{Name: name, Path: path, Size: target.Size(), Symlink: symlink})

		case target.IsDir():
			excluded, err := c.rules.ExcludeDir(name)
			if err != nil {
				return nil, fmt.Errorf("match directory %q: %w", path, err)
			}
			if excluded {
				c.logger.Debug("excluded directory", "path", path)
				continue
			}
			subdirs = append(subdirs, path)
		}
	}

	if limit == 0 {
		return result, nil
	}
	next := limit
	if limit > 0 {
		next--
	}

	for _, sub := range subdirs {
		ok, err := c.isPackage(sub, follow)
		if err != nil {
			return nil, err
		}
		if !ok {
			c.logger.Debug("skipped directory without package marker", "path", sub, "marker", c.marker)
			continue
		}

		found, err := c.collect(sub, next, follow)
		if err != nil {
			return nil, err
		}
		result.Merge(found)
	}

	return result, nil
}

// resolve returns the info used to classify an entry. A nil info means the
// entry is skipped: a symlink when links are not followed, or a dangling one.
func (c *Collector) resolve(path string, info os.FileInfo, follow bool) (os.FileInfo, bool, error) {
	if info.Mode()&os.ModeSymlink == 0 {
		return info, false, nil
	}
	if !follow {
		return nil, true, nil
	}

	target, err := c.fs.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		c.logger.Debug("skipped dangling symlink", "path", path)
		return nil, true, nil
	}
	if err != nil {
		return nil, true, fmt.Errorf("stat %q: %w", path, err)
	}
	return target, true, nil
}

// isPackage reports whether dir directly contains the package marker file
func (c *Collector) isPackage(dir string, follow bool) (bool, error) {
	if c.marker == "" {
		return true, nil
	}

	path := c.fs.Join(dir, c.marker)

	var (
		info os.FileInfo
		err  error
	)
	if follow {
		info, err = c.fs.Stat(path)
	} else {
		info, err = c.fs.Lstat(path)
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %q: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}

// callerDir returns the directory of the source file skip frames up the stack
func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip)
	if !ok {
		return "."
	}
	return filepath.Dir(file)
}
