package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tamcore/pycollect/internal/collector"
	"github.com/tamcore/pycollect/internal/pattern"
	"github.com/tamcore/pycollect/internal/resolver"
)

// Config holds all configuration options for pycollect
type Config struct {
	// Path is the directory to collect from (default: ".")
	Path string `mapstructure:"path"`

	// Syntax selects the pattern syntax: wildcard, regex or glob
	Syntax string `mapstructure:"syntax"`

	// Legacy switches from exclusion sets to inclusion and exclusion lists
	Legacy bool `mapstructure:"legacy"`

	// ExcludeFiles are file patterns added to the default exclusions.
	// In legacy mode they replace the default file exclusions.
	ExcludeFiles []string `mapstructure:"exclude-files"`

	// ExcludeDirs are directory patterns added to the default exclusions.
	// In legacy mode they replace the default directory exclusions.
	ExcludeDirs []string `mapstructure:"exclude-dirs"`

	// IncludeFiles replaces the default file inclusions (legacy mode only)
	IncludeFiles []string `mapstructure:"include-files"`

	// IncludeDirs replaces the default directory inclusions (legacy mode only)
	IncludeDirs []string `mapstructure:"include-dirs"`

	// PackageMarker is the file a sub-directory must contain to be descended
	// into; empty disables the check
	PackageMarker string `mapstructure:"package-marker"`

	// RecursionLimit bounds the directory depth; -1 means unlimited
	RecursionLimit int `mapstructure:"recursion-limit"`

	// FollowSymlinks classifies symbolic links by their target
	FollowSymlinks bool `mapstructure:"follow-symlinks"`

	// SearchRoots are the directories module names are resolved against
	SearchRoots []string `mapstructure:"search-roots"`

	// UsePythonPath appends PYTHONPATH entries to SearchRoots
	UsePythonPath bool `mapstructure:"use-pythonpath"`

	// Innermost returns the module name of the deepest search root
	Innermost bool `mapstructure:"innermost"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `mapstructure:"log-level"`

	// Verbose forces the debug log level
	Verbose bool `mapstructure:"verbose"`

	// NoColor disables colored output
	NoColor bool `mapstructure:"no-color"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Path:           ".",
		Syntax:         pattern.SyntaxWildcard.String(),
		Legacy:         false,
		ExcludeFiles:   []string{},
		ExcludeDirs:    []string{},
		IncludeFiles:   []string{},
		IncludeDirs:    []string{},
		PackageMarker:  pattern.PackageMarker,
		RecursionLimit: collector.Unlimited,
		FollowSymlinks: true,
		SearchRoots:    []string{},
		UsePythonPath:  true,
		Innermost:      false,
		LogLevel:       "info",
		Verbose:        false,
		NoColor:        false,
	}
}

// SetupViper configures Viper to read from config file, env vars, and set defaults
func SetupViper() {
	// Set default values
	defaults := Default()
	viper.SetDefault("path", defaults.Path)
	viper.SetDefault("syntax", defaults.Syntax)
	viper.SetDefault("legacy", defaults.Legacy)
	viper.SetDefault("exclude-files", defaults.ExcludeFiles)
	viper.SetDefault("exclude-dirs", defaults.ExcludeDirs)
	viper.SetDefault("include-files", defaults.IncludeFiles)
	viper.SetDefault("include-dirs", defaults.IncludeDirs)
	viper.SetDefault("package-marker", defaults.PackageMarker)
	viper.SetDefault("recursion-limit", defaults.RecursionLimit)
	viper.SetDefault("follow-symlinks", defaults.FollowSymlinks)
	viper.SetDefault("search-roots", defaults.SearchRoots)
	viper.SetDefault("use-pythonpath", defaults.UsePythonPath)
	viper.SetDefault("innermost", defaults.Innermost)
	viper.SetDefault("log-level", defaults.LogLevel)
	viper.SetDefault("verbose", defaults.Verbose)
	viper.SetDefault("no-color", defaults.NoColor)

	// Config file settings
	viper.SetConfigName(".pycollect")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")

	// Environment variable settings
	viper.SetEnvPrefix("PYCOLLECT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}

// Load reads the configuration from all sources and returns a Config struct
func Load() (*Config, error) {
	SetupViper()

	// Try to read config file (ignore if not found)
	_ = viper.ReadInConfig()

	return Get()
}

// Get returns a Config populated from Viper's current state
func Get() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that the collector cannot interpret
func (c *Config) Validate() error {
	if _, err := pattern.ParseSyntax(c.Syntax); err != nil {
		return err
	}
	if c.RecursionLimit < collector.Unlimited {
		return fmt.Errorf("recursion-limit must be %d (unlimited) or non-negative, got %d",
			collector.Unlimited, c.RecursionLimit)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log-level %q", c.LogLevel)
	}
	return nil
}

// Rules builds the exclusion strategy described by the configuration
func (c *Config) Rules() (pattern.Rules, error) {
	syntax, err := pattern.ParseSyntax(c.Syntax)
	if err != nil {
		return nil, err
	}

	if !c.Legacy {
		return pattern.NewExclusionRules(syntax, c.ExcludeFiles, c.ExcludeDirs), nil
	}

	// empty lists keep the built-in legacy defaults
	return pattern.NewLegacyRules(syntax, pattern.LegacyPatterns{
		FileIncludes: nonEmpty(c.IncludeFiles),
		FileExcludes: nonEmpty(c.ExcludeFiles),
		DirIncludes:  nonEmpty(c.IncludeDirs),
		DirExcludes:  nonEmpty(c.ExcludeDirs),
	}), nil
}

// Options returns the collection parameters for path
func (c *Config) Options(path string) collector.Options {
	return collector.Options{
		SearchPath:     path,
		RecursionLimit: c.RecursionLimit,
		FollowSymlinks: c.FollowSymlinks,
	}
}

// Roots returns the explicit search roots followed by pythonPath when
// UsePythonPath is set. Relative roots are made absolute against the
// working directory, the way the interpreter treats sys.path.
func (c *Config) Roots(pythonPath resolver.SearchRoots) (resolver.SearchRoots, error) {
	candidates := make([]string, 0, len(c.SearchRoots)+len(pythonPath))
	candidates = append(candidates, c.SearchRoots...)
	if c.UsePythonPath {
		candidates = append(candidates, pythonPath...)
	}

	roots := make(resolver.SearchRoots, 0, len(candidates))
	for _, root := range candidates {
		if root == "" {
			continue
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve search root %s: %w", root, err)
		}
		roots = append(roots, abs)
	}
	return roots, nil
}

func nonEmpty(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	return list
}
