package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tamcore/pycollect/internal/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pycollect",
	Short: "Collect Python source files and resolve their module names",
	Long: `pycollect walks a directory tree and collects Python source files,
leaving out files and directories that match exclusion patterns.

Patterns match base names only and come in three syntaxes:
- wildcard: "prefix*suffix", negated with a leading "!" (default)
- regex: regular expressions anchored at the start of the name
- glob: shell globs, negated with a leading "!"

Sub-directories are only descended into when they contain __init__.py,
unless --package-marker is set to an empty string.

Module names are resolved against search roots (--root and PYTHONPATH).`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := config.Default()

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.pycollect.yaml)")
	rootCmd.PersistentFlags().String("syntax", defaults.Syntax, "pattern syntax: wildcard, regex or glob")
	rootCmd.PersistentFlags().Bool("legacy", defaults.Legacy, "use separate inclusion and exclusion lists")
	rootCmd.PersistentFlags().StringSlice("exclude-file", nil, "additional file exclusion pattern (repeatable)")
	rootCmd.PersistentFlags().StringSlice("exclude-dir", nil, "additional directory exclusion pattern (repeatable)")
	rootCmd.PersistentFlags().StringSlice("include-file", nil, "file inclusion pattern, legacy mode only (repeatable)")
	rootCmd.PersistentFlags().StringSlice("include-dir", nil, "directory inclusion pattern, legacy mode only (repeatable)")
	rootCmd.PersistentFlags().String("package-marker", defaults.PackageMarker, "file required in sub-directories to descend into them (empty disables)")
	rootCmd.PersistentFlags().Int("recursion-limit", defaults.RecursionLimit, "directory levels to descend (-1 for unlimited)")
	rootCmd.PersistentFlags().Bool("follow-symlinks", defaults.FollowSymlinks, "classify symbolic links by their target")

	// Module resolution flags
	rootCmd.PersistentFlags().StringSlice("root", nil, "search root for module names (repeatable)")
	rootCmd.PersistentFlags().Bool("use-pythonpath", defaults.UsePythonPath, "append PYTHONPATH entries to the search roots")
	rootCmd.PersistentFlags().Bool("innermost", defaults.Innermost, "return the innermost module name instead of the outermost")

	// Output flags
	rootCmd.PersistentFlags().String("log-level", defaults.LogLevel, "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolP("verbose", "v", defaults.Verbose, "print debug logs")
	rootCmd.PersistentFlags().Bool("no-color", defaults.NoColor, "disable colored output")

	// Bind flags to Viper
	viper.BindPFlag("syntax", rootCmd.PersistentFlags().Lookup("syntax"))
	viper.BindPFlag("legacy", rootCmd.PersistentFlags().Lookup("legacy"))
	viper.BindPFlag("exclude-files", rootCmd.PersistentFlags().Lookup("exclude-file"))
	viper.BindPFlag("exclude-dirs", rootCmd.PersistentFlags().Lookup("exclude-dir"))
	viper.BindPFlag("include-files", rootCmd.PersistentFlags().Lookup("include-file"))
	viper.BindPFlag("include-dirs", rootCmd.PersistentFlags().Lookup("include-dir"))
	viper.BindPFlag("package-marker", rootCmd.PersistentFlags().Lookup("package-marker"))
	viper.BindPFlag("recursion-limit", rootCmd.PersistentFlags().Lookup("recursion-limit"))
	viper.BindPFlag("follow-symlinks", rootCmd.PersistentFlags().Lookup("follow-symlinks"))
	viper.BindPFlag("search-roots", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("use-pythonpath", rootCmd.PersistentFlags().Lookup("use-pythonpath"))
	viper.BindPFlag("innermost", rootCmd.PersistentFlags().Lookup("innermost"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
}

func initConfig() {
	config.SetupViper()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setup loads the configuration and prepares logging and color output
func setup(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	cfg, err := config.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.NoColor {
		color.NoColor = true
	}

	return cfg, newLogger(cmd.ErrOrStderr(), cfg), nil
}

func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "pycollect",
	})

	level := log.InfoLevel
	if parsed, err := log.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil {
		level = parsed
	}
	if cfg.Verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)

	return logger
}
