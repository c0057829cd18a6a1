package cmd

import (
	"fmt"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/tamcore/pycollect/internal/collector"
	"github.com/tamcore/pycollect/internal/resolver"
)

var collectCmd = &cobra.Command{
	Use:   "collect [path]",
	Short: "Collect Python source files",
	Long: `Collect walks the given directory (default: current directory) and lists
the Python files that pass the exclusion rules.

Results are printed one path per line by default, or as JSON/YAML with --format.
With --modules each file is printed along with its dotted module name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCollect,
}

var (
	collectFormat  string
	collectModules bool
	collectStats   bool
)

func init() {
	rootCmd.AddCommand(collectCmd)
	collectCmd.Flags().StringVar(&collectFormat, "format", formatText, "output format: text, json or yaml")
	collectCmd.Flags().BoolVar(&collectModules, "modules", false, "resolve the module name of each collected file")
	collectCmd.Flags().BoolVar(&collectStats, "stats", false, "print file count and total size to stderr")
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	// Override path if provided as argument
	path := cfg.Path
	if len(args) > 0 {
		path = args[0]
	}

	rules, err := cfg.Rules()
	if err != nil {
		return fmt.Errorf("failed to build pattern rules: %w", err)
	}

	c := collector.New(
		collector.WithRules(rules),
		collector.WithPackageMarker(cfg.PackageMarker),
		collector.WithLogger(logger),
	)

	result, err := c.Collect(cfg.Options(path))
	if err != nil {
		return fmt.Errorf("failed to collect files: %w", err)
	}

	records := make([]fileRecord, 0, result.Len())
	var res *resolver.Resolver
	if collectModules {
		roots, err := cfg.Roots(resolver.RootsFromPythonPath())
		if err != nil {
			return err
		}
		logger.Debug("resolving module names", "roots", []string(roots), "innermost", cfg.Innermost)
		res = resolver.New(roots)
	}

	for _, e := range result.Entries() {
		rec := fileRecord{Entry: e}
		if res != nil {
			if name, ok := res.FindModuleName(e.Path, cfg.Innermost); ok {
				rec.Module = name
			} else {
				logger.Debug("no search root contains file", "path", e.Path)
			}
		}
		records = append(records, rec)
	}

	if collectStats {
		fmt.Fprintf(cmd.ErrOrStderr(), "Collected %d file(s), %s\n",
			result.Len(), units.HumanSize(float64(result.TotalSize())))
	}

	return writeFiles(cmd.OutOrStdout(), collectFormat, records, collectModules)
}
