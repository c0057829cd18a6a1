package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tamcore/pycollect/internal/resolver"
)

// ErrUnresolved is returned in strict mode when a file has no module name
var ErrUnresolved = errors.New("module name not found")

var moduleCmd = &cobra.Command{
	Use:   "module <file>...",
	Short: "Resolve the dotted module name of Python files",
	Long: `Module walks up from each file's directory and checks every ancestor
against the search roots (--root followed by PYTHONPATH).

By default the outermost name is printed, i.e. the one of the highest
search root. With --innermost the first root found wins.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runModule,
}

var (
	moduleFormat string
	moduleStrict bool
)

func init() {
	rootCmd.AddCommand(moduleCmd)
	moduleCmd.Flags().StringVar(&moduleFormat, "format", formatText, "output format: text, json or yaml")
	moduleCmd.Flags().BoolVar(&moduleStrict, "strict", false, "fail when a file cannot be resolved")
}

func runModule(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	roots, err := cfg.Roots(resolver.RootsFromPythonPath())
	if err != nil {
		return err
	}
	if len(roots) == 0 {
		logger.Warn("no search roots configured, use --root or PYTHONPATH")
	}
	res := resolver.New(roots)

	records := make([]moduleRecord, 0, len(args))
	unresolved := 0

	for _, arg := range args {
		path, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", arg, err)
		}

		name, ok := res.FindModuleName(path, cfg.Innermost)
		if !ok {
			logger.Warn("no search root contains file", "path", path)
			unresolved++
		}
		records = append(records, moduleRecord{Path: path, Module: name, Found: ok})
	}

	if err := writeModules(cmd.OutOrStdout(), moduleFormat, records); err != nil {
		return err
	}

	if moduleStrict && unresolved > 0 {
		return fmt.Errorf("%d of %d file(s): %w", unresolved, len(args), ErrUnresolved)
	}
	return nil
}
