package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/tamcore/pycollect/internal/collector"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// fileRecord is a collected file with its optional module name
type fileRecord struct {
	collector.Entry `yaml:",inline"`

	Module string `json:"module,omitempty" yaml:"module,omitempty"`
}

// moduleRecord is the outcome of resolving one file
type moduleRecord struct {
	Path   string `json:"path" yaml:"path"`
	Module string `json:"module,omitempty" yaml:"module,omitempty"`
	Found  bool   `json:"found" yaml:"found"`
}

var (
	moduleColor  = color.New(color.FgCyan)
	missingColor = color.New(color.FgYellow)
)

func writeFiles(w io.Writer, format string, records []fileRecord, withModules bool) error {
	switch format {
	case formatText:
		for _, r := range records {
			if !withModules {
				fmt.Fprintln(w, r.Path)
				continue
			}
			fmt.Fprintf(w, "%s\t%s\n", r.Path, moduleName(r.Module))
		}
		return nil
	default:
		return encode(w, format, records)
	}
}

func writeModules(w io.Writer, format string, records []moduleRecord) error {
	switch format {
	case formatText:
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\n", r.Path, moduleName(r.Module))
		}
		return nil
	default:
		return encode(w, format, records)
	}
}

func moduleName(name string) string {
	if name == "" {
		return missingColor.Sprint("(none)")
	}
	return moduleColor.Sprint(name)
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want %s, %s or %s)", format, formatText, formatJSON, formatYAML)
	}
}
