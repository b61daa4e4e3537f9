package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/depfang/internal/pysrc"
)

// AnalyzeCommand holds the flags for the analyze command.
type AnalyzeCommand struct {
	format string
}

// analyzedImport is the serialisable view of one import record.
type analyzedImport struct {
	Module   string `json:"module"   yaml:"module"`
	Relative bool   `json:"relative" yaml:"relative"`
}

// analyzedFile is the analyze command report for one source file.
type analyzedFile struct {
	Path    string           `json:"path"    yaml:"path"`
	Imports []analyzedImport `json:"imports" yaml:"imports"`
}

// NewAnalyzeCommand creates the analyze command: parse one Python file and
// report the imports it declares.
func NewAnalyzeCommand() *cobra.Command {
	cmd := &AnalyzeCommand{}

	cobraCmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Parse a single Python file and list its imports",
		Long: `Parse one Python source file and print every import statement it
declares, with the resolved dotted module name and whether the import is
relative. Pass "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.Run(cobraCmd.OutOrStdout(), cobraCmd.InOrStdin(), args[0])
		},
	}

	cobraCmd.Flags().StringVarP(&cmd.format, "format", "f", "text", "report format: text, json or yaml")

	return cobraCmd
}

// Run parses the named file (or stdin for "-") and writes the report.
func (c *AnalyzeCommand) Run(stdout io.Writer, stdin io.Reader, path string) error {
	src, err := readSource(stdin, path)
	if err != nil {
		return err
	}

	tokens, err := pysrc.Tokenise(src)
	if err != nil {
		return fmt.Errorf("tokenise %s: %w", path, err)
	}

	records, err := pysrc.Parse(tokens)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	report := analyzedFile{Path: path, Imports: make([]analyzedImport, 0, len(records))}
	for _, record := range records {
		report.Imports = append(report.Imports, analyzedImport{Module: record.Module, Relative: record.Relative})
	}

	switch c.format {
	case "text":
		return writeTextReport(stdout, report, records)
	case "json":
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(report)
	case "yaml":
		encoder := yaml.NewEncoder(stdout)
		if err := encoder.Encode(report); err != nil {
			return err
		}

		return encoder.Close()
	default:
		return fmt.Errorf("unknown format %q, expected text, json or yaml", c.format)
	}
}

func writeTextReport(stdout io.Writer, report analyzedFile, records []pysrc.ImportRecord) error {
	if _, err := fmt.Fprintf(stdout, "%s: %d imports\n", report.Path, len(records)); err != nil {
		return err
	}

	for _, record := range records {
		if _, err := fmt.Fprintf(stdout, "  %s\n", record); err != nil {
			return err
		}
	}

	return nil
}

func readSource(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read source file: %w", err)
	}

	return string(data), nil
}
