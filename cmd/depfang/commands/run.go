// Package commands implements CLI command handlers for depfang.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/depfang/internal/cache"
	"github.com/Sumatoshi-tech/depfang/internal/config"
	"github.com/Sumatoshi-tech/depfang/internal/outputters"
	"github.com/Sumatoshi-tech/depfang/internal/scan"
)

// ErrNoProject is returned when no project directory is given by flag or
// configuration.
var ErrNoProject = errors.New("no project directory specified, use --project or the config file")

// RunCommand holds the flags for the run command.
type RunCommand struct {
	configPath string
	project    string
	depth      int
	quiet      bool
	outputter  string
	params     []string
	output     string
	useCache   bool
	cacheDir   string
}

// NewRunCommand creates the run command: a full project scan rendered
// through the selected outputter.
func NewRunCommand() *cobra.Command {
	cmd := &RunCommand{}

	cobraCmd := &cobra.Command{
		Use:   "run",
		Short: "Scan a project directory and render its dependency graph",
		Long: `Scan every Python file of a project directory, parse its import
statements, build the dependency graph, and render it through the chosen
outputter. Outputter-specific options are passed with repeated --param
key=value flags.`,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return cmd.Run(cobraCmd.OutOrStdout(), cobraCmd.Flags().Changed("depth"))
		},
	}

	cobraCmd.Flags().StringVar(&cmd.configPath, "config", "", "config file path (default: .depfang.yaml in CWD or $HOME)")
	cobraCmd.Flags().StringVarP(&cmd.project, "project", "p", "", "project directory to scan")
	cobraCmd.Flags().IntVarP(&cmd.depth, "depth", "d", config.DefaultDepth, "traversal depth limit, -1 for unlimited")
	cobraCmd.Flags().BoolVarP(&cmd.quiet, "quiet", "q", false, "suppress progress logging")
	cobraCmd.Flags().StringVarP(&cmd.outputter, "outputter", "o", "", "outputter name: "+strings.Join(outputters.Available(), ", "))
	cobraCmd.Flags().StringArrayVar(&cmd.params, "param", nil, "outputter parameter, key=value (repeatable)")
	cobraCmd.Flags().StringVar(&cmd.output, "output", "", "output file (default: stdout)")
	cobraCmd.Flags().BoolVar(&cmd.useCache, "cache", false, "cache parse results between runs")
	cobraCmd.Flags().StringVar(&cmd.cacheDir, "cache-dir", "", "cache directory (default from config)")

	return cobraCmd
}

// Run executes the run command against the resolved configuration.
func (c *RunCommand) Run(stdout io.Writer, depthFlagSet bool) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	c.applyFlags(cfg, depthFlagSet)
	setupLogging(cfg.Quiet)

	if cfg.Project == "" {
		return ErrNoProject
	}

	params, err := mergeParams(cfg.OutputterParams, c.params)
	if err != nil {
		return err
	}

	out, err := outputters.New(cfg.Outputter)
	if err != nil {
		return err
	}

	store, err := openCache(cfg)
	if err != nil {
		return err
	}

	slog.Info("scanning project", "project", cfg.Project, "depth", cfg.Depth, "outputter", cfg.Outputter)

	result, err := scan.Run(cfg.Project, scan.Options{
		Depth:       cfg.Depth,
		MaxFileSize: cfg.MaxFileSizeBytes(),
		ExcludeDirs: cfg.ExcludeDirs,
		Cache:       store,
	})
	if err != nil {
		return err
	}

	writer, closeWriter, err := openOutput(stdout, c.output)
	if err != nil {
		return err
	}
	defer closeWriter()

	return out.Write(writer, result, params)
}

// applyFlags overlays explicitly set flags onto the loaded configuration.
func (c *RunCommand) applyFlags(cfg *config.Config, depthFlagSet bool) {
	if c.project != "" {
		cfg.Project = c.project
	}

	if depthFlagSet {
		cfg.Depth = c.depth
	}

	if c.quiet {
		cfg.Quiet = true
	}

	if c.outputter != "" {
		cfg.Outputter = c.outputter
	}

	if c.useCache {
		cfg.Cache.Enabled = true
	}

	if c.cacheDir != "" {
		cfg.Cache.Directory = c.cacheDir
	}
}

func openCache(cfg *config.Config) (*cache.Store, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	store, err := cache.NewStore(cfg.Cache.Directory)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	return store, nil
}

// mergeParams combines config file outputter params with --param flags;
// flags win on key collision.
func mergeParams(base map[string]string, flagParams []string) (map[string]string, error) {
	params := make(map[string]string, len(base)+len(flagParams))
	for key, value := range base {
		params[key] = value
	}

	for _, raw := range flagParams {
		key, value, found := strings.Cut(raw, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("malformed --param %q, expected key=value", raw)
		}

		params[key] = value
	}

	return params, nil
}

func openOutput(stdout io.Writer, path string) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}

	return file, func() { _ = file.Close() }, nil
}

// setupLogging installs the process logger; quiet keeps errors only.
func setupLogging(quiet bool) {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
