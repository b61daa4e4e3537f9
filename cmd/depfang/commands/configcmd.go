package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/depfang/internal/config"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cobraCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate depfang configuration",
	}

	cobraCmd.AddCommand(newConfigValidateCommand(), newConfigShowCommand())

	return cobraCmd
}

func newConfigValidateCommand() *cobra.Command {
	var configPath string

	cobraCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file against the schema",
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			if _, err := config.Load(configPath); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cobraCmd.OutOrStdout(), "configuration OK")

			return err
		},
	}

	cobraCmd.Flags().StringVar(&configPath, "config", "", "config file path (default: .depfang.yaml in CWD or $HOME)")

	return cobraCmd
}

func newConfigShowCommand() *cobra.Command {
	var configPath string

	cobraCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration after defaults and overrides",
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			return writeConfig(cobraCmd.OutOrStdout(), cfg)
		},
	}

	cobraCmd.Flags().StringVar(&configPath, "config", "", "config file path (default: .depfang.yaml in CWD or $HOME)")

	return cobraCmd
}

func writeConfig(stdout io.Writer, cfg *config.Config) error {
	encoder := yaml.NewEncoder(stdout)
	if err := encoder.Encode(cfg); err != nil {
		return err
	}

	return encoder.Close()
}
