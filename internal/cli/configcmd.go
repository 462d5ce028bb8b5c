package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configCommand creates the config command, which prints the effective
// settings as TOML.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as TOML.

Redirect the output to $XDG_CONFIG_HOME/archispec/config.toml to start a
config file from the defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Print(cfg.String())
			return nil
		},
	}
}
