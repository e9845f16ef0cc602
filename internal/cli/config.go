package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/apiscope/pkg/config"
)

// configCommand creates the config command group.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect apiscope configuration",
		Long: `Inspect the configuration apiscope runs with.

Settings are layered: defaults, then the YAML file named by APISCOPE_CONFIG
(or ~/.config/apiscope/config.yaml), then APISCOPE_* environment variables.`,
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configPathCommand())

	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.Config.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, explicit := config.Path()
			out := cmd.OutOrStdout()
			t := theme{color: c.Config.Color}

			t.printKeyValue(out, "File", path)
			switch _, err := os.Stat(path); {
			case err == nil:
				t.printKeyValue(out, "Status", "found")
			case explicit:
				t.printKeyValue(out, "Status", "missing (set by "+config.EnvFile+")")
			default:
				t.printKeyValue(out, "Status", "not created, using defaults")
			}
			return nil
		},
	}
}
