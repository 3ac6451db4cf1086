package cli

import (
	"fmt"
	"os"

	"github.com/mobile-next/ghostcli/commands"
	"github.com/mobile-next/ghostcli/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Prints the configuration in effect, defaults merged with the config file, in INI format.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := commands.GetConfig().File().WriteTo(os.Stdout)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			defaultPath, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = defaultPath
		}

		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config file %s already exists, use --force to overwrite", path)
		}

		if err := config.Default().Save(path); err != nil {
			return err
		}

		fmt.Printf("Config written to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd)

	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")
}
