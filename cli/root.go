package cli

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/mobile-next/ghostcli/commands"
	"github.com/mobile-next/ghostcli/config"
	"github.com/mobile-next/ghostcli/server"
	"github.com/mobile-next/ghostcli/utils"
	"github.com/spf13/cobra"
)

const version = "dev"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ghostcli",
	Short: "Gesture interpreter for the ghost and transform overlays",
	Long:  `Turns raw multi-touch event streams into tap, drag, pinch, rotate and opacity intents, and drives the ghost and transform overlays with them.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

func initConfig() {
	utils.SetVerbose(verbose)
}

// loadConfig reads the config file and hands it to the commands package.
func loadConfig() error {
	path := configPath
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	utils.Verbose("using config %s", path)
	commands.SetConfig(cfg)
	return nil
}

func init() {
	server.Version = version

	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default $HOME/.ghostcli/config.ini)")
}

// Execute runs the root command
func Execute() error {
	// enable microseconds in logs
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	return rootCmd.Execute()
}

// printJson is a helper function to print JSON responses
func printJson(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(jsonData))
}

// finish prints a command response and turns a failed one into an error
func finish(response *commands.CommandResponse) error {
	printJson(response)
	if response.Status == "error" {
		return fmt.Errorf("%s", response.Error)
	}
	return nil
}
