package cli

import (
	"fmt"

	"github.com/mobile-next/ghostcli/commands"
	"github.com/mobile-next/ghostcli/daemon"
	"github.com/mobile-next/ghostcli/server"
	"github.com/mobile-next/ghostcli/sessions"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Server management commands",
	Long:  `Commands for managing the ghostcli JSON-RPC server.`,
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the ghostcli server",
	Long:  `Starts the ghostcli server. Sessions are served over JSON-RPC on /rpc and /ws.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := commands.GetConfig()

		listenAddr := cmd.Flag("listen").Value.String()
		if listenAddr == "" {
			listenAddr = cfg.Server.Listen
		}

		// GetBool cannot fail for defined flags
		enableCORS, _ := cmd.Flags().GetBool("cors")
		enableCORS = enableCORS || cfg.Server.CORS
		isDaemon, _ := cmd.Flags().GetBool("daemon")
		requireAuth, _ := cmd.Flags().GetBool("auth")

		token := ""
		if requireAuth {
			stored, err := loadServerToken()
			if err != nil {
				return err
			}
			token = stored
		}

		if isDaemon && !daemon.IsChild() {
			_, err := daemon.Daemonize()
			if err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}

			fmt.Printf("Server daemon spawned, attempting to listen on %s\n", listenAddr)
			return nil
		}

		store, err := sessions.NewStore(cfg.Server.MaxSessions)
		if err != nil {
			return err
		}
		commands.SetStore(store)
		defer store.CloseAll()

		return server.StartServer(server.Options{
			Addr:       listenAddr,
			EnableCORS: enableCORS,
			Token:      token,
		})
	},
}

var serverKillCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop the daemonized ghostcli server",
	Long:  `Connects to the server and sends a shutdown command via JSON-RPC.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// GetString cannot fail for defined flags
		addr, _ := cmd.Flags().GetString("listen")
		if addr == "" {
			addr = commands.GetConfig().Server.Listen
		}

		// a missing token is fine when the server runs without --auth
		token, _ := loadServerToken()

		err := daemon.KillServer(addr, token)
		if err != nil {
			return err
		}

		fmt.Printf("Server shutdown command sent successfully\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// add server subcommands
	serverCmd.AddCommand(serverStartCmd)
	serverCmd.AddCommand(serverKillCmd)

	// server start flags
	serverStartCmd.Flags().String("listen", "", "Address to listen on (e.g., 'localhost:12000' or '0.0.0.0:13000')")
	serverStartCmd.Flags().Bool("cors", false, "Enable CORS support")
	serverStartCmd.Flags().BoolP("daemon", "d", false, "Run server in daemon mode (background)")
	serverStartCmd.Flags().Bool("auth", false, "Require the bearer token stored with 'auth token set'")

	// server kill flags
	serverKillCmd.Flags().String("listen", "", "Address of server to kill (default from config)")
}
