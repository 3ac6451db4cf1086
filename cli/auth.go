package cli

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
)

const keyringService = "ghostcli"
const keyringUser = "server-token"

const generatedTokenBytes = 32

// loadServerToken reads the server bearer token from the OS keyring.
func loadServerToken() (string, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		return "", fmt.Errorf("no server token found, run 'ghostcli auth token set' first")
	}
	return token, nil
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Commands for managing the bearer token that protects the ghostcli server.`,
}

var authTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Display the current server token",
	Long:  `Displays the bearer token stored in the OS keyring.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := loadServerToken()
		if err != nil {
			return err
		}

		fmt.Println(token)
		return nil
	},
}

var authTokenSetCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Store a server token",
	Long:  `Stores the given bearer token in the OS keyring. Without an argument a random token is generated and printed.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var token string
		if len(args) == 1 {
			token = args[0]
		} else {
			tokenBytes := make([]byte, generatedTokenBytes)
			if _, err := rand.Read(tokenBytes); err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}
			token = hex.EncodeToString(tokenBytes)
			fmt.Println(token)
		}

		if token == "" {
			return fmt.Errorf("token cannot be empty")
		}

		if err := keyring.Set(keyringService, keyringUser, token); err != nil {
			return fmt.Errorf("failed to store server token: %w", err)
		}

		fmt.Println("Server token stored.")
		return nil
	},
}

var authTokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored server token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := keyring.Delete(keyringService, keyringUser); err != nil {
			fmt.Println("no server token stored")
			return nil
		}

		fmt.Println("Server token removed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authTokenCmd)
	authTokenCmd.AddCommand(authTokenSetCmd, authTokenClearCmd)
}
