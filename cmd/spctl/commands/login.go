package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stackplane-io/spapi/pkg/spapi"
	"github.com/stackplane-io/spapi/pkg/spclient"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		address string
		token   string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Stackplane",
		Long:  "Authenticate against a Stackplane API address and persist the credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if address == "" {
				address = viper.GetString("address")
			}

			if address == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("API address: ")
				address, _ = reader.ReadString('\n')
				address = strings.TrimSpace(address)
			}

			if address == "" {
				return spapi.ErrAddressRequired
			}

			if token == "" {
				token = viper.GetString("token")
			}

			if token == "" {
				fmt.Print("Token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				token = string(byteToken)

				fmt.Println()
			}

			config := &spapi.Config{
				Address:       address,
				Token:         token,
				SkipTLSVerify: viper.GetBool("skip_ssl_validation"),
			}

			client, err := spclient.New(cmd.Context(), config)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			// Verify the credentials before persisting them
			if err := client.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("verifying credentials: %w", err)
			}

			cliConfig := loadConfig()
			cliConfig.Address = config.Address
			cliConfig.Token = token

			if err := saveConfig(cliConfig); err != nil {
				return err
			}

			fmt.Printf("Logged in to %s\n", config.Address)

			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "API address URL")
	cmd.Flags().StringVar(&token, "with-token", "", "authentication token")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from Stackplane",
		Long:  "Remove the persisted credentials for the current API address",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliConfig := loadConfig()
			if cliConfig.Token == "" {
				fmt.Println("Not logged in")

				return nil
			}

			address := cliConfig.Address
			cliConfig.Token = ""

			if err := saveConfig(cliConfig); err != nil {
				return err
			}

			fmt.Printf("Logged out from %s\n", address)

			return nil
		},
	}
}
