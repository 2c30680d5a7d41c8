package main

import (
	"fmt"

	"github.com/mauv0809/halo-league-export/internal/auth"
	"github.com/mauv0809/halo-league-export/internal/config"
	"github.com/spf13/cobra"
)

var printOnly bool

func init() {
	refreshCmd.Flags().BoolVar(&printOnly, "print", false, "Print the tokens instead of saving them")
	rootCmd.AddCommand(refreshCmd)
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the spartan and clearance tokens from the Azure refresh token",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadCLI()
		refresher := auth.NewRefresher(cfg.Azure.ClientID, cfg.Azure.ClientSecret, cfg.Azure.RedirectURI, cfg.Azure.RefreshToken, auth.DefaultEndpoints)
		creds, err := refresher.Credentials(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Gamertag: %s\n", creds.Gamertag)
		fmt.Fprintf(out, "XUID: %s\n", creds.XUID)
		fmt.Fprintf(out, "Spartan token expires: %s\n", creds.ExpiresAt)
		if printOnly {
			fmt.Fprintf(out, "SPARTAN_TOKEN=%s\n", creds.SpartanToken)
			fmt.Fprintf(out, "CLEARANCE_TOKEN=%s\n", creds.ClearanceToken)
			fmt.Fprintf(out, "XBL authorization: %s\n", creds.XBLAuthorization)
			return nil
		}
		return auth.Save(cfg.EnvFile, creds)
	},
}
