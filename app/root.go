// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "takapay",
	Short: "TakaPay is the backend for the TakaPay mobile-money application",
	Long: `TakaPay is the backend for the TakaPay mobile-money application.
It serves the consumer API (send, cash-in, cash-out, recharge), the admin
console API and the social endpoints, with Google Sheets as the record store
and Google Drive for uploaded media.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
