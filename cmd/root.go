package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"desexport/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "desexport",
	Short: "Export Stripe invoices for the DES (Déclaration Européenne de Services)",
	Long: `desexport extracts intra-EU clients (excluding France) and their
invoiced amounts from Stripe for the DES, the monthly declaration of
services sold to customers in other EU member states.

It fetches the year's paid invoices month by month, aggregates pre-tax
amounts per client, writes a ;-delimited CSV export and prints a per-month
and global summary to the console.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
