package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"desexport/internal/des"
)

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the EU countries in scope for the DES",
	Long: `Print the designated-country table: the EU member states (excluding
France, the filer's home country) whose clients are included in the DES
export.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		codes := des.CountryCodes()
		for _, code := range codes {
			name, _ := des.CountryName(code)
			fmt.Printf("%s  %s\n", code, name)
		}
		fmt.Printf("\n%d pays (hors %s)\n", len(codes), des.HomeCountry)
	},
}

func init() {
	rootCmd.AddCommand(countriesCmd)
}
