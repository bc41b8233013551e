package cmd

import (
	"github.com/alynch/portfolio-matcher/internal/portfolio"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Print a combined summary of all portfolio collections",
	Run: func(_ *cobra.Command, _ []string) {
		profile()
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

func profile() {
	_, _, store, _ := setup()

	printJSON(portfolio.BuildProfile(store))
}
