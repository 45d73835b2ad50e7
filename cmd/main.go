package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wealth-backoffice",
	Short: "A CLI for managing the wealth back office services",
	Long:  `Wealth back office: portfolio tracking, target allocation comparison and service health monitoring for advisory teams.`,
}

func main() {

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
