package cmd

import (
	"github.com/carousell/ct-go/pkg/logger/log"
	"github.com/spf13/cobra"

	"github.com/pharmakit/storefront/internal/app"
	"github.com/pharmakit/storefront/internal/shell"
)

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "pharmacy storefront shell",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		app.Invoke(
			shell.Start,
		).Run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
