package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pagecraft",
	Short: "Pagecraft CLI",
	Long:  `Assemble HTML documents from page definitions and serve rendered previews.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
