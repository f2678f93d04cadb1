package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "formctl",
	Short:        "formctl inspects and prepares the Messenger form bot",
	Long:         `formctl validates questionnaires, previews the messages the bot would send and migrates the message log.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("questions", "", "Questionnaire file (YAML or JSON); empty uses the built-in one")
	rootCmd.AddCommand(newValidateCmd(), newPreviewCmd(), newMigrateCmd())
}
