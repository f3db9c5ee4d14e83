package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ambient-prompt",
		Short: "Creative prompts for ambient music",
		Long:  "Ambient Prompt: turn a seed concept into a composition prompt and keep the latest one around.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load() // optional .env
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newClearCmd())
	rootCmd.AddCommand(newExamplesCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
