package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir   string
	backend   string
	ephemeral bool
)

var rootCmd = &cobra.Command{
	Use:           "tally",
	Short:         "Track repeat goals from the terminal",
	Long:          `tally counts repetitions toward goals. Without a subcommand it opens the interactive tracker.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding state, config and logs")
	rootCmd.PersistentFlags().StringVar(&backend, "storage", "", "Storage backend: file, sqlite3, sqlite, memory")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep state in memory only")

	rootCmd.AddCommand(addCmd, listCmd, historyCmd, tapCmd, undoCmd, holdCmd, continueCmd, deleteCmd, restartCmd, langCmd, themeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tally: %v\n", err)
		os.Exit(1)
	}
}
