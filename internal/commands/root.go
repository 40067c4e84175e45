package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/mayores/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var repoDir string

	rootCmd := &cobra.Command{
		Use:     "mayores",
		Short:   "Auxiliary ledgers from balance sheets and journals",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&repoDir, "repo", ".", "project directory")

	rootCmd.AddCommand(
		newInitCommand(),
		newAccountsCommand(&repoDir),
		newReportCommand(&repoDir),
		newJournalCommand(&repoDir),
		newLedgerCommand(&repoDir),
	)

	return rootCmd
}
