package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/mayores/internal/ledger"
)

// selectionFlags are the report ids shared by every ledger subcommand.
type selectionFlags struct {
	sel ledger.Selection
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.sel.BalanceID, "balance", 0, "Balance de Saldos report id (required)")
	cmd.Flags().Int64Var(&f.sel.JournalID, "journal", 0, "journal report id (required)")
	cmd.Flags().Int64Var(&f.sel.InventoryID, "inventory", 0, "inventory report id for production orders")
}

func newLedgerCommand(repoDir *string) *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Auxiliary ledgers (esquemas de T)",
	}
	ledgerCmd.AddCommand(
		newLedgerAccountsCommand(repoDir),
		newLedgerOrdersCommand(repoDir),
		newLedgerAccountCommand(repoDir),
		newLedgerOrderCommand(repoDir),
	)
	return ledgerCmd
}

// withSession opens the project and the selected reports, then runs fn.
func withSession(cmd *cobra.Command, repoDir string, sel ledger.Selection, fn func(*ledger.Session) error) error {
	if !sel.Complete() {
		return fmt.Errorf("%w (use --balance and --journal)", ledger.ErrIncompleteSelection)
	}
	p, err := openProject(cmd, repoDir)
	if err != nil {
		return err
	}
	defer p.close()

	s, err := ledger.Open(cmd.Context(), p.db.Reports(), sel, p.logger)
	if err != nil {
		return err
	}
	return fn(s)
}

func newLedgerAccountsCommand(repoDir *string) *cobra.Command {
	var flags selectionFlags
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the accounts available for a schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, *repoDir, flags.sel, func(s *ledger.Session) error {
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "CUENTA\tCLASIFICACIÓN\tORIGEN")
				for _, a := range s.Accounts() {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Account, orDash(string(a.Classification)), a.Source)
				}
				return tw.Flush()
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newLedgerOrdersCommand(repoDir *string) *cobra.Command {
	var flags selectionFlags
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List the production orders available for a schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, *repoDir, flags.sel, func(s *ledger.Session) error {
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ORDEN\tPRODUCTO\tCOSTO")
				for _, o := range s.Orders() {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", o.Detail, o.Product, money(o.Total))
				}
				return tw.Flush()
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newLedgerAccountCommand(repoDir *string) *cobra.Command {
	var flags selectionFlags
	cmd := &cobra.Command{
		Use:   "account <name>",
		Short: "Show the T-account schedule of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, *repoDir, flags.sel, func(s *ledger.Session) error {
				return renderSchedule(cmd.OutOrStdout(), s.AccountSchedule(args[0]))
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newLedgerOrderCommand(repoDir *string) *cobra.Command {
	var flags selectionFlags
	cmd := &cobra.Command{
		Use:   "order <label>",
		Short: "Show the cost schedule of a production order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, *repoDir, flags.sel, func(s *ledger.Session) error {
				return renderSchedule(cmd.OutOrStdout(), s.OrderSchedule(args[0]))
			})
		},
	}
	flags.register(cmd)
	return cmd
}
