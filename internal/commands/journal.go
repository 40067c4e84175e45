package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/mayores/internal/journal"
	"github.com/cleared-dev/mayores/internal/model"
	"github.com/cleared-dev/mayores/internal/payload"
)

func newJournalCommand(repoDir *string) *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Journal (registros contables) operations",
	}
	journalCmd.AddCommand(
		newJournalCheckCommand(),
		newJournalImportCommand(repoDir),
	)
	return journalCmd
}

// readMovements loads journal rows from a .csv file or a JSON report payload.
func readMovements(path string) ([]model.Movement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return journal.ReadMovements(f)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return payload.DecodeJournal(data)
}

func newJournalCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Check transaction balances and summarize accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readMovements(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			groups := journal.GroupByTransaction(rows)
			tw := newTable(w)
			fmt.Fprintln(tw, "ASIENTO\tFILAS\tDEBE\tHABER\tDIFERENCIA\tESTADO")
			for _, n := range journal.TransactionNumbers(rows) {
				txn := groups[n]
				bal := journal.CheckBalance(txn)
				status := "Cuadrado"
				if !bal.IsBalanced {
					status = "Descuadrado"
				}
				fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\n",
					n, len(txn), money(bal.TotalDebit), money(bal.TotalCredit), money(bal.Difference), status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(w)
			tw = newTable(w)
			fmt.Fprintln(tw, "CUENTA\tCLASIFICACIÓN\tMOVIMIENTOS\tDEBE\tHABER\tSALDO")
			for _, s := range journal.SummarizeByAccount(rows) {
				closing, ok := s.ClosingBalance()
				saldo := money(closing)
				if !ok {
					saldo += " (sin clasificación)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
					s.Account, orDash(string(s.Classification)), s.MovementCount,
					money(s.TotalDebit), money(s.TotalCredit), saldo)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			debit, credit := journal.Totals(rows)
			fmt.Fprintf(w, "\nTotal debe: %s  Total haber: %s\n", money(debit), money(credit))

			violations := journal.Validate(rows)
			if len(violations) == 0 {
				return nil
			}
			fmt.Fprintln(w)
			for _, v := range violations {
				fmt.Fprintln(w, v.Error())
			}
			return fmt.Errorf("journal has %d violation(s)", len(violations))
		},
	}
}

func newJournalImportCommand(repoDir *string) *cobra.Command {
	var name, date, user string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Enter journal rows transaction by transaction and save them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDate(date)
			if err != nil {
				return err
			}
			rows, err := readMovements(args[0])
			if err != nil {
				return err
			}

			p, err := openProject(cmd, *repoDir)
			if err != nil {
				return err
			}
			defer p.close()

			// The editor closes each transaction before the next one opens and
			// commits new accounts to the catalog.
			ed := journal.NewEditor(p.catalog, day)
			if err := journal.Replay(cmd.Context(), ed, rows); err != nil {
				return err
			}
			if err := p.syncCatalogFile(); err != nil {
				return err
			}

			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			if user == "" {
				user = p.cfg.Ledger.DefaultUser
			}
			meta, err := json.Marshal(map[string]string{"archivo": filepath.Base(args[0])})
			if err != nil {
				return fmt.Errorf("encoding metadata: %w", err)
			}
			saved, err := p.commitJournal(cmd.Context(), model.Report{
				UserID:   user,
				Name:     name,
				Date:     day,
				Metadata: meta,
			}, ed.Rows())
			if err != nil {
				return err
			}

			p.logger.Info("journal saved",
				"id", saved.ID,
				"rows", len(ed.Rows()),
				"transactions", len(ed.Transactions()))
			fmt.Fprintf(cmd.OutOrStdout(), "Saved journal %d: %s (%d asientos)\n", saved.ID, saved.Name, len(ed.Transactions()))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "report name (defaults to the file name)")
	cmd.Flags().StringVar(&date, "date", "", "report date, YYYY-MM-DD (defaults to today)")
	cmd.Flags().StringVar(&user, "user", "", "owner of the report (defaults to ledger.default_user)")

	return cmd
}
