package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/mayores/internal/balance"
	"github.com/cleared-dev/mayores/internal/inventory"
	"github.com/cleared-dev/mayores/internal/ledger"
	"github.com/cleared-dev/mayores/internal/model"
	"github.com/cleared-dev/mayores/internal/payload"
)

func newReportCommand(repoDir *string) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Saved report operations",
	}
	reportCmd.AddCommand(
		newReportImportCommand(repoDir),
		newReportListCommand(repoDir),
		newReportDeleteCommand(repoDir),
	)
	return reportCmd
}

func parseProgram(s string) (model.ProgramID, error) {
	switch strings.ToLower(s) {
	case "balance":
		return model.ProgramBalance, nil
	case "inventory", "inventario":
		return model.ProgramInventory, nil
	case "journal", "registros":
		return model.ProgramJournal, nil
	default:
		return 0, fmt.Errorf("unknown program %q (want balance, inventory or journal)", s)
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(model.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

func newReportImportCommand(repoDir *string) *cobra.Command {
	var program, name, date, user string

	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Save a balance, inventory or journal report from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := parseProgram(program)
			if err != nil {
				return err
			}
			day, err := parseDate(date)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			p, err := openProject(cmd, *repoDir)
			if err != nil {
				return err
			}
			defer p.close()

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

			saved, err := p.importReport(cmd.Context(), prog, model.Report{
				UserID:    user,
				Name:      name,
				ProgramID: prog,
				Date:      day,
				Metadata:  meta,
			}, data)
			if err != nil {
				return err
			}

			p.logger.Info("report saved", "id", saved.ID, "program", prog.String())
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s report %d: %s\n", prog, saved.ID, saved.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&program, "program", "", "balance, inventory or journal (required)")
	_ = cmd.MarkFlagRequired("program")
	cmd.Flags().StringVar(&name, "name", "", "report name (defaults to the file name)")
	cmd.Flags().StringVar(&date, "date", "", "report date, YYYY-MM-DD (defaults to today)")
	cmd.Flags().StringVar(&user, "user", "", "owner of the report (defaults to ledger.default_user)")

	return cmd
}

func (p *project) importReport(ctx context.Context, prog model.ProgramID, r model.Report, data []byte) (model.Report, error) {
	switch prog {
	case model.ProgramBalance:
		rows, err := payload.DecodeBalance(data)
		if err != nil {
			return model.Report{}, err
		}
		names := make([]model.CatalogEntry, len(rows))
		for i, row := range rows {
			names[i] = model.CatalogEntry{Name: row.Account, Classification: row.Classification}
		}
		if err := p.learnAccounts(ctx, names); err != nil {
			return model.Report{}, err
		}

		totals := balance.Sum(rows)
		if !totals.IsBalanced() {
			p.logger.Warn("balance sheet does not balance",
				"deudor", money(totals.Debtor),
				"acreedor", money(totals.Creditor),
				"difference", money(totals.Difference()))
		}
		if r.Data, err = payload.EncodeBalance(rows); err != nil {
			return model.Report{}, err
		}
		if r.Totals, err = json.Marshal(totals); err != nil {
			return model.Report{}, err
		}
		return p.db.Reports().Save(ctx, r)

	case model.ProgramInventory:
		stock, process, err := payload.DecodeInventory(data)
		if err != nil {
			return model.Report{}, err
		}
		if r.Data, err = payload.EncodeInventory(stock, process); err != nil {
			return model.Report{}, err
		}
		if r.Totals, err = inventory.MarshalTotals(inventory.SumStock(stock), inventory.SumProcess(process)); err != nil {
			return model.Report{}, err
		}
		return p.db.Reports().Save(ctx, r)

	default:
		rows, err := payload.DecodeJournal(data)
		if err != nil {
			return model.Report{}, err
		}
		return p.commitJournal(ctx, r, rows)
	}
}

func (p *project) commitJournal(ctx context.Context, r model.Report, rows []model.Movement) (model.Report, error) {
	saved, err := ledger.CommitJournal(ctx, p.db.Reports(), r, rows)
	if err != nil {
		return model.Report{}, err
	}
	entries := make([]model.CatalogEntry, len(rows))
	for i, row := range rows {
		entries[i] = model.CatalogEntry{Name: row.Account, Classification: row.Classification}
	}
	if err := p.learnAccounts(ctx, entries); err != nil {
		return model.Report{}, err
	}
	return saved, nil
}

// learnAccounts adds classified accounts the catalog does not know yet.
func (p *project) learnAccounts(ctx context.Context, entries []model.CatalogEntry) error {
	added := 0
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" || !e.Classification.Valid() {
			continue
		}
		if _, isNew := p.catalog.Classify(e.Name); !isNew {
			continue
		}
		ok, err := p.catalog.Commit(ctx, e.Name, e.Classification)
		if err != nil {
			return err
		}
		if ok {
			added++
			p.logger.Info("account added", "account", e.Name, "class", e.Classification)
		}
	}
	if added == 0 {
		return nil
	}
	return p.syncCatalogFile()
}

func newReportListCommand(repoDir *string) *cobra.Command {
	var program, user string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, *repoDir)
			if err != nil {
				return err
			}
			defer p.close()

			if user == "" {
				user = p.cfg.Ledger.DefaultUser
			}
			var reports []model.Report
			if program != "" {
				prog, err := parseProgram(program)
				if err != nil {
					return err
				}
				reports, err = p.db.Reports().ListByProgram(cmd.Context(), user, prog)
				if err != nil {
					return err
				}
			} else {
				reports, err = p.db.Reports().List(cmd.Context(), user)
				if err != nil {
					return err
				}
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNOMBRE\tTIPO\tFECHA")
			for _, r := range reports {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.Name, r.ReportType, r.Date.Format(model.DateFormat))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&program, "program", "", "only reports of this program")
	cmd.Flags().StringVar(&user, "user", "", "owner of the reports (defaults to ledger.default_user)")

	return cmd
}

func newReportDeleteCommand(repoDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid report id %q: %w", args[0], err)
			}

			p, err := openProject(cmd, *repoDir)
			if err != nil {
				return err
			}
			defer p.close()

			if err := p.db.Reports().Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted report %d\n", id)
			return nil
		},
	}
}
