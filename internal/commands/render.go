package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/mayores/internal/ledger"
	"github.com/cleared-dev/mayores/internal/model"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// blankZero renders zero as an empty cell.
func blankZero(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return money(d)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// renderSchedule prints a T-account schedule with its running balance.
func renderSchedule(w io.Writer, s ledger.Schedule) error {
	switch s.Kind {
	case ledger.KindOrder:
		fmt.Fprintf(w, "Orden: %s\nProducto: %s\n\n", s.Subject, orDash(s.Product))
	default:
		fmt.Fprintf(w, "Cuenta: %s\nClasificación: %s\n", s.Subject, orDash(string(s.Classification)))
		if s.FallbackConvention {
			fmt.Fprintln(w, "Aviso: cuenta sin clasificación, saldo calculado como deudora")
		}
		fmt.Fprintln(w)
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "FECHA\tASIENTO\tCONCEPTO\tDEBE\tHABER\tSALDO")
	if s.ShowOpening() {
		debit, credit := "", ""
		switch s.OpeningSide {
		case model.SideDebit:
			debit = money(s.OpeningAmount)
		case model.SideCredit:
			credit = money(s.OpeningAmount)
		}
		fmt.Fprintf(tw, "\t\tSaldo inicial\t%s\t%s\t%s\n", debit, credit, money(s.OpeningAmount))
	}
	for _, l := range s.Lines {
		m := l.Movement
		date := ""
		if !m.Date.IsZero() {
			date = m.Date.Format(model.DateFormat)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n",
			date, m.TransactionNumber, m.Memo, blankZero(m.Debit), blankZero(m.Credit), money(l.RunningBalance))
	}
	fmt.Fprintf(tw, "\t\tTotales\t%s\t%s\t\n", money(s.TotalDebit), money(s.TotalCredit))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	if s.Kind == ledger.KindOrder {
		fmt.Fprintf(w, "Costo acumulado: %s\n", money(s.AccumulatedCost()))
		return nil
	}
	fmt.Fprintf(w, "Saldo final: %s %s\n", money(s.ClosingMagnitude()), s.ClosingLabel)
	return nil
}
