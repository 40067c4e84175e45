package journal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/mayores/internal/id"
	"github.com/cleared-dev/mayores/internal/model"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	Transaction int
	RowID       int
	Description string
}

func (e ValidationError) Error() string {
	if e.RowID != 0 {
		return fmt.Sprintf("invariant %d [asiento %d, row %d]: %s", e.Invariant, e.Transaction, e.RowID, e.Description)
	}
	return fmt.Sprintf("invariant %d [asiento %d]: %s", e.Invariant, e.Transaction, e.Description)
}

// Validate enforces the journal invariants that must hold before a journal
// is written to storage.
func Validate(rows []model.Movement) []ValidationError {
	var errs []ValidationError

	groups := GroupByTransaction(rows)
	numbers := TransactionNumbers(rows)

	for _, n := range numbers {
		txnRows := groups[n]

		// Invariant 1: each transaction balances within tolerance.
		bal := CheckBalance(txnRows)
		if !bal.IsBalanced {
			errs = append(errs, ValidationError{
				Invariant:   1,
				Transaction: n,
				Description: fmt.Sprintf("debe (%s) != haber (%s)", bal.TotalDebit.StringFixed(2), bal.TotalCredit.StringFixed(2)),
			})
		}

		// Invariant 2: at least two rows.
		if len(txnRows) < MinRows {
			errs = append(errs, ValidationError{
				Invariant:   2,
				Transaction: n,
				Description: fmt.Sprintf("has %d row(s), needs at least %d", len(txnRows), MinRows),
			})
		}
	}

	hundred := decimal.NewFromInt(100)
	for _, r := range rows {
		// Invariant 3: single-sided, non-negative amounts.
		if !r.Debit.IsZero() && !r.Credit.IsZero() {
			errs = append(errs, rowError(3, r, "row has both debe and haber"))
		}
		if r.Debit.IsNegative() || r.Credit.IsNegative() {
			errs = append(errs, rowError(3, r, "amounts must not be negative"))
		}

		// Invariant 4: named and classified account.
		if strings.TrimSpace(r.Account) == "" {
			errs = append(errs, rowError(4, r, "account is blank"))
		} else if !r.Classification.Valid() {
			errs = append(errs, rowError(4, r, fmt.Sprintf("account %q has no classification", r.Account)))
		}

		// Invariant 6: no more than 2 decimal places.
		for _, amt := range []decimal.Decimal{r.Debit, r.Credit} {
			if !amt.IsZero() && !amt.Mul(hundred).Equal(amt.Mul(hundred).Floor()) {
				errs = append(errs, rowError(6, r, fmt.Sprintf("amount %s has more than 2 decimal places", amt)))
			}
		}
	}

	// Invariant 5: transaction numbers are positive and contiguous from 1.
	for _, n := range numbers {
		if n < 1 {
			errs = append(errs, ValidationError{
				Invariant:   5,
				Transaction: n,
				Description: "transaction number must be positive",
			})
		}
	}
	for _, gap := range id.Gaps(numbers) {
		desc := fmt.Sprintf("missing asiento %d", gap.From)
		if gap.To > gap.From {
			desc = fmt.Sprintf("missing asientos %d..%d", gap.From, gap.To)
		}
		errs = append(errs, ValidationError{
			Invariant:   5,
			Transaction: gap.From,
			Description: fmt.Sprintf("%s in 1..%d", desc, numbers[len(numbers)-1]),
		})
	}

	return errs
}

func rowError(invariant int, r model.Movement, desc string) ValidationError {
	return ValidationError{
		Invariant:   invariant,
		Transaction: r.TransactionNumber,
		RowID:       r.ID,
		Description: desc,
	}
}
