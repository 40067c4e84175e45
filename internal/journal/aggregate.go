package journal

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/mayores/internal/id"
	"github.com/cleared-dev/mayores/internal/model"
)

// AccountSummary is the movement history of one account across the journal.
type AccountSummary struct {
	Account        string
	Classification model.Classification
	MovementCount  int
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
}

// ClosingBalance applies the account's sign convention. ok is false when
// the classification is unknown; the debit-minus-credit figure is returned
// anyway.
func (s AccountSummary) ClosingBalance() (balance decimal.Decimal, ok bool) {
	switch {
	case s.Classification == model.ClassAsset:
		return s.TotalDebit.Sub(s.TotalCredit), true
	case s.Classification.CreditNormal():
		return s.TotalCredit.Sub(s.TotalDebit), true
	default:
		return s.TotalDebit.Sub(s.TotalCredit), false
	}
}

// SummarizeByAccount returns one summary per account name in first-seen order.
// Rows with a blank account are skipped.
func SummarizeByAccount(rows []model.Movement) []AccountSummary {
	index := make(map[string]int)
	var out []AccountSummary
	for _, r := range rows {
		if strings.TrimSpace(r.Account) == "" {
			continue
		}
		i, ok := index[r.Account]
		if !ok {
			i = len(out)
			index[r.Account] = i
			out = append(out, AccountSummary{
				Account:        r.Account,
				Classification: r.Classification,
				TotalDebit:     decimal.Zero,
				TotalCredit:    decimal.Zero,
			})
		}
		s := &out[i]
		s.MovementCount++
		s.TotalDebit = s.TotalDebit.Add(r.Debit)
		s.TotalCredit = s.TotalCredit.Add(r.Credit)
	}
	return out
}

// MovementsForAccount returns the rows posted to name (case-insensitive),
// ordered by date and then transaction number.
func MovementsForAccount(name string, rows []model.Movement) []model.Movement {
	var out []model.Movement
	for _, r := range rows {
		if model.SameName(r.Account, name) {
			out = append(out, r)
		}
	}
	sortChronological(out)
	return out
}

// MovementsForOrder returns the rows attributed to a production order.
// A row carrying an order id matches on the id; otherwise its account text
// must equal the order label exactly.
func MovementsForOrder(label, orderID string, rows []model.Movement) []model.Movement {
	var out []model.Movement
	for _, r := range rows {
		if orderID != "" && r.OrderID != "" {
			if r.OrderID == orderID {
				out = append(out, r)
			}
			continue
		}
		if r.Account == label {
			out = append(out, r)
		}
	}
	sortChronological(out)
	return out
}

// GroupByTransaction buckets rows by transaction number.
func GroupByTransaction(rows []model.Movement) map[int][]model.Movement {
	groups := make(map[int][]model.Movement)
	for _, r := range rows {
		groups[r.TransactionNumber] = append(groups[r.TransactionNumber], r)
	}
	return groups
}

// TransactionNumbers lists the distinct transaction numbers in ascending order.
func TransactionNumbers(rows []model.Movement) []int {
	nums := make([]int, len(rows))
	for i, r := range rows {
		nums[i] = r.TransactionNumber
	}
	return id.Distinct(nums)
}

// RowsOf returns the rows belonging to transaction n.
func RowsOf(n int, rows []model.Movement) []model.Movement {
	var out []model.Movement
	for _, r := range rows {
		if r.TransactionNumber == n {
			out = append(out, r)
		}
	}
	return out
}

func sortChronological(rows []model.Movement) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Before(rows[j])
	})
}
