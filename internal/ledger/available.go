package ledger

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cleared-dev/mayores/internal/model"
)

// DefaultProduct labels orders whose work-in-process row names no product.
const DefaultProduct = "Sin producto"

// Source records where an available account was first found.
type Source string

const (
	SourceBalance     Source = "balance"
	SourceJournalOnly Source = "journal-only"
)

// AvailableAccount is an account that can be given a schedule.
type AvailableAccount struct {
	Account        string
	Classification model.Classification
	Source         Source
}

// AvailableOrder is a production order that can be given a schedule.
type AvailableOrder struct {
	Detail  string
	OrderID string
	Product string
	Total   decimal.Decimal
}

// AvailableAccounts unions the balance-sheet accounts with every account
// named in the journal. Names are deduplicated ignoring case, the first
// spelling seen wins, and the result is in Spanish alphabetical order ignoring
// case.
// Journal-only accounts carry no classification.
func AvailableAccounts(balance []model.BalanceRow, movements []model.Movement) []AvailableAccount {
	seen := make(map[string]bool)
	var out []AvailableAccount
	add := func(a AvailableAccount) {
		key := strings.ToLower(a.Account)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, a)
	}

	for _, r := range balance {
		if strings.TrimSpace(r.Account) == "" {
			continue
		}
		add(AvailableAccount{Account: r.Account, Classification: r.Classification, Source: SourceBalance})
	}
	for _, m := range movements {
		if strings.TrimSpace(m.Account) == "" {
			continue
		}
		add(AvailableAccount{Account: m.Account, Source: SourceJournalOnly})
	}

	c := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].Account, out[j].Account) < 0
	})
	return out
}

// AvailableOrders lists one order per work-in-process row with a nonblank
// detail label, in row order.
func AvailableOrders(rows []model.ProcessRow) []AvailableOrder {
	var out []AvailableOrder
	for _, r := range rows {
		if strings.TrimSpace(r.Detail) == "" {
			continue
		}
		product := r.Product
		if strings.TrimSpace(product) == "" {
			product = DefaultProduct
		}
		out = append(out, AvailableOrder{
			Detail:  r.Detail,
			OrderID: r.OrderID,
			Product: product,
			Total:   r.Total(),
		})
	}
	return out
}

// IsOrder reports whether name is the label of one of the orders.
func IsOrder(name string, orders []AvailableOrder) bool {
	return findOrder(name, orders) >= 0
}

func findOrder(name string, orders []AvailableOrder) int {
	for i, o := range orders {
		if model.SameName(o.Detail, name) || (o.OrderID != "" && o.OrderID == name) {
			return i
		}
	}
	return -1
}
