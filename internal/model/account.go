package model

import "strings"

// Classification is the class of an account in the catalog.
type Classification string

const (
	ClassUnknown   Classification = ""
	ClassAsset     Classification = "Activo"
	ClassLiability Classification = "Pasivo"
	ClassCapital   Classification = "Capital"
)

// Classifications lists the valid classes in display order.
var Classifications = []Classification{ClassAsset, ClassLiability, ClassCapital}

// ParseClassification maps Spanish or English class names, case-insensitively.
// Unrecognized input yields ClassUnknown.
func ParseClassification(s string) Classification {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "activo", "asset":
		return ClassAsset
	case "pasivo", "liability":
		return ClassLiability
	case "capital", "equity":
		return ClassCapital
	default:
		return ClassUnknown
	}
}

// Valid reports whether c is one of the three account classes.
func (c Classification) Valid() bool {
	return c == ClassAsset || c == ClassLiability || c == ClassCapital
}

// CreditNormal reports whether the class increases on the credit side.
func (c Classification) CreditNormal() bool {
	return c == ClassLiability || c == ClassCapital
}

// Side is the T-account column a figure is posted to.
type Side string

const (
	SideNone   Side = ""
	SideDebit  Side = "debe"
	SideCredit Side = "haber"
)

// NormalSide returns the column the class's balance sits on.
func (c Classification) NormalSide() Side {
	switch {
	case c == ClassAsset:
		return SideDebit
	case c.CreditNormal():
		return SideCredit
	default:
		return SideNone
	}
}

// CatalogEntry is one account in the chart of accounts.
type CatalogEntry struct {
	Name           string
	Classification Classification
	Description    string
}

// SameName compares account names the way every lookup in the ledger does.
func SameName(a, b string) bool {
	return strings.EqualFold(a, b)
}
