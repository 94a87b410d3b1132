package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies money-manager transactions.
type TransactionType string

const (
	// TransactionIncome is money in.
	TransactionIncome TransactionType = "income"
	// TransactionExpense is money out.
	TransactionExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is a single money-manager ledger row. Amounts are decimal to
// avoid float drift on sums.
type Transaction struct {
	ID        string          `json:"id"`
	Date      time.Time       `json:"date"`
	Type      TransactionType `json:"type"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Budget caps monthly spend for one category.
type Budget struct {
	Category string          `json:"category"`
	Monthly  decimal.Decimal `json:"monthly"`
}
