package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinanceType distinguishes money coming in from money going out.
type FinanceType string

const (
	FinanceIncome  FinanceType = "income"
	FinanceExpense FinanceType = "expense"
)

// FinanceRecord is a single income or expense entry. Only admins may read or
// write these.
type FinanceRecord struct {
	ID          string          `json:"id"`
	Type        FinanceType     `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
