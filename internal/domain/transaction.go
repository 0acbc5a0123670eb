package domain

import "time"

// TransactionType tags a ledger entry
type TransactionType string

const (
	TransactionEarn          TransactionType = "earn"
	TransactionSpend         TransactionType = "spend"
	TransactionPurchase      TransactionType = "purchase"
	TransactionQuestComplete TransactionType = "quest_complete"
)

// Transaction is an append-only ledger entry. Write-only audit trail: the
// engine records entries but never reads them back to compute state.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"user_id"`
	Type        TransactionType `json:"type"`
	Amount      int             `json:"amount"` // signed: spends are negative
	Description string          `json:"description"`
	ItemName    *string         `json:"item_name,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
