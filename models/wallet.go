package models

import "time"

// Wallet is the prepaid balance held against the user's account.
type Wallet struct {
	Balance      float64             `json:"balance"`
	Transactions []WalletTransaction `json:"transactions,omitempty"`
}

type WalletTransaction struct {
	ID          string    `json:"_id,omitempty"`
	Type        string    `json:"type"` // "credit" or "debit"
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
