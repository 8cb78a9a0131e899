package models

import "time"

// Transaction is a single posting against a bank. Amount is always a
// positive magnitude. IsIncome records the sign that was applied to the bank
// balance when the amount was last posted; editing a category does not
// rewrite it, so reversing a transaction stays exact even after its category
// changed.
type Transaction struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Date        time.Time `json:"date"`
	Amount      int64     `json:"amount"`
	IsIncome    bool      `json:"is_income"`
	Description string    `json:"description"`
	CategoryID  int       `json:"category_id"`
	BankID      int       `json:"bank_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
