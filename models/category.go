package models

import "time"

// Category classifies a transaction as income or expense. IsIncome decides
// the sign applied to transaction amounts posted against a bank.
type Category struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	IsIncome  bool      `json:"is_income"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
