package models

import "time"

// Update requests use pointer fields so "absent" and "zero" stay distinct.
// For transactions, which fields are set decides whether bank balances get
// recomputed, so the set of fields is deliberately explicit and exhaustive.

type UpdateUser struct {
	Fullname *string `json:"fullname"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

type UpdateBank struct {
	Name         *string `json:"name"`
	Color        *string `json:"color"`
	StartBalance *int64  `json:"start_balance"`
}

type UpdateCategory struct {
	Name     *string `json:"name"`
	IsIncome *bool   `json:"is_income"`
}

type UpdateTransaction struct {
	Date        *time.Time `json:"date"`
	Amount      *int64     `json:"amount"`
	Description *string    `json:"description"`
	CategoryID  *int       `json:"category_id"`
	BankID      *int       `json:"bank_id"`
}
