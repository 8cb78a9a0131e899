package models

import "time"

type CreateUser struct {
	Fullname string `json:"fullname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateBank struct {
	Name         string `json:"name"`
	Color        string `json:"color"`
	StartBalance int64  `json:"start_balance"`
}

type CreateCategory struct {
	Name     string `json:"name"`
	IsIncome bool   `json:"is_income"`
}

type CreateTransaction struct {
	Date        time.Time `json:"date"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	CategoryID  int       `json:"category_id"`
	BankID      int       `json:"bank_id"`
}
