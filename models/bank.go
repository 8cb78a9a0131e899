package models

import "time"

// Bank is a money account. EndBalance is denormalized for fast reads and is
// only ever changed through transaction side-effects; the invariant
// EndBalance == StartBalance + sum of signed transaction amounts must hold
// after every mutation. Balances are in minor currency units.
type Bank struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	Name         string    `json:"name"`
	Color        string    `json:"color"`
	StartBalance int64     `json:"start_balance"`
	EndBalance   int64     `json:"end_balance"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
