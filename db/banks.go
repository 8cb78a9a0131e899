package db

import (
	"database/sql"
	"errors"

	"github.com/Candratama/Floo/models"
)

const bankColumns = "id, user_id, name, color, start_balance, end_balance, created_at, updated_at"

func scanBank(row *sql.Row) (*models.Bank, error) {
	var b models.Bank
	err := row.Scan(&b.ID, &b.UserID, &b.Name, &b.Color, &b.StartBalance, &b.EndBalance, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBank inserts a bank with its running balance initialized to the
// start balance. A duplicate name for the same user surfaces as ErrDuplicate.
func (s *Storage) CreateBank(userID int, in models.CreateBank) (*models.Bank, error) {
	bank, err := scanBank(s.DB.QueryRow(
		`INSERT INTO banks (user_id, name, color, start_balance, end_balance)
		 VALUES ($1, $2, $3, $4, $4)
		 RETURNING `+bankColumns,
		userID, in.Name, in.Color, in.StartBalance,
	))
	if err != nil {
		return nil, translateConstraint(err)
	}
	return bank, nil
}

// GetBank returns nil, nil when the bank does not exist for this user.
func (s *Storage) GetBank(id, userID int) (*models.Bank, error) {
	return scanBank(s.DB.QueryRow(
		"SELECT "+bankColumns+" FROM banks WHERE id = $1 AND user_id = $2",
		id, userID,
	))
}

func (s *Storage) GetBanks(userID, skip, limit int) ([]models.Bank, error) {
	rows, err := s.DB.Query(
		"SELECT "+bankColumns+" FROM banks WHERE user_id = $1 ORDER BY id OFFSET $2 LIMIT $3",
		userID, skip, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	banks := []models.Bank{}
	for rows.Next() {
		var b models.Bank
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Color, &b.StartBalance, &b.EndBalance, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		banks = append(banks, b)
	}
	return banks, rows.Err()
}

// UpdateBank applies the set fields of changes. Changing start_balance
// shifts end_balance by the same delta so the running-balance invariant
// keeps holding; end_balance itself is never set directly here. Returns
// nil, nil when the bank does not exist for this user.
func (s *Storage) UpdateBank(id, userID int, changes models.UpdateBank) (*models.Bank, error) {
	bank, err := scanBank(s.DB.QueryRow(
		`UPDATE banks SET
		   name = COALESCE($1, name),
		   color = COALESCE($2, color),
		   end_balance = end_balance + COALESCE($3, start_balance) - start_balance,
		   start_balance = COALESCE($3, start_balance),
		   updated_at = now()
		 WHERE id = $4 AND user_id = $5
		 RETURNING `+bankColumns,
		changes.Name, changes.Color, changes.StartBalance, id, userID,
	))
	if err != nil {
		return nil, translateConstraint(err)
	}
	return bank, nil
}

// DeleteBank reports ErrInUse while transactions still reference the bank.
func (s *Storage) DeleteBank(id, userID int) (bool, error) {
	res, err := s.DB.Exec("DELETE FROM banks WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, translateConstraint(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
