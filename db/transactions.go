package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Candratama/Floo/models"
)

const transactionColumns = "id, user_id, date, amount, is_income, description, category_id, bank_id, created_at, updated_at"

// TransactionFilter narrows GetTransactions. Zero values mean "no filter";
// Limit of 0 falls back to 100.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID int
	BankID     int
	Skip       int
	Limit      int
}

// GetTransaction returns nil, nil when the transaction does not exist for
// this user.
func (s *Storage) GetTransaction(id, userID int) (*models.Transaction, error) {
	var t models.Transaction
	err := s.DB.QueryRow(
		"SELECT "+transactionColumns+" FROM transactions WHERE id = $1 AND user_id = $2",
		id, userID,
	).Scan(&t.ID, &t.UserID, &t.Date, &t.Amount, &t.IsIncome, &t.Description, &t.CategoryID, &t.BankID, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTransactions lists the user's transactions newest-first together with
// the total row count for the filter.
func (s *Storage) GetTransactions(userID int, filter TransactionFilter) ([]models.Transaction, int, error) {
	where := []string{"user_id = $1"}
	args := []interface{}{userID}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if filter.StartDate != nil {
		addArg("date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addArg("date <= $%d", *filter.EndDate)
	}
	if filter.CategoryID != 0 {
		addArg("category_id = $%d", filter.CategoryID)
	}
	if filter.BankID != 0 {
		addArg("bank_id = $%d", filter.BankID)
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	err := s.DB.QueryRow("SELECT COUNT(*) FROM transactions WHERE "+whereClause, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 100
	}
	args = append(args, filter.Skip, limit)
	query := fmt.Sprintf(
		"SELECT %s FROM transactions WHERE %s ORDER BY date DESC, id DESC OFFSET $%d LIMIT $%d",
		transactionColumns, whereClause, len(args)-1, len(args),
	)

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Date, &t.Amount, &t.IsIncome, &t.Description, &t.CategoryID, &t.BankID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, t)
	}
	return transactions, total, rows.Err()
}
