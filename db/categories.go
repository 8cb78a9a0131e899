package db

import (
	"database/sql"
	"errors"

	"github.com/Candratama/Floo/models"
)

const categoryColumns = "id, user_id, name, is_income, created_at, updated_at"

func scanCategory(row *sql.Row) (*models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.IsIncome, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Storage) CreateCategory(userID int, in models.CreateCategory) (*models.Category, error) {
	category, err := scanCategory(s.DB.QueryRow(
		`INSERT INTO categories (user_id, name, is_income)
		 VALUES ($1, $2, $3)
		 RETURNING `+categoryColumns,
		userID, in.Name, in.IsIncome,
	))
	if err != nil {
		return nil, translateConstraint(err)
	}
	return category, nil
}

// GetCategory returns nil, nil when the category does not exist for this user.
func (s *Storage) GetCategory(id, userID int) (*models.Category, error) {
	return scanCategory(s.DB.QueryRow(
		"SELECT "+categoryColumns+" FROM categories WHERE id = $1 AND user_id = $2",
		id, userID,
	))
}

func (s *Storage) GetCategories(userID, skip, limit int) ([]models.Category, error) {
	rows, err := s.DB.Query(
		"SELECT "+categoryColumns+" FROM categories WHERE user_id = $1 ORDER BY id OFFSET $2 LIMIT $3",
		userID, skip, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.IsIncome, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateCategory applies the set fields of changes. Flipping is_income does
// not recompute bank balances for existing transactions. Returns nil, nil
// when the category does not exist for this user.
func (s *Storage) UpdateCategory(id, userID int, changes models.UpdateCategory) (*models.Category, error) {
	category, err := scanCategory(s.DB.QueryRow(
		`UPDATE categories SET
		   name = COALESCE($1, name),
		   is_income = COALESCE($2, is_income),
		   updated_at = now()
		 WHERE id = $3 AND user_id = $4
		 RETURNING `+categoryColumns,
		changes.Name, changes.IsIncome, id, userID,
	))
	if err != nil {
		return nil, translateConstraint(err)
	}
	return category, nil
}

// DeleteCategory reports ErrInUse while transactions still reference the
// category.
func (s *Storage) DeleteCategory(id, userID int) (bool, error) {
	res, err := s.DB.Exec("DELETE FROM categories WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, translateConstraint(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
