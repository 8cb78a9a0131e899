package db

import (
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/Candratama/Floo/models"
)

const userColumns = "id, fullname, username, email, password, is_active, created_at, updated_at"

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Fullname, &u.Username, &u.Email, &u.Password, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser hashes the password and inserts a new user. Duplicate username
// or email surfaces as ErrDuplicate.
func (s *Storage) CreateUser(fullname, username, email, password string) (*models.User, error) {
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{Fullname: fullname, Username: username, Email: email, Password: string(hash)}
	err = s.DB.QueryRow(
		`INSERT INTO users (fullname, username, email, password)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, is_active, created_at, updated_at`,
		fullname, username, email, string(hash),
	).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, translateConstraint(err)
	}
	return &user, nil
}

// GetUserByUsername returns nil, nil when no such user exists.
func (s *Storage) GetUserByUsername(username string) (*models.User, error) {
	return scanUser(s.DB.QueryRow(
		"SELECT "+userColumns+" FROM users WHERE username = $1", username,
	))
}

// GetUserByID returns nil, nil when no such user exists.
func (s *Storage) GetUserByID(id int) (*models.User, error) {
	return scanUser(s.DB.QueryRow(
		"SELECT "+userColumns+" FROM users WHERE id = $1", id,
	))
}

func (s *Storage) GetUsers(skip, limit int) ([]models.User, error) {
	rows, err := s.DB.Query(
		"SELECT "+userColumns+" FROM users ORDER BY id OFFSET $1 LIMIT $2",
		skip, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Fullname, &u.Username, &u.Email, &u.Password, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser applies the set fields of changes to the user. A new password
// is re-hashed before it is stored. Returns nil, nil when the user does not
// exist.
func (s *Storage) UpdateUser(id int, changes models.UpdateUser) (*models.User, error) {
	if changes.Password != nil {
		if len(*changes.Password) < 6 {
			return nil, errors.New("password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*changes.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		changes.Password = &hashed
	}

	user, err := scanUser(s.DB.QueryRow(
		`UPDATE users SET
		   fullname = COALESCE($1, fullname),
		   username = COALESCE($2, username),
		   email = COALESCE($3, email),
		   password = COALESCE($4, password),
		   is_active = COALESCE($5, is_active),
		   updated_at = now()
		 WHERE id = $6
		 RETURNING `+userColumns,
		changes.Fullname, changes.Username, changes.Email, changes.Password, changes.IsActive, id,
	))
	if err != nil {
		return nil, translateConstraint(err)
	}
	return user, nil
}
