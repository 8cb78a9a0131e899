package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lib/pq"

	"github.com/Candratama/Floo/ledger"
	"github.com/Candratama/Floo/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var (
	// ErrDuplicate is returned when an insert or update hits a unique
	// constraint (username, email, per-user bank or category name).
	ErrDuplicate = errors.New("db: duplicate value")

	// ErrInUse is returned when a delete is blocked by transactions still
	// referencing the row.
	ErrInUse = errors.New("db: row is referenced by transactions")
)

type Storage struct {
	DB *sql.DB
}

// NewStorage opens a PostgreSQL connection and brings the schema up to date
// from the embedded migrations.
func NewStorage(connStr string) (*Storage, error) {
	database, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	if err := database.Ping(); err != nil {
		return nil, err
	}
	if err := runMigrations(database); err != nil {
		return nil, err
	}
	return &Storage{DB: database}, nil
}

func runMigrations(database *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("db: load migrations: %w", err)
	}
	driver, err := postgres.WithInstance(database, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("db: migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("db: migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("db: migrate up: %w", err)
	}
	return nil
}

func (s *Storage) Close() {
	s.DB.Close()
}

// InTx runs fn inside a database transaction, committing only when fn
// succeeds. Serialization failures and deadlocks are reported as
// ledger.ErrConflict so the caller can retry with fresh entities.
func (s *Storage) InTx(ctx context.Context, fn func(ledger.Tx) error) error {
	const op = "db.InTx"

	sqlTx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := fn(&storeTx{tx: sqlTx}); err != nil {
		sqlTx.Rollback()
		return translateConflict(err)
	}
	if err := sqlTx.Commit(); err != nil {
		return translateConflict(fmt.Errorf("%s: %w", op, err))
	}
	return nil
}

func translateConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return ledger.ErrConflict
		}
	}
	return err
}

func translateConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return ErrDuplicate
		case "23503": // foreign_key_violation
			return ErrInUse
		}
	}
	return err
}

// storeTx adapts a *sql.Tx to the ledger's unit-of-work interface. Bank and
// transaction reads lock their rows with FOR UPDATE so concurrent writers on
// the same bank serialize instead of losing updates.
type storeTx struct {
	tx *sql.Tx
}

func (t *storeTx) BankForUpdate(id, userID int) (*models.Bank, error) {
	var b models.Bank
	err := t.tx.QueryRow(
		`SELECT id, user_id, name, color, start_balance, end_balance, created_at, updated_at
		 FROM banks WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		id, userID,
	).Scan(&b.ID, &b.UserID, &b.Name, &b.Color, &b.StartBalance, &b.EndBalance, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (t *storeTx) Category(id, userID int) (*models.Category, error) {
	var c models.Category
	err := t.tx.QueryRow(
		`SELECT id, user_id, name, is_income, created_at, updated_at
		 FROM categories WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.IsIncome, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (t *storeTx) TransactionForUpdate(id, userID int) (*models.Transaction, error) {
	var tr models.Transaction
	err := t.tx.QueryRow(
		`SELECT id, user_id, date, amount, is_income, description, category_id, bank_id, created_at, updated_at
		 FROM transactions WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		id, userID,
	).Scan(&tr.ID, &tr.UserID, &tr.Date, &tr.Amount, &tr.IsIncome, &tr.Description, &tr.CategoryID, &tr.BankID, &tr.CreatedAt, &tr.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tr, nil
}

func (t *storeTx) InsertTransaction(tr *models.Transaction) error {
	return t.tx.QueryRow(
		`INSERT INTO transactions (user_id, date, amount, is_income, description, category_id, bank_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		tr.UserID, tr.Date, tr.Amount, tr.IsIncome, tr.Description, tr.CategoryID, tr.BankID,
	).Scan(&tr.ID, &tr.CreatedAt, &tr.UpdatedAt)
}

func (t *storeTx) UpdateTransaction(tr *models.Transaction) error {
	err := t.tx.QueryRow(
		`UPDATE transactions
		 SET date = $1, amount = $2, is_income = $3, description = $4, category_id = $5, bank_id = $6, updated_at = now()
		 WHERE id = $7 AND user_id = $8
		 RETURNING updated_at`,
		tr.Date, tr.Amount, tr.IsIncome, tr.Description, tr.CategoryID, tr.BankID, tr.ID, tr.UserID,
	).Scan(&tr.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.ErrNotFound
	}
	return err
}

func (t *storeTx) DeleteTransaction(id, userID int) error {
	res, err := t.tx.Exec("DELETE FROM transactions WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

func (t *storeTx) SaveBankBalance(b *models.Bank) error {
	err := t.tx.QueryRow(
		`UPDATE banks SET end_balance = $1, updated_at = now()
		 WHERE id = $2 AND user_id = $3
		 RETURNING updated_at`,
		b.EndBalance, b.ID, b.UserID,
	).Scan(&b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.ErrNotFound
	}
	return err
}

// DerivedBalance recomputes the running balance from the signs recorded on
// the transaction rows, so it stays comparable to the stored balance even
// after category edits that never moved money.
func (t *storeTx) DerivedBalance(bankID, userID int) (int64, error) {
	var derived int64
	err := t.tx.QueryRow(
		`SELECT b.start_balance + COALESCE(SUM(
		         CASE WHEN tr.is_income THEN tr.amount ELSE -tr.amount END), 0)
		 FROM banks b
		 LEFT JOIN transactions tr ON tr.bank_id = b.id
		 WHERE b.id = $1 AND b.user_id = $2
		 GROUP BY b.start_balance`,
		bankID, userID,
	).Scan(&derived)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ledger.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return derived, nil
}
