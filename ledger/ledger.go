// Package ledger keeps every bank's running balance consistent with the set
// of transactions posted against it. All three transaction mutations (create,
// amend, remove) go through the Maintainer, which applies the balance delta
// and the transaction write inside one atomic unit of work.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/Candratama/Floo/models"
)

var (
	// ErrNotFound means a referenced bank, category or transaction does not
	// resolve for the acting user.
	ErrNotFound = errors.New("ledger: not found")

	// ErrConflict means the unit of work lost a race with a concurrent
	// writer. The Maintainer retries once before surfacing it.
	ErrConflict = errors.New("ledger: concurrent update conflict")
)

// InvariantError reports a bank whose stored running balance no longer
// matches the balance derived from its transactions. It is fatal to the
// operation and is never corrected silently.
type InvariantError struct {
	BankID  int
	Stored  int64
	Derived int64
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("ledger: bank %d balance invariant violated: stored %d, derived %d", e.BankID, e.Stored, e.Derived)
}

// Tx is one atomic unit of work against the store. Bank and transaction
// reads that precede a balance write must lock the rows they return so that
// concurrent writers on the same bank cannot lose updates.
type Tx interface {
	BankForUpdate(id, userID int) (*models.Bank, error)
	Category(id, userID int) (*models.Category, error)
	TransactionForUpdate(id, userID int) (*models.Transaction, error)
	InsertTransaction(t *models.Transaction) error
	UpdateTransaction(t *models.Transaction) error
	DeleteTransaction(id, userID int) error
	SaveBankBalance(b *models.Bank) error
	DerivedBalance(bankID, userID int) (int64, error)
}

// Store opens atomic units of work. Either everything fn wrote commits or
// nothing does; commits that collide with a concurrent writer fail with
// ErrConflict.
type Store interface {
	InTx(ctx context.Context, fn func(Tx) error) error
}

// Maintainer is the ledger balance maintainer. The store is injected so the
// maintainer can be exercised against an in-memory fake.
type Maintainer struct {
	store Store
}

func NewMaintainer(store Store) *Maintainer {
	return &Maintainer{store: store}
}

// SignedAmount applies the category classification to a positive magnitude:
// income counts toward the balance, expense against it.
func SignedAmount(amount int64, isIncome bool) int64 {
	if isIncome {
		return amount
	}
	return -amount
}

// Create posts a new transaction for the acting user and applies its signed
// amount to the bank's running balance.
func (m *Maintainer) Create(ctx context.Context, userID int, in models.CreateTransaction) (*models.Transaction, *models.Bank, error) {
	var (
		created *models.Transaction
		bank    *models.Bank
	)
	err := m.inTxWithRetry(ctx, func(tx Tx) error {
		created, bank = nil, nil

		category, err := tx.Category(in.CategoryID, userID)
		if err != nil {
			return err
		}
		b, err := tx.BankForUpdate(in.BankID, userID)
		if err != nil {
			return err
		}

		t := &models.Transaction{
			UserID:      userID,
			Date:        in.Date,
			Amount:      in.Amount,
			IsIncome:    category.IsIncome,
			Description: in.Description,
			CategoryID:  in.CategoryID,
			BankID:      in.BankID,
		}
		if err := tx.InsertTransaction(t); err != nil {
			return err
		}

		b.EndBalance += SignedAmount(t.Amount, t.IsIncome)
		if err := tx.SaveBankBalance(b); err != nil {
			return err
		}
		if err := checkInvariant(tx, b); err != nil {
			return err
		}

		created, bank = t, b
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return created, bank, nil
}

// Amend mutates an existing transaction. Balances are recomputed only when
// the amount and/or the bank changes: the original effect is reversed on the
// old bank using the sign recorded on the row, then the new amount is
// applied to the target bank with the sign of the category the transaction
// had before the change, even when category_id is part of it. Changing only
// the category never moves a balance.
func (m *Maintainer) Amend(ctx context.Context, userID, id int, changes models.UpdateTransaction) (*models.Transaction, []*models.Bank, error) {
	var (
		amended *models.Transaction
		banks   []*models.Bank
	)
	err := m.inTxWithRetry(ctx, func(tx Tx) error {
		amended, banks = nil, nil

		t, err := tx.TransactionForUpdate(id, userID)
		if err != nil {
			return err
		}

		if changes.CategoryID != nil {
			if _, err := tx.Category(*changes.CategoryID, userID); err != nil {
				return err
			}
		}

		if changes.Amount != nil || changes.BankID != nil {
			category, err := tx.Category(t.CategoryID, userID)
			if err != nil {
				return err
			}

			targetID := t.BankID
			if changes.BankID != nil {
				targetID = *changes.BankID
			}
			oldBank, targetBank, err := lockBanks(tx, t.BankID, targetID, userID)
			if err != nil {
				return err
			}

			oldBank.EndBalance -= SignedAmount(t.Amount, t.IsIncome)

			newAmount := t.Amount
			if changes.Amount != nil {
				newAmount = *changes.Amount
			}
			targetBank.EndBalance += SignedAmount(newAmount, category.IsIncome)
			t.IsIncome = category.IsIncome

			if err := tx.SaveBankBalance(oldBank); err != nil {
				return err
			}
			banks = append(banks, oldBank)
			if targetBank != oldBank {
				if err := tx.SaveBankBalance(targetBank); err != nil {
					return err
				}
				banks = append(banks, targetBank)
			}
		}

		applyChanges(t, changes)
		if err := tx.UpdateTransaction(t); err != nil {
			return err
		}
		for _, b := range banks {
			if err := checkInvariant(tx, b); err != nil {
				return err
			}
		}

		amended = t
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return amended, banks, nil
}

// Remove reverses a transaction's effect on its bank and deletes it, both in
// the same unit of work.
func (m *Maintainer) Remove(ctx context.Context, userID, id int) (*models.Bank, error) {
	var bank *models.Bank
	err := m.inTxWithRetry(ctx, func(tx Tx) error {
		bank = nil

		t, err := tx.TransactionForUpdate(id, userID)
		if err != nil {
			return err
		}
		b, err := tx.BankForUpdate(t.BankID, userID)
		if err != nil {
			return err
		}

		if err := tx.DeleteTransaction(t.ID, userID); err != nil {
			return err
		}
		b.EndBalance -= SignedAmount(t.Amount, t.IsIncome)
		if err := tx.SaveBankBalance(b); err != nil {
			return err
		}
		if err := checkInvariant(tx, b); err != nil {
			return err
		}

		bank = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bank, nil
}

// inTxWithRetry runs fn once and, if the commit lost a race with a
// concurrent writer, once more with freshly loaded entities. A second
// conflict is surfaced to the caller.
func (m *Maintainer) inTxWithRetry(ctx context.Context, fn func(Tx) error) error {
	err := m.store.InTx(ctx, fn)
	if errors.Is(err, ErrConflict) {
		err = m.store.InTx(ctx, fn)
	}
	return err
}

// lockBanks fetches one or two bank rows for update, always in ascending id
// order so two concurrent amendments cannot deadlock on each other.
func lockBanks(tx Tx, oldID, targetID, userID int) (oldBank, targetBank *models.Bank, err error) {
	if oldID == targetID {
		b, err := tx.BankForUpdate(oldID, userID)
		return b, b, err
	}

	firstID, secondID := oldID, targetID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}
	first, err := tx.BankForUpdate(firstID, userID)
	if err != nil {
		return nil, nil, err
	}
	second, err := tx.BankForUpdate(secondID, userID)
	if err != nil {
		return nil, nil, err
	}
	if firstID == oldID {
		return first, second, nil
	}
	return second, first, nil
}

func applyChanges(t *models.Transaction, changes models.UpdateTransaction) {
	if changes.Date != nil {
		t.Date = *changes.Date
	}
	if changes.Amount != nil {
		t.Amount = *changes.Amount
	}
	if changes.Description != nil {
		t.Description = *changes.Description
	}
	if changes.CategoryID != nil {
		t.CategoryID = *changes.CategoryID
	}
	if changes.BankID != nil {
		t.BankID = *changes.BankID
	}
}

// checkInvariant recomputes the bank's balance from its transactions inside
// the same unit of work and fails the operation on any mismatch, rolling the
// whole mutation back.
func checkInvariant(tx Tx, b *models.Bank) error {
	derived, err := tx.DerivedBalance(b.ID, b.UserID)
	if err != nil {
		return err
	}
	if derived != b.EndBalance {
		return &InvariantError{BankID: b.ID, Stored: b.EndBalance, Derived: derived}
	}
	return nil
}
