package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LuckyIntegral/My-finances/internal/models"
	"github.com/LuckyIntegral/My-finances/internal/storage"
)

// AccountService manages the account lifecycle. Accounts always belong to
// exactly one user and their balance never goes negative.
type AccountService struct {
	db *storage.DB
}

func NewAccountService(db *storage.DB) *AccountService {
	return &AccountService{db: db}
}

// Create validates the account data, resolves the owner and persists a new
// account. The balance is a pointer so a missing balance can be told apart
// from an explicit zero.
func (s *AccountService) Create(ctx context.Context, name string, balance *int64, ownerID int64) (*models.Account, error) {
	if err := validateAccount(name, balance); err != nil {
		return nil, err
	}

	var created *models.Account
	err := s.db.InTx(ctx, sql.LevelDefault, func(st *storage.Store) error {
		if _, err := st.GetUser(ctx, ownerID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: owner %d", ErrNotFound, ownerID)
			}
			return err
		}

		a, err := st.CreateAccount(ctx, name, *balance, ownerID)
		if err != nil {
			return err
		}
		created = a
		return nil
	})
	return created, err
}

// FindByID returns the account with the given id.
func (s *AccountService) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	return fetchAccount(ctx, s.db.Store, id)
}

// FindAll returns every account.
func (s *AccountService) FindAll(ctx context.Context) ([]models.Account, error) {
	return s.db.ListAccounts(ctx)
}

// FindByUserID returns all accounts owned by the given user. The user must
// exist; a user without accounts yields an empty list.
func (s *AccountService) FindByUserID(ctx context.Context, userID int64) ([]models.Account, error) {
	if _, err := fetchUser(ctx, s.db.Store, userID); err != nil {
		return nil, err
	}
	return s.db.ListAccountsByOwner(ctx, userID)
}

// Update overwrites the name and balance of an existing account. The original
// owner is always preserved.
func (s *AccountService) Update(ctx context.Context, id int64, name string, balance *int64) (*models.Account, error) {
	if err := validateAccount(name, balance); err != nil {
		return nil, err
	}

	var updated *models.Account
	err := s.db.InTx(ctx, sql.LevelDefault, func(st *storage.Store) error {
		a, err := fetchAccount(ctx, st, id)
		if err != nil {
			return err
		}
		a.Name = name
		a.Balance = *balance
		if err := st.UpdateAccount(ctx, a); err != nil {
			return err
		}
		updated = a
		return nil
	})
	return updated, err
}

// Delete removes an account together with all of its transactions. The
// transactions go first to keep referential integrity.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	return s.db.InTx(ctx, sql.LevelDefault, func(st *storage.Store) error {
		if _, err := fetchAccount(ctx, st, id); err != nil {
			return err
		}
		if err := st.DeleteTransactionsByAccount(ctx, id); err != nil {
			return err
		}
		return st.DeleteAccount(ctx, id)
	})
}

func fetchAccount(ctx context.Context, st *storage.Store, id int64) (*models.Account, error) {
	a, err := st.GetAccount(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: account %d", ErrNotFound, id)
	}
	return a, err
}

func validateAccount(name string, balance *int64) error {
	if balance == nil || *balance < 0 {
		return fmt.Errorf("%w: balance must be present and non-negative", ErrInvalidData)
	}
	if name == "" {
		return fmt.Errorf("%w: account name is required", ErrInvalidData)
	}
	return nil
}
