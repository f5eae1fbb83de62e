package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LuckyIntegral/My-finances/internal/models"
	"github.com/LuckyIntegral/My-finances/internal/storage"
)

// UserService manages the user lifecycle. Deleting a user cascades to its
// accounts and their transactions.
type UserService struct {
	db *storage.DB
}

func NewUserService(db *storage.DB) *UserService {
	return &UserService{db: db}
}

// Create validates the name fields and persists a new user.
func (s *UserService) Create(ctx context.Context, firstName, lastName string) (*models.User, error) {
	if err := validateUser(firstName, lastName); err != nil {
		return nil, err
	}
	return s.db.CreateUser(ctx, firstName, lastName)
}

// FindByID returns the user with the given id.
func (s *UserService) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return fetchUser(ctx, s.db.Store, id)
}

// FindAll returns every user.
func (s *UserService) FindAll(ctx context.Context) ([]models.User, error) {
	return s.db.ListUsers(ctx)
}

// Update overwrites the name fields of an existing user, preserving its id.
func (s *UserService) Update(ctx context.Context, id int64, firstName, lastName string) (*models.User, error) {
	if err := validateUser(firstName, lastName); err != nil {
		return nil, err
	}

	var updated *models.User
	err := s.db.InTx(ctx, sql.LevelDefault, func(st *storage.Store) error {
		u, err := fetchUser(ctx, st, id)
		if err != nil {
			return err
		}
		u.FirstName = firstName
		u.LastName = lastName
		if err := st.UpdateUser(ctx, u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	return updated, err
}

// Delete removes a user together with all of its accounts and their
// transactions. Leaf rows go first so no dangling references are ever
// observable; the whole cascade is one all-or-nothing unit.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.db.InTx(ctx, sql.LevelDefault, func(st *storage.Store) error {
		if _, err := fetchUser(ctx, st, id); err != nil {
			return err
		}

		accounts, err := st.ListAccountsByOwner(ctx, id)
		if err != nil {
			return err
		}
		for _, a := range accounts {
			if err := st.DeleteTransactionsByAccount(ctx, a.ID); err != nil {
				return err
			}
			if err := st.DeleteAccount(ctx, a.ID); err != nil {
				return err
			}
		}

		return st.DeleteUser(ctx, id)
	})
}

func fetchUser(ctx context.Context, st *storage.Store, id int64) (*models.User, error) {
	u, err := st.GetUser(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return u, err
}

func validateUser(firstName, lastName string) error {
	if firstName == "" {
		return fmt.Errorf("%w: first name is required", ErrInvalidData)
	}
	if lastName == "" {
		return fmt.Errorf("%w: last name is required", ErrInvalidData)
	}
	return nil
}
