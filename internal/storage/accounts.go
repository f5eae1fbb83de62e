package storage

import (
	"context"

	"github.com/LuckyIntegral/My-finances/internal/models"
)

// CreateAccount inserts a new account and returns it with the generated id.
func (s *Store) CreateAccount(ctx context.Context, name string, balance, ownerID int64) (*models.Account, error) {
	res, err := s.q.ExecContext(ctx,
		"INSERT INTO accounts (name, balance, owner_id) VALUES (?, ?, ?)",
		name, balance, ownerID,
	)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Account{ID: id, Name: name, Balance: balance, OwnerID: ownerID}, nil
}

// GetAccount retrieves a single account by id. Returns sql.ErrNoRows if it
// does not exist.
func (s *Store) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	row := s.q.QueryRowContext(ctx,
		"SELECT id, name, balance, owner_id FROM accounts WHERE id = ?",
		id,
	)

	var a models.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Balance, &a.OwnerID); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAccounts retrieves all accounts ordered by id.
func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.scanAccounts(ctx,
		"SELECT id, name, balance, owner_id FROM accounts ORDER BY id",
	)
}

// ListAccountsByOwner retrieves every account owned by the given user.
func (s *Store) ListAccountsByOwner(ctx context.Context, ownerID int64) ([]models.Account, error) {
	return s.scanAccounts(ctx,
		"SELECT id, name, balance, owner_id FROM accounts WHERE owner_id = ? ORDER BY id",
		ownerID,
	)
}

func (s *Store) scanAccounts(ctx context.Context, query string, args ...any) ([]models.Account, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Balance, &a.OwnerID); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

// UpdateAccount overwrites the name and balance of an existing account. The
// owner column is deliberately left untouched.
func (s *Store) UpdateAccount(ctx context.Context, a *models.Account) error {
	_, err := s.q.ExecContext(ctx,
		"UPDATE accounts SET name = ?, balance = ? WHERE id = ?",
		a.Name, a.Balance, a.ID,
	)
	return err
}

// DeleteAccount removes an account row by id.
func (s *Store) DeleteAccount(ctx context.Context, id int64) error {
	_, err := s.q.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", id)
	return err
}
