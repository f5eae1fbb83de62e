package storage

import (
	"context"
	"time"

	"github.com/LuckyIntegral/My-finances/internal/models"
)

// CreateTransaction inserts a new transaction row and returns it with the
// generated id. Transactions are append-only; there is no update.
func (s *Store) CreateTransaction(ctx context.Context, typ models.TransactionType, amount, accountID int64, description string, created time.Time) (*models.Transaction, error) {
	res, err := s.q.ExecContext(ctx,
		"INSERT INTO transactions (transaction_type, amount, account_id, description, created) VALUES (?, ?, ?, ?, ?)",
		typ, amount, accountID, description, created,
	)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Transaction{
		ID:          id,
		Type:        typ,
		Amount:      amount,
		AccountID:   accountID,
		Description: description,
		Created:     created,
	}, nil
}

// GetTransaction retrieves a single transaction by id. Returns sql.ErrNoRows
// if it does not exist.
func (s *Store) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	row := s.q.QueryRowContext(ctx,
		"SELECT id, transaction_type, amount, account_id, description, created FROM transactions WHERE id = ?",
		id,
	)

	var t models.Transaction
	if err := row.Scan(&t.ID, &t.Type, &t.Amount, &t.AccountID, &t.Description, &t.Created); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTransactions retrieves all transactions ordered by id.
func (s *Store) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.scanTransactions(ctx,
		"SELECT id, transaction_type, amount, account_id, description, created FROM transactions ORDER BY id",
	)
}

// ListTransactionsByAccount retrieves every transaction on the given account.
// An unknown account id simply yields an empty result.
func (s *Store) ListTransactionsByAccount(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	return s.scanTransactions(ctx,
		"SELECT id, transaction_type, amount, account_id, description, created FROM transactions WHERE account_id = ? ORDER BY id",
		accountID,
	)
}

func (s *Store) scanTransactions(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Type, &t.Amount, &t.AccountID, &t.Description, &t.Created); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

// DeleteTransactionsByAccount removes every transaction on the given account.
func (s *Store) DeleteTransactionsByAccount(ctx context.Context, accountID int64) error {
	_, err := s.q.ExecContext(ctx, "DELETE FROM transactions WHERE account_id = ?", accountID)
	return err
}
