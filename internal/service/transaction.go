package service

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/LuckyIntegral/My-finances/internal/models"
	"github.com/LuckyIntegral/My-finances/internal/storage"
)

var csvHeader = []string{"Transaction ID", "Type", "Amount", "Account ID", "Description", "Created"}

// TransactionService executes transfers between accounts and exports
// transaction history to CSV. Transfers are the one place in the system where
// several rows change together, so they run under serializable isolation.
type TransactionService struct {
	db        *storage.DB
	exportDir string
}

func NewTransactionService(db *storage.DB, exportDir string) *TransactionService {
	return &TransactionService{db: db, exportDir: exportDir}
}

// Transfer moves req.Amount from the sender account to the receiver account.
// On success exactly four writes land atomically: both balances plus an
// EXPENSE row on the sender and a PROFIT row on the receiver. Any failure
// leaves the store untouched.
func (s *TransactionService) Transfer(ctx context.Context, req models.TransferRequest) error {
	if req.SenderAccID == nil || req.ReceiverAccID == nil {
		return fmt.Errorf("%w: account id is required", ErrNotFound)
	}

	return s.db.InTx(ctx, sql.LevelSerializable, func(st *storage.Store) error {
		sender, err := st.GetAccount(ctx, *req.SenderAccID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: sender account %d", ErrNotFound, *req.SenderAccID)
		}
		if err != nil {
			return err
		}

		receiver, err := st.GetAccount(ctx, *req.ReceiverAccID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: receiver account %d", ErrNotFound, *req.ReceiverAccID)
		}
		if err != nil {
			return err
		}

		if sender.ID == receiver.ID {
			return fmt.Errorf("%w: transfer to the same account", ErrInvalidData)
		}
		if req.Amount <= 0 {
			return fmt.Errorf("%w: amount must be positive", ErrInvalidData)
		}
		if sender.Balance < req.Amount {
			return fmt.Errorf("%w: insufficient funds", ErrInvalidData)
		}

		owner, err := st.GetUser(ctx, sender.OwnerID)
		if err != nil {
			return err
		}

		sender.Balance -= req.Amount
		receiver.Balance += req.Amount
		if err := st.UpdateAccount(ctx, sender); err != nil {
			return err
		}
		if err := st.UpdateAccount(ctx, receiver); err != nil {
			return err
		}

		now := time.Now()
		if _, err := st.CreateTransaction(ctx, models.Expense, req.Amount, sender.ID, req.Description, now); err != nil {
			return err
		}
		_, err = st.CreateTransaction(ctx, models.Profit, req.Amount, receiver.ID,
			fmt.Sprintf("Replenishment from %s %s", owner.FirstName, owner.LastName), now)
		return err
	})
}

// FindByID returns the transaction with the given id.
func (s *TransactionService) FindByID(ctx context.Context, id int64) (*models.Transaction, error) {
	t, err := s.db.GetTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, id)
	}
	return t, err
}

// FindAllByAccountID returns all transactions on the given account. There is
// no existence check on the account: an unknown id yields an empty list.
func (s *TransactionService) FindAllByAccountID(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	return s.db.ListTransactionsByAccount(ctx, accountID)
}

// FindAll returns every transaction.
func (s *TransactionService) FindAll(ctx context.Context) ([]models.Transaction, error) {
	return s.db.ListTransactions(ctx)
}

// ExportByAccountID writes all transactions of one account to
// Transactions_{id}.csv in the export directory and returns the file path.
func (s *TransactionService) ExportByAccountID(ctx context.Context, accountID int64) (string, error) {
	if _, err := s.db.GetAccount(ctx, accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: account %d", ErrInvalidData, accountID)
		}
		return "", err
	}

	transactions, err := s.db.ListTransactionsByAccount(ctx, accountID)
	if err != nil {
		return "", err
	}
	return s.writeCSV(fmt.Sprintf("Transactions_%d.csv", accountID), transactions)
}

// ExportAll writes every transaction in the system to Transactions.csv in the
// export directory and returns the file path.
func (s *TransactionService) ExportAll(ctx context.Context) (string, error) {
	transactions, err := s.db.ListTransactions(ctx)
	if err != nil {
		return "", err
	}
	return s.writeCSV("Transactions.csv", transactions)
}

// writeCSV renders the export artifact. Export never mutates application
// state; an I/O failure only fails the export call itself.
func (s *TransactionService) writeCSV(name string, transactions []models.Transaction) (string, error) {
	path := filepath.Join(s.exportDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return "", fmt.Errorf("export failed: %w", err)
	}
	for _, t := range transactions {
		record := []string{
			strconv.FormatInt(t.ID, 10),
			string(t.Type),
			strconv.FormatInt(t.Amount, 10),
			strconv.FormatInt(t.AccountID, 10),
			t.Description,
			t.Created.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return "", fmt.Errorf("export failed: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("export failed: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}
	return path, nil
}
