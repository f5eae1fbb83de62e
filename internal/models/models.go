package models

import "time"

// TransactionType marks which side of a transfer a transaction row records.
type TransactionType string

const (
	// Expense is the debit side, written on the sender's account.
	Expense TransactionType = "EXPENSE"
	// Profit is the credit side, written on the receiver's account.
	Profit TransactionType = "PROFIT"
)

// User owns zero or more accounts.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Account belongs to exactly one user. The owner never changes after creation
// and the balance never goes negative.
type Account struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
	OwnerID int64  `json:"ownerId"`
}

// Transaction is one side of a transfer. Rows are immutable once written and
// are removed only when their account is deleted.
type Transaction struct {
	ID          int64           `json:"id"`
	Type        TransactionType `json:"transactionType"`
	Amount      int64           `json:"amount"`
	AccountID   int64           `json:"accountId"`
	Description string          `json:"description"`
	Created     time.Time       `json:"created"`
}

// TransferRequest is the wire shape of a transfer. The account ids are
// pointers because a missing id is reported as not-found rather than as a
// validation failure.
type TransferRequest struct {
	SenderAccID   *int64 `json:"senderAccId"`
	ReceiverAccID *int64 `json:"receiverAccId"`
	Amount        int64  `json:"amount"`
	Description   string `json:"description"`
}
