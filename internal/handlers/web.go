package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/LuckyIntegral/My-finances/internal/models"
	"github.com/LuckyIntegral/My-finances/internal/service"
	"github.com/gin-gonic/gin"
)

// UsersViewModel holds data for the users page.
type UsersViewModel struct {
	Users []models.User
	Error string
}

// UserViewModel holds data for a single user's page.
type UserViewModel struct {
	User     *models.User
	Accounts []models.Account
	Error    string
}

// AccountViewModel holds data for a single account's page.
type AccountViewModel struct {
	Account      *models.Account
	Owner        *models.User
	Transactions []models.Transaction
}

// TransactionsViewModel holds data for the transactions page.
type TransactionsViewModel struct {
	Transactions []models.Transaction
}

// TransactionViewModel holds data for a single transaction's page.
type TransactionViewModel struct {
	Transaction *models.Transaction
}

// TransferViewModel holds data for the transfer form.
type TransferViewModel struct {
	Accounts []models.Account
	Error    string
}

// ExportViewModel holds data for the export confirmation page.
type ExportViewModel struct {
	File  string
	Error string
}

// UsersPage renders the list of users with the create form.
func (h *Handlers) UsersPage(c *gin.Context) {
	h.renderUsers(c, "")
}

func (h *Handlers) renderUsers(c *gin.Context, errMsg string) {
	users, err := h.users.FindAll(c.Request.Context())
	if err != nil {
		log.Printf("UsersPage error: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.HTML(http.StatusOK, "users.html", UsersViewModel{Users: users, Error: errMsg})
}

// CreateUserForm handles the user creation form submission.
func (h *Handlers) CreateUserForm(c *gin.Context) {
	firstName := strings.TrimSpace(c.PostForm("firstName"))
	lastName := strings.TrimSpace(c.PostForm("lastName"))

	if _, err := h.users.Create(c.Request.Context(), firstName, lastName); err != nil {
		if errors.Is(err, service.ErrInvalidData) {
			h.renderUsers(c, "First name and last name are required")
			return
		}
		log.Printf("CreateUserForm error: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.Redirect(http.StatusFound, "/users")
}

// UserPage renders one user with their accounts and the new-account form.
func (h *Handlers) UserPage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "User not found")
		return
	}
	h.renderUser(c, id, "")
}

func (h *Handlers) renderUser(c *gin.Context, id int64, errMsg string) {
	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusNotFound, "User not found")
		return
	}
	accounts, err := h.accounts.FindByUserID(c.Request.Context(), id)
	if err != nil {
		log.Printf("UserPage error: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.HTML(http.StatusOK, "user.html", UserViewModel{User: user, Accounts: accounts, Error: errMsg})
}

// CreateAccountForm handles the new-account form on a user's page.
func (h *Handlers) CreateAccountForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "User not found")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	balance := formInt64(c.PostForm("balance"))

	if _, err := h.accounts.Create(c.Request.Context(), name, balance, id); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidData):
			h.renderUser(c, id, "Account needs a name and a non-negative balance")
		case errors.Is(err, service.ErrNotFound):
			c.String(http.StatusNotFound, "User not found")
		default:
			log.Printf("CreateAccountForm error: %v", err)
			c.String(http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	c.Redirect(http.StatusFound, "/users/"+c.Param("id"))
}

// DeleteUserForm deletes a user and everything they own.
func (h *Handlers) DeleteUserForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "User not found")
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.String(http.StatusNotFound, "User not found")
			return
		}
		log.Printf("DeleteUserForm error: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.Redirect(http.StatusFound, "/users")
}

// AccountPage renders one account with its owner and transaction history.
func (h *Handlers) AccountPage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Account not found")
		return
	}

	account, err := h.accounts.FindByID(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusNotFound, "Account not found")
		return
	}
	owner, err := h.users.FindByID(c.Request.Context(), account.OwnerID)
	if err != nil {
		log.Printf("AccountPage error: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	transactions, err := h.transactions.FindAllByAccountID(c.Request.Context(), id)
	if err != nil {
		log.Printf("AccountPage error: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.HTML(http.StatusOK, "account.html", AccountViewModel{
		Account:      account,
		Owner:        owner,
		Transactions: transactions,
	})
}

// DeleteAccountForm deletes an account and its transactions, then returns to
// the owner's page.
func (h *Handlers) DeleteAccountForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Account not found")
		return
	}

	account, err := h.accounts.FindByID(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusNotFound, "Account not found")
		return
	}
	if err := h.accounts.Delete(c.Request.Context(), id); err != nil {
		log.Printf("DeleteAccountForm error: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.Redirect(http.StatusFound, "/users/"+strconv.FormatInt(account.OwnerID, 10))
}

// TransactionsPage renders the system-wide transaction list.
func (h *Handlers) TransactionsPage(c *gin.Context) {
	transactions, err := h.transactions.FindAll(c.Request.Context())
	if err != nil {
		log.Printf("TransactionsPage error: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.HTML(http.StatusOK, "transactions.html", TransactionsViewModel{Transactions: transactions})
}

// TransactionPage renders one transaction.
func (h *Handlers) TransactionPage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Transaction not found")
		return
	}

	transaction, err := h.transactions.FindByID(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusNotFound, "Transaction not found")
		return
	}
	c.HTML(http.StatusOK, "transaction.html", TransactionViewModel{Transaction: transaction})
}

// TransferPage renders the transfer form.
func (h *Handlers) TransferPage(c *gin.Context) {
	h.renderTransfer(c, "")
}

func (h *Handlers) renderTransfer(c *gin.Context, errMsg string) {
	accounts, err := h.accounts.FindAll(c.Request.Context())
	if err != nil {
		log.Printf("TransferPage error: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.HTML(http.StatusOK, "transfer.html", TransferViewModel{Accounts: accounts, Error: errMsg})
}

// TransferForm handles the transfer form submission. Validation failures
// re-render the form with the reason instead of redirecting.
func (h *Handlers) TransferForm(c *gin.Context) {
	amount, _ := strconv.ParseInt(c.PostForm("amount"), 10, 64)
	req := models.TransferRequest{
		SenderAccID:   formInt64(c.PostForm("senderAccId")),
		ReceiverAccID: formInt64(c.PostForm("receiverAccId")),
		Amount:        amount,
		Description:   c.PostForm("description"),
	}

	if err := h.transactions.Transfer(c.Request.Context(), req); err != nil {
		if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrInvalidData) {
			h.renderTransfer(c, err.Error())
			return
		}
		log.Printf("TransferForm error: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.Redirect(http.StatusFound, "/transactions")
}

// ExportPage exports every transaction and renders the confirmation page.
func (h *Handlers) ExportPage(c *gin.Context) {
	file, err := h.transactions.ExportAll(c.Request.Context())
	if err != nil {
		log.Printf("ExportPage error: %v", err)
		c.HTML(http.StatusOK, "export_done.html", ExportViewModel{Error: "Export failed"})
		return
	}
	c.HTML(http.StatusOK, "export_done.html", ExportViewModel{File: file})
}

// ExportAccountPage exports one account's transactions and renders the
// confirmation page.
func (h *Handlers) ExportAccountPage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Account not found")
		return
	}

	file, err := h.transactions.ExportByAccountID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrInvalidData) {
			c.HTML(http.StatusOK, "export_done.html", ExportViewModel{Error: "Unknown account"})
			return
		}
		log.Printf("ExportAccountPage error: %v", err)
		c.HTML(http.StatusOK, "export_done.html", ExportViewModel{Error: "Export failed"})
		return
	}
	c.HTML(http.StatusOK, "export_done.html", ExportViewModel{File: file})
}

// formInt64 parses an optional numeric form value. Empty or malformed input
// yields nil, which downstream reports as not-found.
func formInt64(v string) *int64 {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
