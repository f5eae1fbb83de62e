package handlers

import (
	"net/http"

	"github.com/LuckyIntegral/My-finances/internal/middleware"
	"github.com/LuckyIntegral/My-finances/internal/models"
	"github.com/gin-gonic/gin"
)

type userRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type accountRequest struct {
	Name    string `json:"name" validate:"required"`
	Balance *int64 `json:"balance" validate:"required,gte=0"`
}

type transferRequest struct {
	SenderAccID   *int64 `json:"senderAccId"`
	ReceiverAccID *int64 `json:"receiverAccId"`
	Amount        int64  `json:"amount"`
	Description   string `json:"description"`
}

type userDetailsResponse struct {
	models.User
	Accounts []models.Account `json:"accounts"`
}

type accountDetailsResponse struct {
	models.Account
	Transactions []models.Transaction `json:"transactions"`
}

type exportResponse struct {
	File string `json:"file"`
}

// CreateUser handles POST /api/users.
func (h *Handlers) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.FirstName, req.LastName)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// ListUsers handles GET /api/users.
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.users.FindAll(c.Request.Context())
	if err != nil {
		apiError(c, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /api/users/:id. The response embeds the user's accounts.
func (h *Handlers) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		apiError(c, err)
		return
	}
	accounts, err := h.accounts.FindByUserID(c.Request.Context(), id)
	if err != nil {
		apiError(c, err)
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	c.JSON(http.StatusOK, userDetailsResponse{User: *user, Accounts: accounts})
}

// UpdateUser handles PUT /api/users/:id.
func (h *Handlers) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, req.FirstName, req.LastName)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/users/:id. Deletion cascades to the user's
// accounts and their transactions.
func (h *Handlers) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		apiError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateAccount handles POST /api/users/:id/accounts.
func (h *Handlers) CreateAccount(c *gin.Context) {
	ownerID, ok := pathID(c)
	if !ok {
		return
	}

	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.accounts.Create(c.Request.Context(), req.Name, req.Balance, ownerID)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

// ListUserAccounts handles GET /api/users/:id/accounts.
func (h *Handlers) ListUserAccounts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	accounts, err := h.accounts.FindByUserID(c.Request.Context(), id)
	if err != nil {
		apiError(c, err)
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	c.JSON(http.StatusOK, accounts)
}

// ListAccounts handles GET /api/accounts.
func (h *Handlers) ListAccounts(c *gin.Context) {
	accounts, err := h.accounts.FindAll(c.Request.Context())
	if err != nil {
		apiError(c, err)
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	c.JSON(http.StatusOK, accounts)
}

// GetAccount handles GET /api/accounts/:id. The response embeds the account's
// transactions.
func (h *Handlers) GetAccount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	account, err := h.accounts.FindByID(c.Request.Context(), id)
	if err != nil {
		apiError(c, err)
		return
	}
	transactions, err := h.transactions.FindAllByAccountID(c.Request.Context(), id)
	if err != nil {
		apiError(c, err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	c.JSON(http.StatusOK, accountDetailsResponse{Account: *account, Transactions: transactions})
}

// UpdateAccount handles PUT /api/accounts/:id. The owner in the request body,
// if any, is ignored: the original owner is preserved.
func (h *Handlers) UpdateAccount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.accounts.Update(c.Request.Context(), id, req.Name, req.Balance)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// DeleteAccount handles DELETE /api/accounts/:id. Deletion cascades to the
// account's transactions.
func (h *Handlers) DeleteAccount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.accounts.Delete(c.Request.Context(), id); err != nil {
		apiError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAccountTransactions handles GET /api/accounts/:id/transactions.
func (h *Handlers) ListAccountTransactions(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	transactions, err := h.transactions.FindAllByAccountID(c.Request.Context(), id)
	if err != nil {
		apiError(c, err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	c.JSON(http.StatusOK, transactions)
}

// CreateTransfer handles POST /api/transactions.
func (h *Handlers) CreateTransfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.transactions.Transfer(c.Request.Context(), models.TransferRequest{
		SenderAccID:   req.SenderAccID,
		ReceiverAccID: req.ReceiverAccID,
		Amount:        req.Amount,
		Description:   req.Description,
	})
	if err != nil {
		apiError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// ListTransactions handles GET /api/transactions.
func (h *Handlers) ListTransactions(c *gin.Context) {
	transactions, err := h.transactions.FindAll(c.Request.Context())
	if err != nil {
		apiError(c, err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	c.JSON(http.StatusOK, transactions)
}

// GetTransaction handles GET /api/transactions/:id.
func (h *Handlers) GetTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	transaction, err := h.transactions.FindByID(c.Request.Context(), id)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// ExportAllCSV handles POST /api/export.
func (h *Handlers) ExportAllCSV(c *gin.Context) {
	file, err := h.transactions.ExportAll(c.Request.Context())
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, exportResponse{File: file})
}

// ExportAccountCSV handles POST /api/export/:id.
func (h *Handlers) ExportAccountCSV(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	file, err := h.transactions.ExportByAccountID(c.Request.Context(), id)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, exportResponse{File: file})
}
