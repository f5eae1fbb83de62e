// Package handlers wires the HTTP surface: a JSON REST API under /api and a
// set of server-rendered pages backed by the same services.
package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/LuckyIntegral/My-finances/internal/middleware"
	"github.com/LuckyIntegral/My-finances/internal/service"
	"github.com/gin-gonic/gin"
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	users        *service.UserService
	accounts     *service.AccountService
	transactions *service.TransactionService
}

// New creates a new Handlers instance.
func New(users *service.UserService, accounts *service.AccountService, transactions *service.TransactionService) *Handlers {
	return &Handlers{users: users, accounts: accounts, transactions: transactions}
}

// RegisterRoutes attaches every API and web route to the engine. Web routes
// require HTML templates to be loaded on the engine before serving.
func (h *Handlers) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/users", h.CreateUser)
		api.GET("/users", h.ListUsers)
		api.GET("/users/:id", h.GetUser)
		api.PUT("/users/:id", h.UpdateUser)
		api.DELETE("/users/:id", h.DeleteUser)
		api.POST("/users/:id/accounts", h.CreateAccount)
		api.GET("/users/:id/accounts", h.ListUserAccounts)

		api.GET("/accounts", h.ListAccounts)
		api.GET("/accounts/:id", h.GetAccount)
		api.PUT("/accounts/:id", h.UpdateAccount)
		api.DELETE("/accounts/:id", h.DeleteAccount)
		api.GET("/accounts/:id/transactions", h.ListAccountTransactions)

		api.POST("/transactions", h.CreateTransfer)
		api.GET("/transactions", h.ListTransactions)
		api.GET("/transactions/:id", h.GetTransaction)

		api.POST("/export", h.ExportAllCSV)
		api.POST("/export/:id", h.ExportAccountCSV)
	}

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/users")
	})
	r.GET("/users", h.UsersPage)
	r.POST("/users", h.CreateUserForm)
	r.GET("/users/:id", h.UserPage)
	r.POST("/users/:id/accounts", h.CreateAccountForm)
	r.POST("/users/:id/delete", h.DeleteUserForm)
	r.GET("/accounts/:id", h.AccountPage)
	r.POST("/accounts/:id/delete", h.DeleteAccountForm)
	r.GET("/transactions", h.TransactionsPage)
	r.GET("/transactions/:id", h.TransactionPage)
	r.GET("/transfer", h.TransferPage)
	r.POST("/transfer", h.TransferForm)
	r.GET("/export", h.ExportPage)
	r.GET("/export/:id", h.ExportAccountPage)
}

// apiError maps domain errors onto status codes: not-found to 404, invalid
// data to 400, everything else to 500.
func apiError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidData):
		middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("internal error: %v", err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "internal server error")
	}
}

// pathID parses the :id path parameter, responding 400 on garbage.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
