package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/LuckyIntegral/My-finances/internal/handlers"
	"github.com/LuckyIntegral/My-finances/internal/service"
	"github.com/LuckyIntegral/My-finances/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Use relative paths for tests running in cmd/server
	if _, err := os.Stat("../../web/templates"); os.IsNotExist(err) {
		t.Skip("Template directory not found, skipping router test")
	}

	db, err := storage.NewDB(":memory:")
	require.NoError(t, err, "failed to create database")
	defer db.Close()

	users := service.NewUserService(db)
	accounts := service.NewAccountService(db)
	transactions := service.NewTransactionService(db, t.TempDir())
	h := handlers.New(users, accounts, transactions)

	// Creating the router panics if there is a route conflict
	r := setupRouter(h, "../../web/templates")

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "Root redirects to /users",
			method:     http.MethodGet,
			path:       "/",
			wantStatus: http.StatusFound,
		},
		{
			name:       "Users page renders",
			method:     http.MethodGet,
			path:       "/users",
			wantStatus: http.StatusOK,
		},
		{
			name:       "API lists users",
			method:     http.MethodGet,
			path:       "/api/users",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Unknown page is a 404",
			method:     http.MethodGet,
			path:       "/nope",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code,
				"%s %s returned unexpected status", tt.method, tt.path)
		})
	}
}

func TestSetupRouterSetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	if _, err := os.Stat("../../web/templates"); os.IsNotExist(err) {
		t.Skip("Template directory not found, skipping router test")
	}

	db, err := storage.NewDB(":memory:")
	require.NoError(t, err, "failed to create database")
	defer db.Close()

	h := handlers.New(
		service.NewUserService(db),
		service.NewAccountService(db),
		service.NewTransactionService(db, t.TempDir()),
	)
	r := setupRouter(h, "../../web/templates")

	req := httptest.NewRequest(http.MethodGet, "/api/users", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// A caller-provided id is passed through.
	req = httptest.NewRequest(http.MethodGet, "/api/users", http.NoBody)
	req.Header.Set("X-Request-ID", "test-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "test-id", w.Header().Get("X-Request-ID"))
}
