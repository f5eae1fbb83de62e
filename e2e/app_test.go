package e2e

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite drives the compiled server binary over HTTP, walking the
// same pages and forms a person would.
type E2ETestSuite struct {
	suite.Suite
	client *http.Client
}

// SetupSuite runs once before all tests
func (suite *E2ETestSuite) SetupSuite() {
	// Redirects are asserted explicitly, so the client must not follow them.
	suite.client = &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (suite *E2ETestSuite) get(path string) (int, string) {
	resp, err := suite.client.Get(appURL + path)
	require.NoError(suite.T(), err, "GET %s failed", path)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(suite.T(), err, "failed to read body of %s", path)
	return resp.StatusCode, string(body)
}

func (suite *E2ETestSuite) postForm(path string, form url.Values) *http.Response {
	resp, err := suite.client.Post(appURL+path,
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(suite.T(), err, "POST %s failed", path)
	resp.Body.Close()
	return resp
}

func (suite *E2ETestSuite) TestCompleteUserFlow() {
	// Homepage redirects to the users page
	resp, err := suite.client.Get(appURL + "/")
	require.NoError(suite.T(), err)
	resp.Body.Close()
	require.Equal(suite.T(), http.StatusFound, resp.StatusCode)
	assert.Equal(suite.T(), "/users", resp.Header.Get("Location"))

	// Create two users through the form
	resp = suite.postForm("/users", url.Values{"firstName": {"Alice"}, "lastName": {"Smith"}})
	require.Equal(suite.T(), http.StatusFound, resp.StatusCode, "creating a user must redirect")
	resp = suite.postForm("/users", url.Values{"firstName": {"Bob"}, "lastName": {"Jones"}})
	require.Equal(suite.T(), http.StatusFound, resp.StatusCode)

	code, body := suite.get("/users")
	require.Equal(suite.T(), http.StatusOK, code)
	assert.Contains(suite.T(), body, "Alice Smith")
	assert.Contains(suite.T(), body, "Bob Jones")

	// Open an account for each user
	resp = suite.postForm("/users/1/accounts", url.Values{"name": {"Main"}, "balance": {"500"}})
	require.Equal(suite.T(), http.StatusFound, resp.StatusCode, "creating an account must redirect")
	resp = suite.postForm("/users/2/accounts", url.Values{"name": {"Savings"}, "balance": {"100"}})
	require.Equal(suite.T(), http.StatusFound, resp.StatusCode)

	code, body = suite.get("/users/1")
	require.Equal(suite.T(), http.StatusOK, code)
	assert.Contains(suite.T(), body, "Main")

	// Move money between the two accounts
	resp = suite.postForm("/transfer", url.Values{
		"senderAccId":   {"1"},
		"receiverAccId": {"2"},
		"amount":        {"200"},
		"description":   {"Rent"},
	})
	require.Equal(suite.T(), http.StatusFound, resp.StatusCode, "a valid transfer must redirect")
	assert.Equal(suite.T(), "/transactions", resp.Header.Get("Location"))

	code, body = suite.get("/transactions")
	require.Equal(suite.T(), http.StatusOK, code)
	assert.Contains(suite.T(), body, "Rent")
	assert.Contains(suite.T(), body, "Replenishment from Alice Smith")

	// Balances reflect the transfer on both sides
	code, body = suite.get("/accounts/1")
	require.Equal(suite.T(), http.StatusOK, code)
	assert.Contains(suite.T(), body, "300")

	code, body = suite.get("/accounts/2")
	require.Equal(suite.T(), http.StatusOK, code)
	assert.Contains(suite.T(), body, "300")

	// The same data is visible over the API
	code, body = suite.get("/api/accounts/1")
	require.Equal(suite.T(), http.StatusOK, code)
	assert.Contains(suite.T(), body, `"balance":300`)
	assert.Contains(suite.T(), body, `"transactionType":"EXPENSE"`)

	// Export the history to CSV
	code, body = suite.get("/export")
	require.Equal(suite.T(), http.StatusOK, code)
	assert.Contains(suite.T(), body, "Export complete")
	assert.Contains(suite.T(), body, "Transactions.csv")
}

func (suite *E2ETestSuite) TestRejectedTransferStaysOnForm() {
	resp := suite.postForm("/transfer", url.Values{
		"senderAccId":   {"4242"},
		"receiverAccId": {"4243"},
		"amount":        {"10"},
	})
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode, "a failed transfer re-renders the form")
}

// TestE2ESuite runs the e2e test suite
func TestE2ESuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
