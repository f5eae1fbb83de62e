package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/LuckyIntegral/My-finances/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// DBTestSuite provides a test suite for database operations
type DBTestSuite struct {
	suite.Suite
	db  *DB
	ctx context.Context
}

// SetupTest runs before each test
func (suite *DBTestSuite) SetupTest() {
	db, err := NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db
	suite.ctx = context.Background()
}

// TearDownTest runs after each test
func (suite *DBTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *DBTestSuite) TestCreateUser() {
	user, err := suite.db.CreateUser(suite.ctx, "John", "Doe")
	require.NoError(suite.T(), err)
	assert.NotZero(suite.T(), user.ID, "expected a generated id")
	assert.Equal(suite.T(), "John", user.FirstName)

	got, err := suite.db.GetUser(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), user, got)
}

func (suite *DBTestSuite) TestGetUserMissing() {
	_, err := suite.db.GetUser(suite.ctx, 42)
	assert.ErrorIs(suite.T(), err, sql.ErrNoRows)
}

func (suite *DBTestSuite) TestListUsers() {
	_, err := suite.db.CreateUser(suite.ctx, "John", "Doe")
	require.NoError(suite.T(), err)
	_, err = suite.db.CreateUser(suite.ctx, "Jane", "Roe")
	require.NoError(suite.T(), err)

	users, err := suite.db.ListUsers(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), users, 2)
	assert.Equal(suite.T(), "John", users[0].FirstName, "expected insertion order")
}

func (suite *DBTestSuite) TestCreateAndListAccountsByOwner() {
	owner, err := suite.db.CreateUser(suite.ctx, "John", "Doe")
	require.NoError(suite.T(), err)
	other, err := suite.db.CreateUser(suite.ctx, "Jane", "Roe")
	require.NoError(suite.T(), err)

	_, err = suite.db.CreateAccount(suite.ctx, "Main", 500, owner.ID)
	require.NoError(suite.T(), err)
	_, err = suite.db.CreateAccount(suite.ctx, "Savings", 100, owner.ID)
	require.NoError(suite.T(), err)
	_, err = suite.db.CreateAccount(suite.ctx, "Other", 0, other.ID)
	require.NoError(suite.T(), err)

	accounts, err := suite.db.ListAccountsByOwner(suite.ctx, owner.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), accounts, 2)
	for _, a := range accounts {
		assert.Equal(suite.T(), owner.ID, a.OwnerID)
	}
}

func (suite *DBTestSuite) TestUpdateAccountLeavesOwnerUntouched() {
	owner, err := suite.db.CreateUser(suite.ctx, "John", "Doe")
	require.NoError(suite.T(), err)
	account, err := suite.db.CreateAccount(suite.ctx, "Main", 500, owner.ID)
	require.NoError(suite.T(), err)

	account.Name = "Renamed"
	account.Balance = 300
	account.OwnerID = 999 // must not be written
	require.NoError(suite.T(), suite.db.UpdateAccount(suite.ctx, account))

	got, err := suite.db.GetAccount(suite.ctx, account.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Renamed", got.Name)
	assert.Equal(suite.T(), int64(300), got.Balance)
	assert.Equal(suite.T(), owner.ID, got.OwnerID, "owner column must be preserved")
}

func (suite *DBTestSuite) TestCreateAndListTransactions() {
	owner, err := suite.db.CreateUser(suite.ctx, "John", "Doe")
	require.NoError(suite.T(), err)
	account, err := suite.db.CreateAccount(suite.ctx, "Main", 500, owner.ID)
	require.NoError(suite.T(), err)

	now := time.Now()
	_, err = suite.db.CreateTransaction(suite.ctx, models.Expense, 200, account.ID, "Rent", now)
	require.NoError(suite.T(), err)
	_, err = suite.db.CreateTransaction(suite.ctx, models.Profit, 50, account.ID, "Refund", now)
	require.NoError(suite.T(), err)

	transactions, err := suite.db.ListTransactionsByAccount(suite.ctx, account.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), transactions, 2)
	assert.Equal(suite.T(), models.Expense, transactions[0].Type)
	assert.Equal(suite.T(), models.Profit, transactions[1].Type)
}

func (suite *DBTestSuite) TestListTransactionsUnknownAccount() {
	transactions, err := suite.db.ListTransactionsByAccount(suite.ctx, 42)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), transactions)
}

func (suite *DBTestSuite) TestDeleteTransactionsByAccount() {
	owner, err := suite.db.CreateUser(suite.ctx, "John", "Doe")
	require.NoError(suite.T(), err)
	account, err := suite.db.CreateAccount(suite.ctx, "Main", 500, owner.ID)
	require.NoError(suite.T(), err)
	_, err = suite.db.CreateTransaction(suite.ctx, models.Expense, 200, account.ID, "Rent", time.Now())
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.db.DeleteTransactionsByAccount(suite.ctx, account.ID))

	transactions, err := suite.db.ListTransactionsByAccount(suite.ctx, account.ID)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), transactions)
}

func (suite *DBTestSuite) TestInTxCommit() {
	err := suite.db.InTx(suite.ctx, sql.LevelDefault, func(st *Store) error {
		_, err := st.CreateUser(suite.ctx, "John", "Doe")
		return err
	})
	require.NoError(suite.T(), err)

	users, err := suite.db.ListUsers(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), users, 1)
}

func (suite *DBTestSuite) TestInTxRollback() {
	boom := errors.New("boom")
	err := suite.db.InTx(suite.ctx, sql.LevelDefault, func(st *Store) error {
		if _, err := st.CreateUser(suite.ctx, "John", "Doe"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(suite.T(), err, boom)

	users, err := suite.db.ListUsers(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), users, "rollback must discard every write")
}

func (suite *DBTestSuite) TestInTxSerializable() {
	err := suite.db.InTx(suite.ctx, sql.LevelSerializable, func(st *Store) error {
		_, err := st.CreateUser(suite.ctx, "John", "Doe")
		return err
	})
	require.NoError(suite.T(), err, "serializable transactions must be supported")
}

// Test suite runner
func TestDBSuite(t *testing.T) {
	suite.Run(t, new(DBTestSuite))
}
