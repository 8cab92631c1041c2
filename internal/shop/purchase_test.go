package shop

import (
	"testing"

	"Account-Shop-Telegram-bot/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*store.Store, *Service) {
	t.Helper()
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	return st, NewService(st)
}

func seedProduct(t *testing.T, st *store.Store, name string, price float64, accounts ...string) int {
	t.Helper()
	id, err := st.SaveProduct(store.Product{Name: name, Price: price})
	require.NoError(t, err)
	if len(accounts) > 0 {
		_, err = st.AddAccounts(id, accounts)
		require.NoError(t, err)
	}
	return id
}

func TestPurchaseHappyPath(t *testing.T) {
	st, sv := newTestService(t)
	require.NoError(t, st.AddUser(store.User{ID: 10, Username: "alice", Balance: 60000}))
	id := seedProduct(t, st, "Netflix", 50000, "mail@example.com:pass")

	receipt, err := sv.Purchase(10, id)
	require.NoError(t, err)
	assert.Equal(t, "Netflix", receipt.ProductName)
	assert.Equal(t, 50000.0, receipt.Price)
	assert.Equal(t, 10000.0, receipt.NewBalance)
	assert.Equal(t, "mail@example.com:pass", receipt.AccountData)

	user, err := st.GetUser(10)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, user.Balance)
	require.Len(t, user.Purchases, 1)
	assert.Equal(t, id, user.Purchases[0].ProductID)
	assert.Equal(t, "mail@example.com:pass", user.Purchases[0].AccountData)
	assert.NotEmpty(t, user.Purchases[0].ID)

	count, err := st.CountAvailable(id)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPurchaseOutOfStockLeavesUserUntouched(t *testing.T) {
	st, sv := newTestService(t)
	require.NoError(t, st.AddUser(store.User{ID: 10, Balance: 60000}))
	id := seedProduct(t, st, "Netflix", 50000)

	_, err := sv.Purchase(10, id)
	assert.ErrorIs(t, err, ErrOutOfStock)

	user, err := st.GetUser(10)
	require.NoError(t, err)
	assert.Equal(t, 60000.0, user.Balance)
	assert.Empty(t, user.Purchases)
}

func TestPurchaseInsufficientBalance(t *testing.T) {
	st, sv := newTestService(t)
	require.NoError(t, st.AddUser(store.User{ID: 10, Balance: 10000}))
	id := seedProduct(t, st, "Netflix", 50000, "a:1")

	_, err := sv.Purchase(10, id)
	var insufficient *InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 40000.0, insufficient.Shortfall())

	// ни баланс, ни склад не тронуты
	user, err := st.GetUser(10)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, user.Balance)

	count, err := st.CountAvailable(id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFreeProductClaimedOnce(t *testing.T) {
	st, sv := newTestService(t)
	require.NoError(t, st.AddUser(store.User{ID: 10, Balance: 0}))
	id := seedProduct(t, st, "Trial", 0, "free:1", "free:2")

	receipt, err := sv.Purchase(10, id)
	require.NoError(t, err)
	assert.Equal(t, 0.0, receipt.Price)
	assert.Equal(t, 0.0, receipt.NewBalance)

	_, err = sv.Purchase(10, id)
	assert.ErrorIs(t, err, ErrAlreadyClaimedFree)

	// повторная попытка не расходует склад
	count, err := st.CountAvailable(id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFreeProductOtherUserStillEligible(t *testing.T) {
	st, sv := newTestService(t)
	require.NoError(t, st.AddUser(store.User{ID: 10}))
	require.NoError(t, st.AddUser(store.User{ID: 11}))
	id := seedProduct(t, st, "Trial", 0, "free:1", "free:2")

	_, err := sv.Purchase(10, id)
	require.NoError(t, err)
	_, err = sv.Purchase(11, id)
	require.NoError(t, err)
}

func TestPurchaseUnknownProduct(t *testing.T) {
	st, sv := newTestService(t)
	require.NoError(t, st.AddUser(store.User{ID: 10}))

	_, err := sv.Purchase(10, 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestPurchaseUnknownUser(t *testing.T) {
	st, sv := newTestService(t)
	id := seedProduct(t, st, "Netflix", 50000, "a:1")

	_, err := sv.Purchase(99, id)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPurchaseExactBalance(t *testing.T) {
	st, sv := newTestService(t)
	require.NoError(t, st.AddUser(store.User{ID: 10, Balance: 50000}))
	id := seedProduct(t, st, "Netflix", 50000, "a:1")

	receipt, err := sv.Purchase(10, id)
	require.NoError(t, err)
	assert.Equal(t, 0.0, receipt.NewBalance)
}

func TestCredit(t *testing.T) {
	st, sv := newTestService(t)
	require.NoError(t, st.AddUser(store.User{ID: 10, Balance: 1000}))

	balance, err := sv.Credit(10, 500)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, balance)

	_, err = sv.Credit(10, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = sv.Credit(10, -100)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = sv.Credit(99, 500)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
