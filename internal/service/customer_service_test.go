package service

import (
	"testing"
	"time"

	"github.com/alhadaf/pos/internal/model"
	"github.com/alhadaf/pos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomerRejectsDuplicateEmail(t *testing.T) {
	db := testDB(t)
	service := NewCustomerService(repository.NewCustomerRepo(db), repository.NewTransactionRepo(db), 10)

	alice := &model.Customer{FirstName: "Alice", LastName: "Williams", Email: "alice@example.com"}
	require.NoError(t, service.CreateCustomer(alice, "u1"))

	dup := &model.Customer{FirstName: "Alicia", LastName: "Walters", Email: "alice@example.com"}
	require.ErrorIs(t, service.CreateCustomer(dup, "u1"), ErrDuplicateEmail)
}

func TestCustomerSearch(t *testing.T) {
	db := testDB(t)
	service := NewCustomerService(repository.NewCustomerRepo(db), repository.NewTransactionRepo(db), 10)

	alice := &model.Customer{
		FirstName: "Alice", LastName: "Williams", Email: "alice@example.com",
		PhoneNumber: "555-0142",
		LoyaltyCard: model.LoyaltyCard{Number: "LC001234"},
	}
	require.NoError(t, service.CreateCustomer(alice, "u1"))
	bob := &model.Customer{FirstName: "Bob", LastName: "Nguyen", Email: "bob@example.com"}
	require.NoError(t, service.CreateCustomer(bob, "u1"))

	for _, query := range []string{"alice", "Williams", "555-0142", "LC001234"} {
		found, err := service.SearchCustomers(query)
		require.NoError(t, err, query)
		require.Len(t, found, 1, query)
		require.Equal(t, alice.ID, found[0].ID, query)
	}

	found, err := service.SearchCustomers("")
	require.NoError(t, err)
	require.Len(t, found, 2)
}

func TestCustomerProfileDerivesFromLedger(t *testing.T) {
	db := testDB(t)
	txRepo := repository.NewTransactionRepo(db)
	service := NewCustomerService(repository.NewCustomerRepo(db), txRepo, 10)

	// Stored aggregates are stale on purpose; the profile must ignore them.
	alice := &model.Customer{
		FirstName: "Alice", LastName: "Williams", Email: "alice@example.com",
		TotalSpent: 9999, AverageOrderValue: 9999,
	}
	require.NoError(t, service.CreateCustomer(alice, "u1"))

	store := &model.StoreLocation{Name: "Downtown"}
	require.NoError(t, repository.NewStoreRepo(db).Create(store))

	first := time.Now().Add(-48 * time.Hour)
	last := time.Now().Add(-time.Hour)
	for i, sale := range []struct {
		total float64
		ts    time.Time
	}{{30, first}, {50, last}} {
		transaction := &model.Transaction{
			TransactionNumber: "T" + uuid.NewString()[:8],
			ReceiptNumber:     "R" + uuid.NewString()[:8],
			StoreID:           store.ID,
			CustomerID:        &alice.ID,
			CashierID:         uuid.New(),
			Subtotal:          sale.total,
			Total:             sale.total,
			PaymentMethod:     model.PayCash,
			Timestamp:         sale.ts,
			Status:            model.StatusCompleted,
		}
		require.NoError(t, txRepo.Create(db, transaction), i)
	}

	profile, err := service.GetProfile(alice.ID)
	require.NoError(t, err)
	require.Equal(t, 80.0, profile.TotalSpent)
	require.Equal(t, 40.0, profile.AverageOrderValue)
	require.Equal(t, 2, profile.TransactionCount)
	require.NotNil(t, profile.LastVisit)
	require.WithinDuration(t, last, *profile.LastVisit, time.Second)
}

func TestCustomerProfileEmptyLedger(t *testing.T) {
	db := testDB(t)
	service := NewCustomerService(repository.NewCustomerRepo(db), repository.NewTransactionRepo(db), 10)

	alice := &model.Customer{FirstName: "Alice", LastName: "Williams", Email: "alice@example.com"}
	require.NoError(t, service.CreateCustomer(alice, "u1"))

	profile, err := service.GetProfile(alice.ID)
	require.NoError(t, err)
	require.Equal(t, 0.0, profile.TotalSpent)
	require.Equal(t, 0.0, profile.AverageOrderValue)
	require.Equal(t, 0, profile.TransactionCount)
	require.Nil(t, profile.LastVisit)
}

func TestGetProfileUnknownCustomer(t *testing.T) {
	db := testDB(t)
	service := NewCustomerService(repository.NewCustomerRepo(db), repository.NewTransactionRepo(db), 10)

	_, err := service.GetProfile(uuid.New())
	require.ErrorIs(t, err, repository.ErrNotFound)
}
