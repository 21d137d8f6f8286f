package service

import (
	"testing"
	"time"

	"github.com/alhadaf/pos/internal/model"
	"github.com/alhadaf/pos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type reportFixture struct {
	db      *gorm.DB
	service ReportService

	txRepo       repository.TransactionRepository
	customerRepo repository.CustomerRepository
	storeRepo    repository.StoreRepository
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	db := testDB(t)
	return &reportFixture{
		db:           db,
		service:      NewReportService(repository.NewTransactionRepo(db), repository.NewProductRepo(db), repository.NewCustomerRepo(db), repository.NewStoreRepo(db)),
		txRepo:       repository.NewTransactionRepo(db),
		customerRepo: repository.NewCustomerRepo(db),
		storeRepo:    repository.NewStoreRepo(db),
	}
}

func (f *reportFixture) addStore(t *testing.T, name string) *model.StoreLocation {
	t.Helper()
	store := &model.StoreLocation{Name: name}
	require.NoError(t, f.storeRepo.Create(store))
	return store
}

func (f *reportFixture) addSale(t *testing.T, storeID uuid.UUID, customerID *uuid.UUID, total float64, ts time.Time) *model.Transaction {
	t.Helper()
	transaction := &model.Transaction{
		TransactionNumber: "T" + uuid.NewString()[:8],
		ReceiptNumber:     "R" + uuid.NewString()[:8],
		StoreID:           storeID,
		CustomerID:        customerID,
		CashierID:         uuid.New(),
		Subtotal:          total,
		Total:             total,
		PaymentMethod:     model.PayCash,
		Timestamp:         ts,
		Status:            model.StatusCompleted,
	}
	require.NoError(t, f.txRepo.Create(f.db, transaction))
	return transaction
}

func TestBranchAnalyticsScopesToStore(t *testing.T) {
	f := newReportFixture(t)
	downtown := f.addStore(t, "Downtown")
	uptown := f.addStore(t, "Uptown")

	end := time.Now()
	start := end.AddDate(0, 0, -7)

	f.addSale(t, downtown.ID, nil, 100, end.Add(-time.Hour))
	f.addSale(t, downtown.ID, nil, 50, end.Add(-2*time.Hour))
	f.addSale(t, uptown.ID, nil, 999, end.Add(-time.Hour))

	report, err := f.service.BranchAnalytics(downtown.ID, start, end)
	require.NoError(t, err)
	require.Equal(t, downtown.ID, report.StoreID)
	require.Equal(t, "Downtown", report.StoreName)
	require.Equal(t, 150.0, report.Sales.TotalRevenue)
	require.Equal(t, 2, report.Sales.TotalTransactions)
}

func TestBranchAnalyticsGrowth(t *testing.T) {
	f := newReportFixture(t)
	store := f.addStore(t, "Downtown")

	end := time.Now()
	start := end.AddDate(0, 0, -7)

	f.addSale(t, store.ID, nil, 20, start.AddDate(0, 0, -2)) // previous window
	f.addSale(t, store.ID, nil, 60, end.Add(-time.Hour))     // current window

	report, err := f.service.BranchAnalytics(store.ID, start, end)
	require.NoError(t, err)
	require.Equal(t, 60.0, report.Sales.TotalRevenue)
	require.Equal(t, 200.0, report.Sales.SalesGrowth)
}

func TestBranchAnalyticsUnknownStore(t *testing.T) {
	f := newReportFixture(t)
	_, err := f.service.BranchAnalytics(uuid.New(), time.Now().AddDate(0, 0, -7), time.Now())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAllBranchesAnalyticsOrder(t *testing.T) {
	f := newReportFixture(t)
	downtown := f.addStore(t, "Downtown")
	uptown := f.addStore(t, "Uptown")
	airport := f.addStore(t, "Airport")

	end := time.Now()
	reports, err := f.service.AllBranchesAnalytics(end.AddDate(0, 0, -7), end)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	require.Equal(t, downtown.ID, reports[0].StoreID)
	require.Equal(t, uptown.ID, reports[1].StoreID)
	require.Equal(t, airport.ID, reports[2].StoreID)
}

func TestBranchCustomerMetrics(t *testing.T) {
	f := newReportFixture(t)
	store := f.addStore(t, "Downtown")

	end := time.Now()
	start := end.AddDate(0, 0, -7)

	// Regular existed before the window and came back inside it.
	regular := &model.Customer{
		FirstName: "Alice", LastName: "Williams", Email: "alice@example.com",
		LoyaltyCard: model.LoyaltyCard{Number: "LC001234", IsActive: true},
	}
	require.NoError(t, f.customerRepo.Create(regular))
	require.NoError(t, f.db.Model(regular).Update("created_at", start.AddDate(0, -1, 0)).Error)

	f.addSale(t, store.ID, &regular.ID, 30, start.AddDate(0, 0, -1))
	f.addSale(t, store.ID, &regular.ID, 40, end.Add(-time.Hour))

	// Newcomer was created inside the window and bought here.
	newcomer := &model.Customer{FirstName: "Bob", LastName: "Nguyen", Email: "bob@example.com"}
	require.NoError(t, f.customerRepo.Create(newcomer))
	require.NoError(t, f.db.Model(newcomer).Update("created_at", end.Add(-time.Hour)).Error)
	f.addSale(t, store.ID, &newcomer.ID, 10, end.Add(-time.Hour))

	report, err := f.service.BranchAnalytics(store.ID, start, end)
	require.NoError(t, err)
	require.Equal(t, 2, report.Customers.UniqueCustomers)
	require.Equal(t, 1, report.Customers.NewCustomers)
	require.Equal(t, 1, report.Customers.ReturningCustomers)
	require.Equal(t, 1, report.Customers.LoyaltyActive)
}

func TestFinancialReport(t *testing.T) {
	f := newReportFixture(t)
	store := f.addStore(t, "Downtown")

	end := time.Now()
	start := end.AddDate(0, 0, -7)

	sale := f.addSale(t, store.ID, nil, 108.75, end.Add(-time.Hour))
	require.NoError(t, f.db.Model(sale).Updates(map[string]interface{}{
		"tax":      8.75,
		"discount": 5.00,
	}).Error)

	report, err := f.service.Financial(start, end)
	require.NoError(t, err)
	require.Equal(t, 108.75, report.TotalRevenue)
	require.Equal(t, 8.75, report.TotalTax)
	require.Equal(t, 5.00, report.TotalDiscounts)
	require.Equal(t, 100.0, report.NetRevenue)
}

func TestCustomerReport(t *testing.T) {
	f := newReportFixture(t)
	store := f.addStore(t, "Downtown")

	end := time.Now()
	start := end.AddDate(0, 0, -7)

	gold := &model.Customer{
		FirstName: "Alice", LastName: "Williams", Email: "alice@example.com",
		LoyaltyCard: model.LoyaltyCard{Number: "LC001234", Tier: model.TierGold, IsActive: true},
	}
	require.NoError(t, f.customerRepo.Create(gold))
	casual := &model.Customer{FirstName: "Bob", LastName: "Nguyen", Email: "bob@example.com"}
	require.NoError(t, f.customerRepo.Create(casual))

	f.addSale(t, store.ID, &gold.ID, 200, end.Add(-time.Hour))
	f.addSale(t, store.ID, &casual.ID, 50, end.Add(-time.Hour))

	report, err := f.service.Customers(start, end)
	require.NoError(t, err)
	require.Equal(t, 2, report.TotalCustomers)
	require.Equal(t, 1, report.LoyaltyMembers)
	require.Equal(t, 50.0, report.LoyaltyRate)
	require.Equal(t, 1, report.TierDistribution[model.TierGold])

	require.NotEmpty(t, report.TopCustomers)
	require.Equal(t, gold.ID, report.TopCustomers[0].CustomerID)
	require.Equal(t, 200.0, report.TopCustomers[0].TotalSpent)
}

func TestSummaryReportHasAllHourBuckets(t *testing.T) {
	f := newReportFixture(t)
	store := f.addStore(t, "Downtown")

	end := time.Now()
	start := end.AddDate(0, 0, -7)
	f.addSale(t, store.ID, nil, 25, end.Add(-time.Hour))

	report, err := f.service.Summary(start, end)
	require.NoError(t, err)
	require.Len(t, report.SalesByHour, 24)
	require.Equal(t, 25.0, report.Sales.TotalRevenue)
}
