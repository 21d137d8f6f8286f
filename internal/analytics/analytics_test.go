package analytics

import (
	"testing"
	"time"

	"github.com/alhadaf/pos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func tx(total float64, ts time.Time) model.Transaction {
	return model.Transaction{
		Total:         total,
		Timestamp:     ts,
		PaymentMethod: model.PayCash,
		Status:        model.StatusCompleted,
	}
}

func customerTx(customerID uuid.UUID, total float64, ts time.Time) model.Transaction {
	t := tx(total, ts)
	t.CustomerID = &customerID
	return t
}

func TestRevenueAndVolume(t *testing.T) {
	now := time.Now()

	t.Run("empty ledger is all zeros", func(t *testing.T) {
		s := RevenueAndVolume(nil)
		require.Equal(t, 0.0, s.TotalRevenue)
		require.Equal(t, 0, s.TotalTransactions)
		require.Equal(t, 0.0, s.AverageOrderValue)
	})

	t.Run("averages over transaction count", func(t *testing.T) {
		s := RevenueAndVolume([]model.Transaction{
			tx(10, now), tx(20, now), tx(30, now),
		})
		require.Equal(t, 60.0, s.TotalRevenue)
		require.Equal(t, 3, s.TotalTransactions)
		require.Equal(t, 20.0, s.AverageOrderValue)
	})

	t.Run("splitting the ledger preserves the revenue sum", func(t *testing.T) {
		all := []model.Transaction{tx(5, now), tx(7, now), tx(11, now), tx(13, now)}
		whole := RevenueAndVolume(all)
		left := RevenueAndVolume(all[:2])
		right := RevenueAndVolume(all[2:])
		require.Equal(t, whole.TotalRevenue, left.TotalRevenue+right.TotalRevenue)
		require.Equal(t, whole.TotalTransactions, left.TotalTransactions+right.TotalTransactions)
	})
}

func TestGrowth(t *testing.T) {
	require.Equal(t, 0.0, Growth(500, 0))
	require.Equal(t, 0.0, Growth(0, 0))
	require.Equal(t, 100.0, Growth(200, 100))
	require.Equal(t, -50.0, Growth(50, 100))
}

func TestWindowedGrowth(t *testing.T) {
	start := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	all := []model.Transaction{
		tx(20, start.AddDate(0, 0, -3)), // previous window
		tx(60, start.AddDate(0, 0, 2)),  // current window
	}
	require.Equal(t, 200.0, WindowedGrowth(all, start, end))
}

func TestFilterWindowHalfOpen(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	all := []model.Transaction{
		tx(1, start.Add(-time.Nanosecond)),
		tx(2, start),
		tx(3, end.Add(-time.Nanosecond)),
		tx(4, end),
	}
	got := FilterWindow(all, start, end)
	require.Len(t, got, 2)
	require.Equal(t, 2.0, got[0].Total)
	require.Equal(t, 3.0, got[1].Total)
}

func TestPreviousWindow(t *testing.T) {
	start := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	prevStart, prevEnd := PreviousWindow(start, end)
	require.Equal(t, start.AddDate(0, 0, -7), prevStart)
	require.Equal(t, start, prevEnd)
}

func TestTopProducts(t *testing.T) {
	now := time.Now()
	idA, idB, idC := uuid.New(), uuid.New(), uuid.New()

	sale := tx(0, now)
	sale.Items = []model.TransactionItem{
		{ProductID: idA, ProductName: "Bananas", Quantity: 3, TotalPrice: 10},
		{ProductID: idB, ProductName: "Milk", Quantity: 1, TotalPrice: 40},
	}
	sale2 := tx(0, now)
	sale2.Items = []model.TransactionItem{
		{ProductID: idA, ProductName: "Bananas", Quantity: 2, TotalPrice: 20},
		{ProductID: idC, ProductName: "Beef", Quantity: 1, TotalPrice: 30},
	}
	ledger := []model.Transaction{sale, sale2}

	t.Run("ranks by accumulated revenue descending", func(t *testing.T) {
		top := TopProducts(ledger, 10)
		require.Len(t, top, 3)
		require.Equal(t, idB, top[0].ProductID)
		require.Equal(t, 40.0, top[0].Revenue)
		require.Equal(t, idA, top[1].ProductID)
		require.Equal(t, 30.0, top[1].Revenue)
		require.Equal(t, 5, top[1].Quantity)
		require.Equal(t, idC, top[2].ProductID)
	})

	t.Run("ties keep first seen order", func(t *testing.T) {
		top := TopProducts(ledger, 10)
		// A and C both sum to 30; A appeared first.
		require.Equal(t, idA, top[1].ProductID)
		require.Equal(t, idC, top[2].ProductID)
	})

	t.Run("limit truncates", func(t *testing.T) {
		require.Len(t, TopProducts(ledger, 1), 1)
	})

	t.Run("empty or non positive limit", func(t *testing.T) {
		require.Empty(t, TopProducts(nil, 10))
		require.Empty(t, TopProducts(ledger, 0))
	})
}

func TestSalesByHour(t *testing.T) {
	buckets := SalesByHour(nil)
	require.Len(t, buckets, 24)
	for h, b := range buckets {
		require.Equal(t, h, b.Hour)
		require.Equal(t, 0.0, b.Sales)
	}

	morning := time.Date(2026, 3, 2, 9, 15, 0, 0, time.Local)
	buckets = SalesByHour([]model.Transaction{
		tx(10, morning),
		tx(5, morning.Add(20*time.Minute)),
		tx(7, morning.AddDate(0, 0, 1)), // next day, same hour
	})
	require.Len(t, buckets, 24)
	require.Equal(t, 22.0, buckets[9].Sales)
}

func TestUniqueAndReturningCustomers(t *testing.T) {
	now := time.Now()
	alice, bob := uuid.New(), uuid.New()

	all := []model.Transaction{
		customerTx(alice, 10, now.Add(-48*time.Hour)),
		customerTx(alice, 15, now),
		customerTx(bob, 20, now),
		tx(5, now), // anonymous
	}

	require.Equal(t, 2, UniqueCustomers(all))

	window := all[1:]
	// Alice bought before the window, Bob did not.
	require.Equal(t, 1, ReturningCustomers(window, all))
	require.Equal(t, 0, ReturningCustomers(nil, all))
}

func TestPaymentMethodBreakdown(t *testing.T) {
	now := time.Now()

	card := tx(30, now)
	card.PaymentMethod = model.PayCredit

	slices := PaymentMethodBreakdown([]model.Transaction{
		tx(10, now), tx(20, now), card, tx(10, now),
	})
	require.Len(t, slices, 2)

	require.Equal(t, model.PayCash, slices[0].Method)
	require.Equal(t, 3, slices[0].Count)
	require.Equal(t, 40.0, slices[0].Amount)
	require.Equal(t, 75.0, slices[0].Percentage)

	require.Equal(t, model.PayCredit, slices[1].Method)
	require.Equal(t, 25.0, slices[1].Percentage)

	require.Empty(t, PaymentMethodBreakdown(nil))
}

func TestInventoryOverview(t *testing.T) {
	products := []model.Product{
		{StockQuantity: 0, ReorderPoint: 5, CostPrice: 2},
		{StockQuantity: 3, ReorderPoint: 5, CostPrice: 1},
		{StockQuantity: 50, ReorderPoint: 5, CostPrice: 0.5},
	}
	snap := InventoryOverview(products)
	require.Equal(t, 3, snap.TotalProducts)
	require.Equal(t, 2, snap.LowStockCount)
	require.Equal(t, 1, snap.OutOfStockCount)
	require.Equal(t, 28.0, snap.TotalValue)

	require.Equal(t, InventorySnapshot{}, InventoryOverview(nil))
}

func TestTotalItems(t *testing.T) {
	now := time.Now()
	sale := tx(0, now)
	sale.Items = []model.TransactionItem{{Quantity: 2}, {Quantity: 3}}
	require.Equal(t, 5, TotalItems([]model.Transaction{sale, tx(0, now)}))
	require.Equal(t, 0, TotalItems(nil))
}
