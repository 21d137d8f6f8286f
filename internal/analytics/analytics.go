// Package analytics holds the pure aggregation functions behind the
// dashboard and branch reports. Every function is a total, deterministic
// read over its inputs: empty input yields zeroed results, never an error,
// and nothing here mutates or caches state.
package analytics

import (
	"sort"
	"time"

	"github.com/alhadaf/pos/internal/model"

	"github.com/google/uuid"
)

// SalesSummary is the basic revenue/volume block of every report.
type SalesSummary struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalTransactions int     `json:"total_transactions"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// RevenueAndVolume sums transaction totals. AverageOrderValue is 0 for an
// empty ledger.
func RevenueAndVolume(transactions []model.Transaction) SalesSummary {
	var s SalesSummary
	for _, t := range transactions {
		s.TotalRevenue += t.Total
	}
	s.TotalTransactions = len(transactions)
	if s.TotalTransactions > 0 {
		s.AverageOrderValue = s.TotalRevenue / float64(s.TotalTransactions)
	}
	return s
}

// TotalItems counts units sold across all lines.
func TotalItems(transactions []model.Transaction) int {
	total := 0
	for _, t := range transactions {
		for _, item := range t.Items {
			total += item.Quantity
		}
	}
	return total
}

// Growth returns the percentage change from previous to current. By
// convention it is 0 when previous is 0; that is not a true growth rate,
// it just avoids a division by zero for the first window.
func Growth(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// PreviousWindow returns the window of identical duration immediately
// before [start, end).
func PreviousWindow(start, end time.Time) (time.Time, time.Time) {
	d := end.Sub(start)
	return start.Add(-d), start
}

// FilterWindow keeps transactions with timestamp in [start, end). The
// half-open convention applies to every window in the system, current and
// previous alike.
func FilterWindow(transactions []model.Transaction, start, end time.Time) []model.Transaction {
	var out []model.Transaction
	for _, t := range transactions {
		if !t.Timestamp.Before(start) && t.Timestamp.Before(end) {
			out = append(out, t)
		}
	}
	return out
}

// WindowedGrowth computes revenue growth of [start, end) against the
// preceding window of equal length.
func WindowedGrowth(all []model.Transaction, start, end time.Time) float64 {
	current := RevenueAndVolume(FilterWindow(all, start, end))
	prevStart, prevEnd := PreviousWindow(start, end)
	previous := RevenueAndVolume(FilterWindow(all, prevStart, prevEnd))
	return Growth(current.TotalRevenue, previous.TotalRevenue)
}

// ProductSales accumulates quantity and revenue for one product.
type ProductSales struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Quantity  int       `json:"quantity"`
	Revenue   float64   `json:"revenue"`
}

// TopProducts flattens every line across the transactions, accumulates per
// product, and returns the first `limit` by revenue descending. Ties keep
// first-seen order (stable sort).
func TopProducts(transactions []model.Transaction, limit int) []ProductSales {
	if limit <= 0 {
		return []ProductSales{}
	}

	index := make(map[uuid.UUID]int)
	ranked := []ProductSales{}
	for _, t := range transactions {
		for _, item := range t.Items {
			i, ok := index[item.ProductID]
			if !ok {
				i = len(ranked)
				index[item.ProductID] = i
				ranked = append(ranked, ProductSales{
					ProductID: item.ProductID,
					Name:      item.ProductName,
					SKU:       item.ProductSKU,
				})
			}
			ranked[i].Quantity += item.Quantity
			ranked[i].Revenue += item.TotalPrice
		}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Revenue > ranked[b].Revenue
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// HourlySales is one bucket of the sales-by-hour chart.
type HourlySales struct {
	Hour  int     `json:"hour"`
	Sales float64 `json:"sales"`
}

// SalesByHour buckets totals by local hour of day regardless of date.
// All 24 buckets are always present.
func SalesByHour(transactions []model.Transaction) []HourlySales {
	buckets := make([]HourlySales, 24)
	for h := range buckets {
		buckets[h].Hour = h
	}
	for _, t := range transactions {
		buckets[t.Timestamp.Local().Hour()].Sales += t.Total
	}
	return buckets
}

// UniqueCustomers counts distinct customer ids referenced; anonymous sales
// are skipped.
func UniqueCustomers(transactions []model.Transaction) int {
	seen := make(map[uuid.UUID]struct{})
	for _, t := range transactions {
		if t.CustomerID != nil {
			seen[*t.CustomerID] = struct{}{}
		}
	}
	return len(seen)
}

// ReturningCustomers counts transactions whose customer has at least one
// strictly earlier transaction anywhere in `all`. Indexing each customer's
// earliest timestamp keeps this linear instead of quadratic.
func ReturningCustomers(transactions, all []model.Transaction) int {
	earliest := make(map[uuid.UUID]time.Time)
	for _, t := range all {
		if t.CustomerID == nil {
			continue
		}
		if first, ok := earliest[*t.CustomerID]; !ok || t.Timestamp.Before(first) {
			earliest[*t.CustomerID] = t.Timestamp
		}
	}

	count := 0
	for _, t := range transactions {
		if t.CustomerID == nil {
			continue
		}
		if first, ok := earliest[*t.CustomerID]; ok && first.Before(t.Timestamp) {
			count++
		}
	}
	return count
}

// PaymentSlice is one entry of the payment-method distribution.
type PaymentSlice struct {
	Method     model.PaymentMethod `json:"method"`
	Count      int                 `json:"count"`
	Amount     float64             `json:"amount"`
	Percentage float64             `json:"percentage"`
}

// PaymentMethodBreakdown returns count, revenue and share of transaction
// count per payment method, in first-seen order.
func PaymentMethodBreakdown(transactions []model.Transaction) []PaymentSlice {
	index := make(map[model.PaymentMethod]int)
	slices := []PaymentSlice{}
	for _, t := range transactions {
		i, ok := index[t.PaymentMethod]
		if !ok {
			i = len(slices)
			index[t.PaymentMethod] = i
			slices = append(slices, PaymentSlice{Method: t.PaymentMethod})
		}
		slices[i].Count++
		slices[i].Amount += t.Total
	}
	if n := len(transactions); n > 0 {
		for i := range slices {
			slices[i].Percentage = float64(slices[i].Count) / float64(n) * 100
		}
	}
	return slices
}

// InventorySnapshot summarizes the catalog, valued at cost.
type InventorySnapshot struct {
	TotalProducts   int     `json:"total_products"`
	LowStockCount   int     `json:"low_stock_count"`
	OutOfStockCount int     `json:"out_of_stock_count"`
	TotalValue      float64 `json:"total_value"`
}

// InventoryOverview scans the product collection. Low stock means at or
// below the reorder point; out of stock means zero on hand.
func InventoryOverview(products []model.Product) InventorySnapshot {
	var snap InventorySnapshot
	snap.TotalProducts = len(products)
	for _, p := range products {
		if p.OutOfStock() {
			snap.OutOfStockCount++
		}
		if p.LowStock() {
			snap.LowStockCount++
		}
		snap.TotalValue += float64(p.StockQuantity) * p.CostPrice
	}
	return snap
}
