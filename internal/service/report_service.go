package service

import (
	"sort"
	"time"

	"github.com/alhadaf/pos/internal/analytics"
	"github.com/alhadaf/pos/internal/model"
	"github.com/alhadaf/pos/internal/repository"

	"github.com/google/uuid"
)

const topProductLimit = 10

// SalesBlock is the sales section of a branch report.
type SalesBlock struct {
	analytics.SalesSummary
	TotalItems  int     `json:"total_items"`
	SalesGrowth float64 `json:"sales_growth"`
}

// CustomerBlock is the customer section of a branch report. NewCustomers is
// branch-scoped: a customer counts only if created inside the window and
// seen transacting at this branch in the window.
type CustomerBlock struct {
	UniqueCustomers    int `json:"unique_customers"`
	NewCustomers       int `json:"new_customers"`
	ReturningCustomers int `json:"returning_customers"`
	LoyaltyActive      int `json:"loyalty_active"`
}

// BranchReport combines sales, inventory and customer metrics for one
// store over a window.
type BranchReport struct {
	StoreID        uuid.UUID                   `json:"store_id"`
	StoreName      string                      `json:"store_name"`
	Start          time.Time                   `json:"start"`
	End            time.Time                   `json:"end"`
	Sales          SalesBlock                  `json:"sales"`
	Inventory      analytics.InventorySnapshot `json:"inventory"`
	Customers      CustomerBlock               `json:"customers"`
	TopProducts    []analytics.ProductSales    `json:"top_products"`
	PaymentMethods []analytics.PaymentSlice    `json:"payment_methods"`
}

// SummaryReport backs the dashboard analytics screen for a range that ends
// now.
type SummaryReport struct {
	Start              time.Time                `json:"start"`
	End                time.Time                `json:"end"`
	Sales              SalesBlock               `json:"sales"`
	TopProducts        []analytics.ProductSales `json:"top_products"`
	SalesByHour        []analytics.HourlySales  `json:"sales_by_hour"`
	UniqueCustomers    int                      `json:"unique_customers"`
	ReturningCustomers int                      `json:"returning_customers"`
	PaymentMethods     []analytics.PaymentSlice `json:"payment_methods"`
}

// FinancialReport breaks revenue down over a window.
type FinancialReport struct {
	TotalRevenue     float64                  `json:"total_revenue"`
	TotalTax         float64                  `json:"total_tax"`
	TotalDiscounts   float64                  `json:"total_discounts"`
	NetRevenue       float64                  `json:"net_revenue"`
	RevenueByPayment []analytics.PaymentSlice `json:"revenue_by_payment"`
}

// CustomerReport is store-agnostic customer health.
type CustomerReport struct {
	TotalCustomers   int                       `json:"total_customers"`
	LoyaltyMembers   int                       `json:"loyalty_members"`
	LoyaltyRate      float64                   `json:"loyalty_rate"`
	NewCustomers     int                       `json:"new_customers"`
	TierDistribution map[model.LoyaltyTier]int `json:"tier_distribution"`
	TopCustomers     []CustomerSpend           `json:"top_customers"`
}

// CustomerSpend ranks a customer by ledger-derived spend.
type CustomerSpend struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	TotalSpent float64   `json:"total_spent"`
}

type ReportService interface {
	BranchAnalytics(storeID uuid.UUID, start, end time.Time) (*BranchReport, error)
	AllBranchesAnalytics(start, end time.Time) ([]BranchReport, error)
	Summary(start, end time.Time) (*SummaryReport, error)
	Financial(start, end time.Time) (*FinancialReport, error)
	Customers(start, end time.Time) (*CustomerReport, error)
	Inventory() (*analytics.InventorySnapshot, error)
}

type reportService struct {
	txRepo       repository.TransactionRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	storeRepo    repository.StoreRepository
}

func NewReportService(
	tRepo repository.TransactionRepository,
	pRepo repository.ProductRepository,
	cRepo repository.CustomerRepository,
	sRepo repository.StoreRepository,
) ReportService {
	return &reportService{
		txRepo:       tRepo,
		productRepo:  pRepo,
		customerRepo: cRepo,
		storeRepo:    sRepo,
	}
}

func (s *reportService) BranchAnalytics(storeID uuid.UUID, start, end time.Time) (*BranchReport, error) {
	store, err := s.storeRepo.FindByID(storeID)
	if err != nil {
		return nil, err
	}
	return s.buildBranchReport(store, start, end)
}

// AllBranchesAnalytics returns one report per location, in collection
// order.
func (s *reportService) AllBranchesAnalytics(start, end time.Time) ([]BranchReport, error) {
	stores, err := s.storeRepo.FindAll()
	if err != nil {
		return nil, err
	}

	reports := make([]BranchReport, 0, len(stores))
	for i := range stores {
		report, err := s.buildBranchReport(&stores[i], start, end)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

func (s *reportService) buildBranchReport(store *model.StoreLocation, start, end time.Time) (*BranchReport, error) {
	prevStart, _ := analytics.PreviousWindow(start, end)

	// One scan wide enough for both windows; the whole ledger backs the
	// returning-customer index.
	windowed, err := s.txRepo.FindByStoreAndWindow(store.ID, prevStart, end)
	if err != nil {
		return nil, err
	}
	current := analytics.FilterWindow(windowed, start, end)

	all, err := s.txRepo.FindAll()
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	report := &BranchReport{
		StoreID:   store.ID,
		StoreName: store.Name,
		Start:     start,
		End:       end,
		Sales: SalesBlock{
			SalesSummary: analytics.RevenueAndVolume(current),
			TotalItems:   analytics.TotalItems(current),
			SalesGrowth:  analytics.WindowedGrowth(windowed, start, end),
		},
		Inventory:      analytics.InventoryOverview(products),
		TopProducts:    analytics.TopProducts(current, topProductLimit),
		PaymentMethods: analytics.PaymentMethodBreakdown(current),
	}

	report.Customers, err = s.branchCustomers(current, all, start, end)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) branchCustomers(current, all []model.Transaction, start, end time.Time) (CustomerBlock, error) {
	block := CustomerBlock{
		UniqueCustomers:    analytics.UniqueCustomers(current),
		ReturningCustomers: analytics.ReturningCustomers(current, all),
	}

	seen := make(map[uuid.UUID]bool)
	for _, t := range current {
		if t.CustomerID != nil {
			seen[*t.CustomerID] = true
		}
	}

	// New customers, branch-scoped: created in-window AND transacted here
	// in-window.
	created, err := s.customerRepo.FindCreatedBetween(start, end)
	if err != nil {
		return block, err
	}
	for _, c := range created {
		if seen[c.ID] {
			block.NewCustomers++
		}
	}

	customers, err := s.customerRepo.FindAll()
	if err != nil {
		return block, err
	}
	for _, c := range customers {
		if seen[c.ID] && c.LoyaltyCard.IsActive {
			block.LoyaltyActive++
		}
	}
	return block, nil
}

func (s *reportService) Summary(start, end time.Time) (*SummaryReport, error) {
	prevStart, _ := analytics.PreviousWindow(start, end)
	windowed, err := s.txRepo.FindByWindow(prevStart, end)
	if err != nil {
		return nil, err
	}
	current := analytics.FilterWindow(windowed, start, end)

	all, err := s.txRepo.FindAll()
	if err != nil {
		return nil, err
	}

	return &SummaryReport{
		Start: start,
		End:   end,
		Sales: SalesBlock{
			SalesSummary: analytics.RevenueAndVolume(current),
			TotalItems:   analytics.TotalItems(current),
			SalesGrowth:  analytics.WindowedGrowth(windowed, start, end),
		},
		TopProducts:        analytics.TopProducts(current, topProductLimit),
		SalesByHour:        analytics.SalesByHour(current),
		UniqueCustomers:    analytics.UniqueCustomers(current),
		ReturningCustomers: analytics.ReturningCustomers(current, all),
		PaymentMethods:     analytics.PaymentMethodBreakdown(current),
	}, nil
}

func (s *reportService) Financial(start, end time.Time) (*FinancialReport, error) {
	transactions, err := s.txRepo.FindByWindow(start, end)
	if err != nil {
		return nil, err
	}

	report := &FinancialReport{
		RevenueByPayment: analytics.PaymentMethodBreakdown(transactions),
	}
	for _, t := range transactions {
		report.TotalRevenue += t.Total
		report.TotalTax += t.Tax
		report.TotalDiscounts += t.Discount
	}
	report.NetRevenue = report.TotalRevenue - report.TotalTax
	return report, nil
}

func (s *reportService) Customers(start, end time.Time) (*CustomerReport, error) {
	customers, err := s.customerRepo.FindAll()
	if err != nil {
		return nil, err
	}

	report := &CustomerReport{
		TotalCustomers:   len(customers),
		TierDistribution: make(map[model.LoyaltyTier]int),
	}
	for _, c := range customers {
		if c.LoyaltyCard.IsActive {
			report.LoyaltyMembers++
		}
		report.TierDistribution[c.LoyaltyCard.Tier]++
		if !c.CreatedAt.Before(start) && c.CreatedAt.Before(end) {
			report.NewCustomers++
		}
	}
	if report.TotalCustomers > 0 {
		report.LoyaltyRate = float64(report.LoyaltyMembers) / float64(report.TotalCustomers) * 100
	}

	report.TopCustomers, err = s.topCustomers(customers)
	return report, err
}

// topCustomers ranks by spend derived from the ledger, highest first.
func (s *reportService) topCustomers(customers []model.Customer) ([]CustomerSpend, error) {
	all, err := s.txRepo.FindAll()
	if err != nil {
		return nil, err
	}

	spent := make(map[uuid.UUID]float64)
	for _, t := range all {
		if t.CustomerID != nil {
			spent[*t.CustomerID] += t.Total
		}
	}

	ranked := make([]CustomerSpend, 0, len(customers))
	for _, c := range customers {
		ranked = append(ranked, CustomerSpend{
			CustomerID: c.ID,
			Name:       c.FullName(),
			TotalSpent: spent[c.ID],
		})
	}
	// Stable sort keeps collection order on spend ties
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].TotalSpent > ranked[b].TotalSpent
	})
	if len(ranked) > topProductLimit {
		ranked = ranked[:topProductLimit]
	}
	return ranked, nil
}

func (s *reportService) Inventory() (*analytics.InventorySnapshot, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	snap := analytics.InventoryOverview(products)
	return &snap, nil
}
