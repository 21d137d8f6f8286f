package service

import (
	"fmt"
	"testing"

	"github.com/alhadaf/pos/internal/model"
	"github.com/alhadaf/pos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Permission{}, &model.User{},
		&model.Category{}, &model.Product{},
		&model.Customer{}, &model.StoreLocation{},
		&model.Transaction{}, &model.TransactionItem{},
	))
	return db
}

type cartFixture struct {
	db       *gorm.DB
	service  CartService
	store    *model.StoreLocation
	products []*model.Product

	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	txRepo       repository.TransactionRepository
}

func newCartFixture(t *testing.T, taxRate float64) *cartFixture {
	t.Helper()
	db := testDB(t)

	productRepo := repository.NewProductRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	storeRepo := repository.NewStoreRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	store := &model.StoreLocation{Name: "Test Store"}
	require.NoError(t, storeRepo.Create(store))

	products := []*model.Product{
		{SKU: "SKU-1", Barcode: "B-1", Name: "Bananas", UnitPrice: 5.00, CostPrice: 2.00, StockQuantity: 100},
		{SKU: "SKU-2", Barcode: "B-2", Name: "Milk", UnitPrice: 10.00, CostPrice: 6.00, StockQuantity: 50},
	}
	for _, p := range products {
		require.NoError(t, productRepo.Create(p))
	}

	return &cartFixture{
		db:           db,
		service:      NewCartService(db, productRepo, customerRepo, storeRepo, txRepo, nil, taxRate),
		store:        store,
		products:     products,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		txRepo:       txRepo,
	}
}

func (f *cartFixture) startCart(t *testing.T) *Cart {
	t.Helper()
	cart, err := f.service.Start(f.store.ID, uuid.New())
	require.NoError(t, err)
	return cart
}

func TestCartTotals(t *testing.T) {
	f := newCartFixture(t, 0.0875)
	cart := f.startCart(t)

	// 1 x 5.00 + 1 x 10.00
	_, err := f.service.AddItem(cart.ID, f.products[0].ID)
	require.NoError(t, err)
	_, err = f.service.AddItem(cart.ID, f.products[1].ID)
	require.NoError(t, err)

	totals, err := f.service.Totals(cart.ID)
	require.NoError(t, err)
	require.Equal(t, 15.00, totals.Subtotal)
	require.Equal(t, 0.0, totals.Discount)
	require.InDelta(t, 1.3125, totals.Tax, 1e-9)
	require.InDelta(t, 16.3125, totals.Total, 1e-9)
	require.Equal(t, 16.31, totals.ChargedTotal)
}

func TestCartTotalsWithDiscount(t *testing.T) {
	f := newCartFixture(t, 0.0875)
	cart := f.startCart(t)

	updated, err := f.service.AddItem(cart.ID, f.products[1].ID)
	require.NoError(t, err)
	_, err = f.service.SetDiscount(cart.ID, updated.Items[0].ID, 2.00)
	require.NoError(t, err)

	totals, err := f.service.Totals(cart.ID)
	require.NoError(t, err)
	require.Equal(t, 10.00, totals.Subtotal)
	require.Equal(t, 2.00, totals.Discount)
	// tax applies to the discounted base
	require.InDelta(t, 0.0875*8.00, totals.Tax, 1e-9)
}

func TestAddItemBumpsExistingLine(t *testing.T) {
	f := newCartFixture(t, 0)
	cart := f.startCart(t)

	_, err := f.service.AddItem(cart.ID, f.products[0].ID)
	require.NoError(t, err)
	updated, err := f.service.AddItem(cart.ID, f.products[0].ID)
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	require.Equal(t, 2, updated.Items[0].Quantity)
	require.Equal(t, 10.00, updated.Items[0].TotalPrice)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	f := newCartFixture(t, 0)
	cart := f.startCart(t)

	updated, err := f.service.AddItem(cart.ID, f.products[0].ID)
	require.NoError(t, err)
	itemID := updated.Items[0].ID

	updated, err = f.service.SetQuantity(cart.ID, itemID, 0)
	require.NoError(t, err)
	require.Empty(t, updated.Items)

	_, err = f.service.SetQuantity(cart.ID, itemID, 3)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestCheckoutCash(t *testing.T) {
	f := newCartFixture(t, 0.0875)
	cart := f.startCart(t)

	_, err := f.service.AddItem(cart.ID, f.products[0].ID)
	require.NoError(t, err)
	_, err = f.service.AddItem(cart.ID, f.products[1].ID)
	require.NoError(t, err)

	transaction, err := f.service.Checkout(cart.ID, CheckoutRequest{
		PaymentMethod:  model.PayCash,
		TenderedAmount: 20.00,
	})
	require.NoError(t, err)
	require.Equal(t, 16.31, transaction.Total)
	require.Equal(t, 3.69, transaction.PaymentDetails.ChangeGiven)
	require.Equal(t, model.StatusCompleted, transaction.Status)
	require.Len(t, transaction.Items, 2)
	require.Equal(t, 0, transaction.Items[0].Position)
	require.Equal(t, 1, transaction.Items[1].Position)

	// The ledger row is persisted with its lines.
	stored, err := f.txRepo.FindByID(transaction.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	require.Equal(t, "Bananas", stored.Items[0].ProductName)

	// The cart is gone after checkout.
	_, err = f.service.Get(cart.ID)
	require.ErrorIs(t, err, ErrCartNotFound)
}

func TestCheckoutRejectsInsufficientCash(t *testing.T) {
	f := newCartFixture(t, 0.0875)
	cart := f.startCart(t)

	_, err := f.service.AddItem(cart.ID, f.products[0].ID)
	require.NoError(t, err)
	_, err = f.service.AddItem(cart.ID, f.products[1].ID)
	require.NoError(t, err)

	_, err = f.service.Checkout(cart.ID, CheckoutRequest{
		PaymentMethod:  model.PayCash,
		TenderedAmount: 10.00,
	})
	require.ErrorIs(t, err, ErrInsufficientPayment)

	// The cart survives a failed payment and goes back to building, so the
	// cashier can keep editing it before retrying.
	got, err := f.service.Get(cart.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	require.Equal(t, CartBuilding, got.Status)

	_, err = f.service.AddItem(cart.ID, f.products[0].ID)
	require.NoError(t, err)
}

func TestCheckoutRejectsEmptyCartAndBadMethod(t *testing.T) {
	f := newCartFixture(t, 0)
	cart := f.startCart(t)

	_, err := f.service.Checkout(cart.ID, CheckoutRequest{PaymentMethod: model.PayCash})
	require.ErrorIs(t, err, ErrEmptyCart)

	_, err = f.service.Checkout(cart.ID, CheckoutRequest{PaymentMethod: "bitcoin"})
	require.ErrorIs(t, err, ErrInvalidPayment)
}

func TestCheckoutCardNeedsNoTender(t *testing.T) {
	f := newCartFixture(t, 0)
	cart := f.startCart(t)

	_, err := f.service.AddItem(cart.ID, f.products[0].ID)
	require.NoError(t, err)

	transaction, err := f.service.Checkout(cart.ID, CheckoutRequest{
		PaymentMethod: model.PayCredit,
		CardLast4:     "4242",
	})
	require.NoError(t, err)
	require.Equal(t, "4242", transaction.PaymentDetails.CardLast4)
	require.Equal(t, 0.0, transaction.PaymentDetails.ChangeGiven)
}

func TestStockDecrementHook(t *testing.T) {
	f := newCartFixture(t, 0)
	f.service.RegisterHook(StockDecrementHook(f.productRepo))
	cart := f.startCart(t)

	updated, err := f.service.AddItem(cart.ID, f.products[0].ID)
	require.NoError(t, err)
	_, err = f.service.SetQuantity(cart.ID, updated.Items[0].ID, 3)
	require.NoError(t, err)

	_, err = f.service.Checkout(cart.ID, CheckoutRequest{
		PaymentMethod:  model.PayCash,
		TenderedAmount: 15.00,
	})
	require.NoError(t, err)

	product, err := f.productRepo.FindByID(f.products[0].ID)
	require.NoError(t, err)
	require.Equal(t, 97, product.StockQuantity)
}

func TestLoyaltyAccrualHook(t *testing.T) {
	f := newCartFixture(t, 0)
	f.service.RegisterHook(LoyaltyAccrualHook(f.customerRepo))
	cart := f.startCart(t)

	customer := &model.Customer{
		FirstName: "Alice", LastName: "Williams", Email: "alice@example.com",
		LoyaltyCard: model.LoyaltyCard{Number: "LC001234", Points: 100},
	}
	require.NoError(t, f.customerRepo.Create(customer))

	_, err := f.service.AddItem(cart.ID, f.products[1].ID)
	require.NoError(t, err)
	_, err = f.service.AttachCustomer(cart.ID, customer.ID)
	require.NoError(t, err)

	// Total 10.00 earns 10 points.
	_, err = f.service.Checkout(cart.ID, CheckoutRequest{
		PaymentMethod:  model.PayCash,
		TenderedAmount: 10.00,
	})
	require.NoError(t, err)

	stored, err := f.customerRepo.FindByID(customer.ID)
	require.NoError(t, err)
	require.Equal(t, 110, stored.LoyaltyCard.Points)
}

func TestCheckoutWithoutHooksLeavesStockAlone(t *testing.T) {
	f := newCartFixture(t, 0)
	cart := f.startCart(t)

	_, err := f.service.AddItem(cart.ID, f.products[0].ID)
	require.NoError(t, err)
	_, err = f.service.Checkout(cart.ID, CheckoutRequest{
		PaymentMethod:  model.PayCash,
		TenderedAmount: 5.00,
	})
	require.NoError(t, err)

	product, err := f.productRepo.FindByID(f.products[0].ID)
	require.NoError(t, err)
	require.Equal(t, 100, product.StockQuantity)
}

func TestPriceSnapshotIgnoresLaterEdits(t *testing.T) {
	f := newCartFixture(t, 0)
	cart := f.startCart(t)

	_, err := f.service.AddItem(cart.ID, f.products[0].ID)
	require.NoError(t, err)

	f.products[0].UnitPrice = 99.00
	require.NoError(t, f.productRepo.Update(f.products[0]))

	totals, err := f.service.Totals(cart.ID)
	require.NoError(t, err)
	require.Equal(t, 5.00, totals.Subtotal)
}
