package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alhadaf/pos/internal/model"
	"github.com/alhadaf/pos/internal/repository"
	"github.com/alhadaf/pos/internal/ws"
	"github.com/alhadaf/pos/pkg/money"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCartNotFound        = errors.New("cart not found")
	ErrCartCompleted       = errors.New("cart already completed")
	ErrEmptyCart           = errors.New("cart has no items")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrInvalidPayment      = errors.New("invalid payment method")
	ErrItemNotFound        = errors.New("cart item not found")
)

type CartStatus string

const (
	CartBuilding        CartStatus = "building"
	CartAwaitingPayment CartStatus = "awaiting_payment"
	CartCompleted       CartStatus = "completed"
)

// CartLine is one pending line. UnitPrice is snapshotted when the product
// is first added; later catalog edits do not touch open carts.
type CartLine struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	ProductSKU  string    `json:"product_sku"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	TotalPrice  float64   `json:"total_price"`
	Discount    float64   `json:"discount"`
}

// Cart is an in-progress sale. Carts are session state: they live in
// memory only and are frozen into a ledger Transaction at checkout.
type Cart struct {
	ID         uuid.UUID   `json:"id"`
	StoreID    uuid.UUID   `json:"store_id"`
	CashierID  uuid.UUID   `json:"cashier_id"`
	CustomerID *uuid.UUID  `json:"customer_id,omitempty"`
	Status     CartStatus  `json:"status"`
	Items      []*CartLine `json:"items"`
	CreatedAt  time.Time   `json:"created_at"`
}

// CartTotals is recomputed from scratch on every call; there is no
// incremental caching to drift out of sync.
type CartTotals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
	// ChargedTotal is Total rounded half up to cents; this is the amount
	// actually collected.
	ChargedTotal float64 `json:"charged_total"`
}

// CheckoutRequest carries the payment variant for Checkout.
type CheckoutRequest struct {
	PaymentMethod  model.PaymentMethod `json:"payment_method"`
	TenderedAmount float64             `json:"tendered_amount"`
	CardLast4      string              `json:"card_last4,omitempty"`
	AuthCode       string              `json:"auth_code,omitempty"`
	GiftCardNumber string              `json:"gift_card_number,omitempty"`
	MobileWallet   string              `json:"mobile_wallet,omitempty"`
	CustomerID     *uuid.UUID          `json:"customer_id,omitempty"`
}

// CheckoutHook runs inside the checkout DB transaction after the ledger
// append. Stock decrement and loyalty accrual are wired this way so the
// base checkout has no side effect beyond the append.
type CheckoutHook func(tx *gorm.DB, transaction *model.Transaction) error

type CartService interface {
	Start(storeID, cashierID uuid.UUID) (*Cart, error)
	Get(cartID uuid.UUID) (*Cart, error)
	AddItem(cartID, productID uuid.UUID) (*Cart, error)
	SetQuantity(cartID, itemID uuid.UUID, quantity int) (*Cart, error)
	SetDiscount(cartID, itemID uuid.UUID, discount float64) (*Cart, error)
	RemoveItem(cartID, itemID uuid.UUID) (*Cart, error)
	AttachCustomer(cartID, customerID uuid.UUID) (*Cart, error)
	Totals(cartID uuid.UUID) (*CartTotals, error)
	Checkout(cartID uuid.UUID, req CheckoutRequest) (*model.Transaction, error)
	Clear(cartID uuid.UUID) error
	RegisterHook(hook CheckoutHook)
}

type cartService struct {
	db           *gorm.DB
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	storeRepo    repository.StoreRepository
	txRepo       repository.TransactionRepository
	wsHub        *ws.Hub
	taxRate      float64

	mu    sync.Mutex
	carts map[uuid.UUID]*Cart
	hooks []CheckoutHook
}

func NewCartService(
	db *gorm.DB,
	pRepo repository.ProductRepository,
	cRepo repository.CustomerRepository,
	sRepo repository.StoreRepository,
	tRepo repository.TransactionRepository,
	hub *ws.Hub,
	taxRate float64,
) CartService {
	return &cartService{
		db:           db,
		productRepo:  pRepo,
		customerRepo: cRepo,
		storeRepo:    sRepo,
		txRepo:       tRepo,
		wsHub:        hub,
		taxRate:      taxRate,
		carts:        make(map[uuid.UUID]*Cart),
	}
}

func (s *cartService) RegisterHook(hook CheckoutHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

func (s *cartService) Start(storeID, cashierID uuid.UUID) (*Cart, error) {
	if _, err := s.storeRepo.FindByID(storeID); err != nil {
		return nil, err
	}

	cart := &Cart{
		ID:        uuid.New(),
		StoreID:   storeID,
		CashierID: cashierID,
		Status:    CartBuilding,
		Items:     []*CartLine{},
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.carts[cart.ID] = cart
	s.mu.Unlock()

	return cart, nil
}

func (s *cartService) Get(cartID uuid.UUID) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(cartID)
}

// lookup must be called with the mutex held.
func (s *cartService) lookup(cartID uuid.UUID) (*Cart, error) {
	cart, ok := s.carts[cartID]
	if !ok {
		return nil, ErrCartNotFound
	}
	return cart, nil
}

// AddItem puts one unit of the product in the cart. A product already in
// the cart gets its quantity bumped instead of a second line. There is no
// stock-availability check here; overselling surfaces in inventory reports
// instead of blocking the register.
func (s *cartService) AddItem(cartID, productID uuid.UUID) (*Cart, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.lookup(cartID)
	if err != nil {
		return nil, err
	}
	if cart.Status == CartCompleted {
		return nil, ErrCartCompleted
	}

	for _, line := range cart.Items {
		if line.ProductID == productID {
			line.Quantity++
			line.TotalPrice = float64(line.Quantity) * line.UnitPrice
			return cart, nil
		}
	}

	cart.Items = append(cart.Items, &CartLine{
		ID:          uuid.New(),
		ProductID:   product.ID,
		ProductName: product.Name,
		ProductSKU:  product.SKU,
		Quantity:    1,
		UnitPrice:   product.UnitPrice,
		TotalPrice:  product.UnitPrice,
	})
	return cart, nil
}

// SetQuantity sets a line's quantity. Zero or negative removes the line
// entirely.
func (s *cartService) SetQuantity(cartID, itemID uuid.UUID, quantity int) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.lookup(cartID)
	if err != nil {
		return nil, err
	}
	if cart.Status == CartCompleted {
		return nil, ErrCartCompleted
	}

	for i, line := range cart.Items {
		if line.ID != itemID {
			continue
		}
		if quantity <= 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		} else {
			line.Quantity = quantity
			line.TotalPrice = float64(quantity) * line.UnitPrice
		}
		return cart, nil
	}
	return nil, ErrItemNotFound
}

func (s *cartService) SetDiscount(cartID, itemID uuid.UUID, discount float64) (*Cart, error) {
	if discount < 0 {
		return nil, errors.New("discount cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.lookup(cartID)
	if err != nil {
		return nil, err
	}
	if cart.Status == CartCompleted {
		return nil, ErrCartCompleted
	}

	for _, line := range cart.Items {
		if line.ID == itemID {
			line.Discount = discount
			return cart, nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *cartService) RemoveItem(cartID, itemID uuid.UUID) (*Cart, error) {
	return s.SetQuantity(cartID, itemID, 0)
}

func (s *cartService) AttachCustomer(cartID, customerID uuid.UUID) (*Cart, error) {
	customer, err := s.customerRepo.FindByID(customerID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.lookup(cartID)
	if err != nil {
		return nil, err
	}
	if cart.Status == CartCompleted {
		return nil, ErrCartCompleted
	}
	cart.CustomerID = &customer.ID
	return cart, nil
}

func (s *cartService) Totals(cartID uuid.UUID) (*CartTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.lookup(cartID)
	if err != nil {
		return nil, err
	}
	totals := s.computeTotals(cart)
	return &totals, nil
}

// computeTotals recomputes from the lines on every call.
// tax = rate * (subtotal - discount); total = subtotal - discount + tax.
func (s *cartService) computeTotals(cart *Cart) CartTotals {
	var t CartTotals
	for _, line := range cart.Items {
		t.Subtotal += line.TotalPrice
		t.Discount += line.Discount
	}
	t.Tax = s.taxRate * (t.Subtotal - t.Discount)
	t.Total = t.Subtotal - t.Discount + t.Tax
	t.ChargedTotal = money.RoundCents(t.Total)
	return t
}

// Checkout freezes the cart into an immutable ledger transaction. Cash
// below the charged total is rejected. The append, the hooks and nothing
// else commit atomically; the cart then transitions to completed and a new
// cart must be started for the next sale.
func (s *cartService) Checkout(cartID uuid.UUID, req CheckoutRequest) (*model.Transaction, error) {
	if !req.PaymentMethod.Valid() {
		return nil, ErrInvalidPayment
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.lookup(cartID)
	if err != nil {
		return nil, err
	}
	if cart.Status == CartCompleted {
		return nil, ErrCartCompleted
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	if req.CustomerID != nil {
		cart.CustomerID = req.CustomerID
	}
	cart.Status = CartAwaitingPayment

	totals := s.computeTotals(cart)

	details := model.PaymentDetails{
		Amount:         totals.ChargedTotal,
		CardLast4:      req.CardLast4,
		AuthCode:       req.AuthCode,
		GiftCardNumber: req.GiftCardNumber,
		MobileWallet:   req.MobileWallet,
	}
	if req.PaymentMethod == model.PayCash {
		if req.TenderedAmount < totals.ChargedTotal {
			cart.Status = CartBuilding
			return nil, ErrInsufficientPayment
		}
		details.ChangeGiven = money.RoundCents(req.TenderedAmount - totals.ChargedTotal)
	}

	now := time.Now()
	transaction := &model.Transaction{
		TransactionNumber: nextNumber("T"),
		ReceiptNumber:     nextNumber("R"),
		StoreID:           cart.StoreID,
		CustomerID:        cart.CustomerID,
		CashierID:         cart.CashierID,
		Subtotal:          totals.Subtotal,
		Discount:          totals.Discount,
		Tax:               totals.Tax,
		Total:             totals.ChargedTotal,
		PaymentMethod:     req.PaymentMethod,
		PaymentDetails:    details,
		Timestamp:         now,
		Status:            model.StatusCompleted,
	}
	transaction.CreatedBy = cart.CashierID.String()
	transaction.UpdatedBy = cart.CashierID.String()
	for i, line := range cart.Items {
		transaction.Items = append(transaction.Items, model.TransactionItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			ProductSKU:  line.ProductSKU,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TotalPrice:  line.TotalPrice,
			Discount:    line.Discount,
			Position:    i,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.txRepo.Create(tx, transaction); err != nil {
			return err
		}
		for _, hook := range s.hooks {
			if err := hook(tx, transaction); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		cart.Status = CartBuilding
		return nil, err
	}

	cart.Status = CartCompleted
	delete(s.carts, cart.ID)

	go s.wsHub.Publish(map[string]interface{}{
		"type":   "sale_completed",
		"action": "transaction_created",
		"transaction": map[string]interface{}{
			"id":                 transaction.ID,
			"transaction_number": transaction.TransactionNumber,
			"store_id":           transaction.StoreID,
			"total":              transaction.Total,
			"payment_method":     transaction.PaymentMethod,
			"items":              len(transaction.Items),
		},
		"message": fmt.Sprintf("Sale %s completed for %.2f", transaction.TransactionNumber, transaction.Total),
	})

	return transaction, nil
}

func (s *cartService) Clear(cartID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[cartID]; !ok {
		return ErrCartNotFound
	}
	delete(s.carts, cartID)
	return nil
}

var numberSeq uint32

// nextNumber builds receipt/transaction numbers the registers print:
// a prefix plus the tail of the current unix-milli clock, with a counter
// to keep same-millisecond checkouts distinct.
func nextNumber(prefix string) string {
	seqMu.Lock()
	numberSeq++
	seq := numberSeq
	seqMu.Unlock()
	return fmt.Sprintf("%s%08d-%04d", prefix, time.Now().UnixMilli()%100000000, seq%10000)
}

var seqMu sync.Mutex
