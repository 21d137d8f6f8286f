package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PayCash        PaymentMethod = "cash"
	PayCredit      PaymentMethod = "credit"
	PayDebit       PaymentMethod = "debit"
	PayMobile      PaymentMethod = "mobile"
	PayGiftCard    PaymentMethod = "gift_card"
	PayStoreCredit PaymentMethod = "store_credit"
	PayLayaway     PaymentMethod = "layaway"
)

var AllPaymentMethods = []PaymentMethod{
	PayCash, PayCredit, PayDebit, PayMobile, PayGiftCard, PayStoreCredit, PayLayaway,
}

func (m PaymentMethod) Valid() bool {
	for _, v := range AllPaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

type TransactionStatus string

const (
	StatusCompleted         TransactionStatus = "completed"
	StatusPending           TransactionStatus = "pending"
	StatusVoided            TransactionStatus = "voided"
	StatusRefunded          TransactionStatus = "refunded"
	StatusPartiallyRefunded TransactionStatus = "partially_refunded"
)

// PaymentDetails is the payment variant recorded on a transaction.
type PaymentDetails struct {
	Amount         float64 `json:"amount"`
	ChangeGiven    float64 `json:"change_given,omitempty"`
	CardLast4      string  `gorm:"type:varchar(4)" json:"card_last4,omitempty"`
	AuthCode       string  `gorm:"type:varchar(20)" json:"auth_code,omitempty"`
	GiftCardNumber string  `gorm:"type:varchar(30)" json:"gift_card_number,omitempty"`
	MobileWallet   string  `gorm:"type:varchar(20)" json:"mobile_wallet,omitempty"`
}

// Transaction is one finalized sale on the ledger. Rows are append-only:
// nothing in the service layer updates or deletes them once written.
type Transaction struct {
	BaseModel
	TransactionNumber string `gorm:"type:varchar(20);uniqueIndex;not null" json:"transaction_number"`
	ReceiptNumber     string `gorm:"type:varchar(20);not null" json:"receipt_number"`

	StoreID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"store_id" validate:"uuid_required"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CashierID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"cashier_id" validate:"uuid_required"`
	Cashier    *User      `gorm:"foreignKey:CashierID" json:"cashier,omitempty"`

	Items []TransactionItem `gorm:"foreignKey:TransactionID" json:"items"`

	Subtotal float64 `gorm:"not null" json:"subtotal"`
	Discount float64 `gorm:"not null" json:"discount"`
	Tax      float64 `gorm:"not null" json:"tax"`
	// Total is the charged amount, rounded half up to cents.
	Total float64 `gorm:"not null" json:"total"`

	PaymentMethod  PaymentMethod  `gorm:"type:varchar(20);not null" json:"payment_method" validate:"required"`
	PaymentDetails PaymentDetails `gorm:"embedded;embeddedPrefix:payment_" json:"payment_details"`

	Timestamp time.Time         `gorm:"not null;index" json:"timestamp"`
	Status    TransactionStatus `gorm:"type:varchar(20);not null" json:"status"`
}

// TransactionItem is a cart line frozen at checkout. Product name, SKU and
// unit price are snapshots; a later product edit or delete does not change
// the ledger.
type TransactionItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	ProductName   string    `gorm:"type:varchar(255)" json:"product_name"`
	ProductSKU    string    `gorm:"type:varchar(50)" json:"product_sku"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	UnitPrice     float64   `gorm:"not null" json:"unit_price"`
	TotalPrice    float64   `gorm:"not null" json:"total_price"`
	Discount      float64   `gorm:"default:0" json:"discount"`
	Position      int       `gorm:"not null" json:"position"`
}

func (item *TransactionItem) BeforeCreate(tx *gorm.DB) (err error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return
}
