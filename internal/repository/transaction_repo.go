package repository

import (
	"time"

	"github.com/alhadaf/pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(tx *gorm.DB, transaction *model.Transaction) error
	FindAll() ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindByCustomer(customerID uuid.UUID) ([]model.Transaction, error)
	FindByWindow(start, end time.Time) ([]model.Transaction, error)
	FindByStoreAndWindow(storeID uuid.UUID, start, end time.Time) ([]model.Transaction, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

// Create accepts a *gorm.DB (tx) so the ledger append and any checkout
// hooks commit atomically. Items are written through the association.
func (r *transactionRepo) Create(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Create(transaction).Error
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.
		Preload("Items", itemOrder).
		Preload("Customer").
		Preload("Cashier").
		Order("timestamp DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.
		Preload("Items", itemOrder).
		Preload("Customer").
		Preload("Cashier").
		First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &transaction, nil
}

func (r *transactionRepo) FindByCustomer(customerID uuid.UUID) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.
		Preload("Items", itemOrder).
		Where("customer_id = ?", customerID).
		Order("timestamp ASC").
		Find(&transactions).Error
	return transactions, err
}

// FindByWindow returns ledger entries with timestamp in [start, end),
// oldest first. The half-open convention is applied everywhere a window is
// evaluated so a sale stamped exactly at `end` lands in the next window.
func (r *transactionRepo) FindByWindow(start, end time.Time) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.
		Preload("Items", itemOrder).
		Where("timestamp >= ? AND timestamp < ?", start, end).
		Order("timestamp ASC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByStoreAndWindow(storeID uuid.UUID, start, end time.Time) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.
		Preload("Items", itemOrder).
		Where("store_id = ? AND timestamp >= ? AND timestamp < ?", storeID, start, end).
		Order("timestamp ASC").
		Find(&transactions).Error
	return transactions, err
}

func itemOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
