package service

import (
	"github.com/alhadaf/pos/internal/model"
	"github.com/alhadaf/pos/internal/repository"

	"gorm.io/gorm"
)

// StockDecrementHook reduces on-hand stock by the quantities sold. It is
// optional and off by default: base checkout only appends to the ledger.
// Stock floors at zero so the quantity invariant holds even after an
// oversell at the register.
func StockDecrementHook(productRepo repository.ProductRepository) CheckoutHook {
	return func(tx *gorm.DB, transaction *model.Transaction) error {
		for _, item := range transaction.Items {
			var product model.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				// A product deleted between add and checkout leaves a
				// dangling snapshot; the sale still stands.
				continue
			}
			newStock := product.StockQuantity - item.Quantity
			if newStock < 0 {
				newStock = 0
			}
			if err := productRepo.UpdateStock(tx, product.ID, newStock, transaction.CashierID.String()); err != nil {
				return err
			}
		}
		return nil
	}
}

// LoyaltyAccrualHook grants one point per whole dollar charged to the
// attached customer. Anonymous sales accrue nothing. Optional, off by
// default.
func LoyaltyAccrualHook(customerRepo repository.CustomerRepository) CheckoutHook {
	return func(tx *gorm.DB, transaction *model.Transaction) error {
		if transaction.CustomerID == nil {
			return nil
		}
		points := int(transaction.Total)
		if points <= 0 {
			return nil
		}
		return customerRepo.AddLoyaltyPoints(tx, *transaction.CustomerID, points)
	}
}
