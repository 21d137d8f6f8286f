package handler

import (
	"github.com/alhadaf/pos/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler exposes read-only access to the completed sale
// ledger. Writes happen only through checkout.
type TransactionHandler struct {
	repo repository.TransactionRepository
}

func NewTransactionHandler(repo repository.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{repo: repo}
}

// GetTransactions lists completed sales, optionally filtered by an
// RFC3339 start/end window or a store_id.
// GET /api/v1/transactions
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	if c.Query("start") != "" || c.Query("end") != "" || c.Query("store_id") != "" {
		start, end, err := parseWindow(c)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		if sid := c.Query("store_id"); sid != "" {
			storeID, err := parseUUID(sid)
			if err != nil {
				return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
			}
			transactions, err := h.repo.FindByStoreAndWindow(storeID, start, end)
			if err != nil {
				return fail(c, err)
			}
			return c.JSON(transactions)
		}
		transactions, err := h.repo.FindByWindow(start, end)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(transactions)
	}

	transactions, err := h.repo.FindAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(transactions)
}

// GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	transaction, err := h.repo.FindByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(transaction)
}

// GET /api/v1/customers/:id/transactions
func (h *TransactionHandler) GetCustomerTransactions(c *fiber.Ctx) error {
	customerID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	transactions, err := h.repo.FindByCustomer(customerID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(transactions)
}
