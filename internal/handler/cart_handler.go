package handler

import (
	"github.com/alhadaf/pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CartHandler struct {
	service service.CartService
}

func NewCartHandler(s service.CartService) *CartHandler {
	return &CartHandler{service: s}
}

type startCartRequest struct {
	StoreID uuid.UUID `json:"store_id"`
}

// StartCart opens a new pending sale for the authenticated cashier.
// POST /api/v1/carts
func (h *CartHandler) StartCart(c *fiber.Ctx) error {
	var req startCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cashierID, err := parseUUID(getUserID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	cart, err := h.service.Start(req.StoreID, cashierID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(cart)
}

// GetCart returns the cart plus fresh totals.
// GET /api/v1/carts/:id
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	cartID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid cart ID"})
	}

	cart, err := h.service.Get(cartID)
	if err != nil {
		return fail(c, err)
	}
	totals, err := h.service.Totals(cartID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"cart": cart, "totals": totals})
}

type addItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
}

// POST /api/v1/carts/:id/items
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	cartID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid cart ID"})
	}

	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cart, err := h.service.AddItem(cartID, req.ProductID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cart)
}

type updateItemRequest struct {
	Quantity *int     `json:"quantity,omitempty"`
	Discount *float64 `json:"discount,omitempty"`
}

// UpdateItem sets quantity and/or discount on a line. Quantity zero or
// below removes the line. Discounts additionally require the
// price_override capability.
// PUT /api/v1/carts/:id/items/:itemId
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	cartID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid cart ID"})
	}
	itemID, err := parseUUID(c.Params("itemId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var req updateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Discount != nil && !hasPermission(c, "price_override") {
		return c.Status(403).JSON(fiber.Map{"error": "Forbidden: requires 'price_override' permission"})
	}

	var cart *service.Cart
	if req.Quantity != nil {
		cart, err = h.service.SetQuantity(cartID, itemID, *req.Quantity)
		if err != nil {
			return fail(c, err)
		}
	}
	if req.Discount != nil {
		cart, err = h.service.SetDiscount(cartID, itemID, *req.Discount)
		if err != nil {
			return fail(c, err)
		}
	}
	if cart == nil {
		return c.Status(400).JSON(fiber.Map{"error": "Nothing to update"})
	}
	return c.JSON(cart)
}

// DELETE /api/v1/carts/:id/items/:itemId
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	cartID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid cart ID"})
	}
	itemID, err := parseUUID(c.Params("itemId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	cart, err := h.service.RemoveItem(cartID, itemID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cart)
}

type attachCustomerRequest struct {
	CustomerID uuid.UUID `json:"customer_id"`
}

// PUT /api/v1/carts/:id/customer
func (h *CartHandler) AttachCustomer(c *fiber.Ctx) error {
	cartID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid cart ID"})
	}

	var req attachCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cart, err := h.service.AttachCustomer(cartID, req.CustomerID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cart)
}

// Checkout finalizes the sale into the ledger.
// POST /api/v1/carts/:id/checkout
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	cartID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid cart ID"})
	}

	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.service.Checkout(cartID, req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale completed", "data": transaction})
}

// DELETE /api/v1/carts/:id
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	cartID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid cart ID"})
	}

	if err := h.service.Clear(cartID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
