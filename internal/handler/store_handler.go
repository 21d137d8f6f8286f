package handler

import (
	"github.com/alhadaf/pos/internal/model"
	"github.com/alhadaf/pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StoreHandler struct {
	service service.StoreService
}

func NewStoreHandler(s service.StoreService) *StoreHandler {
	return &StoreHandler{service: s}
}

// GET /api/v1/stores
func (h *StoreHandler) GetStores(c *fiber.Ctx) error {
	stores, err := h.service.GetAllStores()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stores)
}

// GET /api/v1/stores/:id
func (h *StoreHandler) GetStore(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	store, err := h.service.GetStore(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(store)
}

// POST /api/v1/stores
func (h *StoreHandler) CreateStore(c *fiber.Ctx) error {
	var req model.StoreLocation
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateStore(&req, getUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(req)
}

// PUT /api/v1/stores/:id
func (h *StoreHandler) UpdateStore(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	var req model.StoreLocation
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	store, err := h.service.UpdateStore(id, &req, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(store)
}

// DELETE /api/v1/stores/:id
func (h *StoreHandler) DeleteStore(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	if err := h.service.DeleteStore(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Store deleted"})
}

// SelectStore makes the given store the active one for reporting
// defaults and broadcasts the change to connected clients.
// POST /api/v1/stores/:id/select
func (h *StoreHandler) SelectStore(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	store, err := h.service.Select(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(store)
}

// GET /api/v1/stores/current
func (h *StoreHandler) GetCurrentStore(c *fiber.Ctx) error {
	store := h.service.Current()
	if store == nil {
		return c.Status(404).JSON(fiber.Map{"error": "No store selected"})
	}
	return c.JSON(store)
}
