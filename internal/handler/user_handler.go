package handler

import (
	"github.com/alhadaf/pos/internal/model"
	"github.com/alhadaf/pos/internal/repository"
	"github.com/alhadaf/pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	service        service.UserService
	permissionRepo repository.PermissionRepository
}

func NewUserHandler(s service.UserService, pRepo repository.PermissionRepository) *UserHandler {
	return &UserHandler{service: s, permissionRepo: pRepo}
}

// GET /api/v1/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers()
	if err != nil {
		return fail(c, err)
	}

	responses := make([]model.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	return c.JSON(responses)
}

// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	user, err := h.service.GetUser(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user.ToResponse())
}

// POST /api/v1/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.service.CreateUser(&req, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(user.ToResponse())
}

// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.service.UpdateUser(id, &req, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user.ToResponse())
}

// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	actorID, err := parseUUID(getUserID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := h.service.DeleteUser(id, actorID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

type updatePermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

// UpdatePermissions replaces a user's permission set wholesale.
// PUT /api/v1/users/:id/permissions
func (h *UserHandler) UpdatePermissions(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req updatePermissionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.UpdatePermissions(id, req.Permissions); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Permissions updated"})
}

// GetPermissions lists the known permission catalog so clients can
// render assignment checkboxes.
// GET /api/v1/permissions
func (h *UserHandler) GetPermissions(c *fiber.Ctx) error {
	permissions, err := h.permissionRepo.FindAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(permissions)
}
