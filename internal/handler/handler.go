package handler

import (
	"errors"
	"time"

	"github.com/alhadaf/pos/internal/repository"
	"github.com/alhadaf/pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to pull user info from the JWT context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// hasPermission checks one capability against the set the auth middleware
// pulled from the token.
func hasPermission(c *fiber.Ctx, code string) bool {
	permissions, ok := c.Locals("user_permissions").([]string)
	if !ok {
		return false
	}
	for _, p := range permissions {
		if p == code {
			return true
		}
	}
	return false
}

// status maps service errors to HTTP codes so handlers stay uniform.
func status(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrCartNotFound),
		errors.Is(err, service.ErrItemNotFound):
		return 404
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserInactive),
		errors.Is(err, service.ErrSessionTimeout):
		return 401
	default:
		return 400
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(status(err)).JSON(fiber.Map{"error": err.Error()})
}

// parseWindow reads start/end query params (RFC 3339). Missing values
// default to the last 30 days ending now; the window is half-open
// [start, end).
func parseWindow(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	start := now.AddDate(0, 0, -30)
	end := now

	if v := c.Query("start"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return start, end, errors.New("invalid start date, use RFC 3339")
		}
		start = t
	}
	if v := c.Query("end"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return start, end, errors.New("invalid end date, use RFC 3339")
		}
		end = t
	}
	if end.Before(start) {
		return start, end, errors.New("end must not precede start")
	}
	return start, end, nil
}

// parseRange maps the dashboard range shorthand to a start date.
func parseRange(c *fiber.Ctx) (time.Time, time.Time) {
	now := time.Now()
	switch c.Query("range", "7d") {
	case "1m":
		return now.AddDate(0, -1, 0), now
	case "3m":
		return now.AddDate(0, -3, 0), now
	case "6m":
		return now.AddDate(0, -6, 0), now
	case "12m":
		return now.AddDate(0, -12, 0), now
	default: // "7d"
		return now.AddDate(0, 0, -7), now
	}
}
