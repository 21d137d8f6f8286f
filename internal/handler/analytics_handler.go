package handler

import (
	"time"

	"github.com/alhadaf/pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	service service.ReportService
}

func NewAnalyticsHandler(s service.ReportService) *AnalyticsHandler {
	return &AnalyticsHandler{service: s}
}

// GetBranchAnalytics returns the sales and customer metrics for one
// store over the requested window.
// GET /api/v1/analytics/branch/:id
func (h *AnalyticsHandler) GetBranchAnalytics(c *fiber.Ctx) error {
	storeID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	start, end, err := parseWindow(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := h.service.BranchAnalytics(storeID, start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

// GetAllBranchesAnalytics returns one report per registered store.
// GET /api/v1/analytics/branches
func (h *AnalyticsHandler) GetAllBranchesAnalytics(c *fiber.Ctx) error {
	start, end, err := parseWindow(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	reports, err := h.service.AllBranchesAnalytics(start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(reports)
}

// GetSummary is the dashboard aggregate across all stores.
// GET /api/v1/analytics/summary?range=7d|1m|3m|6m|12m
func (h *AnalyticsHandler) GetSummary(c *fiber.Ctx) error {
	start, end := parseRange(c)

	report, err := h.service.Summary(start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

// GetReport dispatches the named report type. Explicit start/end take
// precedence over the range shorthand.
// GET /api/v1/reports/:type?start=&end= or ?range=7d|1m|3m|6m|12m
func (h *AnalyticsHandler) GetReport(c *fiber.Ctx) error {
	var (
		start, end time.Time
		err        error
	)
	if c.Query("start") != "" || c.Query("end") != "" {
		start, end, err = parseWindow(c)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	} else {
		start, end = parseRange(c)
	}

	switch c.Params("type") {
	case "sales":
		report, err := h.service.Summary(start, end)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(report)
	case "financial":
		report, err := h.service.Financial(start, end)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(report)
	case "customers":
		report, err := h.service.Customers(start, end)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(report)
	case "inventory":
		report, err := h.service.Inventory()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(report)
	default:
		return c.Status(400).JSON(fiber.Map{"error": "Unknown report type"})
	}
}
