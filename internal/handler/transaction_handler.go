package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gymadmin/internal/domain"
	"gymadmin/internal/middleware"
	"gymadmin/internal/service/audit"
)

type TransactionHandler struct {
	auditService audit.Service
}

func NewTransactionHandler(auditService audit.Service) *TransactionHandler {
	return &TransactionHandler{auditService: auditService}
}

// Feed serves the facility audit feed with cursor forwarding: the client
// echoes next_cursor back verbatim to get the following page.
func (h *TransactionHandler) Feed(c *fiber.Ctx) error {
	facilityID := middleware.GetFacilityID(c)

	var cursor *uuid.UUID
	if raw := c.Query("cursor"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return middleware.BadRequest("Invalid cursor")
		}
		cursor = &parsed
	}

	pageSize := c.QueryInt("page_size", domain.DefaultFeedPageSize)

	page, err := h.auditService.Page(c.Context(), facilityID, cursor, pageSize)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

func (h *TransactionHandler) Recent(c *fiber.Ctx) error {
	facilityID := middleware.GetFacilityID(c)
	limit := c.QueryInt("limit", domain.DefaultFeedPageSize)

	recent, err := h.auditService.GetRecent(c.Context(), facilityID, limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(recent)
}
