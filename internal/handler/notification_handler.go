package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gymadmin/internal/middleware"
	"gymadmin/internal/service/notification"
)

type NotificationHandler struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	recipientID := middleware.GetCurrentUserID(c)
	unreadOnly := c.QueryBool("unread_only", false)
	params := getPaginationParams(c)

	result, err := h.notificationService.List(c.Context(), recipientID, unreadOnly, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	recipientID := middleware.GetCurrentUserID(c)

	notificationID, err := uuid.Parse(c.Params("notificationId"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notificationService.MarkAsRead(c.Context(), notificationID, recipientID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	recipientID := middleware.GetCurrentUserID(c)

	if err := h.notificationService.MarkAllAsRead(c.Context(), recipientID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	recipientID := middleware.GetCurrentUserID(c)

	count, err := h.notificationService.GetUnreadCount(c.Context(), recipientID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"unread_count": count})
}
