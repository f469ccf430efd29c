package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gymadmin/internal/domain"
	"gymadmin/internal/middleware"
	"gymadmin/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)

	var input domain.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if !input.Role.IsValid() {
		return middleware.BadRequest("Invalid role")
	}
	input.FacilityID = middleware.GetFacilityID(c)

	created, err := h.userService.Create(c.Context(), actorID, input)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return middleware.Conflict("Email already registered")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	found, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.userService.Update(c.Context(), actorID, facilityID, userID, input)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		if errors.Is(err, domain.ErrEmailTaken) {
			return middleware.Conflict("Email already registered")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	if err := h.userService.Delete(c.Context(), actorID, facilityID, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *UserHandler) AssignRole(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	var input domain.AssignRoleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if !input.Role.IsValid() {
		return middleware.BadRequest("Invalid role")
	}

	if err := h.userService.AssignRole(c.Context(), actorID, facilityID, input); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Role assigned"})
}

func (h *UserHandler) ListMembers(c *fiber.Ctx) error {
	facilityID := middleware.GetFacilityID(c)

	members, err := h.userService.ListMembers(c.Context(), facilityID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(members)
}
