package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gymadmin/internal/domain"
	"gymadmin/internal/middleware"
	"gymadmin/internal/service/facility"
)

type FacilityHandler struct {
	facilityService facility.Service
}

func NewFacilityHandler(facilityService facility.Service) *FacilityHandler {
	return &FacilityHandler{facilityService: facilityService}
}

func (h *FacilityHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateFacilityInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.facilityService.Create(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *FacilityHandler) List(c *fiber.Ctx) error {
	facilities, err := h.facilityService.List(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(facilities)
}

func (h *FacilityHandler) Get(c *fiber.Ctx) error {
	facilityID, err := uuid.Parse(c.Params("facilityId"))
	if err != nil {
		return middleware.BadRequest("Invalid facility ID")
	}

	found, err := h.facilityService.GetByID(c.Context(), facilityID)
	if err != nil {
		if errors.Is(err, domain.ErrFacilityNotFound) {
			return middleware.NotFound("Facility not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *FacilityHandler) Update(c *fiber.Ctx) error {
	facilityID, err := uuid.Parse(c.Params("facilityId"))
	if err != nil {
		return middleware.BadRequest("Invalid facility ID")
	}

	var input domain.UpdateFacilityInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.facilityService.Update(c.Context(), facilityID, input)
	if err != nil {
		if errors.Is(err, domain.ErrFacilityNotFound) {
			return middleware.NotFound("Facility not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}
