package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gymadmin/internal/domain"
	"gymadmin/internal/middleware"
	"gymadmin/internal/service/nutritionalplan"
	"gymadmin/internal/service/replication"
)

type NutritionalPlanHandler struct {
	nutritionalPlanService nutritionalplan.Service
	replicationService     replication.Service
}

func NewNutritionalPlanHandler(nutritionalPlanService nutritionalplan.Service, replicationService replication.Service) *NutritionalPlanHandler {
	return &NutritionalPlanHandler{
		nutritionalPlanService: nutritionalPlanService,
		replicationService:     replicationService,
	}
}

func (h *NutritionalPlanHandler) Create(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	var input domain.CreateNutritionalPlanInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.nutritionalPlanService.Create(c.Context(), actorID, facilityID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *NutritionalPlanHandler) List(c *fiber.Ctx) error {
	facilityID := middleware.GetFacilityID(c)
	params := getPaginationParams(c)

	result, err := h.nutritionalPlanService.List(c.Context(), facilityID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NutritionalPlanHandler) Get(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("nutritionalPlanId"))
	if err != nil {
		return middleware.BadRequest("Invalid nutritional plan ID")
	}

	found, err := h.nutritionalPlanService.GetByID(c.Context(), planID)
	if err != nil {
		if errors.Is(err, domain.ErrNutritionalPlanNotFound) {
			return middleware.NotFound("Nutritional plan not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *NutritionalPlanHandler) Update(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	planID, err := uuid.Parse(c.Params("nutritionalPlanId"))
	if err != nil {
		return middleware.BadRequest("Invalid nutritional plan ID")
	}

	var input domain.UpdateNutritionalPlanInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.nutritionalPlanService.Update(c.Context(), actorID, facilityID, planID, input)
	if err != nil {
		if errors.Is(err, domain.ErrNutritionalPlanNotFound) {
			return middleware.NotFound("Nutritional plan not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *NutritionalPlanHandler) Delete(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	planID, err := uuid.Parse(c.Params("nutritionalPlanId"))
	if err != nil {
		return middleware.BadRequest("Invalid nutritional plan ID")
	}

	if err := h.nutritionalPlanService.Delete(c.Context(), actorID, facilityID, planID); err != nil {
		if errors.Is(err, domain.ErrNutritionalPlanNotFound) {
			return middleware.NotFound("Nutritional plan not found")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *NutritionalPlanHandler) Assign(c *fiber.Ctx) error {
	return h.assign(c, h.nutritionalPlanService.Assign)
}

func (h *NutritionalPlanHandler) Unassign(c *fiber.Ctx) error {
	return h.assign(c, h.nutritionalPlanService.Unassign)
}

func (h *NutritionalPlanHandler) assign(c *fiber.Ctx, op func(ctx context.Context, actorID, facilityID uuid.UUID, input domain.AssignNutritionalPlanInput) error) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	var input domain.AssignNutritionalPlanInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(input.UserIDs) == 0 {
		return middleware.BadRequest("No user ids provided")
	}

	if err := op(c.Context(), actorID, facilityID, input); err != nil {
		if errors.Is(err, domain.ErrNutritionalPlanNotFound) {
			return middleware.NotFound("Nutritional plan not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "OK"})
}

func (h *NutritionalPlanHandler) Replicate(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	var input domain.ReplicateInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(input.SourceIDs) == 0 || len(input.TargetFacilityIDs) == 0 {
		return middleware.BadRequest("Source ids and target facility ids are required")
	}

	result, err := h.replicationService.ReplicateNutritionalPlans(c.Context(), actorID, facilityID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
