package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gymadmin/internal/domain"
	"gymadmin/internal/middleware"
	"gymadmin/internal/service/plan"
	"gymadmin/internal/service/replication"
)

type PlanHandler struct {
	planService        plan.Service
	replicationService replication.Service
}

func NewPlanHandler(planService plan.Service, replicationService replication.Service) *PlanHandler {
	return &PlanHandler{
		planService:        planService,
		replicationService: replicationService,
	}
}

func (h *PlanHandler) Create(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	var input domain.CreatePlanInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.planService.Create(c.Context(), actorID, facilityID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *PlanHandler) List(c *fiber.Ctx) error {
	facilityID := middleware.GetFacilityID(c)
	params := getPaginationParams(c)

	result, err := h.planService.List(c.Context(), facilityID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PlanHandler) Get(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("planId"))
	if err != nil {
		return middleware.BadRequest("Invalid plan ID")
	}

	found, err := h.planService.GetByID(c.Context(), planID)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			return middleware.NotFound("Plan not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *PlanHandler) Update(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	planID, err := uuid.Parse(c.Params("planId"))
	if err != nil {
		return middleware.BadRequest("Invalid plan ID")
	}

	var input domain.UpdatePlanInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.planService.Update(c.Context(), actorID, facilityID, planID, input)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			return middleware.NotFound("Plan not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *PlanHandler) DeleteMany(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	var input domain.BulkDeleteInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(input.IDs) == 0 {
		return middleware.BadRequest("No ids provided")
	}

	result, err := h.planService.DeleteMany(c.Context(), actorID, facilityID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PlanHandler) Replicate(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	var input domain.ReplicateInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(input.SourceIDs) == 0 || len(input.TargetFacilityIDs) == 0 {
		return middleware.BadRequest("Source ids and target facility ids are required")
	}

	result, err := h.replicationService.ReplicatePlans(c.Context(), actorID, facilityID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
