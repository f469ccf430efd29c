package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gymadmin/internal/domain"
	"gymadmin/internal/middleware"
	"gymadmin/internal/service/replication"
	"gymadmin/internal/service/routine"
)

type RoutineHandler struct {
	routineService     routine.Service
	replicationService replication.Service
}

func NewRoutineHandler(routineService routine.Service, replicationService replication.Service) *RoutineHandler {
	return &RoutineHandler{
		routineService:     routineService,
		replicationService: replicationService,
	}
}

func (h *RoutineHandler) Create(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	var input domain.CreateRoutineInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.routineService.Create(c.Context(), actorID, facilityID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *RoutineHandler) List(c *fiber.Ctx) error {
	facilityID := middleware.GetFacilityID(c)
	params := getPaginationParams(c)

	result, err := h.routineService.List(c.Context(), facilityID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *RoutineHandler) Get(c *fiber.Ctx) error {
	routineID, err := uuid.Parse(c.Params("routineId"))
	if err != nil {
		return middleware.BadRequest("Invalid routine ID")
	}

	found, err := h.routineService.GetByID(c.Context(), routineID)
	if err != nil {
		if errors.Is(err, domain.ErrRoutineNotFound) {
			return middleware.NotFound("Routine not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *RoutineHandler) Update(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	routineID, err := uuid.Parse(c.Params("routineId"))
	if err != nil {
		return middleware.BadRequest("Invalid routine ID")
	}

	var input domain.UpdateRoutineInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.routineService.Update(c.Context(), actorID, facilityID, routineID, input)
	if err != nil {
		if errors.Is(err, domain.ErrRoutineNotFound) {
			return middleware.NotFound("Routine not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *RoutineHandler) Delete(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	routineID, err := uuid.Parse(c.Params("routineId"))
	if err != nil {
		return middleware.BadRequest("Invalid routine ID")
	}

	if err := h.routineService.Delete(c.Context(), actorID, facilityID, routineID); err != nil {
		if errors.Is(err, domain.ErrRoutineNotFound) {
			return middleware.NotFound("Routine not found")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *RoutineHandler) Assign(c *fiber.Ctx) error {
	return h.assign(c, h.routineService.Assign)
}

func (h *RoutineHandler) Unassign(c *fiber.Ctx) error {
	return h.assign(c, h.routineService.Unassign)
}

func (h *RoutineHandler) assign(c *fiber.Ctx, op func(ctx context.Context, actorID, facilityID uuid.UUID, input domain.AssignRoutineInput) error) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	var input domain.AssignRoutineInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(input.UserIDs) == 0 {
		return middleware.BadRequest("No user ids provided")
	}

	if err := op(c.Context(), actorID, facilityID, input); err != nil {
		if errors.Is(err, domain.ErrRoutineNotFound) {
			return middleware.NotFound("Routine not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "OK"})
}

func (h *RoutineHandler) Replicate(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	var input domain.ReplicateInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(input.SourceIDs) == 0 || len(input.TargetFacilityIDs) == 0 {
		return middleware.BadRequest("Source ids and target facility ids are required")
	}

	result, err := h.replicationService.ReplicateRoutines(c.Context(), actorID, facilityID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
