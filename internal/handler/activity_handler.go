package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gymadmin/internal/domain"
	"gymadmin/internal/middleware"
	"gymadmin/internal/service/activity"
	"gymadmin/internal/service/replication"
)

type ActivityHandler struct {
	activityService    activity.Service
	replicationService replication.Service
}

func NewActivityHandler(activityService activity.Service, replicationService replication.Service) *ActivityHandler {
	return &ActivityHandler{
		activityService:    activityService,
		replicationService: replicationService,
	}
}

func (h *ActivityHandler) Create(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	var input domain.CreateActivityInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.activityService.Create(c.Context(), actorID, facilityID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ActivityHandler) List(c *fiber.Ctx) error {
	facilityID := middleware.GetFacilityID(c)
	params := getPaginationParams(c)

	result, err := h.activityService.List(c.Context(), facilityID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ActivityHandler) Get(c *fiber.Ctx) error {
	activityID, err := uuid.Parse(c.Params("activityId"))
	if err != nil {
		return middleware.BadRequest("Invalid activity ID")
	}

	found, err := h.activityService.GetByID(c.Context(), activityID)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			return middleware.NotFound("Activity not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *ActivityHandler) Update(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	activityID, err := uuid.Parse(c.Params("activityId"))
	if err != nil {
		return middleware.BadRequest("Invalid activity ID")
	}

	var input domain.UpdateActivityInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.activityService.Update(c.Context(), actorID, facilityID, activityID, input)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			return middleware.NotFound("Activity not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *ActivityHandler) DeleteMany(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	var input domain.BulkDeleteInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(input.IDs) == 0 {
		return middleware.BadRequest("No ids provided")
	}

	result, err := h.activityService.DeleteMany(c.Context(), actorID, facilityID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ActivityHandler) Replicate(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	var input domain.ReplicateInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(input.SourceIDs) == 0 || len(input.TargetFacilityIDs) == 0 {
		return middleware.BadRequest("Source ids and target facility ids are required")
	}

	result, err := h.replicationService.ReplicateActivities(c.Context(), actorID, facilityID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ActivityHandler) CreateDiary(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	activityID, err := uuid.Parse(c.Params("activityId"))
	if err != nil {
		return middleware.BadRequest("Invalid activity ID")
	}

	var input domain.CreateDiaryInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	input.ActivityID = activityID

	created, err := h.activityService.CreateDiary(c.Context(), actorID, facilityID, input)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			return middleware.NotFound("Activity not found")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ActivityHandler) ListDiaries(c *fiber.Ctx) error {
	activityID, err := uuid.Parse(c.Params("activityId"))
	if err != nil {
		return middleware.BadRequest("Invalid activity ID")
	}

	diaries, err := h.activityService.ListDiaries(c.Context(), activityID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(diaries)
}

func (h *ActivityHandler) ReplicateDiaries(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	facilityID := middleware.GetFacilityID(c)

	var input domain.ReplicateInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(input.SourceIDs) == 0 || len(input.TargetFacilityIDs) == 0 {
		return middleware.BadRequest("Source ids and target facility ids are required")
	}

	result, err := h.replicationService.ReplicateDiaries(c.Context(), actorID, facilityID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
