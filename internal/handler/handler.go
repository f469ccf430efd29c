package handler

import (
	"github.com/gofiber/fiber/v2"

	"gymadmin/internal/domain"
	"gymadmin/internal/service"
)

type Handlers struct {
	Auth            *AuthHandler
	User            *UserHandler
	Facility        *FacilityHandler
	Activity        *ActivityHandler
	Plan            *PlanHandler
	Routine         *RoutineHandler
	NutritionalPlan *NutritionalPlanHandler
	Transaction     *TransactionHandler
	Notification    *NotificationHandler
	Media           *MediaHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:            NewAuthHandler(services.Auth),
		User:            NewUserHandler(services.User),
		Facility:        NewFacilityHandler(services.Facility),
		Activity:        NewActivityHandler(services.Activity, services.Replication),
		Plan:            NewPlanHandler(services.Plan, services.Replication),
		Routine:         NewRoutineHandler(services.Routine, services.Replication),
		NutritionalPlan: NewNutritionalPlanHandler(services.NutritionalPlan, services.Replication),
		Transaction:     NewTransactionHandler(services.Audit),
		Notification:    NewNotificationHandler(services.Notification),
		Media:           NewMediaHandler(services.Media),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 0); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 0); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
