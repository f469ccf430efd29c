package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"gymadmin/internal/config"
	"gymadmin/internal/domain"
	"gymadmin/internal/handler"
	"gymadmin/internal/middleware"
	"gymadmin/internal/repository"
	"gymadmin/internal/service"
	"gymadmin/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (avatar upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.Refresh)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Get("/me", h.Auth.Me)
	protected.Post("/me/avatar", h.Media.UploadAvatar)
	protected.Delete("/me/avatar", h.Media.RemoveAvatar)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Patch("/:notificationId/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	facilities := protected.Group("/facilities")
	facilities.Post("/", middleware.RequireRole(domain.RoleSuperAdmin), h.Facility.Create)
	facilities.Get("/", h.Facility.List)
	facilities.Get("/:facilityId", h.Facility.Get)
	facilities.Put("/:facilityId", middleware.RequireRole(domain.RoleAdmin), h.Facility.Update)

	// Everything below is scoped to one facility.
	scoped := protected.Group("/facilities/:facilityId", middleware.FacilityScoped())

	users := scoped.Group("/users", middleware.RequireRole(domain.RoleAdmin))
	users.Post("/", h.User.Create)
	users.Get("/", h.User.ListMembers)
	users.Get("/:userId", h.User.Get)
	users.Put("/:userId", h.User.Update)
	users.Delete("/:userId", h.User.Delete)
	users.Post("/assign-role", h.User.AssignRole)

	activities := scoped.Group("/activities")
	activities.Post("/", middleware.RequireRole(domain.RoleStaff), h.Activity.Create)
	activities.Get("/", h.Activity.List)
	activities.Get("/:activityId", h.Activity.Get)
	activities.Put("/:activityId", middleware.RequireRole(domain.RoleStaff), h.Activity.Update)
	activities.Post("/delete-many", middleware.RequireRole(domain.RoleAdmin), h.Activity.DeleteMany)
	activities.Post("/replicate", middleware.RequireRole(domain.RoleAdmin), h.Activity.Replicate)
	activities.Post("/:activityId/diaries", middleware.RequireRole(domain.RoleStaff), h.Activity.CreateDiary)
	activities.Get("/:activityId/diaries", h.Activity.ListDiaries)

	diaries := scoped.Group("/diaries")
	diaries.Post("/replicate", middleware.RequireRole(domain.RoleAdmin), h.Activity.ReplicateDiaries)

	plans := scoped.Group("/plans")
	plans.Post("/", middleware.RequireRole(domain.RoleStaff), h.Plan.Create)
	plans.Get("/", h.Plan.List)
	plans.Get("/:planId", h.Plan.Get)
	plans.Put("/:planId", middleware.RequireRole(domain.RoleStaff), h.Plan.Update)
	plans.Post("/delete-many", middleware.RequireRole(domain.RoleAdmin), h.Plan.DeleteMany)
	plans.Post("/replicate", middleware.RequireRole(domain.RoleAdmin), h.Plan.Replicate)

	routines := scoped.Group("/routines")
	routines.Post("/", middleware.RequireRole(domain.RoleStaff), h.Routine.Create)
	routines.Get("/", h.Routine.List)
	routines.Get("/:routineId", h.Routine.Get)
	routines.Put("/:routineId", middleware.RequireRole(domain.RoleStaff), h.Routine.Update)
	routines.Delete("/:routineId", middleware.RequireRole(domain.RoleStaff), h.Routine.Delete)
	routines.Post("/assign", middleware.RequireRole(domain.RoleStaff), h.Routine.Assign)
	routines.Post("/unassign", middleware.RequireRole(domain.RoleStaff), h.Routine.Unassign)
	routines.Post("/replicate", middleware.RequireRole(domain.RoleAdmin), h.Routine.Replicate)

	nutritionalPlans := scoped.Group("/nutritional-plans")
	nutritionalPlans.Post("/", middleware.RequireRole(domain.RoleStaff), h.NutritionalPlan.Create)
	nutritionalPlans.Get("/", h.NutritionalPlan.List)
	nutritionalPlans.Get("/:nutritionalPlanId", h.NutritionalPlan.Get)
	nutritionalPlans.Put("/:nutritionalPlanId", middleware.RequireRole(domain.RoleStaff), h.NutritionalPlan.Update)
	nutritionalPlans.Delete("/:nutritionalPlanId", middleware.RequireRole(domain.RoleStaff), h.NutritionalPlan.Delete)
	nutritionalPlans.Post("/assign", middleware.RequireRole(domain.RoleStaff), h.NutritionalPlan.Assign)
	nutritionalPlans.Post("/unassign", middleware.RequireRole(domain.RoleStaff), h.NutritionalPlan.Unassign)
	nutritionalPlans.Post("/replicate", middleware.RequireRole(domain.RoleAdmin), h.NutritionalPlan.Replicate)

	transactions := scoped.Group("/transactions", middleware.RequireRole(domain.RoleStaff))
	transactions.Get("/feed", h.Transaction.Feed)
	transactions.Get("/recent", h.Transaction.Recent)
}
