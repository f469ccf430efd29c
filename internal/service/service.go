package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"gymadmin/internal/config"
	"gymadmin/internal/repository"
	"gymadmin/internal/service/activity"
	"gymadmin/internal/service/audit"
	"gymadmin/internal/service/auth"
	"gymadmin/internal/service/email"
	"gymadmin/internal/service/facility"
	"gymadmin/internal/service/media"
	"gymadmin/internal/service/notification"
	"gymadmin/internal/service/nutritionalplan"
	"gymadmin/internal/service/plan"
	"gymadmin/internal/service/replication"
	"gymadmin/internal/service/routine"
	"gymadmin/internal/service/user"
)

type Services struct {
	Auth            auth.Service
	User            user.Service
	Facility        facility.Service
	Activity        activity.Service
	Plan            plan.Service
	Routine         routine.Service
	NutritionalPlan nutritionalplan.Service
	Replication     replication.Service
	Audit           audit.Service
	Notification    notification.Service
	Email           email.Service
	Media           media.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	notificationService := notification.NewService(repos.Notification, repos.User, emailService, redisClient)
	auditService := audit.NewService(repos.Transaction)

	return &Services{
		Auth:            auth.NewService(repos.User, cfg),
		User:            user.NewService(repos, repos, notificationService, emailService),
		Facility:        facility.NewService(repos.Facility),
		Activity:        activity.NewService(repos, repos, notificationService, cfg),
		Plan:            plan.NewService(repos, repos, notificationService, cfg),
		Routine:         routine.NewService(repos, repos, notificationService),
		NutritionalPlan: nutritionalplan.NewService(repos, repos, notificationService),
		Replication:     replication.NewService(repos, notificationService),
		Audit:           auditService,
		Notification:    notificationService,
		Email:           emailService,
		Media:           media.NewService(repos.User, minioClient, cfg),
	}
}
