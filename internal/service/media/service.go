package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"gymadmin/internal/config"
	"gymadmin/internal/domain"
	"gymadmin/internal/repository"
)

// Service stores user avatars in object storage and keeps the public URL on
// the user row.
type Service interface {
	UploadAvatar(ctx context.Context, userID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error)
	RemoveAvatar(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	userRepo    repository.UserRepository
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(userRepo repository.UserRepository, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{userRepo: userRepo, minioClient: minioClient, cfg: cfg}
}

func (s *service) UploadAvatar(ctx context.Context, userID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}

	storagePath := fmt.Sprintf("avatars/%s/%s", time.Now().Format("2006/01"), uuid.New().String())

	_, err = s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	publicURL := s.getPublicURL(storagePath)
	user.AvatarURL = &publicURL
	if err := s.userRepo.Update(ctx, user); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return "", err
	}

	return publicURL, nil
}

func (s *service) RemoveAvatar(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.AvatarURL == nil {
		return nil
	}

	user.AvatarURL = nil
	return s.userRepo.Update(ctx, user)
}

func (s *service) getPublicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(storagePath))
}
