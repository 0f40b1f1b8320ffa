package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/AakashShah07/Web-Development-Assesment/internal/domain"
	"github.com/AakashShah07/Web-Development-Assesment/internal/repository"
)

type SchoolService interface {
	CreateSchool(ctx context.Context, s domain.NewSchool) (int64, error)
	ListSchools(ctx context.Context) ([]domain.School, error)
	Ping(ctx context.Context) error
}

type schoolService struct {
	repo      repository.SchoolRepository
	images    ImageService
	validator *domain.Validator
	log       *zap.Logger
}

func NewSchoolService(repo repository.SchoolRepository, images ImageService, log *zap.Logger) SchoolService {
	return &schoolService{
		repo:      repo,
		images:    images,
		validator: domain.NewValidator(),
		log:       log,
	}
}

// CreateSchool validates the payload, checks that the referenced image was
// uploaded and inserts a single row.
func (s *schoolService) CreateSchool(ctx context.Context, in domain.NewSchool) (int64, error) {
	in = in.Normalize()
	if err := s.validator.Validate(in); err != nil {
		return 0, err
	}

	found, err := s.images.Exists(ctx, in.Image)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, domain.NewValidationError("image", "Image not found, upload it first")
	}

	id, err := s.repo.Create(ctx, in)
	if err != nil {
		return 0, &domain.StorageError{Op: "insert school", Err: err}
	}

	s.log.Info("School added",
		zap.Int64("id", id),
		zap.String("name", in.Name),
		zap.String("image", in.Image))

	return id, nil
}

func (s *schoolService) ListSchools(ctx context.Context) ([]domain.School, error) {
	schools, err := s.repo.List(ctx)
	if err != nil {
		return nil, &domain.StorageError{Op: "list schools", Err: err}
	}
	return schools, nil
}

func (s *schoolService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
