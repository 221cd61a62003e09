package service

import (
	"context"

	"github.com/google/uuid"

	"diary-backend/internal/domains/license/model"
	"diary-backend/internal/domains/license/repository"
)

type LicenseService interface {
	ListActive(ctx context.Context) ([]*model.LicenseResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.LicenseResponse, error)
	IsActive(ctx context.Context, id uuid.UUID) (bool, error)
}

type licenseService struct {
	licenses repository.LicenseRepository
}

func NewLicenseService(licenses repository.LicenseRepository) LicenseService {
	return &licenseService{licenses: licenses}
}

func (s *licenseService) ListActive(ctx context.Context) ([]*model.LicenseResponse, error) {
	licenses, err := s.licenses.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*model.LicenseResponse, len(licenses))
	for i, license := range licenses {
		responses[i] = license.ToResponse()
	}
	return responses, nil
}

func (s *licenseService) GetByID(ctx context.Context, id uuid.UUID) (*model.LicenseResponse, error) {
	license, err := s.licenses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return license.ToResponse(), nil
}

func (s *licenseService) IsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.licenses.IsActive(ctx, id)
}
