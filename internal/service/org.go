package service

import (
	"context"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/repository"
)

type organizationService struct {
	orgRepo repository.OrganizationRepository
}

func NewOrganizationService(orgRepo repository.OrganizationRepository) OrganizationService {
	return &organizationService{orgRepo: orgRepo}
}

func (s *organizationService) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	orgs, err := s.orgRepo.List(ctx)
	if err != nil {
		return nil, domain.NewStorageError("list organizations", err)
	}
	return orgs, nil
}

func (s *organizationService) GetOrganization(ctx context.Context, id int32) (*domain.OrganizationDetail, error) {
	org, err := s.orgRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, domain.NewStorageError("get organization", err)
	}
	return org, nil
}
