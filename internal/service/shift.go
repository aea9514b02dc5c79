package service

import (
	"context"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/repository"
)

type shiftService struct {
	shiftRepo repository.ShiftRepository
}

func NewShiftService(shiftRepo repository.ShiftRepository) ShiftService {
	return &shiftService{shiftRepo: shiftRepo}
}

func (s *shiftService) ListShifts(ctx context.Context) ([]domain.ShiftWithOrganization, error) {
	shifts, err := s.shiftRepo.List(ctx)
	if err != nil {
		return nil, domain.NewStorageError("list shifts", err)
	}
	return shifts, nil
}

func (s *shiftService) GetShift(ctx context.Context, id int32) (*domain.ShiftWithOrganization, error) {
	shift, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewStorageError("get shift", err)
	}
	return shift, nil
}
