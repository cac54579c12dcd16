package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/repository"

	"github.com/shopspring/decimal"
)

type fleetService struct {
	vehicleRepo repository.VehicleRepository
}

func NewFleetService(vehicleRepo repository.VehicleRepository) FleetService {
	return &fleetService{vehicleRepo: vehicleRepo}
}

func (s *fleetService) AddVehicle(ctx context.Context, v *domain.Vehicle) error {
	if v.Make == "" || v.Model == "" || v.LicensePlate == "" {
		return fmt.Errorf("%w: make, model and license plate are required", ErrValidation)
	}
	if v.DailyRate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: daily rate must be positive", ErrValidation)
	}
	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}
	return s.vehicleRepo.Create(ctx, v)
}

func (s *fleetService) GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: vehicle %d", ErrNotFound, id)
		}
		return nil, err
	}
	return v, nil
}

func (s *fleetService) UpdateVehicle(ctx context.Context, v *domain.Vehicle) error {
	if v.DailyRate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: daily rate must be positive", ErrValidation)
	}
	return s.vehicleRepo.Update(ctx, v)
}

func (s *fleetService) RetireVehicle(ctx context.Context, id int32) error {
	return s.vehicleRepo.Delete(ctx, id)
}

func (s *fleetService) ListVehicles(ctx context.Context, status string, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.vehicleRepo.List(ctx, status, page, pageSize)
}

func (s *fleetService) ListCategories(ctx context.Context) ([]domain.VehicleCategory, error) {
	return s.vehicleRepo.ListCategories(ctx)
}

func (s *fleetService) ResolveUnit(ctx context.Context, kind domain.UnitKind, vehicleID, categoryID *int32) (*domain.BookedUnit, error) {
	unit, err := s.vehicleRepo.ResolveUnit(ctx, kind, vehicleID, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: unit", ErrNotFound)
		}
		return nil, err
	}
	return unit, nil
}
