package service

import (
	"context"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByReference(ctx context.Context, ref string) (*domain.Booking, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int32, fromStatus, toStatus domain.BookingStatus) error {
	args := m.Called(ctx, id, fromStatus, toStatus)
	return args.Error(0)
}

func (m *MockBookingRepo) UpdateReturnState(ctx context.Context, id int32, fromState, toState string) error {
	args := m.Called(ctx, id, fromState, toState)
	return args.Error(0)
}

func (m *MockBookingRepo) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

func (m *MockBookingRepo) ListByStatus(ctx context.Context, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

func (m *MockBookingRepo) ListOverdueActive(ctx context.Context, asOf string) ([]domain.Booking, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleRepo) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int32), args.Error(2)
}

func (m *MockVehicleRepo) GetCategoryByID(ctx context.Context, id int32) (*domain.VehicleCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleCategory), args.Error(1)
}

func (m *MockVehicleRepo) ListCategories(ctx context.Context) ([]domain.VehicleCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.VehicleCategory), args.Error(1)
}

func (m *MockVehicleRepo) ResolveUnit(ctx context.Context, kind domain.UnitKind, vehicleID, categoryID *int32) (*domain.BookedUnit, error) {
	args := m.Called(ctx, kind, vehicleID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookedUnit), args.Error(1)
}

type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockDepositRepo struct {
	mock.Mock
}

func (m *MockDepositRepo) Append(ctx context.Context, e *domain.DepositEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockDepositRepo) ListByBooking(ctx context.Context, bookingID int32) ([]domain.DepositEntry, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.DepositEntry), args.Error(1)
}

func (m *MockDepositRepo) Balance(ctx context.Context, bookingID int32) (decimal.Decimal, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Upsert(ctx context.Context, s *domain.PricingSetting) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSettingsRepo) GetAll(ctx context.Context) ([]domain.PricingSetting, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PricingSetting), args.Error(1)
}

func (m *MockSettingsRepo) CurrentVersion(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

type MockDepositService struct {
	mock.Mock
}

func (m *MockDepositService) Hold(ctx context.Context, bookingID int32, amount decimal.Decimal, reference string) (*domain.DepositEntry, error) {
	args := m.Called(ctx, bookingID, amount, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositEntry), args.Error(1)
}

func (m *MockDepositService) Release(ctx context.Context, operatorID, bookingID int32, description string) (*domain.DepositEntry, error) {
	args := m.Called(ctx, operatorID, bookingID, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositEntry), args.Error(1)
}

func (m *MockDepositService) Deduct(ctx context.Context, operatorID, bookingID int32, amount decimal.Decimal, description string) (*domain.DepositEntry, error) {
	args := m.Called(ctx, operatorID, bookingID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositEntry), args.Error(1)
}

func (m *MockDepositService) Ledger(ctx context.Context, bookingID int32) ([]domain.DepositEntry, decimal.Decimal, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.DepositEntry), args.Get(1).(decimal.Decimal), args.Error(2)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingConfirmation(ctx context.Context, email, name string, b *domain.Booking) error {
	args := m.Called(ctx, email, name, b)
	return args.Error(0)
}

func (m *MockEmailService) SendReturnReminder(ctx context.Context, email, name string, b *domain.Booking) error {
	args := m.Called(ctx, email, name, b)
	return args.Error(0)
}

func (m *MockEmailService) SendDepositReleased(ctx context.Context, email, name string, b *domain.Booking, amount decimal.Decimal) error {
	args := m.Called(ctx, email, name, b, amount)
	return args.Error(0)
}

func (m *MockEmailService) SendOverdueAlert(ctx context.Context, email, name string, b *domain.Booking) error {
	args := m.Called(ctx, email, name, b)
	return args.Error(0)
}
