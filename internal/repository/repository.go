package repository

import (
	"context"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"

	"github.com/shopspring/decimal"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	GetByReference(ctx context.Context, ref string) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	// UpdateStatus changes booking status only when the row still holds
	// fromStatus, so concurrent operators cannot race each other.
	UpdateStatus(ctx context.Context, id int32, fromStatus, toStatus domain.BookingStatus) error
	// UpdateReturnState advances the return workflow only when the stored
	// state still equals fromState.
	UpdateReturnState(ctx context.Context, id int32, fromState, toState string) error
	ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByStatus(ctx context.Context, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error)
	ListOverdueActive(ctx context.Context, asOf string) ([]domain.Booking, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Vehicle, int32, error)
	GetCategoryByID(ctx context.Context, id int32) (*domain.VehicleCategory, error)
	ListCategories(ctx context.Context) ([]domain.VehicleCategory, error)
	// ResolveUnit turns a booking's polymorphic unit reference into the
	// tagged union used everywhere downstream.
	ResolveUnit(ctx context.Context, kind domain.UnitKind, vehicleID, categoryID *int32) (*domain.BookedUnit, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
}

type DepositRepository interface {
	// Append adds a ledger entry. Entries are never updated or deleted.
	Append(ctx context.Context, e *domain.DepositEntry) error
	ListByBooking(ctx context.Context, bookingID int32) ([]domain.DepositEntry, error)
	// Balance is the outstanding hold: the sum of the booking's entries.
	Balance(ctx context.Context, bookingID int32) (decimal.Decimal, error)
}

type IncidentRepository interface {
	Create(ctx context.Context, in *domain.Incident) error
	GetByID(ctx context.Context, id int32) (*domain.Incident, error)
	Update(ctx context.Context, in *domain.Incident) error
	ListByBooking(ctx context.Context, bookingID int32) ([]domain.Incident, error)
	ListOpen(ctx context.Context, page, pageSize int32) ([]domain.Incident, int32, error)
	AddPhoto(ctx context.Context, p *domain.EvidencePhoto) error
	ListPhotosByBooking(ctx context.Context, bookingID int32) ([]domain.EvidencePhoto, error)
}

type TicketRepository interface {
	Create(ctx context.Context, tk *domain.SupportTicket) error
	GetByID(ctx context.Context, id int32) (*domain.SupportTicket, error)
	Update(ctx context.Context, tk *domain.SupportTicket) error
	ListByStatus(ctx context.Context, status string, page, pageSize int32) ([]domain.SupportTicket, int32, error)
}

type SettingsRepository interface {
	// Upsert writes a pricing override and bumps the settings version.
	Upsert(ctx context.Context, s *domain.PricingSetting) error
	GetAll(ctx context.Context) ([]domain.PricingSetting, error)
	CurrentVersion(ctx context.Context) (int32, error)
}

type OperatorRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Operator, error)
	GetByEmail(ctx context.Context, email string) (*domain.Operator, error)
	List(ctx context.Context) ([]domain.Operator, error)
}
