package service

import (
	"context"
	"errors"
	"time"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/pricing"
	"github.com/mapsensemedia/betterrental-sub009/internal/returnflow"

	"github.com/shopspring/decimal"
)

// Sentinel errors handlers map to HTTP status codes.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("state changed concurrently")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrReturnFlowBlocked = errors.New("return workflow incomplete")
	ErrInvalidBypass     = errors.New("bypass reason too short")
	ErrInvalidCard       = errors.New("invalid payment card")
	ErrCardExpired       = errors.New("payment card expired")
	ErrInvalidCVV        = errors.New("invalid cvv")
	ErrCustomerBlocked   = errors.New("customer is blocked")
	ErrValidation        = errors.New("validation failed")
	ErrStepNotAccessible = errors.New("return step not accessible yet")
)

// QuoteRequest is the service-level input for a price quote or checkout.
type QuoteRequest struct {
	UnitKind   domain.UnitKind `json:"unit_kind"`
	VehicleID  *int32          `json:"vehicle_id,omitempty"`
	CategoryID *int32          `json:"category_id,omitempty"`
	PickupDate time.Time       `json:"pickup_date"`
	ReturnDate time.Time       `json:"return_date"`
	RentalDays int             `json:"rental_days"`

	AddOnsTotal         decimal.Decimal `json:"add_ons_total"`
	DeliveryFee         decimal.Decimal `json:"delivery_fee"`
	DifferentDropoffFee decimal.Decimal `json:"different_dropoff_fee"`
	DriverAgeBand       string          `json:"driver_age_band"`

	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
}

// Quote pairs the calculator's breakdown with the unit it was priced for.
type Quote struct {
	Unit      *domain.BookedUnit        `json:"unit"`
	Breakdown pricing.PricingBreakdown  `json:"breakdown"`
}

// CardDetails carries checkout card input. Only the validation outcome and
// a masked suffix ever leave the service; numbers are never persisted.
type CardDetails struct {
	Number      string `json:"number"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	CVV         string `json:"cvv"`
	HolderName  string `json:"holder_name"`
}

type BookingService interface {
	Quote(ctx context.Context, req QuoteRequest) (*Quote, error)
	CreateBooking(ctx context.Context, customerID int32, req QuoteRequest) (*domain.Booking, error)
	Checkout(ctx context.Context, bookingID int32, card CardDetails) (*domain.Booking, error)
	Activate(ctx context.Context, operatorID, bookingID int32) (*domain.Booking, error)
	StartReturn(ctx context.Context, operatorID, bookingID int32) (*domain.Booking, error)
	AdvanceReturnStep(ctx context.Context, operatorID, bookingID int32, step returnflow.StepID) (*domain.Booking, error)
	CompleteBooking(ctx context.Context, operatorID, bookingID int32, bypassReason *string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID int32, reason string) (*domain.Booking, error)
	RecordLateReturn(ctx context.Context, bookingID int32, actualReturn time.Time) (*domain.Booking, error)
	GetBooking(ctx context.Context, id int32) (*domain.Booking, error)
	GetBookingByReference(ctx context.Context, ref string) (*domain.Booking, error)
	ReturnProgress(ctx context.Context, bookingID int32) (*ReturnProgress, error)
	ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByStatus(ctx context.Context, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error)
}

// ReturnProgress is the ops-console view of a booking's return workflow.
type ReturnProgress struct {
	BookingID   int32                  `json:"booking_id"`
	State       returnflow.ReturnState `json:"state"`
	CurrentStep returnflow.StepID      `json:"current_step"`
	Steps       []StepProgress         `json:"steps"`
}

type StepProgress struct {
	ID         returnflow.StepID `json:"id"`
	Title      string            `json:"title"`
	Accessible bool              `json:"accessible"`
	Complete   bool              `json:"complete"`
}

type FleetService interface {
	AddVehicle(ctx context.Context, v *domain.Vehicle) error
	GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, v *domain.Vehicle) error
	RetireVehicle(ctx context.Context, id int32) error
	ListVehicles(ctx context.Context, status string, page, pageSize int32) ([]domain.Vehicle, int32, error)
	ListCategories(ctx context.Context) ([]domain.VehicleCategory, error)
	ResolveUnit(ctx context.Context, kind domain.UnitKind, vehicleID, categoryID *int32) (*domain.BookedUnit, error)
}

type DepositService interface {
	Hold(ctx context.Context, bookingID int32, amount decimal.Decimal, reference string) (*domain.DepositEntry, error)
	Release(ctx context.Context, operatorID, bookingID int32, description string) (*domain.DepositEntry, error)
	Deduct(ctx context.Context, operatorID, bookingID int32, amount decimal.Decimal, description string) (*domain.DepositEntry, error)
	Ledger(ctx context.Context, bookingID int32) ([]domain.DepositEntry, decimal.Decimal, error)
}

type IncidentService interface {
	Report(ctx context.Context, in *domain.Incident) error
	GetIncident(ctx context.Context, id int32) (*domain.Incident, error)
	Review(ctx context.Context, operatorID, incidentID int32, status domain.IncidentStatus, resolution string) (*domain.Incident, error)
	ListByBooking(ctx context.Context, bookingID int32) ([]domain.Incident, error)
	ListOpen(ctx context.Context, page, pageSize int32) ([]domain.Incident, int32, error)
	AttachPhoto(ctx context.Context, p *domain.EvidencePhoto, data []byte, contentType string) (*domain.EvidencePhoto, error)
	ListPhotos(ctx context.Context, bookingID int32) ([]domain.EvidencePhoto, error)
}

type TicketService interface {
	Open(ctx context.Context, tk *domain.SupportTicket) error
	GetTicket(ctx context.Context, id int32) (*domain.SupportTicket, error)
	Assign(ctx context.Context, ticketID, operatorID int32) (*domain.SupportTicket, error)
	Resolve(ctx context.Context, ticketID, operatorID int32, resolution string) (*domain.SupportTicket, error)
	ListByStatus(ctx context.Context, status string, page, pageSize int32) ([]domain.SupportTicket, int32, error)
}

type SettingsService interface {
	// ResolveRateTable builds the effective rate table from stored overrides
	// layered over the defaults. The result carries the settings version it
	// was built from.
	ResolveRateTable(ctx context.Context) (pricing.RateTable, error)
	UpdateSetting(ctx context.Context, operatorID int32, key, value string) (*domain.PricingSetting, error)
	ListSettings(ctx context.Context) ([]domain.PricingSetting, error)
}

type EmailService interface {
	SendBookingConfirmation(ctx context.Context, email, name string, b *domain.Booking) error
	SendReturnReminder(ctx context.Context, email, name string, b *domain.Booking) error
	SendDepositReleased(ctx context.Context, email, name string, b *domain.Booking, amount decimal.Decimal) error
	SendOverdueAlert(ctx context.Context, email, name string, b *domain.Booking) error
}
