package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/payment"
	"github.com/mapsensemedia/betterrental-sub009/internal/pricing"
	"github.com/mapsensemedia/betterrental-sub009/internal/repository"
	"github.com/mapsensemedia/betterrental-sub009/internal/returnflow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type bookingService struct {
	bookingRepo  repository.BookingRepository
	vehicleRepo  repository.VehicleRepository
	customerRepo repository.CustomerRepository
	settingsSvc  SettingsService
	depositSvc   DepositService
	emailSvc     EmailService
	holdAmount   decimal.Decimal
	loc          *time.Location
	now          func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	customerRepo repository.CustomerRepository,
	settingsSvc SettingsService,
	depositSvc DepositService,
	emailSvc EmailService,
	holdAmount decimal.Decimal,
	loc *time.Location,
) BookingService {
	if loc == nil {
		loc = time.UTC
	}
	return &bookingService{
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		customerRepo: customerRepo,
		settingsSvc:  settingsSvc,
		depositSvc:   depositSvc,
		emailSvc:     emailSvc,
		holdAmount:   holdAmount,
		loc:          loc,
		now:          time.Now,
	}
}

func (s *bookingService) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	if err := validateQuoteRequest(req); err != nil {
		return nil, err
	}
	unit, err := s.vehicleRepo.ResolveUnit(ctx, req.UnitKind, req.VehicleID, req.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: unit", ErrNotFound)
		}
		return nil, fmt.Errorf("resolve unit: %w", err)
	}

	table, err := s.settingsSvc.ResolveRateTable(ctx)
	if err != nil {
		return nil, err
	}

	// Weekday classification happens in the deployment's pricing timezone,
	// not in whatever offset the client's timestamp carried.
	pickup := req.PickupDate.In(s.loc)
	breakdown := pricing.CalculateBookingPricing(pricing.PricingInput{
		VehicleDailyRate:    unit.DailyRate(),
		RentalDays:          req.RentalDays,
		ProtectionDailyRate: unit.ProtectionDailyRate(),
		AddOnsTotal:         req.AddOnsTotal,
		DeliveryFee:         req.DeliveryFee,
		DifferentDropoffFee: req.DifferentDropoffFee,
		DriverAgeBand:       pricing.AgeBand(req.DriverAgeBand),
		PickupDate:          &pickup,
	}, table)

	return &Quote{Unit: unit, Breakdown: breakdown}, nil
}

func validateQuoteRequest(req QuoteRequest) error {
	if req.RentalDays <= 0 {
		return fmt.Errorf("%w: rental days must be positive", ErrValidation)
	}
	if !req.ReturnDate.After(req.PickupDate) {
		return fmt.Errorf("%w: return date must be after pickup date", ErrValidation)
	}
	switch req.UnitKind {
	case domain.UnitKindVehicle:
		if req.VehicleID == nil {
			return fmt.Errorf("%w: vehicle_id required", ErrValidation)
		}
	case domain.UnitKindCategory:
		if req.CategoryID == nil {
			return fmt.Errorf("%w: category_id required", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown unit kind %q", ErrValidation, req.UnitKind)
	}
	return nil
}

func (s *bookingService) CreateBooking(ctx context.Context, customerID int32, req QuoteRequest) (*domain.Booking, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: customer", ErrNotFound)
		}
		return nil, err
	}
	if customer.Blocked {
		return nil, ErrCustomerBlocked
	}

	quote, err := s.Quote(ctx, req)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Reference:  newBookingReference(),
		CustomerID: customerID,
		UnitKind:   req.UnitKind,
		VehicleID:  req.VehicleID,
		CategoryID: req.CategoryID,
		Status:     domain.BookingStatusPending,

		PickupDate: req.PickupDate,
		ReturnDate: req.ReturnDate,
		RentalDays: req.RentalDays,

		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,

		DailyRate:           quote.Unit.DailyRate(),
		ProtectionDailyRate: quote.Unit.ProtectionDailyRate(),
		AddOnsTotal:         req.AddOnsTotal,
		DeliveryFee:         req.DeliveryFee,
		DifferentDropoffFee: req.DifferentDropoffFee,
		DriverAgeBand:       req.DriverAgeBand,
		RateVersion:         quote.Breakdown.RateVersion,

		Subtotal:  quote.Breakdown.Subtotal,
		PSTAmount: quote.Breakdown.PSTAmount,
		GSTAmount: quote.Breakdown.GSTAmount,
		Total:     quote.Breakdown.Total,

		ReturnState: string(returnflow.StateNotStarted),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return booking, nil
}

func newBookingReference() string {
	return "BR-" + strings.ToUpper(uuid.NewString()[:8])
}

func (s *bookingService) Checkout(ctx context.Context, bookingID int32, card CardDetails) (*domain.Booking, error) {
	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, fmt.Errorf("%w: checkout requires PENDING, booking is %s", ErrInvalidTransition, booking.Status)
	}

	if !payment.ValidateCardNumber(card.Number) {
		return nil, ErrInvalidCard
	}
	cardType := payment.DetectCardType(card.Number)
	if !payment.ValidateExpiry(card.ExpiryMonth, card.ExpiryYear, s.now()) {
		return nil, ErrCardExpired
	}
	if !payment.ValidateCVV(card.CVV, cardType) {
		return nil, ErrInvalidCVV
	}

	if _, err := s.depositSvc.Hold(ctx, booking.ID, s.holdAmount, booking.Reference); err != nil {
		return nil, fmt.Errorf("hold deposit: %w", err)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.BookingStatusPending, domain.BookingStatusConfirmed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConflict
		}
		return nil, err
	}
	booking.Status = domain.BookingStatusConfirmed

	if customer, err := s.customerRepo.GetByID(ctx, booking.CustomerID); err == nil {
		_ = s.emailSvc.SendBookingConfirmation(ctx, customer.Email, customer.Name, booking)
	}
	return booking, nil
}

func (s *bookingService) Activate(ctx context.Context, operatorID, bookingID int32) (*domain.Booking, error) {
	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusConfirmed {
		return nil, fmt.Errorf("%w: activation requires CONFIRMED, booking is %s", ErrInvalidTransition, booking.Status)
	}
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.BookingStatusConfirmed, domain.BookingStatusActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConflict
		}
		return nil, err
	}
	booking.Status = domain.BookingStatusActive
	return booking, nil
}

// StartReturn moves the return workflow off not_started when the vehicle
// comes back. The booking stays ACTIVE (or OVERDUE) until the workflow
// reaches closeout and the booking is completed.
func (s *bookingService) StartReturn(ctx context.Context, operatorID, bookingID int32) (*domain.Booking, error) {
	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusActive && booking.Status != domain.BookingStatusOverdue {
		return nil, fmt.Errorf("%w: return requires an active rental, booking is %s", ErrInvalidTransition, booking.Status)
	}
	return s.advanceState(ctx, booking, returnflow.StateInitiated)
}

// AdvanceReturnStep completes the given workflow step, moving the state one
// position forward. Steps cannot be skipped and cannot run before their
// prerequisite state is reached.
func (s *bookingService) AdvanceReturnStep(ctx context.Context, operatorID, bookingID int32, stepID returnflow.StepID) (*domain.Booking, error) {
	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	step, ok := returnflow.StepByID(stepID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown return step %q", ErrValidation, stepID)
	}
	current := returnflow.ReturnState(booking.ReturnState)
	if !current.IsValid() {
		current = returnflow.StateNotStarted
	}
	if returnflow.IsStepComplete(step, current) {
		return booking, nil
	}
	if !returnflow.CanAccessStep(step, current) {
		return nil, fmt.Errorf("%w: step %s requires state %s", ErrStepNotAccessible, step.ID, step.PrerequisiteState)
	}
	return s.advanceState(ctx, booking, step.RequiredState)
}

func (s *bookingService) advanceState(ctx context.Context, booking *domain.Booking, target returnflow.ReturnState) (*domain.Booking, error) {
	current := returnflow.ReturnState(booking.ReturnState)
	if !current.IsValid() {
		current = returnflow.StateNotStarted
	}
	if !returnflow.CanTransitionTo(current, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
	}
	if err := s.bookingRepo.UpdateReturnState(ctx, booking.ID, string(current), string(target)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConflict
		}
		return nil, err
	}
	booking.ReturnState = string(target)
	return booking, nil
}

// CompleteBooking closes out an active rental. The return workflow must have
// reached closeout_done; a manager can bypass the gate with an audited
// reason of at least 50 characters.
func (s *bookingService) CompleteBooking(ctx context.Context, operatorID, bookingID int32, bypassReason *string) (*domain.Booking, error) {
	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	from := booking.Status
	if from != domain.BookingStatusActive && from != domain.BookingStatusOverdue {
		return nil, fmt.Errorf("%w: completion requires an active rental, booking is %s", ErrInvalidTransition, from)
	}

	state := returnflow.ReturnState(booking.ReturnState)
	gate := returnflow.ValidateReturnWorkflow(domain.BookingStatusActive, domain.BookingStatusCompleted, &state)
	if !gate.Allowed {
		if bypassReason == nil {
			return nil, fmt.Errorf("%w: %s", ErrReturnFlowBlocked, gate.Reason)
		}
		if !returnflow.IsValidBypassReason(bypassReason) {
			return nil, ErrInvalidBypass
		}
		booking.BypassReason = strings.TrimSpace(*bypassReason)
		booking.BypassedBy = &operatorID
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, from, domain.BookingStatusCompleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConflict
		}
		return nil, err
	}
	booking.Status = domain.BookingStatusCompleted
	if booking.ActualReturn == nil {
		now := s.now()
		booking.ActualReturn = &now
	}
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("save completion: %w", err)
	}
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID int32, reason string) (*domain.Booking, error) {
	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	from := booking.Status
	if from != domain.BookingStatusPending && from != domain.BookingStatusConfirmed {
		return nil, fmt.Errorf("%w: only pending or confirmed bookings can be cancelled, booking is %s", ErrInvalidTransition, from)
	}
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, from, domain.BookingStatusCancelled); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConflict
		}
		return nil, err
	}
	booking.Status = domain.BookingStatusCancelled
	booking.CancelReason = reason
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("save cancellation: %w", err)
	}
	return booking, nil
}

// RecordLateReturn reprices a booking against its snapshot after a late
// return. Minutes within the grace period cost nothing.
func (s *bookingService) RecordLateReturn(ctx context.Context, bookingID int32, actualReturn time.Time) (*domain.Booking, error) {
	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusActive && booking.Status != domain.BookingStatusOverdue {
		return nil, fmt.Errorf("%w: late return requires an active rental, booking is %s", ErrInvalidTransition, booking.Status)
	}

	table, err := s.settingsSvc.ResolveRateTable(ctx)
	if err != nil {
		return nil, err
	}

	minutesLate := int(actualReturn.Sub(booking.ReturnDate).Minutes())
	dailyRate := booking.DailyRate
	lateFee := pricing.CalculateLateFee(minutesLate, &dailyRate, table)

	pickup := booking.PickupDate.In(s.loc)
	breakdown := pricing.CalculateBookingPricing(pricing.PricingInput{
		VehicleDailyRate:    booking.DailyRate,
		RentalDays:          booking.RentalDays,
		ProtectionDailyRate: booking.ProtectionDailyRate,
		AddOnsTotal:         booking.AddOnsTotal,
		DeliveryFee:         booking.DeliveryFee,
		DifferentDropoffFee: booking.DifferentDropoffFee,
		DriverAgeBand:       pricing.AgeBand(booking.DriverAgeBand),
		PickupDate:          &pickup,
		LateFeeAmount:       lateFee,
	}, table)

	booking.ActualReturn = &actualReturn
	booking.LateFeeAmount = lateFee
	booking.Subtotal = breakdown.Subtotal
	booking.PSTAmount = breakdown.PSTAmount
	booking.GSTAmount = breakdown.GSTAmount
	booking.Total = breakdown.Total

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("save late return: %w", err)
	}
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, id)
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) GetBookingByReference(ctx context.Context, ref string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByReference(ctx, ref)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: booking %s", ErrNotFound, ref)
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ReturnProgress(ctx context.Context, bookingID int32) (*ReturnProgress, error) {
	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	state := returnflow.ReturnState(booking.ReturnState)
	if !state.IsValid() {
		state = returnflow.StateNotStarted
	}

	progress := &ReturnProgress{
		BookingID:   booking.ID,
		State:       state,
		CurrentStep: returnflow.CurrentStepFromState(state),
	}
	for _, step := range returnflow.Steps() {
		progress.Steps = append(progress.Steps, StepProgress{
			ID:         step.ID,
			Title:      step.Title,
			Accessible: returnflow.CanAccessStep(step, state),
			Complete:   returnflow.IsStepComplete(step, state),
		})
	}
	return progress, nil
}

func (s *bookingService) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByCustomer(ctx, customerID, status, page, pageSize)
}

func (s *bookingService) ListByStatus(ctx context.Context, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByStatus(ctx, status, page, pageSize)
}
