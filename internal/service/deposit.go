package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/repository"
	"github.com/mapsensemedia/betterrental-sub009/internal/returnflow"

	"github.com/shopspring/decimal"
)

type depositService struct {
	depositRepo  repository.DepositRepository
	bookingRepo  repository.BookingRepository
	customerRepo repository.CustomerRepository
	emailSvc     EmailService
}

func NewDepositService(
	depositRepo repository.DepositRepository,
	bookingRepo repository.BookingRepository,
	customerRepo repository.CustomerRepository,
	emailSvc EmailService,
) DepositService {
	return &depositService{
		depositRepo:  depositRepo,
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		emailSvc:     emailSvc,
	}
}

func (s *depositService) Hold(ctx context.Context, bookingID int32, amount decimal.Decimal, reference string) (*domain.DepositEntry, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: hold amount must be positive", ErrValidation)
	}
	entry := &domain.DepositEntry{
		BookingID:   bookingID,
		Action:      domain.DepositActionHold,
		Amount:      amount,
		Reference:   reference,
		Description: "security deposit hold",
	}
	if err := s.depositRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("append hold: %w", err)
	}
	return entry, nil
}

// Release returns the full outstanding hold to the customer. The booking's
// return workflow must have reached closeout_done; releasing marks the
// workflow deposit_processed.
func (s *depositService) Release(ctx context.Context, operatorID, bookingID int32, description string) (*domain.DepositEntry, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
		}
		return nil, err
	}

	state := returnflow.ReturnState(booking.ReturnState)
	if !returnflow.IsStateAtLeast(state, returnflow.StateCloseoutDone) {
		return nil, fmt.Errorf("%w: deposit release requires closeout, workflow is %s", ErrReturnFlowBlocked, booking.ReturnState)
	}

	balance, err := s.depositRepo.Balance(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("deposit balance: %w", err)
	}
	if balance.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: no outstanding hold", ErrValidation)
	}

	if description == "" {
		description = "deposit released after closeout"
	}
	entry := &domain.DepositEntry{
		BookingID:   bookingID,
		Action:      domain.DepositActionRelease,
		Amount:      balance.Neg(),
		Reference:   booking.Reference,
		Description: description,
		ActorID:     &operatorID,
	}
	if err := s.depositRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("append release: %w", err)
	}

	if state == returnflow.StateCloseoutDone {
		if err := s.bookingRepo.UpdateReturnState(ctx, bookingID,
			string(returnflow.StateCloseoutDone), string(returnflow.StateDepositProcessed)); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}

	if customer, err := s.customerRepo.GetByID(ctx, booking.CustomerID); err == nil {
		_ = s.emailSvc.SendDepositReleased(ctx, customer.Email, customer.Name, booking, balance)
	}
	return entry, nil
}

// Deduct withholds part of the hold against damage or fees. The remainder
// stays held until an explicit release.
func (s *depositService) Deduct(ctx context.Context, operatorID, bookingID int32, amount decimal.Decimal, description string) (*domain.DepositEntry, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: deduction must be positive", ErrValidation)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: deduction requires a description", ErrValidation)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
		}
		return nil, err
	}

	balance, err := s.depositRepo.Balance(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("deposit balance: %w", err)
	}
	if amount.GreaterThan(balance) {
		return nil, fmt.Errorf("%w: deduction %s exceeds outstanding hold %s", ErrValidation, amount.StringFixed(2), balance.StringFixed(2))
	}

	entry := &domain.DepositEntry{
		BookingID:   bookingID,
		Action:      domain.DepositActionDeduct,
		Amount:      amount.Neg(),
		Reference:   booking.Reference,
		Description: description,
		ActorID:     &operatorID,
	}
	if err := s.depositRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("append deduction: %w", err)
	}
	return entry, nil
}

func (s *depositService) Ledger(ctx context.Context, bookingID int32) ([]domain.DepositEntry, decimal.Decimal, error) {
	entries, err := s.depositRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	balance, err := s.depositRepo.Balance(ctx, bookingID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return entries, balance, nil
}
