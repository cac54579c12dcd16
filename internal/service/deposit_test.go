package service

import (
	"context"
	"testing"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/returnflow"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type depositFixture struct {
	depositRepo  *MockDepositRepo
	bookingRepo  *MockBookingRepo
	customerRepo *MockCustomerRepo
	emailSvc     *MockEmailService
	svc          DepositService
}

func newDepositFixture(t *testing.T) *depositFixture {
	t.Helper()
	f := &depositFixture{
		depositRepo:  new(MockDepositRepo),
		bookingRepo:  new(MockBookingRepo),
		customerRepo: new(MockCustomerRepo),
		emailSvc:     new(MockEmailService),
	}
	f.svc = NewDepositService(f.depositRepo, f.bookingRepo, f.customerRepo, f.emailSvc)
	return f
}

func depositBooking(state returnflow.ReturnState) *domain.Booking {
	return &domain.Booking{
		ID:          42,
		Reference:   "BR-TEST1234",
		CustomerID:  7,
		Status:      domain.BookingStatusActive,
		ReturnState: string(state),
	}
}

func TestDepositService_Hold(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newDepositFixture(t)
		f.depositRepo.On("Append", ctx, mock.AnythingOfType("*domain.DepositEntry")).Return(nil)

		entry, err := f.svc.Hold(ctx, 42, decimal.RequireFromString("500.00"), "BR-TEST1234")
		assert.NoError(t, err)
		assert.Equal(t, domain.DepositActionHold, entry.Action)
		assert.Equal(t, "500.00", entry.Amount.StringFixed(2))
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		f := newDepositFixture(t)

		_, err := f.svc.Hold(ctx, 42, decimal.Zero, "BR-TEST1234")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestDepositService_Release(t *testing.T) {
	ctx := context.Background()

	t.Run("BeforeCloseoutBlocked", func(t *testing.T) {
		f := newDepositFixture(t)
		f.bookingRepo.On("GetByID", ctx, int32(42)).Return(depositBooking(returnflow.StateIssuesReviewed), nil)

		_, err := f.svc.Release(ctx, 9, 42, "")
		assert.ErrorIs(t, err, ErrReturnFlowBlocked)
	})

	t.Run("ReleasesBalanceAndAdvancesWorkflow", func(t *testing.T) {
		f := newDepositFixture(t)
		f.bookingRepo.On("GetByID", ctx, int32(42)).Return(depositBooking(returnflow.StateCloseoutDone), nil)
		f.depositRepo.On("Balance", ctx, int32(42)).Return(decimal.RequireFromString("425.00"), nil)
		f.depositRepo.On("Append", ctx, mock.AnythingOfType("*domain.DepositEntry")).Return(nil)
		f.bookingRepo.On("UpdateReturnState", ctx, int32(42), "closeout_done", "deposit_processed").Return(nil)
		f.customerRepo.On("GetByID", ctx, int32(7)).Return(&domain.Customer{ID: 7, Name: "Dana", Email: "dana@test.com"}, nil)
		f.emailSvc.On("SendDepositReleased", ctx, "dana@test.com", "Dana", mock.AnythingOfType("*domain.Booking"), decimal.RequireFromString("425.00")).Return(nil)

		entry, err := f.svc.Release(ctx, 9, 42, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.DepositActionRelease, entry.Action)
		assert.Equal(t, "-425.00", entry.Amount.StringFixed(2))
		assert.Equal(t, "deposit released after closeout", entry.Description)
		if assert.NotNil(t, entry.ActorID) {
			assert.Equal(t, int32(9), *entry.ActorID)
		}
		f.bookingRepo.AssertExpectations(t)
	})

	t.Run("NothingOutstanding", func(t *testing.T) {
		f := newDepositFixture(t)
		f.bookingRepo.On("GetByID", ctx, int32(42)).Return(depositBooking(returnflow.StateDepositProcessed), nil)
		f.depositRepo.On("Balance", ctx, int32(42)).Return(decimal.Zero, nil)

		_, err := f.svc.Release(ctx, 9, 42, "")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestDepositService_Deduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newDepositFixture(t)
		f.bookingRepo.On("GetByID", ctx, int32(42)).Return(depositBooking(returnflow.StateIssuesReviewed), nil)
		f.depositRepo.On("Balance", ctx, int32(42)).Return(decimal.RequireFromString("500.00"), nil)
		f.depositRepo.On("Append", ctx, mock.AnythingOfType("*domain.DepositEntry")).Return(nil)

		entry, err := f.svc.Deduct(ctx, 9, 42, decimal.RequireFromString("75.00"), "windshield chip repair")
		assert.NoError(t, err)
		assert.Equal(t, domain.DepositActionDeduct, entry.Action)
		assert.Equal(t, "-75.00", entry.Amount.StringFixed(2))
	})

	t.Run("ExceedsBalance", func(t *testing.T) {
		f := newDepositFixture(t)
		f.bookingRepo.On("GetByID", ctx, int32(42)).Return(depositBooking(returnflow.StateIssuesReviewed), nil)
		f.depositRepo.On("Balance", ctx, int32(42)).Return(decimal.RequireFromString("100.00"), nil)

		_, err := f.svc.Deduct(ctx, 9, 42, decimal.RequireFromString("250.00"), "body panel damage")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("MissingDescription", func(t *testing.T) {
		f := newDepositFixture(t)

		_, err := f.svc.Deduct(ctx, 9, 42, decimal.RequireFromString("75.00"), "")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestDepositService_Ledger(t *testing.T) {
	ctx := context.Background()

	f := newDepositFixture(t)
	entries := []domain.DepositEntry{
		{ID: 1, BookingID: 42, Action: domain.DepositActionHold, Amount: decimal.RequireFromString("500.00")},
		{ID: 2, BookingID: 42, Action: domain.DepositActionDeduct, Amount: decimal.RequireFromString("-75.00")},
	}
	f.depositRepo.On("ListByBooking", ctx, int32(42)).Return(entries, nil)
	f.depositRepo.On("Balance", ctx, int32(42)).Return(decimal.RequireFromString("425.00"), nil)

	got, balance, err := f.svc.Ledger(ctx, 42)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "425.00", balance.StringFixed(2))
}
