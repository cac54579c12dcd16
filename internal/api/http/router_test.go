package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/returnflow"
	"github.com/mapsensemedia/betterrental-sub009/internal/security"
	"github.com/mapsensemedia/betterrental-sub009/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Quote(ctx context.Context, req service.QuoteRequest) (*service.Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Quote), args.Error(1)
}

func (m *MockBookingService) CreateBooking(ctx context.Context, customerID int32, req service.QuoteRequest) (*domain.Booking, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) Checkout(ctx context.Context, bookingID int32, card service.CardDetails) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, card)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) Activate(ctx context.Context, operatorID, bookingID int32) (*domain.Booking, error) {
	args := m.Called(ctx, operatorID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) StartReturn(ctx context.Context, operatorID, bookingID int32) (*domain.Booking, error) {
	args := m.Called(ctx, operatorID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) AdvanceReturnStep(ctx context.Context, operatorID, bookingID int32, step returnflow.StepID) (*domain.Booking, error) {
	args := m.Called(ctx, operatorID, bookingID, step)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) CompleteBooking(ctx context.Context, operatorID, bookingID int32, bypassReason *string) (*domain.Booking, error) {
	args := m.Called(ctx, operatorID, bookingID, bypassReason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) CancelBooking(ctx context.Context, bookingID int32, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) RecordLateReturn(ctx context.Context, bookingID int32, actualReturn time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, actualReturn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) GetBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) GetBookingByReference(ctx context.Context, ref string) (*domain.Booking, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) ReturnProgress(ctx context.Context, bookingID int32) (*service.ReturnProgress, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReturnProgress), args.Error(1)
}

func (m *MockBookingService) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

func (m *MockBookingService) ListByStatus(ctx context.Context, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

func newTestRouter(bookingSvc service.BookingService) (http.Handler, security.TokenManager) {
	tokens := security.NewTokenManager("test-secret", 60, 60)
	router := NewRouter(RouterDeps{
		Tokens:      tokens,
		BookingSvc:  bookingSvc,
		MaxUploadMB: 10,
	})
	return router, tokens
}

func TestReturnWorkflowRoutes(t *testing.T) {
	t.Run("MissingTokenUnauthorized", func(t *testing.T) {
		router, _ := newTestRouter(new(MockBookingService))

		req := httptest.NewRequest(http.MethodPost, "/v1/ops/bookings/42/return", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("CustomerTokenForbiddenOnOpsRoute", func(t *testing.T) {
		router, tokens := newTestRouter(new(MockBookingService))
		token, err := tokens.GenerateAccessToken(7, "dana@test.com", security.AudienceCustomer, "")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/v1/ops/bookings/42/return", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("AdvanceStepSuccess", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("AdvanceReturnStep", mock.Anything, int32(9), int32(42), returnflow.StepIntake).
			Return(&domain.Booking{ID: 42, Status: domain.BookingStatusActive, ReturnState: "intake_done"}, nil)

		router, tokens := newTestRouter(svc)
		token, err := tokens.GenerateAccessToken(9, "agent@test.com", security.AudienceOps, string(domain.OperatorRoleAgent))
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/v1/ops/bookings/42/return/steps/intake", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"intake_done"`)
		svc.AssertExpectations(t)
	})

	t.Run("CompleteBlockedReturnsUnprocessable", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("CompleteBooking", mock.Anything, int32(9), int32(42), (*string)(nil)).
			Return(nil, service.ErrReturnFlowBlocked)

		router, tokens := newTestRouter(svc)
		token, err := tokens.GenerateAccessToken(9, "agent@test.com", security.AudienceOps, string(domain.OperatorRoleAgent))
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/v1/ops/bookings/42/complete", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("BypassRequiresManager", func(t *testing.T) {
		router, tokens := newTestRouter(new(MockBookingService))
		token, err := tokens.GenerateAccessToken(9, "agent@test.com", security.AudienceOps, string(domain.OperatorRoleAgent))
		assert.NoError(t, err)

		body := strings.NewReader(`{"bypass_reason":"vehicle written off after collision, insurance claim 88123 covers closeout"}`)
		req := httptest.NewRequest(http.MethodPost, "/v1/ops/bookings/42/complete/bypass", body)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
