package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func bookingRow(id int32, status domain.BookingStatus, returnState string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "reference", "customer_id", "unit_kind", "vehicle_id", "category_id", "status",
		"pickup_date", "return_date", "actual_return", "rental_days", "pickup_location", "dropoff_location",
		"daily_rate", "protection_daily_rate", "add_ons_total", "delivery_fee", "different_dropoff_fee",
		"driver_age_band", "late_fee_amount", "rate_version", "subtotal", "pst_amount", "gst_amount", "total",
		"return_state", "bypass_reason", "bypassed_by", "cancel_reason", "notes", "created_on", "updated_on",
	}).AddRow(
		id, "BR-TEST1234", 7, "vehicle", 3, nil, status,
		now, now.Add(72*time.Hour), nil, 3, "Downtown", "Downtown",
		"100", "15", "0", "0", "0",
		"25_70", "0", 1, "345", "24.15", "17.25", "386.40",
		returnState, "", nil, "", "", now, now,
	)
}

func TestBookingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	vehicleID := int32(3)
	booking := &domain.Booking{
		Reference:           "BR-TEST1234",
		CustomerID:          7,
		UnitKind:            domain.UnitKindVehicle,
		VehicleID:           &vehicleID,
		Status:              domain.BookingStatusPending,
		PickupDate:          time.Now(),
		ReturnDate:          time.Now().Add(72 * time.Hour),
		RentalDays:          3,
		PickupLocation:      "Downtown",
		DropoffLocation:     "Downtown",
		DailyRate:           decimal.NewFromInt(100),
		ProtectionDailyRate: decimal.NewFromInt(15),
		DriverAgeBand:       "25_70",
		RateVersion:         1,
		Subtotal:            decimal.NewFromInt(345),
		Total:               decimal.RequireFromString("386.40"),
		ReturnState:         "not_started",
	}

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	err = repo.Create(ctx, booking)
	assert.NoError(t, err)
	assert.Equal(t, int32(42), booking.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs(int32(42)).
			WillReturnRows(bookingRow(42, domain.BookingStatusActive, "intake_done"))

		booking, err := repo.GetByID(ctx, 42)
		assert.NoError(t, err)
		assert.Equal(t, int32(42), booking.ID)
		assert.Equal(t, domain.BookingStatusActive, booking.Status)
		assert.Equal(t, "intake_done", booking.ReturnState)
		assert.Equal(t, "100", booking.DailyRate.String())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET status").
			WithArgs(domain.BookingStatusConfirmed, sqlmock.AnyArg(), int32(42), domain.BookingStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, 42, domain.BookingStatusPending, domain.BookingStatusConfirmed)
		assert.NoError(t, err)
	})

	t.Run("GuardFails", func(t *testing.T) {
		// Row already moved to a different status; the guarded UPDATE
		// matches nothing.
		mock.ExpectExec("UPDATE bookings SET status").
			WithArgs(domain.BookingStatusConfirmed, sqlmock.AnyArg(), int32(42), domain.BookingStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, 42, domain.BookingStatusPending, domain.BookingStatusConfirmed)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestBookingRepository_UpdateReturnState(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET return_state").
			WithArgs("initiated", sqlmock.AnyArg(), int32(42), "not_started").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateReturnState(ctx, 42, "not_started", "initiated")
		assert.NoError(t, err)
	})

	t.Run("ConcurrentAdvance", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET return_state").
			WithArgs("initiated", sqlmock.AnyArg(), int32(42), "not_started").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateReturnState(ctx, 42, "not_started", "initiated")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestBookingRepository_ListByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM").
		WithArgs(domain.BookingStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE status = \\$1 ORDER BY created_on DESC").
		WithArgs(domain.BookingStatusActive, int32(20), int32(0)).
		WillReturnRows(bookingRow(42, domain.BookingStatusActive, "not_started"))

	bookings, total, err := repo.ListByStatus(ctx, domain.BookingStatusActive, 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), total)
	assert.Len(t, bookings, 1)
}
