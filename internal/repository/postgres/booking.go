package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, reference, customer_id, unit_kind, vehicle_id, category_id, status,
	pickup_date, return_date, actual_return, rental_days, pickup_location, dropoff_location,
	daily_rate, protection_daily_rate, add_ons_total, delivery_fee, different_dropoff_fee,
	driver_age_band, late_fee_amount, rate_version, subtotal, pst_amount, gst_amount, total,
	return_state, bypass_reason, bypassed_by, cancel_reason, notes, created_on, updated_on`

func (r *bookingRepository) scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	var actualReturn sql.NullTime
	var bypassedBy sql.NullInt32
	err := row.Scan(&b.ID, &b.Reference, &b.CustomerID, &b.UnitKind, &b.VehicleID, &b.CategoryID, &b.Status,
		&b.PickupDate, &b.ReturnDate, &actualReturn, &b.RentalDays, &b.PickupLocation, &b.DropoffLocation,
		&b.DailyRate, &b.ProtectionDailyRate, &b.AddOnsTotal, &b.DeliveryFee, &b.DifferentDropoffFee,
		&b.DriverAgeBand, &b.LateFeeAmount, &b.RateVersion, &b.Subtotal, &b.PSTAmount, &b.GSTAmount, &b.Total,
		&b.ReturnState, &b.BypassReason, &bypassedBy, &b.CancelReason, &b.Notes, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if actualReturn.Valid {
		b.ActualReturn = &actualReturn.Time
	}
	if bypassedBy.Valid {
		v := bypassedBy.Int32
		b.BypassedBy = &v
	}
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (reference, customer_id, unit_kind, vehicle_id, category_id, status,
		pickup_date, return_date, rental_days, pickup_location, dropoff_location,
		daily_rate, protection_daily_rate, add_ons_total, delivery_fee, different_dropoff_fee,
		driver_age_band, late_fee_amount, rate_version, subtotal, pst_amount, gst_amount, total,
		return_state, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
		RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		b.Reference, b.CustomerID, b.UnitKind, b.VehicleID, b.CategoryID, b.Status,
		b.PickupDate, b.ReturnDate, b.RentalDays, b.PickupLocation, b.DropoffLocation,
		b.DailyRate, b.ProtectionDailyRate, b.AddOnsTotal, b.DeliveryFee, b.DifferentDropoffFee,
		b.DriverAgeBand, b.LateFeeAmount, b.RateVersion, b.Subtotal, b.PSTAmount, b.GSTAmount, b.Total,
		b.ReturnState, now, now).Scan(&b.ID)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanBooking(r.db.QueryRowContext(ctx, query, id))
}

func (r *bookingRepository) GetByReference(ctx context.Context, ref string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE reference = $1`
	return r.scanBooking(r.db.QueryRowContext(ctx, query, ref))
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1, actual_return=$2, late_fee_amount=$3,
		subtotal=$4, pst_amount=$5, gst_amount=$6, total=$7, return_state=$8,
		bypass_reason=$9, bypassed_by=$10, cancel_reason=$11, notes=$12, updated_on=$13
		WHERE id=$14`
	_, err := r.db.ExecContext(ctx, query, b.Status, b.ActualReturn, b.LateFeeAmount,
		b.Subtotal, b.PSTAmount, b.GSTAmount, b.Total, b.ReturnState,
		b.BypassReason, b.BypassedBy, b.CancelReason, b.Notes, time.Now(), b.ID)
	return err
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int32, fromStatus, toStatus domain.BookingStatus) error {
	query := `UPDATE bookings SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, toStatus, time.Now(), id, fromStatus)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *bookingRepository) UpdateReturnState(ctx context.Context, id int32, fromState, toState string) error {
	query := `UPDATE bookings SET return_state=$1, updated_on=$2 WHERE id=$3 AND return_state=$4`
	res, err := r.db.ExecContext(ctx, query, toState, time.Now(), id, fromState)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *bookingRepository) list(ctx context.Context, where string, args []any, page, pageSize int32) ([]domain.Booking, int32, error) {
	base := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + where

	var count int32
	countQuery := "SELECT count(*) FROM (" + base + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := base + fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	where := "customer_id = $1"
	args := []any{customerID}
	if status != "" {
		where += " AND status = $2"
		args = append(args, status)
	}
	return r.list(ctx, where, args, page, pageSize)
}

func (r *bookingRepository) ListByStatus(ctx context.Context, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "status = $1", []any{status}, page, pageSize)
}

func (r *bookingRepository) ListOverdueActive(ctx context.Context, asOf string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status IN ($1, $2) AND return_date < $3`
	rows, err := r.db.QueryContext(ctx, query, domain.BookingStatusActive, domain.BookingStatusOverdue, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
