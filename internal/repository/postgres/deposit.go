package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/repository"

	"github.com/shopspring/decimal"
)

type depositRepository struct {
	db *sql.DB
}

func NewDepositRepository(db *sql.DB) repository.DepositRepository {
	return &depositRepository{db: db}
}

func (r *depositRepository) Append(ctx context.Context, e *domain.DepositEntry) error {
	query := `INSERT INTO deposit_entries (booking_id, action, amount, reference, description, actor_id, created_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, e.BookingID, e.Action, e.Amount, e.Reference,
		e.Description, e.ActorID, time.Now()).Scan(&e.ID)
}

func (r *depositRepository) ListByBooking(ctx context.Context, bookingID int32) ([]domain.DepositEntry, error) {
	query := `SELECT id, booking_id, action, amount, reference, COALESCE(description, ''), actor_id, created_on
		FROM deposit_entries WHERE booking_id = $1 ORDER BY created_on ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.DepositEntry
	for rows.Next() {
		var e domain.DepositEntry
		if err := rows.Scan(&e.ID, &e.BookingID, &e.Action, &e.Amount, &e.Reference,
			&e.Description, &e.ActorID, &e.CreatedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *depositRepository) Balance(ctx context.Context, bookingID int32) (decimal.Decimal, error) {
	var balance decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM deposit_entries WHERE booking_id = $1`
	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(&balance)
	return balance, err
}
