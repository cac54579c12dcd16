package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/repository"
)

type ticketRepository struct {
	db *sql.DB
}

func NewTicketRepository(db *sql.DB) repository.TicketRepository {
	return &ticketRepository{db: db}
}

const ticketColumns = `id, customer_id, booking_id, subject, body, status, assigned_to, COALESCE(resolution, ''), created_on, updated_on`

func (r *ticketRepository) Create(ctx context.Context, tk *domain.SupportTicket) error {
	query := `INSERT INTO support_tickets (customer_id, booking_id, subject, body, status, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, tk.CustomerID, tk.BookingID, tk.Subject, tk.Body,
		tk.Status, now, now).Scan(&tk.ID)
}

func (r *ticketRepository) GetByID(ctx context.Context, id int32) (*domain.SupportTicket, error) {
	tk := &domain.SupportTicket{}
	query := `SELECT ` + ticketColumns + ` FROM support_tickets WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&tk.ID, &tk.CustomerID, &tk.BookingID,
		&tk.Subject, &tk.Body, &tk.Status, &tk.AssignedTo, &tk.Resolution, &tk.CreatedOn, &tk.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return tk, nil
}

func (r *ticketRepository) Update(ctx context.Context, tk *domain.SupportTicket) error {
	query := `UPDATE support_tickets SET status=$1, assigned_to=$2, resolution=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, tk.Status, tk.AssignedTo, tk.Resolution, time.Now(), tk.ID)
	return err
}

func (r *ticketRepository) ListByStatus(ctx context.Context, status string, page, pageSize int32) ([]domain.SupportTicket, int32, error) {
	where := "1=1"
	args := []any{}
	if status != "" {
		where = "status = $1"
		args = append(args, status)
	}
	base := `SELECT ` + ticketColumns + ` FROM support_tickets WHERE ` + where

	var count int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM ("+base+") as sub", args...).Scan(&count); err != nil {
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

	var tickets []domain.SupportTicket
	for rows.Next() {
		var tk domain.SupportTicket
		if err := rows.Scan(&tk.ID, &tk.CustomerID, &tk.BookingID, &tk.Subject, &tk.Body,
			&tk.Status, &tk.AssignedTo, &tk.Resolution, &tk.CreatedOn, &tk.UpdatedOn); err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, tk)
	}
	return tickets, count, rows.Err()
}
