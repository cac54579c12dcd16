package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/repository"
)

type incidentRepository struct {
	db *sql.DB
}

func NewIncidentRepository(db *sql.DB) repository.IncidentRepository {
	return &incidentRepository{db: db}
}

const incidentColumns = `id, booking_id, vehicle_id, severity, status, description, reported_by, COALESCE(resolution, ''), created_on, updated_on`

func (r *incidentRepository) Create(ctx context.Context, in *domain.Incident) error {
	query := `INSERT INTO incidents (booking_id, vehicle_id, severity, status, description, reported_by, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, in.BookingID, in.VehicleID, in.Severity, in.Status,
		in.Description, in.ReportedBy, now, now).Scan(&in.ID)
}

func (r *incidentRepository) GetByID(ctx context.Context, id int32) (*domain.Incident, error) {
	in := &domain.Incident{}
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&in.ID, &in.BookingID, &in.VehicleID,
		&in.Severity, &in.Status, &in.Description, &in.ReportedBy, &in.Resolution,
		&in.CreatedOn, &in.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return in, nil
}

func (r *incidentRepository) Update(ctx context.Context, in *domain.Incident) error {
	query := `UPDATE incidents SET severity=$1, status=$2, description=$3, resolution=$4, updated_on=$5 WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query, in.Severity, in.Status, in.Description, in.Resolution, time.Now(), in.ID)
	return err
}

func (r *incidentRepository) ListByBooking(ctx context.Context, bookingID int32) ([]domain.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE booking_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incidents []domain.Incident
	for rows.Next() {
		var in domain.Incident
		if err := rows.Scan(&in.ID, &in.BookingID, &in.VehicleID, &in.Severity, &in.Status,
			&in.Description, &in.ReportedBy, &in.Resolution, &in.CreatedOn, &in.UpdatedOn); err != nil {
			return nil, err
		}
		incidents = append(incidents, in)
	}
	return incidents, rows.Err()
}

func (r *incidentRepository) ListOpen(ctx context.Context, page, pageSize int32) ([]domain.Incident, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx,
		"SELECT count(*) FROM incidents WHERE status = $1", domain.IncidentStatusOpen).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE status = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, domain.IncidentStatusOpen, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var incidents []domain.Incident
	for rows.Next() {
		var in domain.Incident
		if err := rows.Scan(&in.ID, &in.BookingID, &in.VehicleID, &in.Severity, &in.Status,
			&in.Description, &in.ReportedBy, &in.Resolution, &in.CreatedOn, &in.UpdatedOn); err != nil {
			return nil, 0, err
		}
		incidents = append(incidents, in)
	}
	return incidents, count, rows.Err()
}

func (r *incidentRepository) AddPhoto(ctx context.Context, p *domain.EvidencePhoto) error {
	query := `INSERT INTO evidence_photos (booking_id, incident_id, storage_key, caption, uploaded_by, created_on)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.BookingID, p.IncidentID, p.StorageKey, p.Caption,
		p.UploadedBy, time.Now()).Scan(&p.ID)
}

func (r *incidentRepository) ListPhotosByBooking(ctx context.Context, bookingID int32) ([]domain.EvidencePhoto, error) {
	query := `SELECT id, booking_id, incident_id, storage_key, COALESCE(caption, ''), uploaded_by, created_on
		FROM evidence_photos WHERE booking_id = $1 ORDER BY created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []domain.EvidencePhoto
	for rows.Next() {
		var p domain.EvidencePhoto
		if err := rows.Scan(&p.ID, &p.BookingID, &p.IncidentID, &p.StorageKey, &p.Caption,
			&p.UploadedBy, &p.CreatedOn); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}
