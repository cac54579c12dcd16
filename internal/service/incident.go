package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/repository"
	"github.com/mapsensemedia/betterrental-sub009/internal/storage"

	"github.com/google/uuid"
)

type incidentService struct {
	incidentRepo repository.IncidentRepository
	bookingRepo  repository.BookingRepository
	photoStore   storage.Store
}

func NewIncidentService(
	incidentRepo repository.IncidentRepository,
	bookingRepo repository.BookingRepository,
	photoStore storage.Store,
) IncidentService {
	return &incidentService{
		incidentRepo: incidentRepo,
		bookingRepo:  bookingRepo,
		photoStore:   photoStore,
	}
}

func (s *incidentService) Report(ctx context.Context, in *domain.Incident) error {
	if in.Description == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	switch in.Severity {
	case domain.IncidentSeverityMinor, domain.IncidentSeverityModerate, domain.IncidentSeverityMajor:
	default:
		return fmt.Errorf("%w: unknown severity %q", ErrValidation, in.Severity)
	}
	if _, err := s.bookingRepo.GetByID(ctx, in.BookingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: booking %d", ErrNotFound, in.BookingID)
		}
		return err
	}
	in.Status = domain.IncidentStatusOpen
	return s.incidentRepo.Create(ctx, in)
}

func (s *incidentService) GetIncident(ctx context.Context, id int32) (*domain.Incident, error) {
	in, err := s.incidentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: incident %d", ErrNotFound, id)
		}
		return nil, err
	}
	return in, nil
}

func (s *incidentService) Review(ctx context.Context, operatorID, incidentID int32, status domain.IncidentStatus, resolution string) (*domain.Incident, error) {
	in, err := s.GetIncident(ctx, incidentID)
	if err != nil {
		return nil, err
	}
	switch status {
	case domain.IncidentStatusReviewed, domain.IncidentStatusResolved:
	default:
		return nil, fmt.Errorf("%w: cannot move incident to %q", ErrValidation, status)
	}
	if status == domain.IncidentStatusResolved && resolution == "" {
		return nil, fmt.Errorf("%w: resolution is required to resolve", ErrValidation)
	}
	in.Status = status
	if resolution != "" {
		in.Resolution = resolution
	}
	if err := s.incidentRepo.Update(ctx, in); err != nil {
		return nil, fmt.Errorf("update incident: %w", err)
	}
	return in, nil
}

func (s *incidentService) ListByBooking(ctx context.Context, bookingID int32) ([]domain.Incident, error) {
	return s.incidentRepo.ListByBooking(ctx, bookingID)
}

func (s *incidentService) ListOpen(ctx context.Context, page, pageSize int32) ([]domain.Incident, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.incidentRepo.ListOpen(ctx, page, pageSize)
}

// AttachPhoto stores the photo bytes and records the evidence row. The
// storage key is generated here so clients never pick object paths.
func (s *incidentService) AttachPhoto(ctx context.Context, p *domain.EvidencePhoto, data []byte, contentType string) (*domain.EvidencePhoto, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty photo upload", ErrValidation)
	}
	if _, err := s.bookingRepo.GetByID(ctx, p.BookingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, p.BookingID)
		}
		return nil, err
	}

	ext := ".jpg"
	if contentType == "image/png" {
		ext = ".png"
	}
	key := path.Join("evidence", fmt.Sprintf("%d", p.BookingID), uuid.NewString()+ext)

	if err := s.photoStore.Save(ctx, key, contentType, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("store photo: %w", err)
	}

	p.StorageKey = key
	if err := s.incidentRepo.AddPhoto(ctx, p); err != nil {
		// Roll the stored object back so the store never holds photos the
		// database does not know about.
		_ = s.photoStore.Delete(ctx, key)
		return nil, fmt.Errorf("record photo: %w", err)
	}
	return p, nil
}

func (s *incidentService) ListPhotos(ctx context.Context, bookingID int32) ([]domain.EvidencePhoto, error) {
	return s.incidentRepo.ListPhotosByBooking(ctx, bookingID)
}
