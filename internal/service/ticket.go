package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/repository"
)

type ticketService struct {
	ticketRepo   repository.TicketRepository
	operatorRepo repository.OperatorRepository
}

func NewTicketService(ticketRepo repository.TicketRepository, operatorRepo repository.OperatorRepository) TicketService {
	return &ticketService{ticketRepo: ticketRepo, operatorRepo: operatorRepo}
}

func (s *ticketService) Open(ctx context.Context, tk *domain.SupportTicket) error {
	if tk.Subject == "" || tk.Body == "" {
		return fmt.Errorf("%w: subject and body are required", ErrValidation)
	}
	tk.Status = domain.TicketStatusOpen
	return s.ticketRepo.Create(ctx, tk)
}

func (s *ticketService) GetTicket(ctx context.Context, id int32) (*domain.SupportTicket, error) {
	tk, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: ticket %d", ErrNotFound, id)
		}
		return nil, err
	}
	return tk, nil
}

func (s *ticketService) Assign(ctx context.Context, ticketID, operatorID int32) (*domain.SupportTicket, error) {
	tk, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if tk.Status == domain.TicketStatusResolved || tk.Status == domain.TicketStatusClosed {
		return nil, fmt.Errorf("%w: ticket %d is %s", ErrInvalidTransition, ticketID, tk.Status)
	}
	if _, err := s.operatorRepo.GetByID(ctx, operatorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: operator %d", ErrNotFound, operatorID)
		}
		return nil, err
	}
	tk.AssignedTo = &operatorID
	tk.Status = domain.TicketStatusInProgress
	if err := s.ticketRepo.Update(ctx, tk); err != nil {
		return nil, fmt.Errorf("assign ticket: %w", err)
	}
	return tk, nil
}

func (s *ticketService) Resolve(ctx context.Context, ticketID, operatorID int32, resolution string) (*domain.SupportTicket, error) {
	if resolution == "" {
		return nil, fmt.Errorf("%w: resolution is required", ErrValidation)
	}
	tk, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if tk.Status == domain.TicketStatusClosed {
		return nil, fmt.Errorf("%w: ticket %d is closed", ErrInvalidTransition, ticketID)
	}
	tk.Status = domain.TicketStatusResolved
	tk.Resolution = resolution
	if tk.AssignedTo == nil {
		tk.AssignedTo = &operatorID
	}
	if err := s.ticketRepo.Update(ctx, tk); err != nil {
		return nil, fmt.Errorf("resolve ticket: %w", err)
	}
	return tk, nil
}

func (s *ticketService) ListByStatus(ctx context.Context, status string, page, pageSize int32) ([]domain.SupportTicket, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.ticketRepo.ListByStatus(ctx, status, page, pageSize)
}
