package domain

import "time"

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

type SupportTicket struct {
	ID         int32        `json:"id"`
	CustomerID int32        `json:"customer_id"`
	BookingID  *int32       `json:"booking_id,omitempty"`
	Subject    string       `json:"subject"`
	Body       string       `json:"body"`
	Status     TicketStatus `json:"status"`
	AssignedTo *int32       `json:"assigned_to,omitempty"`
	Resolution string       `json:"resolution,omitempty"`
	CreatedOn  time.Time    `json:"created_on"`
	UpdatedOn  time.Time    `json:"updated_on"`
}
