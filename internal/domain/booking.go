package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusOverdue   BookingStatus = "OVERDUE"
)

type Booking struct {
	ID         int32         `json:"id"`
	Reference  string        `json:"reference"`
	CustomerID int32         `json:"customer_id"`
	UnitKind   UnitKind      `json:"unit_kind"`
	VehicleID  *int32        `json:"vehicle_id,omitempty"`
	CategoryID *int32        `json:"category_id,omitempty"`
	Status     BookingStatus `json:"status"`

	PickupDate   time.Time  `json:"pickup_date"`
	ReturnDate   time.Time  `json:"return_date"`
	ActualReturn *time.Time `json:"actual_return,omitempty"`
	RentalDays   int        `json:"rental_days"`

	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`

	// Price snapshot fields — captured at checkout from the unit's live rate
	// and the resolved rate table. Recalculations (late fees) reuse these
	// snapshots, never current fleet prices.
	DailyRate           decimal.Decimal `json:"daily_rate"`
	ProtectionDailyRate decimal.Decimal `json:"protection_daily_rate"`
	AddOnsTotal         decimal.Decimal `json:"add_ons_total"`
	DeliveryFee         decimal.Decimal `json:"delivery_fee"`
	DifferentDropoffFee decimal.Decimal `json:"different_dropoff_fee"`
	DriverAgeBand       string          `json:"driver_age_band"`
	LateFeeAmount       decimal.Decimal `json:"late_fee_amount"`
	RateVersion         int32           `json:"rate_version"`

	Subtotal  decimal.Decimal `json:"subtotal"`
	PSTAmount decimal.Decimal `json:"pst_amount"`
	GSTAmount decimal.Decimal `json:"gst_amount"`
	Total     decimal.Decimal `json:"total"`

	// Return workflow progress. Raw state string; the returnflow package
	// owns ordering and transition rules.
	ReturnState string `json:"return_state"`

	// Bypass audit trail for forced status transitions.
	BypassReason string `json:"bypass_reason,omitempty"`
	BypassedBy   *int32 `json:"bypassed_by,omitempty"`

	CancelReason string    `json:"cancel_reason,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}
