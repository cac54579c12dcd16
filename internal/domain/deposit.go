package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DepositAction string

const (
	DepositActionHold    DepositAction = "HOLD"
	DepositActionRelease DepositAction = "RELEASE"
	DepositActionDeduct  DepositAction = "DEDUCT"
)

// DepositEntry is one row of the append-only deposit ledger for a booking.
// Holds are positive, releases and deductions negative; the outstanding
// hold is the sum of a booking's entries.
type DepositEntry struct {
	ID          int32           `json:"id"`
	BookingID   int32           `json:"booking_id"`
	Action      DepositAction   `json:"action"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	ActorID     *int32          `json:"actor_id,omitempty"`
	CreatedOn   time.Time       `json:"created_on"`
}
