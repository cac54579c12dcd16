package returnflow

import (
	"strings"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
)

// minBypassReasonLen is the shortest justification accepted for forcing a
// transition the workflow would otherwise block.
const minBypassReasonLen = 50

// GateResult is the structured outcome of a workflow gate check.
type GateResult struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// ValidateReturnWorkflow gates booking status transitions on return-workflow
// progress. Only the ACTIVE → COMPLETED transition is checked: it requires
// the workflow to have reached closeout_done. Deposit processing is
// deliberately not required — deposit release may land after the booking is
// marked completed. A nil state defaults to not_started.
func ValidateReturnWorkflow(current, next domain.BookingStatus, state *ReturnState) GateResult {
	if current != domain.BookingStatusActive || next != domain.BookingStatusCompleted {
		return GateResult{Allowed: true}
	}

	effective := StateNotStarted
	if state != nil && state.IsValid() {
		effective = *state
	}

	if !IsStateAtLeast(effective, StateCloseoutDone) {
		return GateResult{
			Allowed: false,
			Reason:  "return workflow must reach closeout before the booking can be completed",
		}
	}
	return GateResult{Allowed: true}
}

// IsValidBypassReason reports whether a justification is substantial enough
// to let an operator force a blocked transition. The workflow core only
// judges the text; recording and auditing the bypass belongs to the caller.
func IsValidBypassReason(reason *string) bool {
	if reason == nil {
		return false
	}
	return len(strings.TrimSpace(*reason)) >= minBypassReasonLen
}
