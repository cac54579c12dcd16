package returnflow

import (
	"strings"
	"testing"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"

	"github.com/stretchr/testify/assert"
)

func statePtr(s ReturnState) *ReturnState { return &s }

func TestValidateReturnWorkflow(t *testing.T) {
	t.Run("Nil state defaults to not_started and blocks", func(t *testing.T) {
		res := ValidateReturnWorkflow(domain.BookingStatusActive, domain.BookingStatusCompleted, nil)
		assert.False(t, res.Allowed)
		assert.NotEmpty(t, res.Reason)
	})

	t.Run("Below closeout blocks", func(t *testing.T) {
		for _, s := range []ReturnState{StateNotStarted, StateInitiated, StateIntakeDone, StateEvidenceDone, StateIssuesReviewed} {
			res := ValidateReturnWorkflow(domain.BookingStatusActive, domain.BookingStatusCompleted, statePtr(s))
			assert.False(t, res.Allowed, "state=%s", s)
		}
	})

	t.Run("Closeout done allows", func(t *testing.T) {
		res := ValidateReturnWorkflow(domain.BookingStatusActive, domain.BookingStatusCompleted, statePtr(StateCloseoutDone))
		assert.True(t, res.Allowed)
		assert.Empty(t, res.Reason)
	})

	t.Run("Deposit processed allows", func(t *testing.T) {
		res := ValidateReturnWorkflow(domain.BookingStatusActive, domain.BookingStatusCompleted, statePtr(StateDepositProcessed))
		assert.True(t, res.Allowed)
	})

	t.Run("Deposit step not required for completion", func(t *testing.T) {
		// Completion may precede deposit release.
		res := ValidateReturnWorkflow(domain.BookingStatusActive, domain.BookingStatusCompleted, statePtr(StateCloseoutDone))
		assert.True(t, res.Allowed)
	})

	t.Run("Other transitions are not gated", func(t *testing.T) {
		assert.True(t, ValidateReturnWorkflow(domain.BookingStatusPending, domain.BookingStatusConfirmed, nil).Allowed)
		assert.True(t, ValidateReturnWorkflow(domain.BookingStatusActive, domain.BookingStatusCancelled, nil).Allowed)
		assert.True(t, ValidateReturnWorkflow(domain.BookingStatusConfirmed, domain.BookingStatusActive, statePtr(StateNotStarted)).Allowed)
		assert.True(t, ValidateReturnWorkflow(domain.BookingStatusOverdue, domain.BookingStatusCompleted, nil).Allowed)
	})

	t.Run("Unknown state string defaults to not_started", func(t *testing.T) {
		res := ValidateReturnWorkflow(domain.BookingStatusActive, domain.BookingStatusCompleted, statePtr("garbage"))
		assert.False(t, res.Allowed)
	})
}

func TestIsValidBypassReason(t *testing.T) {
	str := func(s string) *string { return &s }

	t.Run("Nil reason", func(t *testing.T) {
		assert.False(t, IsValidBypassReason(nil))
	})

	t.Run("Short reason", func(t *testing.T) {
		assert.False(t, IsValidBypassReason(str("short")))
	})

	t.Run("Exactly fifty characters", func(t *testing.T) {
		assert.True(t, IsValidBypassReason(str(strings.Repeat("x", 50))))
	})

	t.Run("Forty nine characters", func(t *testing.T) {
		assert.False(t, IsValidBypassReason(str(strings.Repeat("x", 49))))
	})

	t.Run("Whitespace does not count", func(t *testing.T) {
		padded := "   " + strings.Repeat("x", 49) + "   "
		assert.False(t, IsValidBypassReason(str(padded)))
	})

	t.Run("Realistic justification", func(t *testing.T) {
		reason := "Customer disputed damage assessment; manager approved completion pending insurance review, case #88123."
		assert.True(t, IsValidBypassReason(&reason))
	})
}
