// Package returnflow implements the ordered return-processing workflow a
// booking must move through after the vehicle comes back: intake, evidence
// capture, issue review, closeout and deposit processing. All functions are
// pure and never panic; callers act on the returned booleans and results.
package returnflow

// ReturnState is a booking's position in the return workflow. States are
// totally ordered and only ever move forward, one state at a time, except
// via an explicitly audited bypass.
type ReturnState string

const (
	StateNotStarted       ReturnState = "not_started"
	StateInitiated        ReturnState = "initiated"
	StateIntakeDone       ReturnState = "intake_done"
	StateEvidenceDone     ReturnState = "evidence_done"
	StateIssuesReviewed   ReturnState = "issues_reviewed"
	StateCloseoutDone     ReturnState = "closeout_done"
	StateDepositProcessed ReturnState = "deposit_processed"
)

// stateOrder fixes the total order. Rank -1 means unknown.
var stateOrder = []ReturnState{
	StateNotStarted,
	StateInitiated,
	StateIntakeDone,
	StateEvidenceDone,
	StateIssuesReviewed,
	StateCloseoutDone,
	StateDepositProcessed,
}

func rank(s ReturnState) int {
	for i, st := range stateOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// IsValid reports whether s is one of the defined workflow states.
func (s ReturnState) IsValid() bool {
	return rank(s) >= 0
}

// CanTransitionTo reports whether target is the single state immediately
// following current. Skips and backward moves are never allowed here; an
// operator override goes through the bypass path instead.
func CanTransitionTo(current, target ReturnState) bool {
	c, t := rank(current), rank(target)
	if c < 0 || t < 0 {
		return false
	}
	return t == c+1
}

// IsStateAtLeast reports whether current has reached required — a "has this
// gate been cleared" check rather than an exact-state check. Unknown states
// never clear a gate.
func IsStateAtLeast(current, required ReturnState) bool {
	c, r := rank(current), rank(required)
	if c < 0 || r < 0 {
		return false
	}
	return c >= r
}

// Next returns the state immediately after current, or current itself when
// already terminal or unknown.
func Next(current ReturnState) ReturnState {
	c := rank(current)
	if c < 0 || c == len(stateOrder)-1 {
		return current
	}
	return stateOrder[c+1]
}
