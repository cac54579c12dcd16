package returnflow

// StepID identifies one of the five return-processing steps.
type StepID string

const (
	StepIntake   StepID = "intake"
	StepEvidence StepID = "evidence"
	StepIssues   StepID = "issues"
	StepCloseout StepID = "closeout"
	StepDeposit  StepID = "deposit"
)

// ReturnStep maps a workflow step to the state that gates starting it and
// the state that marks it complete.
type ReturnStep struct {
	ID                StepID
	Title             string
	PrerequisiteState ReturnState
	RequiredState     ReturnState
}

// steps are defined in state order. Invariant: RequiredState of step i
// equals PrerequisiteState of step i+1.
var steps = []ReturnStep{
	{ID: StepIntake, Title: "Vehicle intake", PrerequisiteState: StateInitiated, RequiredState: StateIntakeDone},
	{ID: StepEvidence, Title: "Condition evidence", PrerequisiteState: StateIntakeDone, RequiredState: StateEvidenceDone},
	{ID: StepIssues, Title: "Issue review", PrerequisiteState: StateEvidenceDone, RequiredState: StateIssuesReviewed},
	{ID: StepCloseout, Title: "Closeout", PrerequisiteState: StateIssuesReviewed, RequiredState: StateCloseoutDone},
	{ID: StepDeposit, Title: "Deposit processing", PrerequisiteState: StateCloseoutDone, RequiredState: StateDepositProcessed},
}

// Steps returns the workflow step definitions in order. The returned slice
// is a copy; callers may not mutate the definitions.
func Steps() []ReturnStep {
	out := make([]ReturnStep, len(steps))
	copy(out, steps)
	return out
}

// StepByID looks up a step definition.
func StepByID(id StepID) (ReturnStep, bool) {
	for _, s := range steps {
		if s.ID == id {
			return s, true
		}
	}
	return ReturnStep{}, false
}

// CanAccessStep reports whether the workflow has advanced far enough for an
// operator to begin the step.
func CanAccessStep(step ReturnStep, current ReturnState) bool {
	return IsStateAtLeast(current, step.PrerequisiteState)
}

// IsStepComplete reports whether the step's completion state has been
// reached.
func IsStepComplete(step ReturnStep, current ReturnState) bool {
	return IsStateAtLeast(current, step.RequiredState)
}

// CurrentStepFromState returns the first step whose completion state has
// not yet been reached. Once every step is complete it keeps returning the
// last step.
func CurrentStepFromState(current ReturnState) StepID {
	for _, s := range steps {
		if !IsStepComplete(s, current) {
			return s.ID
		}
	}
	return steps[len(steps)-1].ID
}
