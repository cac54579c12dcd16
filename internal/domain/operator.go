package domain

import "time"

type OperatorRole string

const (
	OperatorRoleAgent   OperatorRole = "AGENT"
	OperatorRoleManager OperatorRole = "MANAGER"
)

// Operator is a member of the operations team. Credentials live with the
// external identity provider; only profile and role are stored here.
type Operator struct {
	ID        int32        `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      OperatorRole `json:"role"`
	CreatedOn time.Time    `json:"created_on"`
}
