package domain

type RoleRequestStatus string

const (
	RoleRequestStatusPending  RoleRequestStatus = "PENDING"
	RoleRequestStatusApproved RoleRequestStatus = "APPROVED"
	RoleRequestStatusRejected RoleRequestStatus = "REJECTED"
)

func ValidRoleRequestStatus(s RoleRequestStatus) bool {
	switch s {
	case RoleRequestStatusPending, RoleRequestStatusApproved, RoleRequestStatusRejected:
		return true
	}
	return false
}

// RoleUpgradeRequest is the form-free counterpart to Application: an
// account asks for a role change, a reviewer decides. Requests are never
// deleted; they are the audit trail of role changes.
type RoleUpgradeRequest struct {
	ID            int32             `json:"id"`
	UserID        int32             `json:"user_id"`
	CurrentRole   Role              `json:"current_role"`
	RequestedRole Role              `json:"requested_role"`
	Reason        string            `json:"reason"`
	Evidence      []string          `json:"evidence,omitempty"`
	Status        RoleRequestStatus `json:"status"`
	ReviewerID    *int32            `json:"reviewer_id,omitempty"`
	ReviewerNotes string            `json:"reviewer_notes,omitempty"`
	CreatedOn     string            `json:"created_on"`
	ReviewedOn    *string           `json:"reviewed_on,omitempty"`
}

// CanTransitionTo mirrors Application transitions: pending may move to a
// terminal decision, terminals only accept an idempotent replay.
func (r *RoleUpgradeRequest) CanTransitionTo(next RoleRequestStatus) bool {
	if r.Status == RoleRequestStatusPending {
		return next == RoleRequestStatusApproved || next == RoleRequestStatusRejected
	}
	return r.Status == next
}
