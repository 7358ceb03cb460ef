package domain

import "encoding/json"

type ApplicationCategory string

const (
	ApplicationCategoryGuide      ApplicationCategory = "GUIDE"
	ApplicationCategoryMentor     ApplicationCategory = "MENTOR"
	ApplicationCategoryInfluencer ApplicationCategory = "INFLUENCER"
)

// RoleForCategory maps an application category to the role granted when
// the application is accepted.
func RoleForCategory(c ApplicationCategory) (Role, bool) {
	switch c {
	case ApplicationCategoryGuide:
		return RoleGuide, true
	case ApplicationCategoryMentor:
		return RoleMentor, true
	case ApplicationCategoryInfluencer:
		return RoleInfluencer, true
	}
	return "", false
}

func ValidCategory(c ApplicationCategory) bool {
	_, ok := RoleForCategory(c)
	return ok
}

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusAccepted ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// Application is a request to be granted an elevated role. All three
// categories share one lifecycle: PENDING is the only editable state and
// ACCEPTED/REJECTED are terminal.
type Application struct {
	ID            int32               `json:"id"`
	UserID        int32               `json:"user_id"`
	Category      ApplicationCategory `json:"category"`
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	Phone         string              `json:"phone"`
	Motivation    string              `json:"motivation"`
	Details       json.RawMessage     `json:"details,omitempty"`
	Status        ApplicationStatus   `json:"status"`
	ReviewerID    *int32              `json:"reviewer_id,omitempty"`
	ReviewerNotes string              `json:"reviewer_notes,omitempty"`
	Deleted       bool                `json:"-"`
	CreatedOn     string              `json:"created_on"`
	UpdatedOn     string              `json:"updated_on"`
	ReviewedOn    *string             `json:"reviewed_on,omitempty"`
}

// Editable reports whether the owner may still change the form.
func (a *Application) Editable() bool {
	return a.Status == ApplicationStatusPending
}

// CanTransitionTo reports whether a reviewer decision from the current
// status to next is allowed. Terminal states only accept a replay of the
// same decision (idempotent re-review).
func (a *Application) CanTransitionTo(next ApplicationStatus) bool {
	if a.Status == ApplicationStatusPending {
		return next == ApplicationStatusAccepted || next == ApplicationStatusRejected
	}
	return a.Status == next
}
