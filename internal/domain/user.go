package domain

import "encoding/json"

// User is the local account record. Every authenticated request resolves
// the external identity subject (Firebase UID) to one of these; all other
// tables key on the local integer ID, never on the external subject.
type User struct {
	ID               int32           `json:"id"`
	FirebaseUID      string          `json:"-"`
	Email            string          `json:"email"`
	Name             string          `json:"name"`
	Role             Role            `json:"role"`
	Active           bool            `json:"active"`
	Profile          json.RawMessage `json:"profile,omitempty"`
	RoleData         json.RawMessage `json:"role_data,omitempty"`
	EmailDriftSeenOn *string         `json:"email_drift_seen_on,omitempty"`
	CreatedOn        string          `json:"created_on"`
	LastLoginOn      string          `json:"last_login_on"`
}

// UserSettings is the per-account settings row created together with the
// account inside one transaction.
type UserSettings struct {
	UserID             int32  `json:"user_id"`
	EmailNotifications bool   `json:"email_notifications"`
	Language           string `json:"language"`
	Theme              string `json:"theme"`
	CreatedOn          string `json:"created_on"`
}

// DefaultSettings returns the settings row provisioned for a new account.
func DefaultSettings(userID int32) *UserSettings {
	return &UserSettings{
		UserID:             userID,
		EmailNotifications: true,
		Language:           "en",
		Theme:              "system",
	}
}
